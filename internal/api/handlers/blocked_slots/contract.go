package blocked_slots

import (
	"context"
	"time"

	"github.com/m04kA/salon-booking-service/internal/service/blocks/models"
)

type BlockService interface {
	Create(ctx context.Context, req *models.CreateBlockRequest) (*models.CreateBlockResponse, error)
	List(ctx context.Context, from, to time.Time) (*models.BlockListResponse, error)
	Get(ctx context.Context, id int64) (*models.BlockResponse, error)
	Delete(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
