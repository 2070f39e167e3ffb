package reports

import (
	"context"
	"io"

	"github.com/m04kA/salon-booking-service/internal/service/reports/models"
)

type ReportService interface {
	Summary(ctx context.Context, req models.ReportRequest) (*models.SummaryResponse, error)
	ExportCSV(ctx context.Context, req models.ReportRequest, w io.Writer) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
