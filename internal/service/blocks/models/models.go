package models

import (
	"time"

	"github.com/m04kA/salon-booking-service/internal/domain"
)

// CreateBlockRequest запрос на блокировку времени
type CreateBlockRequest struct {
	Date      string `json:"date"`      // "2025-10-15"
	StartTime string `json:"startTime"` // "12:00"
	EndTime   string `json:"endTime"`   // "13:00"
	ServiceID *int64 `json:"serviceId,omitempty"`
	Reason    string `json:"reason"`
}

// BlockResponse блокировка
type BlockResponse struct {
	ID        int64     `json:"id"`
	Date      string    `json:"date"`
	StartTime string    `json:"startTime"`
	EndTime   string    `json:"endTime"`
	ServiceID *int64    `json:"serviceId,omitempty"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"createdAt"`
}

// OverlappingBooking бронирование, попавшее под новую блокировку
// Бронирование не отменяется автоматически, администратор решает сам
type OverlappingBooking struct {
	ID           int64  `json:"id"`
	CustomerName string `json:"customerName"`
	ServiceName  string `json:"serviceName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
	Status       string `json:"status"`
}

// CreateBlockResponse созданная блокировка и пересекающиеся бронирования
type CreateBlockResponse struct {
	Block               BlockResponse        `json:"block"`
	OverlappingBookings []OverlappingBooking `json:"overlappingBookings"`
}

// BlockListResponse список блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.BlockedSlot) *BlockResponse {
	return &BlockResponse{
		ID:        b.ID,
		Date:      b.Date.Format(domain.DateFormat),
		StartTime: b.StartTime.String(),
		EndTime:   b.EndTime.String(),
		ServiceID: b.ServiceID,
		Reason:    b.Reason,
		CreatedAt: b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список блокировок
func FromDomainBlockList(blocks []*domain.BlockedSlot) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(blocks))}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(b))
	}
	return resp
}
