package domain

import (
	"time"

	"github.com/m04kA/salon-booking-service/pkg/types"
)

// BlockedSlot administrator-declared interval during which nothing can be booked
// ServiceID == nil blocks the whole salon
type BlockedSlot struct {
	ID        int64
	Date      time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	ServiceID *int64
	Reason    string
	CreatedAt time.Time
}

// Interval returns [StartTime, EndTime)
func (b *BlockedSlot) Interval() TimeInterval {
	return TimeInterval{Start: b.StartTime, End: b.EndTime}
}

// AppliesTo returns true if the block obstructs bookings of serviceID
func (b *BlockedSlot) AppliesTo(serviceID int64) bool {
	return b.ServiceID == nil || *b.ServiceID == serviceID
}
