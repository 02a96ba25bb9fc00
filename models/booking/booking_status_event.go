package booking

import (
	"time"
)

// BookingStatusEvent is one row of a booking's append-only status
// history, written in the same transaction as the status change itself.
type BookingStatusEvent struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	BookingID uint    `gorm:"not null;index" json:"booking_id"`
	Booking   Booking `gorm:"foreignKey:BookingID" json:"booking"`

	Status    BookingStatus `gorm:"type:varchar(20);not null" json:"status"`
	ActorID   uint          `gorm:"not null" json:"actor_id"`
	ActorRole string        `gorm:"type:varchar(20);not null" json:"actor_role"`
	CreatedAt time.Time     `gorm:"autoCreateTime" json:"created_at"`
}

// TableName sets the table name for the BookingStatusEvent model
func (BookingStatusEvent) TableName() string {
	return "booking_status_events"
}
