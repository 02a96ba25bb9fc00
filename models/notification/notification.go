package notification

import (
	"time"

	"coolie-booking/models/user"
)

// Notification is a persisted message addressed to one user. The
// booking service only emits these; delivery to a device or inbox view
// is the reading client's concern.
type Notification struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`

	RecipientID uint      `gorm:"not null;index" json:"recipient_id"`
	Recipient   user.User `gorm:"foreignKey:RecipientID" json:"recipient"`

	SenderID *uint `gorm:"index" json:"sender_id,omitempty"`

	Type    string `gorm:"type:varchar(30);not null" json:"type"`
	Title   string `gorm:"type:varchar(255);not null" json:"title"`
	Message string `gorm:"type:text;not null" json:"message"`

	RelatedBookingID *uint `gorm:"index" json:"related_booking_id,omitempty"`

	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
