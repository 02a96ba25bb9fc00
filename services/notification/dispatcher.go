package notification

import (
	"fmt"

	"coolie-booking/logger"
	notificationModel "coolie-booking/models/notification"

	"gorm.io/gorm"
)

// Event types stamped on notification rows.
const (
	TypeBooking      = "booking"
	TypeCancellation = "cancellation"
	TypeCompletion   = "booking_completed"
	TypeApproval     = "approval"
)

// Event is the payload the booking and admin flows emit. Delivery,
// formatting and retry are entirely this package's concern; emitters
// only address a recipient user.
type Event struct {
	Type             string
	RecipientUserID  uint
	SenderUserID     *uint
	Title            string
	Message          string
	RelatedBookingID *uint
}

// Publisher is the sink interface the core publishes through.
type Publisher interface {
	Publish(Event)
}

// Dispatcher persists events as notification rows from a background
// goroutine so publishing never blocks a request.
type Dispatcher struct {
	db      *gorm.DB
	channel chan Event
}

func NewDispatcher(db *gorm.DB) *Dispatcher {
	return &Dispatcher{
		db:      db,
		channel: make(chan Event, 100), // Buffered channel to hold pending events
	}
}

// Publish queues an event for delivery. When the buffer is full the
// event is dropped with a warning; notifications are best effort and
// must never fail the operation that raised them.
func (d *Dispatcher) Publish(ev Event) {
	select {
	case d.channel <- ev:
	default:
		logger.Warning(fmt.Sprintf("Notification buffer full, dropping %s event for user %d", ev.Type, ev.RecipientUserID))
	}
}

// ProcessEvents drains the queue into the notifications table. Run it
// on its own goroutine at startup.
func (d *Dispatcher) ProcessEvents() {
	logger.Info("Starting notification dispatcher...")

	for ev := range d.channel {
		row := notificationModel.Notification{
			RecipientID:      ev.RecipientUserID,
			SenderID:         ev.SenderUserID,
			Type:             ev.Type,
			Title:            ev.Title,
			Message:          ev.Message,
			RelatedBookingID: ev.RelatedBookingID,
		}

		if err := d.db.Create(&row).Error; err != nil {
			logger.Error("Failed to insert notification", err)
		}
	}
}
