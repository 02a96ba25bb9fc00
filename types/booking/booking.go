package booking

import (
	"time"

	"coolie-booking/domain"
	bookingModel "coolie-booking/models/booking"
)

// CreateRequest is the payload for creating a booking. CoolieID is
// optional; when absent the matching engine picks the best-rated
// eligible coolie.
type CreateRequest struct {
	Station            string    `json:"station" validate:"required,min=1,max=255"`
	PlatformNumber     int       `json:"platform_number" validate:"required,min=1"`
	TrainNumber        string    `json:"train_number" validate:"required,min=1,max=50"`
	SeatNumber         string    `json:"seat_number" validate:"required,min=1,max=50"`
	ServiceAt          time.Time `json:"service_at" validate:"required"`
	LuggageCount       int       `json:"luggage_count" validate:"required,min=1"`
	LuggageWeight      float64   `json:"luggage_weight" validate:"required,gt=0"`
	LuggageDescription string    `json:"luggage_description" validate:"omitempty"`
	CoolieID           *uint     `json:"coolie_id,omitempty"`
	PaymentMethod      string    `json:"payment_method" validate:"omitempty,oneof=cash online"`
	Notes              string    `json:"notes" validate:"omitempty"`
}

// Validate checks the journey and luggage fields. The fare calculator
// separately rejects non-positive weights; this catches everything else
// before any store is touched.
func (r CreateRequest) Validate() error {
	if r.Station == "" {
		return domain.ValidationError{Field: "station", Msg: "station is required"}
	}
	if r.PlatformNumber <= 0 {
		return domain.ValidationError{Field: "platform_number", Msg: "platform number is required"}
	}
	if r.TrainNumber == "" {
		return domain.ValidationError{Field: "train_number", Msg: "train number is required"}
	}
	if r.SeatNumber == "" {
		return domain.ValidationError{Field: "seat_number", Msg: "seat number is required"}
	}
	if r.ServiceAt.IsZero() {
		return domain.ValidationError{Field: "service_at", Msg: "service time is required"}
	}
	if r.LuggageCount < 1 {
		return domain.ValidationError{Field: "luggage_count", Msg: "at least one luggage item is required"}
	}
	if r.PaymentMethod != "" && !bookingModel.ValidPaymentMethod(r.PaymentMethod) {
		return domain.ValidationError{Field: "payment_method", Msg: "payment method must be cash or online"}
	}
	return nil
}

// UpdateStatusRequest drives a lifecycle transition.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// RateRequest rates a completed booking.
type RateRequest struct {
	Score   int    `json:"score" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"omitempty"`
}
