package booking

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"coolie-booking/models/coolie"
	"coolie-booking/models/user"
)

// Booking represents one luggage-assistance engagement between a
// passenger and a coolie. Journey fields, fare and both identities are
// immutable after creation; only the status (and its direct
// consequences: completed-at, rating summary) changes, and only through
// the booking service's transition rules.
type Booking struct {
	ID        uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Reference string `gorm:"type:varchar(64);not null;unique" json:"reference"`

	UserID uint      `gorm:"not null;index" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	CoolieID uint          `gorm:"not null;index" json:"coolie_id"`
	Coolie   coolie.Coolie `gorm:"foreignKey:CoolieID" json:"coolie"`

	Station        string    `gorm:"type:varchar(255);not null" json:"station"`
	PlatformNumber int       `gorm:"not null" json:"platform_number"`
	TrainNumber    string    `gorm:"type:varchar(50);not null" json:"train_number"`
	SeatNumber     string    `gorm:"type:varchar(50);not null" json:"seat_number"`
	ServiceAt      time.Time `gorm:"not null" json:"service_at"`

	LuggageCount       int     `gorm:"not null;default:1" json:"luggage_count"`
	LuggageWeight      float64 `gorm:"not null" json:"luggage_weight"`
	LuggageDescription string  `gorm:"type:text;default:'General luggage'" json:"luggage_description"`

	// Recomputed server-side from luggage weight; never taken from
	// client input.
	Fare float64 `gorm:"not null" json:"fare"`

	Status        BookingStatus `gorm:"type:varchar(20);not null;default:pending" json:"status"`
	PaymentStatus PaymentStatus `gorm:"type:varchar(20);not null;default:pending" json:"payment_status"`
	PaymentMethod string        `gorm:"type:varchar(20);not null;default:cash" json:"payment_method"`
	Notes         string        `gorm:"type:text" json:"notes,omitempty"`

	Rating *RatingSummary `gorm:"type:jsonb" json:"rating,omitempty"`

	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"created_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// RatingSummary is the copy of the passenger's rating kept on the
// booking for display; the authoritative collection lives on the coolie.
type RatingSummary struct {
	RaterID uint   `json:"rater_id"`
	Score   int    `json:"score"`
	Comment string `json:"comment,omitempty"`
}

func (rs *RatingSummary) Scan(value interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, rs)
	case string:
		return json.Unmarshal([]byte(v), rs)
	default:
		return errors.New("unsupported column type for rating summary")
	}
}

func (rs RatingSummary) Value() (driver.Value, error) {
	return json.Marshal(rs)
}

const (
	PaymentMethodCash   = "cash"
	PaymentMethodOnline = "online"
)

// ValidPaymentMethod reports whether s is an accepted payment method.
func ValidPaymentMethod(s string) bool {
	return s == PaymentMethodCash || s == PaymentMethodOnline
}
