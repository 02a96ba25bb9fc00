package booking

// BookingStatus is the closed set of booking lifecycle states.
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
	StatusCancelled BookingStatus = "cancelled"
	StatusCompleted BookingStatus = "completed"
)

// PaymentStatus tracks payment independently of the booking lifecycle.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
)

func (bs BookingStatus) String() string {
	return string(bs)
}

func (bs BookingStatus) IsValid() bool {
	switch bs {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the status has no outbound transitions.
func (bs BookingStatus) IsTerminal() bool {
	switch bs {
	case StatusCompleted, StatusCancelled, StatusRejected:
		return true
	default:
		return false
	}
}

// ReleasesCoolie reports whether entering this status hands the
// assigned coolie back to the available pool.
func (bs BookingStatus) ReleasesCoolie() bool {
	return bs.IsTerminal()
}

// allowedTransitions is the full edge set of the lifecycle state
// machine. Anything not listed is illegal.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	StatusPending:   {StatusConfirmed, StatusRejected, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransitionTo reports whether bs -> next is a legal edge.
func (bs BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, s := range allowedTransitions[bs] {
		if s == next {
			return true
		}
	}
	return false
}

func (ps PaymentStatus) String() string {
	return string(ps)
}

func (ps PaymentStatus) IsValid() bool {
	switch ps {
	case PaymentPending, PaymentCompleted, PaymentFailed:
		return true
	default:
		return false
	}
}

// AllBookingStatuses returns every valid booking status.
func AllBookingStatuses() []BookingStatus {
	return []BookingStatus{
		StatusPending,
		StatusConfirmed,
		StatusRejected,
		StatusCancelled,
		StatusCompleted,
	}
}
