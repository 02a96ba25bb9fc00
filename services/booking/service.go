package booking

import (
	"fmt"
	"time"

	"coolie-booking/constants"
	"coolie-booking/domain"
	"coolie-booking/logger"
	bookingModel "coolie-booking/models/booking"
	coolieModel "coolie-booking/models/coolie"
	"coolie-booking/services/fare"
	"coolie-booking/services/matching"
	"coolie-booking/services/notification"
	bookingTypes "coolie-booking/types/booking"

	"github.com/google/uuid"
	"github.com/jinzhu/now"
)

// Actor is the already-authenticated caller of an operation, as
// supplied by the auth middleware. The service trusts it and never
// re-derives identity.
type Actor struct {
	UserID uint
	Role   string
}

// BookingStore is the persistence surface for bookings. Transition
// must be a conditional write on the expected prior status and report
// whether any row matched, so racing transitions serialize at the
// store.
type BookingStore interface {
	Create(b *bookingModel.Booking, actorID uint, actorRole string) error
	FindByID(id uint) (*bookingModel.Booking, error)
	Transition(id uint, from, to bookingModel.BookingStatus, completedAt *time.Time, actorID uint, actorRole string) (bool, error)
	AttachRating(id uint, summary bookingModel.RatingSummary) error
}

// CoolieStore is the persistence surface for coolies. Hold must be a
// compare-and-set that only succeeds when the coolie is currently
// available.
type CoolieStore interface {
	FindByID(id uint) (*coolieModel.Coolie, error)
	Hold(id uint) (bool, error)
	Release(id uint) error
	AddRating(id uint, raterID uint, score int, comment string) (*coolieModel.Coolie, error)
}

// Service is the booking lifecycle state machine. All status mutation
// goes through here; controllers never write booking or availability
// state directly.
type Service struct {
	bookings BookingStore
	coolies  CoolieStore
	matcher  *matching.Engine
	events   notification.Publisher
}

func NewService(bookings BookingStore, coolies CoolieStore, matcher *matching.Engine, events notification.Publisher) *Service {
	return &Service{
		bookings: bookings,
		coolies:  coolies,
		matcher:  matcher,
		events:   events,
	}
}

// Create validates the request, matches a coolie, computes the fare and
// persists a pending booking. The matched coolie is claimed with a
// conditional availability flip before the booking row is written, so
// two concurrent requests can never both hold the same coolie: the
// loser falls through to the next candidate, or fails when none remain.
func (s *Service) Create(actor Actor, req bookingTypes.CreateRequest) (*bookingModel.Booking, error) {
	if actor.Role != constants.RolePassenger {
		return nil, domain.UnauthorizedError{Msg: "only passengers can create bookings"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	if req.ServiceAt.Before(now.BeginningOfDay()) {
		return nil, domain.ValidationError{Field: "service_at", Msg: "service time cannot be in the past"}
	}

	amount, err := fare.Compute(req.LuggageWeight)
	if err != nil {
		return nil, err
	}

	candidates, err := s.matcher.Match(req.Station, req.PlatformNumber, req.CoolieID)
	if err != nil {
		return nil, err
	}

	matchedID, err := s.holdFirst(candidates, req)
	if err != nil {
		return nil, err
	}

	paymentMethod := req.PaymentMethod
	if paymentMethod == "" {
		paymentMethod = bookingModel.PaymentMethodCash
	}
	description := req.LuggageDescription
	if description == "" {
		description = "General luggage"
	}

	b := &bookingModel.Booking{
		Reference:          uuid.NewString(),
		UserID:             actor.UserID,
		CoolieID:           matchedID,
		Station:            req.Station,
		PlatformNumber:     req.PlatformNumber,
		TrainNumber:        req.TrainNumber,
		SeatNumber:         req.SeatNumber,
		ServiceAt:          req.ServiceAt,
		LuggageCount:       req.LuggageCount,
		LuggageWeight:      req.LuggageWeight,
		LuggageDescription: description,
		Fare:               amount,
		Status:             bookingModel.StatusPending,
		PaymentStatus:      bookingModel.PaymentPending,
		PaymentMethod:      paymentMethod,
		Notes:              req.Notes,
	}

	if err := s.bookings.Create(b, actor.UserID, actor.Role); err != nil {
		// Hand the coolie back; the booking never existed.
		if relErr := s.coolies.Release(matchedID); relErr != nil {
			logger.Error(fmt.Sprintf("Failed to release coolie %d after booking create failure", matchedID), relErr)
		}
		return nil, err
	}

	if c, err := s.coolies.FindByID(matchedID); err == nil {
		senderID := actor.UserID
		s.events.Publish(notification.Event{
			Type:             notification.TypeBooking,
			RecipientUserID:  c.UserID,
			SenderUserID:     &senderID,
			Title:            "New Booking",
			Message:          fmt.Sprintf("You have a new booking at %s, Platform %d", req.Station, req.PlatformNumber),
			RelatedBookingID: &b.ID,
		})
	} else {
		logger.Error(fmt.Sprintf("Failed to load coolie %d for booking notification", matchedID), err)
	}

	return b, nil
}

// holdFirst claims the first candidate whose availability flip
// succeeds. For an explicit coolie the single candidate losing its flip
// means another booking won the race after the eligibility check
// passed.
func (s *Service) holdFirst(candidates []uint, req bookingTypes.CreateRequest) (uint, error) {
	for _, id := range candidates {
		held, err := s.coolies.Hold(id)
		if err != nil {
			return 0, err
		}
		if held {
			return id, nil
		}
	}
	if req.CoolieID != nil {
		return 0, domain.ConcurrencyConflictError{Msg: "selected coolie was claimed by another booking"}
	}
	return 0, domain.NoCoolieAvailableError{Station: req.Station, Platform: req.PlatformNumber}
}

// authRule says who may drive a booking into a status. Admins are
// always allowed; the flags add the owning passenger or the assigned
// coolie.
type authRule struct {
	passengerOwner bool
	coolieAssignee bool
}

var transitionAuthority = map[bookingModel.BookingStatus]authRule{
	bookingModel.StatusCancelled: {passengerOwner: true},
	bookingModel.StatusConfirmed: {coolieAssignee: true},
	bookingModel.StatusRejected:  {coolieAssignee: true},
	bookingModel.StatusCompleted: {coolieAssignee: true},
}

// Transition moves a booking to next, enforcing the authorization table
// and the legal edge set. The store write is conditioned on the status
// read here; if a concurrent transition got there first, zero rows
// match and the caller gets IllegalTransition.
func (s *Service) Transition(bookingID uint, actor Actor, next bookingModel.BookingStatus) (*bookingModel.Booking, error) {
	if !next.IsValid() || next == bookingModel.StatusPending {
		return nil, domain.ValidationError{Field: "status", Msg: fmt.Sprintf("%q is not a valid target status", next.String())}
	}

	b, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}

	assignee, err := s.coolies.FindByID(b.CoolieID)
	if err != nil {
		return nil, err
	}

	if err := authorizeTransition(b, assignee, actor, next); err != nil {
		return nil, err
	}
	if !b.Status.CanTransitionTo(next) {
		return nil, domain.IllegalTransitionError{From: b.Status.String(), To: next.String()}
	}

	var completedAt *time.Time
	if next == bookingModel.StatusCompleted {
		t := time.Now()
		completedAt = &t
	}

	applied, err := s.bookings.Transition(b.ID, b.Status, next, completedAt, actor.UserID, actor.Role)
	if err != nil {
		return nil, err
	}
	if !applied {
		// A concurrent transition won; by now the expected prior
		// status no longer holds.
		return nil, domain.IllegalTransitionError{From: b.Status.String(), To: next.String()}
	}

	if next.ReleasesCoolie() {
		if err := s.coolies.Release(b.CoolieID); err != nil {
			logger.Error(fmt.Sprintf("Failed to release coolie %d after booking %d reached %s", b.CoolieID, b.ID, next), err)
		}
	}

	s.notifyTransition(b, assignee, actor, next)

	return s.bookings.FindByID(b.ID)
}

func authorizeTransition(b *bookingModel.Booking, assignee *coolieModel.Coolie, actor Actor, next bookingModel.BookingStatus) error {
	if actor.Role == constants.RoleAdmin {
		return nil
	}
	rule := transitionAuthority[next]
	if rule.passengerOwner && actor.Role == constants.RolePassenger && actor.UserID == b.UserID {
		return nil
	}
	if rule.coolieAssignee && actor.Role == constants.RoleCoolie && actor.UserID == assignee.UserID {
		return nil
	}
	return domain.UnauthorizedError{Msg: fmt.Sprintf("not authorized to move this booking to %s", next.String())}
}

func (s *Service) notifyTransition(b *bookingModel.Booking, assignee *coolieModel.Coolie, actor Actor, next bookingModel.BookingStatus) {
	senderID := actor.UserID
	ev := notification.Event{
		SenderUserID:     &senderID,
		RelatedBookingID: &b.ID,
	}

	switch next {
	case bookingModel.StatusConfirmed:
		ev.Type = notification.TypeBooking
		ev.RecipientUserID = b.UserID
		ev.Title = "Booking Confirmed"
		ev.Message = fmt.Sprintf("Your booking #%d has been confirmed", b.ID)
	case bookingModel.StatusCompleted:
		ev.Type = notification.TypeCompletion
		ev.RecipientUserID = b.UserID
		ev.Title = "Booking Completed"
		ev.Message = fmt.Sprintf("Your booking #%d has been marked as completed", b.ID)
	case bookingModel.StatusRejected:
		ev.Type = notification.TypeCancellation
		ev.RecipientUserID = b.UserID
		ev.Title = "Booking Rejected"
		ev.Message = fmt.Sprintf("Your booking #%d was rejected by the coolie", b.ID)
	case bookingModel.StatusCancelled:
		ev.Type = notification.TypeCancellation
		ev.RecipientUserID = assignee.UserID
		ev.Title = "Booking Cancelled"
		ev.Message = fmt.Sprintf("Booking #%d has been cancelled", b.ID)
	default:
		return
	}

	s.events.Publish(ev)
}

// Rate records the passenger's rating for a completed booking: the
// coolie's collection is updated through the aggregator (replacing any
// earlier rating by the same passenger) and a summary is kept on the
// booking for display.
func (s *Service) Rate(bookingID uint, actor Actor, score int, comment string) (*bookingModel.Booking, error) {
	b, err := s.bookings.FindByID(bookingID)
	if err != nil {
		return nil, err
	}
	if actor.UserID != b.UserID {
		return nil, domain.UnauthorizedError{Msg: "only the booking passenger can rate it"}
	}
	if b.Status != bookingModel.StatusCompleted {
		return nil, domain.ValidationError{Field: "status", Msg: "can only rate completed bookings"}
	}
	if score < 1 || score > 5 {
		return nil, domain.ValidationError{Field: "score", Msg: "rating must be between 1 and 5"}
	}

	if _, err := s.coolies.AddRating(b.CoolieID, actor.UserID, score, comment); err != nil {
		return nil, err
	}

	summary := bookingModel.RatingSummary{
		RaterID: actor.UserID,
		Score:   score,
		Comment: comment,
	}
	if err := s.bookings.AttachRating(b.ID, summary); err != nil {
		return nil, err
	}

	b.Rating = &summary
	return b, nil
}
