package booking

import (
	"sort"
	"strings"
	"testing"
	"time"

	"coolie-booking/constants"
	"coolie-booking/domain"
	bookingModel "coolie-booking/models/booking"
	coolieModel "coolie-booking/models/coolie"
	"coolie-booking/services/matching"
	"coolie-booking/services/notification"
	"coolie-booking/services/rating"
	bookingTypes "coolie-booking/types/booking"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCoolieStore backs both the CoolieStore and the matching Directory
// with a map. With staleReads set, reads report every coolie as
// available regardless of holds, which simulates a matching decision
// made on data another booking has already invalidated.
type fakeCoolieStore struct {
	coolies      map[uint]*coolieModel.Coolie
	staleReads   bool
	holdAttempts []uint
}

func newFakeCoolieStore(coolies ...*coolieModel.Coolie) *fakeCoolieStore {
	s := &fakeCoolieStore{coolies: map[uint]*coolieModel.Coolie{}}
	for _, c := range coolies {
		s.coolies[c.ID] = c
	}
	return s
}

func (s *fakeCoolieStore) FindByID(id uint) (*coolieModel.Coolie, error) {
	c, ok := s.coolies[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "coolie"}
	}
	cp := *c
	if s.staleReads {
		cp.IsAvailable = true
	}
	return &cp, nil
}

func (s *fakeCoolieStore) FindEligible(station string, platform int) ([]coolieModel.Coolie, error) {
	var out []coolieModel.Coolie
	for _, c := range s.coolies {
		available := c.IsAvailable || s.staleReads
		if c.IsApproved && available && strings.EqualFold(c.Station, station) && c.ServesPlatform(platform) {
			out = append(out, *c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].AverageRating != out[j].AverageRating {
			return out[i].AverageRating > out[j].AverageRating
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *fakeCoolieStore) Hold(id uint) (bool, error) {
	s.holdAttempts = append(s.holdAttempts, id)
	c, ok := s.coolies[id]
	if !ok {
		return false, domain.NotFoundError{Resource: "coolie"}
	}
	if !c.IsAvailable {
		return false, nil
	}
	c.IsAvailable = false
	return true, nil
}

func (s *fakeCoolieStore) Release(id uint) error {
	c, ok := s.coolies[id]
	if !ok {
		return domain.NotFoundError{Resource: "coolie"}
	}
	c.IsAvailable = true
	return nil
}

func (s *fakeCoolieStore) AddRating(id uint, raterID uint, score int, comment string) (*coolieModel.Coolie, error) {
	c, ok := s.coolies[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "coolie"}
	}
	updated, avg, err := rating.Apply(c.Ratings, raterID, score, comment, time.Now())
	if err != nil {
		return nil, err
	}
	c.Ratings = updated
	c.AverageRating = avg
	return c, nil
}

type fakeBookingStore struct {
	bookings       map[uint]*bookingModel.Booking
	nextID         uint
	events         []bookingModel.BookingStatusEvent
	createErr      error
	denyTransition bool
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{bookings: map[uint]*bookingModel.Booking{}}
}

func (s *fakeBookingStore) Create(b *bookingModel.Booking, actorID uint, actorRole string) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.nextID++
	b.ID = s.nextID
	b.CreatedAt = time.Now()
	cp := *b
	s.bookings[b.ID] = &cp
	s.events = append(s.events, bookingModel.BookingStatusEvent{
		BookingID: b.ID,
		Status:    b.Status,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	return nil
}

func (s *fakeBookingStore) FindByID(id uint) (*bookingModel.Booking, error) {
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "booking"}
	}
	cp := *b
	return &cp, nil
}

func (s *fakeBookingStore) Transition(id uint, from, to bookingModel.BookingStatus, completedAt *time.Time, actorID uint, actorRole string) (bool, error) {
	b, ok := s.bookings[id]
	if !ok {
		return false, domain.NotFoundError{Resource: "booking"}
	}
	if s.denyTransition || b.Status != from {
		return false, nil
	}
	b.Status = to
	b.CompletedAt = completedAt
	s.events = append(s.events, bookingModel.BookingStatusEvent{
		BookingID: id,
		Status:    to,
		ActorID:   actorID,
		ActorRole: actorRole,
	})
	return true, nil
}

func (s *fakeBookingStore) AttachRating(id uint, summary bookingModel.RatingSummary) error {
	b, ok := s.bookings[id]
	if !ok {
		return domain.NotFoundError{Resource: "booking"}
	}
	b.Rating = &summary
	return nil
}

type capturePublisher struct {
	events []notification.Event
}

func (p *capturePublisher) Publish(ev notification.Event) {
	p.events = append(p.events, ev)
}

func (p *capturePublisher) last() notification.Event {
	return p.events[len(p.events)-1]
}

func availableCoolie(id uint, avgRating float64) *coolieModel.Coolie {
	return &coolieModel.Coolie{
		ID:            id,
		UserID:        id + 100,
		Station:       "Mumbai Central",
		Platforms:     coolieModel.PlatformList{1, 2, 3},
		IsApproved:    true,
		IsAvailable:   true,
		AverageRating: avgRating,
		Ratings:       coolieModel.RatingList{},
	}
}

func validRequest() bookingTypes.CreateRequest {
	return bookingTypes.CreateRequest{
		Station:        "Mumbai Central",
		PlatformNumber: 2,
		TrainNumber:    "12951",
		SeatNumber:     "B2-45",
		ServiceAt:      time.Now().Add(2 * time.Hour),
		LuggageCount:   3,
		LuggageWeight:  25,
	}
}

func newHarness(coolies ...*coolieModel.Coolie) (*Service, *fakeBookingStore, *fakeCoolieStore, *capturePublisher) {
	bookings := newFakeBookingStore()
	store := newFakeCoolieStore(coolies...)
	events := &capturePublisher{}
	svc := NewService(bookings, store, matching.NewEngine(store), events)
	return svc, bookings, store, events
}

var passenger = Actor{UserID: 1, Role: constants.RolePassenger}

func actorFor(c *coolieModel.Coolie) Actor {
	return Actor{UserID: c.UserID, Role: constants.RoleCoolie}
}

func TestCreatePicksBestRatedCoolieAndComputesFare(t *testing.T) {
	lower := availableCoolie(1, 3.2)
	higher := availableCoolie(2, 4.7)
	svc, bookings, store, events := newHarness(lower, higher)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	assert.Equal(t, higher.ID, b.CoolieID)
	assert.Equal(t, 110.0, b.Fare, "25kg is one slab over the 20kg base")
	assert.Equal(t, bookingModel.StatusPending, b.Status)
	assert.Equal(t, bookingModel.PaymentPending, b.PaymentStatus)
	assert.Equal(t, bookingModel.PaymentMethodCash, b.PaymentMethod)
	assert.Equal(t, "General luggage", b.LuggageDescription)
	assert.NotEmpty(t, b.Reference)

	assert.False(t, store.coolies[higher.ID].IsAvailable, "matched coolie must be held")
	assert.True(t, store.coolies[lower.ID].IsAvailable)

	require.Len(t, bookings.events, 1)
	assert.Equal(t, bookingModel.StatusPending, bookings.events[0].Status)

	require.Len(t, events.events, 1)
	ev := events.last()
	assert.Equal(t, notification.TypeBooking, ev.Type)
	assert.Equal(t, higher.UserID, ev.RecipientUserID)
	require.NotNil(t, ev.RelatedBookingID)
	assert.Equal(t, b.ID, *ev.RelatedBookingID)
}

func TestCreateRequiresPassengerRole(t *testing.T) {
	svc, _, _, _ := newHarness(availableCoolie(1, 4.0))

	for _, role := range []string{constants.RoleCoolie, constants.RoleAdmin} {
		_, err := svc.Create(Actor{UserID: 9, Role: role}, validRequest())
		require.Error(t, err)
		assert.True(t, domain.IsUnauthorized(err))
	}
}

func TestCreateRejectsPastServiceDate(t *testing.T) {
	svc, _, store, _ := newHarness(availableCoolie(1, 4.0))

	req := validRequest()
	req.ServiceAt = time.Now().AddDate(0, 0, -1)

	_, err := svc.Create(passenger, req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
	assert.Empty(t, store.holdAttempts, "no coolie may be held for an invalid request")
}

func TestCreateRejectsInvalidRequest(t *testing.T) {
	svc, _, _, _ := newHarness(availableCoolie(1, 4.0))

	req := validRequest()
	req.Station = ""

	_, err := svc.Create(passenger, req)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestCreateWithExplicitCoolie(t *testing.T) {
	chosen := availableCoolie(1, 2.0)
	better := availableCoolie(2, 5.0)
	svc, _, store, _ := newHarness(chosen, better)

	req := validRequest()
	req.CoolieID = &chosen.ID

	b, err := svc.Create(passenger, req)
	require.NoError(t, err)

	assert.Equal(t, chosen.ID, b.CoolieID, "explicit selection must override rating order")
	assert.False(t, store.coolies[chosen.ID].IsAvailable)
	assert.True(t, store.coolies[better.ID].IsAvailable)
}

func TestCreateExplicitCoolieLosesHoldRace(t *testing.T) {
	c := availableCoolie(1, 4.0)
	c.IsAvailable = false
	svc, _, store, _ := newHarness(c)
	store.staleReads = true

	req := validRequest()
	req.CoolieID = &c.ID

	_, err := svc.Create(passenger, req)
	require.Error(t, err)
	assert.True(t, domain.IsConcurrencyConflict(err))
}

func TestCreateAutoMatchExhaustedByRaces(t *testing.T) {
	first := availableCoolie(1, 4.5)
	first.IsAvailable = false
	second := availableCoolie(2, 3.0)
	second.IsAvailable = false
	svc, _, store, _ := newHarness(first, second)
	store.staleReads = true

	_, err := svc.Create(passenger, validRequest())
	require.Error(t, err)
	assert.True(t, domain.IsNoCoolieAvailable(err))
	assert.Equal(t, []uint{1, 2}, store.holdAttempts, "every candidate gets one hold attempt, best-rated first")
}

func TestCreateNoCoolieAvailable(t *testing.T) {
	svc, _, _, _ := newHarness()

	_, err := svc.Create(passenger, validRequest())
	require.Error(t, err)
	assert.True(t, domain.IsNoCoolieAvailable(err))
}

func TestCreateFailureReleasesHeldCoolie(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, bookings, store, events := newHarness(c)
	bookings.createErr = domain.ConcurrencyConflictError{Msg: "insert failed"}

	_, err := svc.Create(passenger, validRequest())
	require.Error(t, err)

	assert.True(t, store.coolies[c.ID].IsAvailable, "hold must be undone when the booking row is not written")
	assert.Empty(t, events.events)
}

func confirmedBooking(t *testing.T, svc *Service, c *coolieModel.Coolie) *bookingModel.Booking {
	t.Helper()
	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)
	b, err = svc.Transition(b.ID, actorFor(c), bookingModel.StatusConfirmed)
	require.NoError(t, err)
	return b
}

func TestAssignedCoolieConfirms(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, _, events := newHarness(c)

	b := confirmedBooking(t, svc, c)

	assert.Equal(t, bookingModel.StatusConfirmed, b.Status)

	ev := events.last()
	assert.Equal(t, notification.TypeBooking, ev.Type)
	assert.Equal(t, passenger.UserID, ev.RecipientUserID)
	assert.Equal(t, "Booking Confirmed", ev.Title)
}

func TestOtherCoolieCannotConfirm(t *testing.T) {
	assigned := availableCoolie(1, 4.5)
	other := availableCoolie(2, 3.0)
	svc, _, _, _ := newHarness(assigned, other)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)
	require.Equal(t, assigned.ID, b.CoolieID)

	_, err = svc.Transition(b.ID, actorFor(other), bookingModel.StatusConfirmed)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestPassengerCannotConfirmOwnBooking(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, _, _ := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	_, err = svc.Transition(b.ID, passenger, bookingModel.StatusConfirmed)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestOwnerCancelReleasesCoolie(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, store, events := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)
	require.False(t, store.coolies[c.ID].IsAvailable)

	b, err = svc.Transition(b.ID, passenger, bookingModel.StatusCancelled)
	require.NoError(t, err)

	assert.Equal(t, bookingModel.StatusCancelled, b.Status)
	assert.True(t, store.coolies[c.ID].IsAvailable, "cancellation must hand the coolie back")

	ev := events.last()
	assert.Equal(t, notification.TypeCancellation, ev.Type)
	assert.Equal(t, c.UserID, ev.RecipientUserID)
}

func TestNonOwnerCannotCancel(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, _, _ := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	stranger := Actor{UserID: 99, Role: constants.RolePassenger}
	_, err = svc.Transition(b.ID, stranger, bookingModel.StatusCancelled)
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestCompleteRequiresConfirmedState(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, _, _ := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	_, err = svc.Transition(b.ID, actorFor(c), bookingModel.StatusCompleted)
	require.Error(t, err)
	assert.True(t, domain.IsIllegalTransition(err))
}

func TestCompleteStampsTimeAndReleasesCoolie(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, store, events := newHarness(c)

	b := confirmedBooking(t, svc, c)
	b, err := svc.Transition(b.ID, actorFor(c), bookingModel.StatusCompleted)
	require.NoError(t, err)

	assert.Equal(t, bookingModel.StatusCompleted, b.Status)
	require.NotNil(t, b.CompletedAt)
	assert.True(t, store.coolies[c.ID].IsAvailable)

	ev := events.last()
	assert.Equal(t, notification.TypeCompletion, ev.Type)
	assert.Equal(t, passenger.UserID, ev.RecipientUserID)
}

func TestRejectedBookingIsClosed(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, store, events := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	b, err = svc.Transition(b.ID, actorFor(c), bookingModel.StatusRejected)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusRejected, b.Status)
	assert.True(t, store.coolies[c.ID].IsAvailable)

	ev := events.last()
	assert.Equal(t, notification.TypeCancellation, ev.Type)
	assert.Equal(t, passenger.UserID, ev.RecipientUserID)

	// No edge leaves a terminal state, not even for an admin.
	admin := Actor{UserID: 50, Role: constants.RoleAdmin}
	_, err = svc.Transition(b.ID, admin, bookingModel.StatusConfirmed)
	require.Error(t, err)
	assert.True(t, domain.IsIllegalTransition(err))
}

func TestTransitionToPendingIsRejected(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, _, _ := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	_, err = svc.Transition(b.ID, passenger, bookingModel.StatusPending)
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))

	_, err = svc.Transition(b.ID, passenger, bookingModel.BookingStatus("shipped"))
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestAdminMayDriveAnyLegalTransition(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, _, _, _ := newHarness(c)

	b := confirmedBooking(t, svc, c)

	admin := Actor{UserID: 50, Role: constants.RoleAdmin}
	b, err := svc.Transition(b.ID, admin, bookingModel.StatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, bookingModel.StatusCancelled, b.Status)
}

func TestLostTransitionRace(t *testing.T) {
	c := availableCoolie(1, 4.0)
	svc, bookings, _, _ := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	bookings.denyTransition = true
	_, err = svc.Transition(b.ID, actorFor(c), bookingModel.StatusConfirmed)
	require.Error(t, err)
	assert.True(t, domain.IsIllegalTransition(err))
}

func completedBooking(t *testing.T, svc *Service, c *coolieModel.Coolie) *bookingModel.Booking {
	t.Helper()
	b := confirmedBooking(t, svc, c)
	b, err := svc.Transition(b.ID, actorFor(c), bookingModel.StatusCompleted)
	require.NoError(t, err)
	return b
}

func TestRateCompletedBooking(t *testing.T) {
	c := availableCoolie(1, 0)
	svc, _, store, _ := newHarness(c)

	b := completedBooking(t, svc, c)

	rated, err := svc.Rate(b.ID, passenger, 4, "handled everything with care")
	require.NoError(t, err)

	require.NotNil(t, rated.Rating)
	assert.Equal(t, 4, rated.Rating.Score)
	assert.Equal(t, passenger.UserID, rated.Rating.RaterID)

	require.Len(t, store.coolies[c.ID].Ratings, 1)
	assert.Equal(t, 4.0, store.coolies[c.ID].AverageRating)
}

func TestReRatingReplacesPreviousScore(t *testing.T) {
	c := availableCoolie(1, 0)
	svc, _, store, _ := newHarness(c)

	b := completedBooking(t, svc, c)

	_, err := svc.Rate(b.ID, passenger, 2, "luggage was scratched")
	require.NoError(t, err)
	_, err = svc.Rate(b.ID, passenger, 5, "resolved it, great service")
	require.NoError(t, err)

	require.Len(t, store.coolies[c.ID].Ratings, 1, "same passenger must not accumulate entries")
	assert.Equal(t, 5.0, store.coolies[c.ID].AverageRating)
}

func TestRateRequiresCompletion(t *testing.T) {
	c := availableCoolie(1, 0)
	svc, _, _, _ := newHarness(c)

	b, err := svc.Create(passenger, validRequest())
	require.NoError(t, err)

	_, err = svc.Rate(b.ID, passenger, 4, "")
	require.Error(t, err)
	assert.True(t, domain.IsValidation(err))
}

func TestOnlyOwnerMayRate(t *testing.T) {
	c := availableCoolie(1, 0)
	svc, _, _, _ := newHarness(c)

	b := completedBooking(t, svc, c)

	stranger := Actor{UserID: 99, Role: constants.RolePassenger}
	_, err := svc.Rate(b.ID, stranger, 4, "")
	require.Error(t, err)
	assert.True(t, domain.IsUnauthorized(err))
}

func TestRateScoreBounds(t *testing.T) {
	c := availableCoolie(1, 0)
	svc, _, _, _ := newHarness(c)

	b := completedBooking(t, svc, c)

	for _, score := range []int{0, 6, -3} {
		_, err := svc.Rate(b.ID, passenger, score, "")
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}
}
