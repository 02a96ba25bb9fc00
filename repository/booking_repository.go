package repository

import (
	"errors"
	"time"

	"coolie-booking/domain"
	bookingModel "coolie-booking/models/booking"

	"gorm.io/gorm"
)

// BookingRepository persists bookings and their status history. Every
// status change is a conditional update on the expected prior status,
// so racing transitions against the same booking serialize in the
// database and exactly one wins.
type BookingRepository struct {
	DB *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{DB: db}
}

// Create writes the booking and its initial status-history row in one
// transaction.
func (r *BookingRepository) Create(b *bookingModel.Booking, actorID uint, actorRole string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(b).Error; err != nil {
			return err
		}
		ev := bookingModel.BookingStatusEvent{
			BookingID: b.ID,
			Status:    b.Status,
			ActorID:   actorID,
			ActorRole: actorRole,
		}
		return tx.Create(&ev).Error
	})
}

func (r *BookingRepository) FindByID(id uint) (*bookingModel.Booking, error) {
	var b bookingModel.Booking
	err := r.DB.Preload("User").Preload("Coolie").Preload("Coolie.User").First(&b, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "booking"}
		}
		return nil, err
	}
	return &b, nil
}

// Transition moves the booking from -> to, conditioned on the status
// still being from. Returns false without error when zero rows matched
// because a concurrent transition got there first; the booking row
// still existing is what distinguishes that from NotFound.
func (r *BookingRepository) Transition(id uint, from, to bookingModel.BookingStatus, completedAt *time.Time, actorID uint, actorRole string) (bool, error) {
	applied := false
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{"status": to}
		if completedAt != nil {
			updates["completed_at"] = *completedAt
		}

		res := tx.Model(&bookingModel.Booking{}).
			Where("id = ? AND status = ?", id, from).
			Updates(updates)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			var exists bookingModel.Booking
			if err := tx.Select("id").First(&exists, id).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.NotFoundError{Resource: "booking"}
				}
				return err
			}
			return nil
		}

		applied = true
		ev := bookingModel.BookingStatusEvent{
			BookingID: id,
			Status:    to,
			ActorID:   actorID,
			ActorRole: actorRole,
		}
		return tx.Create(&ev).Error
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

// AttachRating stores the display copy of a rating on the booking.
func (r *BookingRepository) AttachRating(id uint, summary bookingModel.RatingSummary) error {
	res := r.DB.Model(&bookingModel.Booking{}).Where("id = ?", id).Update("rating", summary)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "booking"}
	}
	return nil
}

// ListFilter scopes booking listings by caller role.
type ListFilter struct {
	UserID   *uint
	CoolieID *uint
	Statuses []bookingModel.BookingStatus
	Page     int
	Limit    int
}

// List returns bookings newest first, with total count for pagination.
func (r *BookingRepository) List(f ListFilter) ([]bookingModel.Booking, int64, error) {
	q := r.DB.Model(&bookingModel.Booking{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.CoolieID != nil {
		q = q.Where("coolie_id = ?", *f.CoolieID)
	}
	if len(f.Statuses) > 0 {
		q = q.Where("status IN ?", f.Statuses)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	page := f.Page
	if page < 1 {
		page = 1
	}
	limit := f.Limit
	if limit < 1 {
		limit = 10
	}

	var bookings []bookingModel.Booking
	err := q.Preload("User").Preload("Coolie").Preload("Coolie.User").
		Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

// StatusHistory returns a booking's append-only transition log.
func (r *BookingRepository) StatusHistory(id uint) ([]bookingModel.BookingStatusEvent, error) {
	var events []bookingModel.BookingStatusEvent
	err := r.DB.Where("booking_id = ?", id).Order("created_at ASC, id ASC").Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

// Dashboard counters.

func (r *BookingRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&bookingModel.Booking{}).Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountByStatus(status bookingModel.BookingStatus) (int64, error) {
	var n int64
	err := r.DB.Model(&bookingModel.Booking{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (r *BookingRepository) CountCreatedSince(t time.Time) (int64, error) {
	var n int64
	err := r.DB.Model(&bookingModel.Booking{}).Where("created_at >= ?", t).Count(&n).Error
	return n, err
}

// Recent returns the latest bookings for the admin dashboard.
func (r *BookingRepository) Recent(limit int) ([]bookingModel.Booking, error) {
	var bookings []bookingModel.Booking
	err := r.DB.Preload("User").Preload("Coolie").Preload("Coolie.User").
		Order("created_at DESC").
		Limit(limit).
		Find(&bookings).Error
	if err != nil {
		return nil, err
	}
	return bookings, nil
}
