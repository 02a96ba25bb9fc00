package repository

import (
	"errors"
	"fmt"
	"time"

	"coolie-booking/domain"
	coolieModel "coolie-booking/models/coolie"
	"coolie-booking/services/rating"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CoolieRepository is the porter directory: eligibility queries plus
// the availability flips the booking service relies on. Hold is the
// only write that races between requests and is a conditional update,
// never read-then-write, because several server instances may run
// against the same database.
type CoolieRepository struct {
	DB *gorm.DB
}

func NewCoolieRepository(db *gorm.DB) *CoolieRepository {
	return &CoolieRepository{DB: db}
}

func (r *CoolieRepository) FindByID(id uint) (*coolieModel.Coolie, error) {
	var c coolieModel.Coolie
	if err := r.DB.Preload("User").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "coolie"}
		}
		return nil, err
	}
	return &c, nil
}

// FindByUserID resolves the coolie profile owned by a user account.
func (r *CoolieRepository) FindByUserID(userID uint) (*coolieModel.Coolie, error) {
	var c coolieModel.Coolie
	if err := r.DB.Preload("User").Where("user_id = ?", userID).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.NotFoundError{Resource: "coolie profile"}
		}
		return nil, err
	}
	return &c, nil
}

// FindEligible returns approved, available coolies servicing the
// station (case-insensitive) and platform, best-rated first. Ties break
// on id, i.e. registration order.
func (r *CoolieRepository) FindEligible(station string, platform int) ([]coolieModel.Coolie, error) {
	var coolies []coolieModel.Coolie
	err := r.DB.Preload("User").
		Where("LOWER(station) = LOWER(?)", station).
		Where("platforms @> ?", fmt.Sprintf("[%d]", platform)).
		Where("is_approved = ? AND is_available = ?", true, true).
		Order("average_rating DESC, id ASC").
		Find(&coolies).Error
	if err != nil {
		return nil, err
	}
	return coolies, nil
}

// Hold flips the coolie unavailable, but only if it is available right
// now. Reports false when another booking already holds it; the
// affected-row count is the whole point of the query.
func (r *CoolieRepository) Hold(id uint) (bool, error) {
	res := r.DB.Model(&coolieModel.Coolie{}).
		Where("id = ? AND is_available = ?", id, true).
		Update("is_available", false)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

// Release hands the coolie back to the available pool.
func (r *CoolieRepository) Release(id uint) error {
	res := r.DB.Model(&coolieModel.Coolie{}).
		Where("id = ?", id).
		Update("is_available", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFoundError{Resource: "coolie"}
	}
	return nil
}

// SetAvailability is the coolie's own on/off-duty toggle, optionally
// updating the self-reported location.
func (r *CoolieRepository) SetAvailability(id uint, available bool, location *string) (*coolieModel.Coolie, error) {
	updates := map[string]interface{}{"is_available": available}
	if location != nil {
		updates["current_location"] = *location
	}
	res := r.DB.Model(&coolieModel.Coolie{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFoundError{Resource: "coolie"}
	}
	return r.FindByID(id)
}

// SetApproval records the admin's decision. Approval is a one-way gate
// in practice; rejection keeps the profile row for audit.
func (r *CoolieRepository) SetApproval(id uint, approved bool) (*coolieModel.Coolie, error) {
	res := r.DB.Model(&coolieModel.Coolie{}).Where("id = ?", id).Update("is_approved", approved)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFoundError{Resource: "coolie"}
	}
	return r.FindByID(id)
}

// AddRating applies one passenger rating inside a row lock so the
// collection and its average always move together, even under
// concurrent raters.
func (r *CoolieRepository) AddRating(id uint, raterID uint, score int, comment string) (*coolieModel.Coolie, error) {
	var updated coolieModel.Coolie
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var c coolieModel.Coolie
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&c, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.NotFoundError{Resource: "coolie"}
			}
			return err
		}

		ratings, average, err := rating.Apply(c.Ratings, raterID, score, comment, time.Now())
		if err != nil {
			return err
		}

		if err := tx.Model(&c).Updates(map[string]interface{}{
			"ratings":        ratings,
			"average_rating": average,
		}).Error; err != nil {
			return err
		}

		c.Ratings = ratings
		c.AverageRating = average
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// List returns coolies for directory views; non-admin callers only see
// approved profiles.
func (r *CoolieRepository) List(approvedOnly bool) ([]coolieModel.Coolie, error) {
	q := r.DB.Preload("User").Order("average_rating DESC, id ASC")
	if approvedOnly {
		q = q.Where("is_approved = ?", true)
	}
	var coolies []coolieModel.Coolie
	if err := q.Find(&coolies).Error; err != nil {
		return nil, err
	}
	return coolies, nil
}

// ListPending returns profiles awaiting admin approval, newest first.
func (r *CoolieRepository) ListPending() ([]coolieModel.Coolie, error) {
	var coolies []coolieModel.Coolie
	err := r.DB.Preload("User").
		Where("is_approved = ?", false).
		Order("created_at DESC").
		Find(&coolies).Error
	if err != nil {
		return nil, err
	}
	return coolies, nil
}

// UpdateProfile applies the mutable profile fields.
func (r *CoolieRepository) UpdateProfile(id uint, updates map[string]interface{}) (*coolieModel.Coolie, error) {
	if len(updates) == 0 {
		return r.FindByID(id)
	}
	res := r.DB.Model(&coolieModel.Coolie{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, domain.NotFoundError{Resource: "coolie"}
	}
	return r.FindByID(id)
}

// Create registers a new, unapproved and unavailable profile.
func (r *CoolieRepository) Create(c *coolieModel.Coolie) error {
	return r.DB.Create(c).Error
}

// CountAll and CountPending feed the admin dashboard.
func (r *CoolieRepository) CountAll() (int64, error) {
	var n int64
	err := r.DB.Model(&coolieModel.Coolie{}).Count(&n).Error
	return n, err
}

func (r *CoolieRepository) CountPending() (int64, error) {
	var n int64
	err := r.DB.Model(&coolieModel.Coolie{}).Where("is_approved = ?", false).Count(&n).Error
	return n, err
}
