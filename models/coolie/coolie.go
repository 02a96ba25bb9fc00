package coolie

import (
	"time"

	"coolie-booking/models/user"
)

// Coolie is a porter profile linked 1:1 to a user account.
//
// IsAvailable doubles as the mutual-exclusion flag for booking
// assignment: the booking service flips it with a conditional update,
// so a coolie can hold at most one active booking at a time.
type Coolie struct {
	ID     uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	User   user.User `gorm:"foreignKey:UserID" json:"user"`

	Age           int    `gorm:"not null" json:"age"`
	Gender        string `gorm:"type:varchar(10);not null" json:"gender"`
	IDProofType   string `gorm:"type:varchar(20);not null" json:"id_proof_type"`
	IDProofNumber string `gorm:"type:varchar(100);not null;unique" json:"id_proof_number"`
	// Opaque reference into upload storage; never interpreted here.
	IDProofURL *string `gorm:"type:varchar(2048)" json:"id_proof_url,omitempty"`

	Station   string       `gorm:"type:varchar(255);not null" json:"station"`
	Platforms PlatformList `gorm:"type:jsonb;not null" json:"platforms"`

	IsApproved  bool `gorm:"default:false" json:"is_approved"`
	IsAvailable bool `gorm:"default:false" json:"is_available"`

	CurrentLocation string     `gorm:"type:varchar(255);default:''" json:"current_location"`
	LanguagesSpoken StringList `gorm:"type:jsonb" json:"languages_spoken,omitempty"`

	Ratings       RatingList `gorm:"type:jsonb" json:"ratings"`
	AverageRating float64    `gorm:"default:0" json:"average_rating"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}

// ServesPlatform reports whether the coolie works the given platform.
func (c *Coolie) ServesPlatform(platform int) bool {
	return c.Platforms.Contains(platform)
}

// Rating is one passenger's rating of a coolie. A rater has at most
// one entry per coolie; re-rating replaces score and comment in place.
type Rating struct {
	RaterID uint      `json:"rater_id"`
	Score   int       `json:"score"`
	Comment string    `json:"comment,omitempty"`
	Date    time.Time `json:"date"`
}

const (
	GenderMale   = "male"
	GenderFemale = "female"
	GenderOther  = "other"
)

const (
	IDProofAadhar  = "aadhar"
	IDProofPAN     = "pan"
	IDProofVoterID = "voterid"
)

// Eligibility bounds for registration.
const (
	MinAge = 18
	MaxAge = 65
)

// ValidGender reports whether s is an accepted gender value.
func ValidGender(s string) bool {
	switch s {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// ValidIDProofType reports whether s is an accepted identity-proof type.
func ValidIDProofType(s string) bool {
	switch s {
	case IDProofAadhar, IDProofPAN, IDProofVoterID:
		return true
	default:
		return false
	}
}
