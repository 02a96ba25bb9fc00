package user

import (
	"time"
)

// User is a platform account. Coolies additionally own a coolie
// profile row linked back here; passengers and admins are just users.
type User struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string  `gorm:"type:varchar(255);not null" json:"name"`
	Email        string  `gorm:"type:varchar(255);not null;unique" json:"email"`
	Phone        string  `gorm:"type:varchar(20);not null" json:"phone"`
	PasswordHash string  `gorm:"type:varchar(255);not null" json:"-"`
	Role         string  `gorm:"type:varchar(20);not null;default:passenger" json:"role"`
	ImageURL     *string `gorm:"type:varchar(2048)" json:"image_url,omitempty"`

	CreatedAt time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt *time.Time `gorm:"index" json:"deleted_at,omitempty"`
}
