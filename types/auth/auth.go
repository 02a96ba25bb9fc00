package auth

import (
	"coolie-booking/constants"
	"coolie-booking/domain"
)

// RegisterRequest creates a user account. Coolie accounts must also
// submit a coolie profile before they can be matched.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=5,max=20"`
	Password string `json:"password" validate:"required,min=6"`
	Role     string `json:"role" validate:"required,oneof=passenger coolie"`
}

func (r RegisterRequest) Validate() error {
	if r.Name == "" {
		return domain.ValidationError{Field: "name", Msg: "name is required"}
	}
	if r.Email == "" {
		return domain.ValidationError{Field: "email", Msg: "email is required"}
	}
	if r.Phone == "" {
		return domain.ValidationError{Field: "phone", Msg: "phone is required"}
	}
	if len(r.Password) < 6 {
		return domain.ValidationError{Field: "password", Msg: "password must be at least 6 characters"}
	}
	registrable := false
	for _, role := range constants.RegistrableRoles {
		if r.Role == role {
			registrable = true
			break
		}
	}
	if !registrable {
		return domain.ValidationError{Field: "role", Msg: "role must be passenger or coolie"}
	}
	return nil
}

// LoginRequest exchanges credentials for a JWT.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
