package coolie

import (
	"coolie-booking/domain"
	coolieModel "coolie-booking/models/coolie"
)

// RegisterRequest creates a coolie profile for the authenticated user.
// Profiles start unapproved and unavailable; an admin flips approval.
type RegisterRequest struct {
	Age             int      `json:"age" validate:"required,min=18,max=65"`
	Gender          string   `json:"gender" validate:"required,oneof=male female other"`
	IDProofType     string   `json:"id_proof_type" validate:"required,oneof=aadhar pan voterid"`
	IDProofNumber   string   `json:"id_proof_number" validate:"required,min=1,max=100"`
	IDProofURL      *string  `json:"id_proof_url,omitempty"`
	Station         string   `json:"station" validate:"required,min=1,max=255"`
	Platforms       []int    `json:"platforms" validate:"required,min=1"`
	CurrentLocation string   `json:"current_location" validate:"omitempty,max=255"`
	LanguagesSpoken []string `json:"languages_spoken" validate:"omitempty"`
}

func (r RegisterRequest) Validate() error {
	if r.Age < coolieModel.MinAge || r.Age > coolieModel.MaxAge {
		return domain.ValidationError{Field: "age", Msg: "age must be between 18 and 65"}
	}
	if !coolieModel.ValidGender(r.Gender) {
		return domain.ValidationError{Field: "gender", Msg: "gender must be male, female or other"}
	}
	if !coolieModel.ValidIDProofType(r.IDProofType) {
		return domain.ValidationError{Field: "id_proof_type", Msg: "id proof type must be aadhar, pan or voterid"}
	}
	if r.IDProofNumber == "" {
		return domain.ValidationError{Field: "id_proof_number", Msg: "id proof number is required"}
	}
	if r.Station == "" {
		return domain.ValidationError{Field: "station", Msg: "station is required"}
	}
	if len(r.Platforms) == 0 {
		return domain.ValidationError{Field: "platforms", Msg: "at least one platform number is required"}
	}
	for _, p := range r.Platforms {
		if p <= 0 {
			return domain.ValidationError{Field: "platforms", Msg: "platform numbers must be positive"}
		}
	}
	return nil
}

// UpdateRequest edits mutable profile fields. Approval is deliberately
// absent; only the admin endpoint may change it.
type UpdateRequest struct {
	Station         *string  `json:"station,omitempty"`
	Platforms       []int    `json:"platforms,omitempty"`
	CurrentLocation *string  `json:"current_location,omitempty"`
	LanguagesSpoken []string `json:"languages_spoken,omitempty"`
}

// AvailabilityRequest is a coolie's self-reported availability toggle.
type AvailabilityRequest struct {
	IsAvailable     *bool   `json:"is_available"`
	CurrentLocation *string `json:"current_location,omitempty"`
}

// ApprovalRequest is the admin approval/rejection payload.
type ApprovalRequest struct {
	IsApproved *bool `json:"is_approved"`
}
