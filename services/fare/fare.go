package fare

import (
	"math"

	"coolie-booking/domain"
)

// Base fare covers luggage up to BaseWeightKg. Every started SlabKg
// above that adds SlabCharge.
const (
	BaseFare     = 100.0
	BaseWeightKg = 20.0
	SlabKg       = 10.0
	SlabCharge   = 10.0
)

// Compute derives the fare for the given luggage weight. Pure; callers
// must recompute (never trust a stored or client-supplied fare) before
// persisting a booking.
func Compute(weightKg float64) (float64, error) {
	if weightKg <= 0 {
		return 0, domain.ValidationError{Field: "luggage_weight", Msg: "weight must be greater than zero"}
	}
	if weightKg <= BaseWeightKg {
		return BaseFare, nil
	}
	extra := math.Ceil((weightKg-BaseWeightKg)/SlabKg) * SlabCharge
	return BaseFare + extra, nil
}
