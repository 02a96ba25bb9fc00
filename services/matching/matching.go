package matching

import (
	"strings"

	"coolie-booking/domain"
	"coolie-booking/models/coolie"
)

// Directory is the read side of the coolie store the engine needs.
// FindEligible returns approved, currently-available coolies servicing
// the station/platform, best-rated first (ties broken by creation
// order).
type Directory interface {
	FindEligible(station string, platform int) ([]coolie.Coolie, error)
	FindByID(id uint) (*coolie.Coolie, error)
}

// Engine selects or validates a coolie for a booking request. It never
// mutates availability; the booking service holds the winner with a
// conditional update so match-then-hold stays atomic.
type Engine struct {
	dir Directory
}

func NewEngine(dir Directory) *Engine {
	return &Engine{dir: dir}
}

// Match returns candidate coolie IDs for the request, in assignment
// order. With an explicit coolie the result is that single ID after an
// eligibility check; otherwise all eligible coolies, best-rated first.
func (e *Engine) Match(station string, platform int, explicitID *uint) ([]uint, error) {
	if explicitID != nil {
		c, err := e.dir.FindByID(*explicitID)
		if err != nil {
			return nil, err
		}
		if err := checkEligible(c, station, platform); err != nil {
			return nil, err
		}
		return []uint{c.ID}, nil
	}

	candidates, err := e.dir.FindEligible(station, platform)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, domain.NoCoolieAvailableError{Station: station, Platform: platform}
	}

	ids := make([]uint, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

func checkEligible(c *coolie.Coolie, station string, platform int) error {
	switch {
	case !c.IsApproved:
		return domain.IneligibleCoolieError{Reason: "not approved"}
	case !c.IsAvailable:
		return domain.IneligibleCoolieError{Reason: "not available"}
	case !strings.EqualFold(c.Station, station):
		return domain.IneligibleCoolieError{Reason: "does not work at this station"}
	case !c.ServesPlatform(platform):
		return domain.IneligibleCoolieError{Reason: "does not work on this platform"}
	}
	return nil
}
