package coolie

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSON-backed column types. Postgres stores these as jsonb so platform
// membership can be queried with the @> containment operator.

// PlatformList is the set of platform numbers a coolie services.
type PlatformList []int

func (pl *PlatformList) Scan(value interface{}) error {
	return scanJSON(value, pl)
}

func (pl PlatformList) Value() (driver.Value, error) {
	if pl == nil {
		return nil, nil
	}
	return json.Marshal(pl)
}

// Contains reports membership of platform in the list.
func (pl PlatformList) Contains(platform int) bool {
	for _, p := range pl {
		if p == platform {
			return true
		}
	}
	return false
}

// RatingList is the ordered collection of per-passenger ratings.
type RatingList []Rating

func (rl *RatingList) Scan(value interface{}) error {
	return scanJSON(value, rl)
}

func (rl RatingList) Value() (driver.Value, error) {
	if rl == nil {
		return nil, nil
	}
	return json.Marshal(rl)
}

// StringList stores a slice of strings as a JSON column.
type StringList []string

func (sl *StringList) Scan(value interface{}) error {
	return scanJSON(value, sl)
}

func (sl StringList) Value() (driver.Value, error) {
	if sl == nil {
		return nil, nil
	}
	return json.Marshal(sl)
}

func scanJSON(value interface{}, dest interface{}) error {
	if value == nil {
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, dest)
	case string:
		return json.Unmarshal([]byte(v), dest)
	default:
		return errors.New("unsupported column type for JSON scan")
	}
}
