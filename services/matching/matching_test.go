package matching

import (
	"sort"
	"strings"
	"testing"

	"coolie-booking/domain"
	"coolie-booking/models/coolie"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDirectory serves coolies from memory, applying the same
// eligibility filter and rating-first ordering the repository query
// does.
type fakeDirectory struct {
	coolies map[uint]*coolie.Coolie
}

func newFakeDirectory(coolies ...*coolie.Coolie) *fakeDirectory {
	dir := &fakeDirectory{coolies: map[uint]*coolie.Coolie{}}
	for _, c := range coolies {
		dir.coolies[c.ID] = c
	}
	return dir
}

func (d *fakeDirectory) FindEligible(station string, platform int) ([]coolie.Coolie, error) {
	var out []coolie.Coolie
	for _, c := range d.coolies {
		if c.IsApproved && c.IsAvailable && strings.EqualFold(c.Station, station) && c.ServesPlatform(platform) {
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

func (d *fakeDirectory) FindByID(id uint) (*coolie.Coolie, error) {
	c, ok := d.coolies[id]
	if !ok {
		return nil, domain.NotFoundError{Resource: "coolie"}
	}
	return c, nil
}

func eligibleCoolie(id uint, rating float64) *coolie.Coolie {
	return &coolie.Coolie{
		ID:            id,
		UserID:        id + 100,
		Station:       "Mumbai Central",
		Platforms:     coolie.PlatformList{1, 2, 3},
		IsApproved:    true,
		IsAvailable:   true,
		AverageRating: rating,
	}
}

func TestMatchOrdersByRatingThenID(t *testing.T) {
	dir := newFakeDirectory(
		eligibleCoolie(1, 3.5),
		eligibleCoolie(2, 4.8),
		eligibleCoolie(3, 4.8),
		eligibleCoolie(4, 2.0),
	)
	engine := NewEngine(dir)

	ids, err := engine.Match("Mumbai Central", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{2, 3, 1, 4}, ids)
}

func TestMatchStationIsCaseInsensitive(t *testing.T) {
	dir := newFakeDirectory(eligibleCoolie(1, 4.0))
	engine := NewEngine(dir)

	ids, err := engine.Match("mumbai central", 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids)
}

func TestMatchExcludesIneligibleCoolies(t *testing.T) {
	unapproved := eligibleCoolie(1, 5.0)
	unapproved.IsApproved = false

	busy := eligibleCoolie(2, 5.0)
	busy.IsAvailable = false

	elsewhere := eligibleCoolie(3, 5.0)
	elsewhere.Station = "New Delhi"

	wrongPlatform := eligibleCoolie(4, 5.0)
	wrongPlatform.Platforms = coolie.PlatformList{9}

	match := eligibleCoolie(5, 1.0)

	dir := newFakeDirectory(unapproved, busy, elsewhere, wrongPlatform, match)
	engine := NewEngine(dir)

	ids, err := engine.Match("Mumbai Central", 2, nil)
	require.NoError(t, err)
	assert.Equal(t, []uint{5}, ids)
}

func TestMatchNoneAvailable(t *testing.T) {
	engine := NewEngine(newFakeDirectory())

	_, err := engine.Match("Mumbai Central", 2, nil)
	require.Error(t, err)
	assert.True(t, domain.IsNoCoolieAvailable(err))
}

func TestMatchExplicitCoolie(t *testing.T) {
	c := eligibleCoolie(7, 3.0)
	dir := newFakeDirectory(c, eligibleCoolie(8, 5.0))
	engine := NewEngine(dir)

	id := uint(7)
	ids, err := engine.Match("Mumbai Central", 2, &id)
	require.NoError(t, err)
	assert.Equal(t, []uint{7}, ids, "explicit selection must ignore better-rated candidates")
}

func TestMatchExplicitCoolieIneligible(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*coolie.Coolie)
	}{
		{"not approved", func(c *coolie.Coolie) { c.IsApproved = false }},
		{"not available", func(c *coolie.Coolie) { c.IsAvailable = false }},
		{"wrong station", func(c *coolie.Coolie) { c.Station = "Howrah" }},
		{"wrong platform", func(c *coolie.Coolie) { c.Platforms = coolie.PlatformList{9} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := eligibleCoolie(7, 3.0)
			tc.mutate(c)
			engine := NewEngine(newFakeDirectory(c))

			id := uint(7)
			_, err := engine.Match("Mumbai Central", 2, &id)
			require.Error(t, err)
			assert.True(t, domain.IsIneligibleCoolie(err))
		})
	}
}

func TestMatchExplicitCoolieNotFound(t *testing.T) {
	engine := NewEngine(newFakeDirectory())

	id := uint(42)
	_, err := engine.Match("Mumbai Central", 2, &id)
	require.Error(t, err)
	assert.True(t, domain.IsNotFound(err))
}
