package fare

import (
	"testing"

	"coolie-booking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeBaseFare(t *testing.T) {
	cases := []struct {
		name     string
		weight   float64
		expected float64
	}{
		{"minimal weight", 0.5, 100},
		{"well under base", 10, 100},
		{"exactly at base", 20, 100},
		{"just over base starts a slab", 20.5, 110},
		{"one kilo over", 21, 110},
		{"slab boundary inclusive", 30, 110},
		{"just past slab boundary", 30.1, 120},
		{"two full slabs", 40, 120},
		{"heavy load", 100, 180},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Compute(tc.weight)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}
}

func TestComputeRejectsNonPositiveWeight(t *testing.T) {
	for _, w := range []float64{0, -1, -20} {
		_, err := Compute(w)
		require.Error(t, err)
		assert.True(t, domain.IsValidation(err))
	}
}

func TestComputeIsMonotonic(t *testing.T) {
	prev := 0.0
	for w := 1.0; w <= 120; w += 0.5 {
		got, err := Compute(w)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, got, prev, "fare decreased at weight %v", w)
		prev = got
	}
}
