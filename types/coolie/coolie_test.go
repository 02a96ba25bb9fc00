package coolie

import (
	"testing"

	"coolie-booking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Age:           30,
		Gender:        "male",
		IDProofType:   "aadhar",
		IDProofNumber: "1234-5678-9012",
		Station:       "Mumbai Central",
		Platforms:     []int{1, 2},
	}
}

func TestRegisterRequestValidate(t *testing.T) {
	require.NoError(t, validRegisterRequest().Validate())

	cases := []struct {
		name   string
		field  string
		mutate func(*RegisterRequest)
	}{
		{"underage", "age", func(r *RegisterRequest) { r.Age = 17 }},
		{"over age limit", "age", func(r *RegisterRequest) { r.Age = 66 }},
		{"unknown gender", "gender", func(r *RegisterRequest) { r.Gender = "unknown" }},
		{"unknown id proof type", "id_proof_type", func(r *RegisterRequest) { r.IDProofType = "passport" }},
		{"missing id proof number", "id_proof_number", func(r *RegisterRequest) { r.IDProofNumber = "" }},
		{"missing station", "station", func(r *RegisterRequest) { r.Station = "" }},
		{"no platforms", "platforms", func(r *RegisterRequest) { r.Platforms = nil }},
		{"non-positive platform", "platforms", func(r *RegisterRequest) { r.Platforms = []int{1, 0} }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRegisterRequest()
			tc.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var verr domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}
