package booking

import (
	"testing"
	"time"

	"coolie-booking/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCreateRequest() CreateRequest {
	return CreateRequest{
		Station:        "Mumbai Central",
		PlatformNumber: 2,
		TrainNumber:    "12951",
		SeatNumber:     "B2-45",
		ServiceAt:      time.Now().Add(time.Hour),
		LuggageCount:   2,
		LuggageWeight:  18,
	}
}

func TestCreateRequestValidate(t *testing.T) {
	require.NoError(t, validCreateRequest().Validate())

	cases := []struct {
		name   string
		field  string
		mutate func(*CreateRequest)
	}{
		{"missing station", "station", func(r *CreateRequest) { r.Station = "" }},
		{"non-positive platform", "platform_number", func(r *CreateRequest) { r.PlatformNumber = 0 }},
		{"missing train number", "train_number", func(r *CreateRequest) { r.TrainNumber = "" }},
		{"missing seat number", "seat_number", func(r *CreateRequest) { r.SeatNumber = "" }},
		{"zero service time", "service_at", func(r *CreateRequest) { r.ServiceAt = time.Time{} }},
		{"no luggage", "luggage_count", func(r *CreateRequest) { r.LuggageCount = 0 }},
		{"unknown payment method", "payment_method", func(r *CreateRequest) { r.PaymentMethod = "crypto" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateRequest()
			tc.mutate(&req)

			err := req.Validate()
			require.Error(t, err)

			var verr domain.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tc.field, verr.Field)
		})
	}
}

func TestCreateRequestAllowsKnownPaymentMethods(t *testing.T) {
	for _, method := range []string{"", "cash", "online"} {
		req := validCreateRequest()
		req.PaymentMethod = method
		assert.NoError(t, req.Validate())
	}
}
