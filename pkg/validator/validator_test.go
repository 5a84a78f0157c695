package validator

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/emr-records/pkg/errors"
)

type sample struct {
	Name    string    `json:"name" validate:"notblank"`
	Email   string    `json:"email" validate:"notblank,email"`
	Count   int       `json:"count" validate:"gte=0"`
	Amount  float64   `json:"amount" validate:"finite,gte=0,cents"`
	When    time.Time `json:"when" validate:"required,notfuture"`
	Notes   string
}

func fixedClock() time.Time {
	return time.Date(2026, time.March, 10, 15, 0, 0, 0, time.UTC)
}

func validSample() sample {
	return sample{
		Name:   "Ada",
		Email:  "ada@example.com",
		Amount: 12.5,
		When:   time.Date(2026, time.March, 10, 0, 0, 0, 0, time.UTC),
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*sample)
		field  string
		rule   string
	}{
		{"blank after trim", func(s *sample) { s.Name = "   " }, "name", "notblank"},
		{"bad email", func(s *sample) { s.Email = "not-an-email" }, "email", "email"},
		{"negative count", func(s *sample) { s.Count = -1 }, "count", "gte"},
		{"negative amount", func(s *sample) { s.Amount = -0.01 }, "amount", "gte"},
		{"nan amount", func(s *sample) { s.Amount = math.NaN() }, "amount", "finite"},
		{"infinite amount", func(s *sample) { s.Amount = math.Inf(1) }, "amount", "finite"},
		{"negative infinite amount", func(s *sample) { s.Amount = math.Inf(-1) }, "amount", "finite"},
		{"fractional cents", func(s *sample) { s.Amount = 12.345 }, "amount", "cents"},
		{"amount too large", func(s *sample) { s.Amount = 1e10 }, "amount", "cents"},
		{"zero time", func(s *sample) { s.When = time.Time{} }, "when", "required"},
		{"future time", func(s *sample) { s.When = fixedClock().AddDate(0, 0, 1) }, "when", "notfuture"},
	}

	v := New(WithClock(fixedClock))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSample()
			tt.mutate(&s)

			err := v.Validate(&s)
			require.Error(t, err)

			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.field, verr.Field)
			assert.Equal(t, tt.rule, verr.Rule)
		})
	}
}

func TestValidateAcceptsValid(t *testing.T) {
	s := validSample()
	assert.NoError(t, New(WithClock(fixedClock)).Validate(&s))
}

func TestValidateCents(t *testing.T) {
	v := New(WithClock(fixedClock))
	for _, amount := range []float64{0, 0.1, 12.1, 150.25, 9999999999.99} {
		s := validSample()
		s.Amount = amount
		assert.NoError(t, v.Validate(&s), "amount %v", amount)
	}
}
