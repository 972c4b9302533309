package validator

import (
	"errors"
	"testing"
	"time"

	"sandgrund/pkg/logger"
	"sandgrund/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		booking   model.Booking
		wantField string
	}{
		{"valid", model.Booking{Title: "Tour", Start: start, End: start.Add(time.Hour)}, ""},
		{"zero start", model.Booking{Title: "Tour", End: start}, "Start"},
		{"missing title", model.Booking{Start: start, End: start}, "Title"},
		{"negative participants", model.Booking{Title: "Tour", Start: start, End: start, Participants: -1}, "Participants"},
		{"end before start", model.Booking{Title: "Tour", Start: start, End: start.Add(-time.Minute)}, "End"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(&tt.booking)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var errs ValidationErrors
			if assert.True(t, errors.As(err, &errs)) {
				assert.Equal(t, tt.wantField, errs[0].Field)
			}
		})
	}
}

func TestValidateUpdate(t *testing.T) {
	v := NewBookingValidator(logger.Discard())
	start := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)
	badEmail := "nope"
	empty := ""

	assert.NoError(t, v.ValidateUpdate(&model.BookingUpdate{}))
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{Start: &start, End: &before}))
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{ContactEmail: &badEmail}))
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{Title: &empty}))
	assert.Error(t, v.ValidateUpdate(&model.BookingUpdate{GuideEmail: "not-mail"}))
}
