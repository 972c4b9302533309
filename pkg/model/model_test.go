package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBookingUpdate_Apply(t *testing.T) {
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	original := Booking{ID: "b1", Title: "Fjord Hike", Start: start, Participants: 4}

	title := "City Walk"
	snacks := true
	update := BookingUpdate{Title: &title, Snacks: &snacks}

	merged := update.Apply(original)

	assert.Equal(t, "City Walk", merged.Title)
	assert.True(t, merged.Snacks)
	assert.Equal(t, 4, merged.Participants)
	assert.Equal(t, "Fjord Hike", original.Title, "original must not change")
}

func TestBooking_PartitionYear(t *testing.T) {
	oslo, _ := time.LoadLocation("Europe/Oslo")
	b := Booking{Start: time.Date(2025, 1, 1, 0, 30, 0, 0, oslo)}

	assert.Equal(t, 2024, b.PartitionYear(), "partition follows the UTC year")
}

func TestGuide_State(t *testing.T) {
	assert.Equal(t, GuideActive, (&Guide{Active: true}).State())
	assert.Equal(t, GuideInactive, (&Guide{}).State())
}

func TestGuide_MatchesAll(t *testing.T) {
	g := &Guide{ID: "g1", FullName: "Anna Berg", Email: "a@b.com", Active: true}

	tests := []struct {
		name  string
		query map[string]string
		want  bool
	}{
		{"empty query", map[string]string{}, true},
		{"case insensitive email", map[string]string{"email": "A@B.com"}, true},
		{"bool field", map[string]string{"active": "TRUE"}, true},
		{"two fields", map[string]string{"email": "a@b.com", "fullName": "anna berg"}, true},
		{"one field differs", map[string]string{"email": "a@b.com", "fullName": "anna"}, false},
		{"unknown field", map[string]string{"shoeSize": "42"}, false},
		{"state", map[string]string{"state": "Active"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, g.MatchesAll(tt.query))
		})
	}
}

func TestGuideUpdate_IsEmpty(t *testing.T) {
	assert.True(t, (&GuideUpdate{}).IsEmpty())
	name := "x"
	assert.False(t, (&GuideUpdate{FullName: &name}).IsEmpty())
}
