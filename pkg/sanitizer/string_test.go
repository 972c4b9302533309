package sanitizer

import (
	"testing"

	"sandgrund/pkg/model"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trim spaces",
			input: "  Anna Lindqvist  ",
			want:  "Anna Lindqvist",
		},
		{
			name:  "multiple spaces between words",
			input: "Anna    Lindqvist",
			want:  "Anna Lindqvist",
		},
		{
			name:  "tabs and newlines",
			input: "Anna\t\nLindqvist",
			want:  "Anna Lindqvist",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   \t\n  ",
			want:  "",
		},
		{
			name:  "preserve case and diacritics",
			input: " Åsa Øvrebø ",
			want:  "Åsa Øvrebø",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.input))
		})
	}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "guide@sandgrund.se", NormalizeEmail("  Guide@Sandgrund.SE "))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"adds https", "cdn.example.com/img/a.png", "https://cdn.example.com/img/a.png"},
		{"keeps http", "http://localhost:8000/public/img/guides/1.png", "http://localhost:8000/public/img/guides/1.png"},
		{"lowercases host", "https://CDN.Example.com/A.png", "https://cdn.example.com/A.png"},
		{"drops trailing slash", "https://example.com/photos/", "https://example.com/photos"},
		{"empty", "  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeURL(tt.input))
		})
	}
}

func TestBooking(t *testing.T) {
	b := model.Booking{
		Title:         "  Harbour   walk ",
		ContactPerson: " Erik  Berg ",
		ContactPhone:  "070-123 45 67",
		ContactEmail:  " Erik@Example.COM",
		Guide:         " g1 ",
	}

	Booking(&b)

	assert.Equal(t, "Harbour walk", b.Title)
	assert.Equal(t, "Erik Berg", b.ContactPerson)
	assert.Equal(t, "+46701234567", b.ContactPhone)
	assert.Equal(t, "erik@example.com", b.ContactEmail)
	assert.Equal(t, "g1", b.Guide)
}

func TestGuideUpdate_LeavesNilFields(t *testing.T) {
	email := " New@Sandgrund.se "
	u := model.GuideUpdate{Email: &email}

	GuideUpdate(&u)

	assert.Nil(t, u.FullName)
	assert.Nil(t, u.Photo)
	assert.Equal(t, "new@sandgrund.se", *u.Email)
}
