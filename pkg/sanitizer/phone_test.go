package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "valid E.164 format",
			input: "+46701234567",
			want:  "+46701234567",
		},
		{
			name:  "international with spaces",
			input: "+46 70 123 45 67",
			want:  "+46701234567",
		},
		{
			name:  "swedish national format",
			input: "070-123 45 67",
			want:  "+46701234567",
		},
		{
			name:  "norwegian international",
			input: "+47 912 34 567",
			want:  "+4791234567",
		},
		{
			name:  "leading and trailing spaces",
			input: "  +46701234567  ",
			want:  "+46701234567",
		},
		{
			name:  "empty string",
			input: "",
			want:  "",
		},
		{
			name:  "only whitespace",
			input: "   ",
			want:  "",
		},
		{
			name:  "unparseable kept as typed",
			input: " ask at reception ",
			want:  "ask at reception",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizePhone(tt.input))
		})
	}
}

func TestNormalizePhone_Idempotent(t *testing.T) {
	once := NormalizePhone("070-123 45 67")
	assert.Equal(t, once, NormalizePhone(once))
}
