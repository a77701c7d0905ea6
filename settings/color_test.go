package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want RGB
	}{
		{"#FF0000", RGB{255, 0, 0}},
		{"#ff0000", RGB{255, 0, 0}},
		{"#0f0", RGB{0, 255, 0}},
		{"#0066cc80", RGB{0, 102, 204}},
		{"#00fc", RGB{0, 0, 255}},
		{"SpringGreen", RGB{0, 255, 127}},
		{"  white ", RGB{255, 255, 255}},
		{"black", RGB{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseColor(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseColorErrors(t *testing.T) {
	for _, in := range []string{"", "#", "ff0000", "#ff00000", "#gg0000", "#12345g", "#ff00 0", "#f0z", "#1234567890", "notacolor"} {
		t.Run(in, func(t *testing.T) {
			_, err := ParseColor(in)
			assert.ErrorIs(t, err, ErrUnknownColor)
		})
	}
}

func TestNewRGB(t *testing.T) {
	c, err := NewRGB(255, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, "#ff0000", c.Hex())

	_, err = NewRGB(256, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidColor)
}
