package led

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFractions_RoundTrip(t *testing.T) {
	for v := 0; v <= 255; v++ {
		c := RGB(uint8(v), uint8(255-v), uint8(v/2))
		f := c.Fractions()
		for i, want := range []uint8{c.R, c.G, c.B} {
			require.GreaterOrEqual(t, f[i], 0.0)
			require.LessOrEqual(t, f[i], 1.0)
			require.Equal(t, want, uint8(math.Round(f[i]*255)), "channel %d of %s", i, c)
		}
	}
}

func TestFractions_Presets(t *testing.T) {
	assert.Equal(t, [3]float64{0, 0, 0}, Off.Fractions())
	assert.Equal(t, [3]float64{1, 0, 0}, Red.Fractions())
	assert.Equal(t, [3]float64{0, 1, 0}, Green.Fractions())
	assert.Equal(t, [3]float64{0, 0, 1}, Blue.Fractions())
	assert.Equal(t, [3]float64{1, 1, 1}, White.Fractions())
}

func TestParseColour(t *testing.T) {
	tt := []struct {
		name   string
		input  string
		output Colour
		valid  bool
	}{
		{"preset", "orange", Orange, true},
		{"preset mixed case", " Yellow ", Yellow, true},
		{"black is off", "black", Off, true},
		{"hex with hash", "#806040", RGB(0x80, 0x60, 0x40), true},
		{"hex without hash", "00ff00", Green, true},
		{"too short", "#fff", Colour{}, false},
		{"not hex", "#gg0000", Colour{}, false},
		{"unknown name", "purple-ish", Colour{}, false},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			c, err := ParseColour(tc.input)
			if !tc.valid {
				assert.ErrorIs(t, err, ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.output, c)
		})
	}
}

func TestColour_String(t *testing.T) {
	assert.Equal(t, "#ffa500", Orange.String())
	assert.Equal(t, "#000000", Off.String())
}
