package led

import (
	"encoding/hex"
	"fmt"
	"strings"
)

// Colour is an 8 bit per channel RGB value.
type Colour struct {
	R, G, B uint8
}

var (
	Off    = Colour{}
	Red    = Colour{R: 0xff}
	Green  = Colour{G: 0xff}
	Blue   = Colour{B: 0xff}
	Orange = Colour{R: 0xff, G: 0xa5}
	Yellow = Colour{R: 0xff, G: 0xff}
	White  = Colour{R: 0xff, G: 0xff, B: 0xff}
)

var presets = map[string]Colour{
	"off":    Off,
	"black":  Off,
	"red":    Red,
	"green":  Green,
	"blue":   Blue,
	"orange": Orange,
	"yellow": Yellow,
	"white":  White,
}

func RGB(r, g, b uint8) Colour {
	return Colour{R: r, G: g, B: b}
}

// Fractions returns the intensity of each channel, in red, green, blue order, on a scale from 0 to 1.
func (c Colour) Fractions() [3]float64 {
	return [3]float64{
		float64(c.R) / 255,
		float64(c.G) / 255,
		float64(c.B) / 255,
	}
}

func (c Colour) String() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColour accepts a preset name like "orange" or a hex value like "#ff8800".
func ParseColour(s string) (Colour, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if c, ok := presets[name]; ok {
		return c, nil
	}

	h := strings.TrimPrefix(name, "#")
	if len(h) != 6 {
		return Colour{}, fmt.Errorf("%w: unknown colour %q", ErrValidation, s)
	}
	b, err := hex.DecodeString(h)
	if err != nil {
		return Colour{}, fmt.Errorf("%w: unknown colour %q", ErrValidation, s)
	}
	return RGB(b[0], b[1], b[2]), nil
}
