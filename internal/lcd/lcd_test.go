package lcd

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

type sent struct {
	value byte
	mode  gpio.Level
}

// bus latches a nibble on every rising edge of the enable pin, like the controller does.
type bus struct {
	rs      *gpiotest.Pin
	data    [4]*gpiotest.Pin
	nibbles []sent
	failOut error
}

type clockPin struct {
	*gpiotest.Pin
	b *bus
}

func (c *clockPin) Out(l gpio.Level) error {
	if c.b.failOut != nil {
		return c.b.failOut
	}
	if l == gpio.High {
		var v byte
		for i, p := range c.b.data {
			if p.Read() == gpio.High {
				v |= 1 << uint(i)
			}
		}
		c.b.nibbles = append(c.b.nibbles, sent{v, c.b.rs.Read()})
	}
	return c.Pin.Out(l)
}

// bytes joins the latched nibbles, high nibble first.
func (b *bus) bytes(t *testing.T) []sent {
	t.Helper()
	require.Zero(t, len(b.nibbles)%2)
	var out []sent
	for i := 0; i < len(b.nibbles); i += 2 {
		assert.Equal(t, b.nibbles[i].mode, b.nibbles[i+1].mode)
		out = append(out, sent{b.nibbles[i].value<<4 | b.nibbles[i+1].value, b.nibbles[i].mode})
	}
	b.nibbles = nil
	return out
}

func newTestDisplay() (*Display, *bus) {
	b := &bus{rs: &gpiotest.Pin{N: "RS"}}
	var data [4]gpio.PinIO
	for i := range b.data {
		b.data[i] = &gpiotest.Pin{N: "D"}
		data[i] = b.data[i]
	}
	d := newDisplay(b.rs, &clockPin{&gpiotest.Pin{N: "E"}, b}, data)
	d.sleep = func(time.Duration) {}
	return d, b
}

func TestInit(t *testing.T) {
	d, b := newTestDisplay()
	require.NoError(t, d.Init())

	var got []byte
	for _, s := range b.bytes(t) {
		assert.Equal(t, command, s.mode)
		got = append(got, s.value)
	}
	assert.Equal(t, initSequence, got)
}

func TestPrintLine(t *testing.T) {
	d, b := newTestDisplay()
	require.NoError(t, d.PrintLine(Line2, "blink"))

	out := b.bytes(t)
	require.Len(t, out, 1+lineWidth)
	assert.Equal(t, sent{byte(Line2), command}, out[0])

	var text []byte
	for _, s := range out[1:] {
		assert.Equal(t, character, s.mode)
		text = append(text, s.value)
	}
	assert.Equal(t, "blink           ", string(text))
}

func TestPrintLineCutsOff(t *testing.T) {
	d, b := newTestDisplay()
	require.NoError(t, d.PrintLine(Line1, "breathe-between #ff0000"))

	out := b.bytes(t)
	require.Len(t, out, 1+lineWidth)
	assert.Equal(t, byte('b'), out[1].value)
	assert.Equal(t, byte(' '), out[lineWidth].value)
}

func TestClear(t *testing.T) {
	d, b := newTestDisplay()
	require.NoError(t, d.Clear(Line1))

	for _, s := range b.bytes(t)[1:] {
		assert.Equal(t, byte(' '), s.value)
	}
}

func TestPinFailure(t *testing.T) {
	d, b := newTestDisplay()
	b.failOut = errors.New("gone")
	assert.ErrorContains(t, d.PrintLine(Line1, "x"), "gone")
}

func TestLineString(t *testing.T) {
	assert.Equal(t, "L1", Line1.String())
	assert.Equal(t, "L2", Line2.String())
	assert.Equal(t, "N/A", Line(0).String())
}
