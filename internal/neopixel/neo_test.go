package neopixel

import (
	"errors"
	"testing"

	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEngine struct {
	colors    []uint32
	inits     int
	finis     int
	renders   int
	renderErr error
}

func (f *fakeEngine) Init() error {
	f.inits++
	return nil
}

func (f *fakeEngine) Render() error {
	f.renders++
	return f.renderErr
}

func (f *fakeEngine) Wait() error {
	return nil
}

func (f *fakeEngine) Fini() {
	f.finis++
}

func (f *fakeEngine) Leds(_ int) []uint32 {
	return f.colors
}

func TestLevel(t *testing.T) {
	tt := []struct {
		name   string
		duty   uint32
		period uint32
		output uint32
	}{
		{"full", 2000, 2000, 0xff},
		{"above period", 3000, 2000, 0xff},
		{"off", 0, 2000, 0},
		{"no period", 1000, 0, 0},
		{"half", 1000, 2000, 0x80},
		{"quarter", 500, 2000, 0x40},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.output, level(tc.duty, tc.period))
		})
	}
}

func TestPixelThroughDriver(t *testing.T) {
	engine := &fakeEngine{colors: make([]uint32, 4)}
	p := newPixel(engine)

	d, err := led.NewDriver(p.Channels())
	require.NoError(t, err)
	assert.Equal(t, 1, engine.inits)

	require.NoError(t, d.SetColour(led.Orange))
	// not enabled yet
	assert.Equal(t, uint32(0), p.Colour())

	require.NoError(t, d.SetEnabled(true))
	assert.Equal(t, uint32(0xffa500), p.Colour())
	for _, c := range engine.colors {
		assert.Equal(t, uint32(0xffa500), c)
	}

	require.NoError(t, d.SetBrightness(0.5))
	assert.Equal(t, uint32(0x805300), p.Colour())

	require.NoError(t, d.Close())
	assert.Equal(t, 1, engine.finis)
	assert.Equal(t, []uint32{0, 0, 0, 0}, engine.colors)
}

func TestComponentNotExported(t *testing.T) {
	p := newPixel(&fakeEngine{colors: make([]uint32, 1)})
	r, _, _ := p.Channels()

	assert.Error(t, r.SetDutyCycleNs(100))
	assert.Error(t, r.Unexport())
}

func TestRenderFailure(t *testing.T) {
	engine := &fakeEngine{colors: make([]uint32, 1)}
	p := newPixel(engine)
	r, _, _ := p.Channels()
	require.NoError(t, r.Export())

	engine.renderErr = errors.New("dma")
	assert.ErrorContains(t, r.SetPeriodNs(1000), "dma")
	assert.ErrorContains(t, r.SetPeriodNs(0), "above zero")
}
