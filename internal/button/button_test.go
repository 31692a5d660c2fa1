package button

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"
)

func TestEventString(t *testing.T) {
	assert.Equal(t, "Button was pressed", Event{Pressed: true}.String())
	assert.Equal(t, "Button was released", Event{}.String())
}

func TestListen(t *testing.T) {
	pin := &gpiotest.Pin{N: "GPIO20", EdgesChan: make(chan gpio.Level)}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := listen(ctx, pin)
	require.NoError(t, err)
	assert.Equal(t, gpio.PullUp, pin.P)

	pin.EdgesChan <- gpio.Low
	select {
	case e := <-events:
		assert.True(t, e.Pressed)
	case <-time.After(time.Second):
		t.Fatal("no press event")
	}

	pin.EdgesChan <- gpio.High
	select {
	case e := <-events:
		assert.False(t, e.Pressed)
	case <-time.After(time.Second):
		t.Fatal("no release event")
	}

	cancel()
	select {
	case _, ok := <-events:
		assert.False(t, ok)
	case <-time.After(2 * edgeTimeout):
		t.Fatal("events were not closed")
	}
}

func TestListenWithoutEdges(t *testing.T) {
	_, err := listen(context.Background(), &gpiotest.Pin{N: "GPIO21"})
	assert.Error(t, err)
}
