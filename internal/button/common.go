// Package button turns presses of a push button into events.
package button

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

const (
	debounceDelay = 15 * time.Millisecond
	edgeTimeout   = time.Second
)

type Event struct {
	Pressed bool
}

func (b Event) String() string {
	action := "pressed"
	if !b.Pressed {
		action = "released"
	}
	return fmt.Sprintf("Button was %v", action)
}

// listen reads a button wired between the pin and ground. The channel is closed when ctx is done.
func listen(ctx context.Context, b gpio.PinIO) (<-chan Event, error) {
	if err := b.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return nil, fmt.Errorf("configure %s: %w", b, err)
	}

	c := make(chan Event, 5)
	go handleButton(ctx, b, c)
	return c, nil
}

func handleButton(ctx context.Context, b gpio.PinIO, c chan<- Event) {
	defer close(c)

	last := b.Read()
	for ctx.Err() == nil {
		// wait for the edge
		if !b.WaitForEdge(edgeTimeout) {
			continue
		}

		// debounce
		l := b.Read()
		if l == last {
			continue
		}

		time.Sleep(debounceDelay)
		if l == b.Read() {
			// ... and handle
			last = l
			e := Event{Pressed: l == gpio.Low}
			log.Debug(e)
			select {
			case c <- e:
			case <-ctx.Done():
			}
		}
	}
}
