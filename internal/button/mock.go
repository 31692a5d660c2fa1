//go:build !pi

package button

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
)

// Watch simulates the button: every SIGHUP is a press.
func Watch(ctx context.Context, pin string) (<-chan Event, error) {
	log.Infof("No button hardware in this build, send SIGHUP to press %s", pin)

	hupChan := make(chan os.Signal, 1)
	signal.Notify(hupChan, syscall.SIGHUP)

	c := make(chan Event, 5)
	go simulateButton(ctx, hupChan, c)
	return c, nil
}

func simulateButton(ctx context.Context, hupChan chan os.Signal, c chan<- Event) {
	defer close(c)
	defer signal.Stop(hupChan)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hupChan:
			select {
			case c <- Event{Pressed: true}:
			case <-ctx.Done():
				return
			}
		}
	}
}
