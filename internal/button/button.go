//go:build pi

package button

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Watch listens for presses of the button on the named pin, like "GPIO20".
func Watch(ctx context.Context, pin string) (<-chan Event, error) {
	log.Infof("Initializing button handler on %s", pin)
	if _, err := host.Init(); err != nil {
		return nil, err
	}
	button := gpioreg.ByName(pin)
	if button == nil {
		return nil, fmt.Errorf("no such pin: %s", pin)
	}
	return listen(ctx, button)
}
