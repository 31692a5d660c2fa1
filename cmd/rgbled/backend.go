package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/callebjorkell/rgbled/internal/config"
	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/neopixel"
	"github.com/callebjorkell/rgbled/internal/pwm"
	log "github.com/sirupsen/logrus"
)

// loadConfig falls back to simulated channels when there is no config file.
func loadConfig(path string) (*config.Config, error) {
	conf, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		log.Warnf("No config file at %s, using the mock backend", path)
		return config.Default(), nil
	}
	return conf, err
}

func openChannels(conf *config.Config) (r, g, b pwm.Channel, err error) {
	ch := conf.Channels
	switch conf.Backend {
	case config.BackendSysfs:
		r = pwm.NewSysfs(*ch.Red.Chip, *ch.Red.Channel)
		g = pwm.NewSysfs(*ch.Green.Chip, *ch.Green.Channel)
		b = pwm.NewSysfs(*ch.Blue.Chip, *ch.Blue.Channel)
	case config.BackendPeriph:
		r, g, b = pwm.NewPeriph(ch.Red.Pin), pwm.NewPeriph(ch.Green.Pin), pwm.NewPeriph(ch.Blue.Pin)
	case config.BackendDigital:
		r = pwm.NewDigital(ch.Red.GPIOChip, ch.Red.Line)
		g = pwm.NewDigital(ch.Green.GPIOChip, ch.Green.Line)
		b = pwm.NewDigital(ch.Blue.GPIOChip, ch.Blue.Line)
	case config.BackendNeopixel:
		p, err := neopixel.NewPixel(conf.LEDs)
		if err != nil {
			return nil, nil, nil, err
		}
		r, g, b = p.Channels()
	case config.BackendMock:
		r, g, b, _ = pwm.NewMockSet()
	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q", conf.Backend)
	}
	return r, g, b, nil
}

func openLED(conf *config.Config) (*led.Driver, error) {
	r, g, b, err := openChannels(conf)
	if err != nil {
		return nil, err
	}
	d, err := led.NewDriver(r, g, b, led.WithPeriod(conf.PeriodNs()))
	if err != nil {
		return nil, err
	}
	log.Infof("Opened %s LED with a period of %v", conf.Backend, conf.Period)
	return d, nil
}
