package pwm

import (
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var (
	hostOnce sync.Once
	hostErr  error

	pinByName = gpioreg.ByName
	hostInit  = initHost
)

func initHost() error {
	hostOnce.Do(func() {
		if _, err := host.Init(); err != nil {
			hostErr = fmt.Errorf("unable to initialize periph: %w", err)
		}
	})
	return hostErr
}

// Periph drives a PWM capable GPIO pin through periph.io. The pin is looked up by name on export, e.g. "GPIO12".
type Periph struct {
	name string

	mu      sync.Mutex
	pin     gpio.PinIO
	freq    physic.Frequency
	period  uint32
	duty    uint32
	enabled bool
}

func NewPeriph(name string) *Periph {
	return &Periph{name: name}
}

func (p *Periph) Export() error {
	if err := hostInit(); err != nil {
		return err
	}
	pin := pinByName(p.name)
	if pin == nil {
		return fmt.Errorf("no gpio pin named %q", p.name)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.pin = pin
	log.Debugf("Using pin %s for pwm", pin)
	return nil
}

func (p *Periph) Unexport() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pin == nil {
		return nil
	}
	err := p.pin.Halt()
	p.pin = nil
	return err
}

func (p *Periph) Enable(enable bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pin == nil {
		return fmt.Errorf("pin %s is not exported", p.name)
	}
	p.enabled = enable
	if !enable {
		return p.pin.Out(gpio.Low)
	}
	return p.apply()
}

func (p *Periph) SetPeriodNs(period uint32) error {
	if period == 0 {
		return fmt.Errorf("invalid period 0 for pin %s", p.name)
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.period = period
	p.freq = physic.Frequency(int64(time.Second) * int64(physic.Hertz) / int64(period))
	if p.enabled {
		return p.apply()
	}
	return nil
}

func (p *Periph) SetDutyCycleNs(duty uint32) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.duty = duty
	if p.enabled {
		return p.apply()
	}
	return nil
}

func (p *Periph) apply() error {
	if p.pin == nil {
		return fmt.Errorf("pin %s is not exported", p.name)
	}
	if p.period == 0 {
		return fmt.Errorf("period not set for pin %s", p.name)
	}
	return p.pin.PWM(toDuty(p.duty, p.period), p.freq)
}

func toDuty(duty, period uint32) gpio.Duty {
	if duty >= period {
		return gpio.DutyMax
	}
	return gpio.Duty(uint64(gpio.DutyMax) * uint64(duty) / uint64(period))
}
