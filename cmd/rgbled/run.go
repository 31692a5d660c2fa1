package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/callebjorkell/rgbled/internal/button"
	"github.com/callebjorkell/rgbled/internal/config"
	"github.com/callebjorkell/rgbled/internal/control"
	"github.com/callebjorkell/rgbled/internal/lcd"
	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/pattern"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 5 * time.Second

// startExecutor opens the LED and starts playing e on it.
func startExecutor(ctx context.Context, conf *config.Config, e pattern.Effect) (*pattern.Executor, error) {
	d, err := openLED(conf)
	if err != nil {
		return nil, err
	}
	x, err := pattern.NewExecutor(d, e, pattern.WithTick(conf.Tick))
	if err != nil {
		if cerr := d.Close(); cerr != nil {
			log.Warn(cerr)
		}
		return nil, err
	}
	if err := x.Start(ctx); err != nil {
		if serr := x.Shutdown(context.Background()); serr != nil {
			log.Warn(serr)
		}
		return nil, err
	}
	return x, nil
}

// shutdown switches the LED off and releases it. A render failure takes precedence over a teardown failure.
func shutdown(x *pattern.Executor) error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := x.Shutdown(ctx)
	if fault := x.Err(); fault != nil {
		return fault
	}
	return err
}

func runServer(path string) error {
	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	conf, err := loadConfig(path)
	if err != nil {
		return err
	}
	effects, err := conf.Effects()
	if err != nil {
		return err
	}
	list := newPlaylist(effects)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	x, err := startExecutor(ctx, conf, list.Current())
	if err != nil {
		return err
	}
	p := &player{x: x}
	if conf.Display != nil {
		d, err := lcd.Open(conf.Display.RS, conf.Display.E, conf.Display.Data)
		if err != nil {
			log.Warnf("Display disabled: %v", err)
		} else {
			p.display = d
			p.show(list.Current())
		}
	}

	w := config.NewWatcher(path)
	w.OnReload(func(c *config.Config) {
		if c.Backend != conf.Backend || c.Period != conf.Period || c.Tick != conf.Tick {
			log.Warn("Backend, period and tick changes need a restart to take effect")
		}
		effects, err := c.Effects()
		if err != nil {
			log.Warn(err)
			return
		}
		if err := p.SetPattern(list.Replace(effects)); err != nil {
			log.Warn(err)
		}
	})
	if err := w.Start(); err != nil {
		log.Warnf("Not watching %s for changes: %v", path, err)
	}
	defer w.Close()

	if conf.Button != "" {
		events, err := button.Watch(ctx, conf.Button)
		if err != nil {
			log.Warnf("Button disabled: %v", err)
		} else {
			go advanceOnPress(events, list, p)
		}
	}

	if conf.HTTP.Addr != "" {
		srv := control.NewServer(conf.HTTP.Addr, p)
		go func() {
			if err := srv.Listen(); err != nil {
				log.Errorf("Control server failed: %v", err)
			}
		}()
		defer srv.Close()
	}

	select {
	case s := <-signalChan:
		log.Infof("Got %v, switching off...", s)
	case <-x.Done():
		log.Warn("Pattern executor exited")
	}

	err = shutdown(x)
	if p.display != nil {
		p.display.PrintLine(lcd.Line1, "   Good bye...")
		p.display.Clear(lcd.Line2)
	}
	log.Info("Done...")
	return err
}

func advanceOnPress(events <-chan button.Event, list *playlist, p *player) {
	for e := range events {
		log.Infof("Event: %v", e)
		if !e.Pressed {
			continue
		}
		if err := p.SetPattern(list.Next()); err != nil {
			log.Warn(err)
		}
	}
}

func showPattern(path, kind, colour, secondary string, d time.Duration) error {
	e, err := config.Pattern{Type: kind, Duration: d, Colour: colour, Secondary: secondary}.Effect()
	if err != nil {
		return err
	}

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(signalChan)

	conf, err := loadConfig(path)
	if err != nil {
		return err
	}
	x, err := startExecutor(context.Background(), conf, e)
	if err != nil {
		return err
	}
	log.Infof("Playing %v, interrupt to stop", e)

	select {
	case <-signalChan:
	case <-x.Done():
	}
	return shutdown(x)
}

// runCycle blinks red for five seconds, then breathes green for five seconds.
func runCycle(path string) error {
	conf, err := loadConfig(path)
	if err != nil {
		return err
	}
	x, err := startExecutor(context.Background(), conf, pattern.Blink(time.Second, led.Red))
	if err != nil {
		return err
	}

	select {
	case <-time.After(5 * time.Second):
	case <-x.Done():
		return shutdown(x)
	}

	if err := x.SetPattern(pattern.Breathe(2*time.Second, led.Green)); err != nil {
		log.Warn(err)
	}

	select {
	case <-time.After(5 * time.Second):
	case <-x.Done():
	}
	return shutdown(x)
}
