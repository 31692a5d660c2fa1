// Package pattern plays lighting effects on an RGB LED. An Executor renders the current Effect over and over on a
// goroutine of its own, and picks up a replacement Effect or a stop request between two render cycles.
package pattern

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/callebjorkell/rgbled/internal/led"
	"github.com/callebjorkell/rgbled/internal/metrics"
	log "github.com/sirupsen/logrus"
)

// ErrTerminated is returned when starting an executor that has already been stopped or closed.
var ErrTerminated = errors.New("pattern executor is terminated")

type State int

const (
	Idle State = iota
	Running
	Stopping
	Stopped
	Faulted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Stopping:
		return "stopping"
	case Stopped:
		return "stopped"
	case Faulted:
		return "faulted"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Status is a point in time view of an executor.
type Status struct {
	State State
	// Effect is the effect currently rendering, or the one that will render first if the executor has not started.
	Effect      Effect
	Cycles      uint64
	LastCycleAt time.Time
	LastError   string
}

type Option func(*Executor)

// WithTick sets the brightness update interval of the breathing effects.
func WithTick(d time.Duration) Option {
	return func(x *Executor) {
		if d > 0 {
			x.tick = d
		}
	}
}

func WithSleeper(s Sleeper) Option {
	return func(x *Executor) {
		if s != nil {
			x.sleep = s
		}
	}
}

// Executor owns a Driver and renders effects onto it. Once started, its goroutine is the only writer to the
// driver; everything else goes through SetPattern.
type Executor struct {
	driver Driver
	tick   time.Duration
	sleep  Sleeper

	// mailbox holds the most recently assigned effect until the render loop picks it up.
	mailbox chan Effect

	stopOnce  sync.Once
	stopCh    chan struct{}
	closeOnce sync.Once
	closeCh   chan struct{}
	doneOnce  sync.Once
	done      chan struct{}

	teardownOnce sync.Once
	released     chan struct{}

	mu          sync.Mutex
	state       State
	started     bool
	err         error
	teardownErr error
	status      Status
}

func NewExecutor(d Driver, initial Effect, opts ...Option) (*Executor, error) {
	if err := initial.Validate(); err != nil {
		return nil, err
	}
	x := &Executor{
		driver:   d,
		tick:     DefaultTick,
		sleep:    sleep,
		mailbox:  make(chan Effect, 1),
		stopCh:   make(chan struct{}),
		closeCh:  make(chan struct{}),
		done:     make(chan struct{}),
		released: make(chan struct{}),
		status:   Status{Effect: initial},
	}
	for _, opt := range opts {
		opt(x)
	}
	x.mailbox <- initial
	return x, nil
}

// Start darkens and enables the LED, then starts rendering on a new goroutine. Starting a running executor does
// nothing. Cancelling ctx has the same effect as Stop.
func (x *Executor) Start(ctx context.Context) error {
	x.mu.Lock()
	defer x.mu.Unlock()

	switch x.state {
	case Running:
		log.Warn("Pattern executor is already running")
		return nil
	case Idle:
	default:
		return fmt.Errorf("%w: executor is %v", ErrTerminated, x.state)
	}

	if err := x.driver.SetBrightness(0); err != nil {
		x.faultLocked(err)
		x.finish()
		return err
	}
	if err := x.driver.SetEnabled(true); err != nil {
		x.faultLocked(err)
		x.finish()
		return err
	}

	x.state = Running
	x.started = true
	metrics.ExecutorStarted()
	log.Infof("Pattern executor started with %v", x.status.Effect)

	go x.run(ctx)
	return nil
}

// SetPattern replaces the effect to render. A cycle that is already rendering is played to the end; the new effect
// starts with the next cycle. When called several times between two cycles, the last effect wins.
func (x *Executor) SetPattern(e Effect) error {
	if err := e.Validate(); err != nil {
		return err
	}
	x.replace(e)
	metrics.PatternSwapped()
	log.Debugf("Pattern set to %v", e)
	return nil
}

func (x *Executor) replace(e Effect) {
	for {
		select {
		case x.mailbox <- e:
			return
		default:
		}
		// drop the effect nobody has rendered yet
		select {
		case <-x.mailbox:
		default:
		}
	}
}

// Stop asks the render loop to finish the current cycle, darken the LED and exit. It does not wait. The executor
// cannot be started again afterwards.
func (x *Executor) Stop() {
	x.mu.Lock()
	defer x.mu.Unlock()
	if x.state != Running {
		return
	}
	x.state = Stopping
	x.raiseStop()
	log.Debug("Pattern executor asked to stop")
}

func (x *Executor) raiseStop() {
	x.stopOnce.Do(func() {
		close(x.stopCh)
	})
}

// Close switches to Off, stops the executor and releases the driver once the current cycle is done. It does not
// wait for any of this to happen; use Shutdown for that.
func (x *Executor) Close() {
	x.closeOnce.Do(func() {
		close(x.closeCh)
		x.replace(Off)
		x.raiseStop()

		x.mu.Lock()
		started := x.started
		switch x.state {
		case Idle:
			x.state = Stopped
		case Running:
			x.state = Stopping
		}
		x.mu.Unlock()

		if !started {
			x.finish()
			x.teardown()
			return
		}
		// the render loop tears down itself when it sees the close, this covers a loop that already exited
		go func() {
			<-x.done
			x.teardown()
		}()
	})
}

// Shutdown closes the executor and waits until the driver has been released, returning the error of releasing it.
func (x *Executor) Shutdown(ctx context.Context) error {
	x.Close()
	select {
	case <-x.released:
		x.mu.Lock()
		defer x.mu.Unlock()
		return x.teardownErr
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done is closed when the render loop has exited.
func (x *Executor) Done() <-chan struct{} {
	return x.done
}

// Err returns the hardware error that terminated the executor, if any.
func (x *Executor) Err() error {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.err
}

func (x *Executor) State() State {
	x.mu.Lock()
	defer x.mu.Unlock()
	return x.state
}

func (x *Executor) Status() Status {
	x.mu.Lock()
	defer x.mu.Unlock()
	s := x.status
	s.State = x.state
	return s
}

func (x *Executor) run(ctx context.Context) {
	defer x.exit(ctx)

	r := &renderer{driver: x.driver, sleep: x.sleep, tick: x.tick}
	current := <-x.mailbox
	for {
		if x.halted(ctx) {
			return
		}
		select {
		case e := <-x.mailbox:
			current = e
		default:
		}

		x.setActive(current)
		log.Debugf("Rendering %v", current)
		if err := r.render(current); err != nil {
			x.fault(err)
			return
		}
		x.cycleDone(current)

		if current.Static() {
			select {
			case e := <-x.mailbox:
				current = e
			case <-x.stopCh:
			case <-ctx.Done():
			}
		}
	}
}

func (x *Executor) halted(ctx context.Context) bool {
	select {
	case <-x.stopCh:
		return true
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

func (x *Executor) exit(ctx context.Context) {
	closing := false
	select {
	case <-x.closeCh:
		closing = true
	default:
	}

	if closing {
		x.teardown()
	} else if err := x.applyOff(); err != nil {
		if x.Err() == nil {
			x.fault(err)
		} else {
			log.Debugf("Unable to switch off faulted led: %v", err)
		}
	}

	x.mu.Lock()
	if x.state != Faulted {
		x.state = Stopped
	}
	x.mu.Unlock()

	metrics.ExecutorExited()
	x.finish()
	if ctx.Err() != nil {
		log.Infof("Pattern executor stopped: %v", ctx.Err())
	} else {
		log.Info("Pattern executor stopped")
	}
}

func (x *Executor) finish() {
	x.doneOnce.Do(func() {
		close(x.done)
	})
}

func (x *Executor) applyOff() error {
	r := &renderer{driver: x.driver, sleep: x.sleep, tick: x.tick}
	return r.render(Off)
}

// teardown runs at most once, and never while the render loop is writing to the driver.
func (x *Executor) teardown() {
	x.teardownOnce.Do(func() {
		err := x.applyOff()
		if cerr := x.driver.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		}
		if err != nil {
			log.Errorf("Unable to release the led: %v", err)
			err = fmt.Errorf("%w: %w", led.ErrTeardown, err)
		} else {
			log.Debug("LED switched off and released")
		}

		x.mu.Lock()
		x.teardownErr = err
		x.mu.Unlock()
		close(x.released)
	})
}

func (x *Executor) setActive(e Effect) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.status.Effect = e
}

func (x *Executor) cycleDone(e Effect) {
	metrics.CycleRendered(e.Kind().String())

	x.mu.Lock()
	defer x.mu.Unlock()
	x.status.Cycles++
	x.status.LastCycleAt = time.Now()
}

func (x *Executor) fault(err error) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.faultLocked(err)
}

func (x *Executor) faultLocked(err error) {
	x.state = Faulted
	x.err = err
	x.status.LastError = err.Error()
	metrics.Faulted()
	log.Errorf("Pattern executor failed: %v", err)
}
