package pwm

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
)

// Op names a Channel operation, as recorded by Mock.
type Op string

const (
	OpExport    Op = "export"
	OpUnexport  Op = "unexport"
	OpEnable    Op = "enable"
	OpPeriod    Op = "period"
	OpDutyCycle Op = "duty_cycle"
)

// Call is one recorded Channel operation. Value holds the period or duty cycle in nanoseconds, or 1/0 for enable.
type Call struct {
	Channel string
	Op      Op
	Value   uint32
}

func (c Call) String() string {
	return fmt.Sprintf("%s:%s=%d", c.Channel, c.Op, c.Value)
}

// Journal collects calls from several mocks in the order they happened.
type Journal struct {
	mu    sync.Mutex
	calls []Call
}

func (j *Journal) record(c Call) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, c)
}

// Calls returns a copy of everything recorded so far.
func (j *Journal) Calls() []Call {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]Call, len(j.calls))
	copy(out, j.calls)
	return out
}

// Mock is an in-memory channel. It is the backend used when no hardware is present, and the test double for
// everything built on top of Channel.
type Mock struct {
	name    string
	journal *Journal

	mu       sync.Mutex
	exported bool
	enabled  bool
	period   uint32
	duty     uint32
	failures map[Op]error
}

func NewMock(name string) *Mock {
	return &Mock{
		name:     name,
		journal:  &Journal{},
		failures: make(map[Op]error),
	}
}

// NewMockSet creates red, green and blue mocks sharing one journal.
func NewMockSet() (r, g, b *Mock, j *Journal) {
	j = &Journal{}
	r, g, b = NewMock("red"), NewMock("green"), NewMock("blue")
	r.journal, g.journal, b.journal = j, j, j
	return r, g, b, j
}

// FailOn makes every later call of op return err. A nil err clears the failure.
func (m *Mock) FailOn(op Op, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err == nil {
		delete(m.failures, op)
		return
	}
	m.failures[op] = err
}

func (m *Mock) do(op Op, value uint32, apply func()) error {
	m.mu.Lock()
	err := m.failures[op]
	if err == nil {
		apply()
	}
	m.mu.Unlock()

	if err != nil {
		return fmt.Errorf("%s %s: %w", m.name, op, err)
	}
	m.journal.record(Call{Channel: m.name, Op: op, Value: value})
	log.Tracef("pwm mock %s: %s=%d", m.name, op, value)
	return nil
}

func (m *Mock) Export() error {
	return m.do(OpExport, 1, func() { m.exported = true })
}

func (m *Mock) Unexport() error {
	return m.do(OpUnexport, 0, func() { m.exported = false })
}

func (m *Mock) Enable(enable bool) error {
	v := uint32(0)
	if enable {
		v = 1
	}
	return m.do(OpEnable, v, func() { m.enabled = enable })
}

func (m *Mock) SetPeriodNs(period uint32) error {
	return m.do(OpPeriod, period, func() { m.period = period })
}

func (m *Mock) SetDutyCycleNs(duty uint32) error {
	return m.do(OpDutyCycle, duty, func() { m.duty = duty })
}

func (m *Mock) Exported() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exported
}

func (m *Mock) Enabled() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.enabled
}

func (m *Mock) Period() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.period
}

func (m *Mock) DutyCycle() uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duty
}

// Calls returns the journal of this mock, which includes the calls of any mock it shares the journal with.
func (m *Mock) Calls() []Call {
	return m.journal.Calls()
}
