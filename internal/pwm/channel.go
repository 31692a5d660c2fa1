// Package pwm contains the output channels an RGB LED is driven through. A Channel is a single physical PWM output
// with a period and a duty cycle, both expressed in nanoseconds.
package pwm

// Channel is the capability the LED driver needs from a PWM output.
type Channel interface {
	Export() error
	Unexport() error
	Enable(enable bool) error
	SetPeriodNs(period uint32) error
	SetDutyCycleNs(duty uint32) error
}
