package cutebot

import (
	"context"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DistanceOutOfRange is returned when no echo ends within EchoTimeout.
const DistanceOutOfRange = 999

// Sonar timings.
const (
	// DefaultEchoTimeout is the longest measurable echo, about 250 cm.
	DefaultEchoTimeout = 7288 * time.Microsecond
	// DefaultRiseTimeout bounds the wait for the echo pulse to start.
	DefaultRiseTimeout = 20 * time.Millisecond

	triggerSettle = 2 * time.Microsecond
	triggerPulse  = 10 * time.Microsecond
)

// Pin is the subset of gpio.PinIO the sonar needs.
type Pin interface {
	In(pull gpio.Pull, edge gpio.Edge) error
	Read() gpio.Level
	Out(l gpio.Level) error
}

// Sonar measures distance with the ultrasonic module.
// It times the echo itself with a tight loop instead of relying on edge
// detection, which is disturbed while the motors are running.
type Sonar struct {
	Trigger     Pin
	Echo        Pin
	Clock       Clock
	EchoTimeout time.Duration
	RiseTimeout time.Duration
}

// EchoToCm converts an echo duration to cm at 343 m/s, rounding down.
func EchoToCm(echo time.Duration) int {
	return int(echo.Microseconds() * 343 / 20000)
}

// ReadDistanceCm triggers a measurement and returns the distance in cm,
// or DistanceOutOfRange if no complete echo arrives in time.
// ctx is checked up to the end of the trigger pulse only, the echo wait
// that follows is bounded by RiseTimeout and EchoTimeout.
func (s *Sonar) ReadDistanceCm(ctx context.Context) (int, error) {
	if s.Trigger == nil || s.Echo == nil {
		return 0, ErrNoSonar
	}
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := s.trigger(ctx); err != nil {
		return 0, err
	}
	if err := s.Echo.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return 0, err
	}

	echoTimeout, riseTimeout := s.EchoTimeout, s.RiseTimeout
	if echoTimeout <= 0 {
		echoTimeout = DefaultEchoTimeout
	}
	if riseTimeout <= 0 {
		riseTimeout = DefaultRiseTimeout
	}

	start := s.Clock.Now()
	for s.Echo.Read() == gpio.Low {
		if s.Clock.Now().Sub(start) > riseTimeout {
			return DistanceOutOfRange, nil
		}
	}
	t1 := s.Clock.Now()
	for s.Echo.Read() == gpio.High {
		if s.Clock.Now().Sub(t1) > echoTimeout {
			return DistanceOutOfRange, nil
		}
	}
	t2 := s.Clock.Now()
	return EchoToCm(t2.Sub(t1)), nil
}

func (s *Sonar) trigger(ctx context.Context) error {
	if err := s.Trigger.In(gpio.Float, gpio.NoEdge); err != nil {
		return err
	}
	if err := s.Trigger.Out(gpio.Low); err != nil {
		return err
	}
	if err := s.Clock.Sleep(ctx, triggerSettle); err != nil {
		return err
	}
	if err := s.Trigger.Out(gpio.High); err != nil {
		return err
	}
	if err := s.Clock.Sleep(ctx, triggerPulse); err != nil {
		s.Trigger.Out(gpio.Low)
		return err
	}
	return s.Trigger.Out(gpio.Low)
}
