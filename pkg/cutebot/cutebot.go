package cutebot

import (
	"context"
	"time"

	"periph.io/x/conn/v3/i2c"

	"github.com/robotalks/cutebot.go/pkg/l0/comm"
)

// Config defines the board connection.
type Config struct {
	Addr   uint16
	Settle time.Duration
	Clock  Clock
}

// NewConfig creates a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Addr:   comm.BoardAddr,
		Settle: comm.DefaultSettle,
		Clock:  SystemClock{},
	}
}

// Cutebot bundles all board features.
type Cutebot struct {
	Transport   *comm.Transport
	Calibration Calibration
	Clock       Clock

	Motion   Motion
	Servos   Servos
	LEDs     LEDs
	Tracking Tracking
	Sonar    Sonar
}

// New creates a Cutebot with default config.
// trigger and echo may be nil when the sonar is not used.
func New(bus i2c.Bus, trigger, echo Pin) *Cutebot {
	return NewConfig().New(bus, trigger, echo)
}

// New creates a Cutebot from the config.
func (c *Config) New(bus i2c.Bus, trigger, echo Pin) *Cutebot {
	clock := c.Clock
	if clock == nil {
		clock = SystemClock{}
	}
	b := &Cutebot{
		Transport: comm.NewTransportAt(bus, c.Addr),
		Clock:     clock,
	}
	b.Transport.Settle = c.Settle
	b.Transport.Sleeper = clock
	b.Motion = Motion{Transport: b.Transport, Clock: clock}
	b.Servos = Servos{Transport: b.Transport, Calibration: &b.Calibration}
	b.LEDs = LEDs{Transport: b.Transport}
	b.Tracking = Tracking{Transport: b.Transport}
	b.Sonar = Sonar{Trigger: trigger, Echo: echo, Clock: clock}
	return b
}

// SetSpeed sets wheel speeds in percent [-100, 100].
func (b *Cutebot) SetSpeed(ctx context.Context, left, right int) error {
	return b.Motion.SetSpeed(ctx, left, right)
}

// Stop stops both wheels.
func (b *Cutebot) Stop(ctx context.Context) error {
	return b.Motion.Stop(ctx)
}

// Move drives distanceCm at speed percent and waits for completion.
func (b *Cutebot) Move(ctx context.Context, speed, distanceCm int) (MoveResult, error) {
	return b.Motion.Move(ctx, speed, distanceCm)
}

// SetServoType declares the full-scale angle of a servo.
func (b *Cutebot) SetServoType(servo ServoID, st ServoType) error {
	return b.Servos.SetServoType(servo, st)
}

// ServoAngle turns a servo.
func (b *Cutebot) ServoAngle(ctx context.Context, servo ServoID, angle float64) error {
	return b.Servos.ServoAngle(ctx, servo, angle)
}

// SetColor sets the LED color.
func (b *Cutebot) SetColor(ctx context.Context, led LED, c Color) error {
	return b.LEDs.SetColor(ctx, led, c)
}

// ReadTracking reads the line sensors.
func (b *Cutebot) ReadTracking(ctx context.Context) (TrackState, error) {
	return b.Tracking.ReadTracking(ctx)
}

// IsOnTrack checks all sensors in mask see the line.
func (b *Cutebot) IsOnTrack(ctx context.Context, mask TrackState) (bool, error) {
	return b.Tracking.IsOnTrack(ctx, mask)
}

// ReadDistanceCm measures the distance to an obstacle.
func (b *Cutebot) ReadDistanceCm(ctx context.Context) (int, error) {
	return b.Sonar.ReadDistanceCm(ctx)
}
