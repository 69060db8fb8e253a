package cutebot

import (
	"context"
	"sync"
)

// ServoID identifies one of the four servo ports.
type ServoID byte

// Servo ports, the value is sent on the wire.
const (
	S1 ServoID = iota + 1
	S2
	S3
	S4
)

// ServoCount is the number of servo ports.
const ServoCount = 4

// IsValid checks the servo is one of S1..S4.
func (s ServoID) IsValid() bool {
	return s >= S1 && s <= S4
}

// ServoType is the full-scale angle of a servo in degrees.
type ServoType int

// Supported servo types.
const (
	ServoType180 ServoType = 180
	ServoType270 ServoType = 270
	ServoType360 ServoType = 360
)

// IsValid checks the type is supported.
func (t ServoType) IsValid() bool {
	switch t {
	case ServoType180, ServoType270, ServoType360:
		return true
	}
	return false
}

// Calibration stores the declared servo type per port.
// The zero value treats every port as ServoType180.
type Calibration struct {
	types [ServoCount]ServoType
	lock  sync.RWMutex
}

// Set records the servo type, replacing the previous one.
func (c *Calibration) Set(servo ServoID, st ServoType) error {
	if !servo.IsValid() {
		return ErrInvalidServo
	}
	if !st.IsValid() {
		return ErrInvalidServoType
	}
	c.lock.Lock()
	c.types[servo-S1] = st
	c.lock.Unlock()
	return nil
}

// Get returns the servo type of the port.
func (c *Calibration) Get(servo ServoID) ServoType {
	if !servo.IsValid() {
		return ServoType180
	}
	c.lock.RLock()
	st := c.types[servo-S1]
	c.lock.RUnlock()
	if st == 0 {
		return ServoType180
	}
	return st
}

// MapAngle maps angle from [0, full-scale] to [0, 180] and truncates.
// Angles outside the range extrapolate linearly.
func MapAngle(angle float64, st ServoType) int {
	return int(angle * 180 / float64(st))
}

// Servos controls the servo ports.
type Servos struct {
	Transport   Transport
	Calibration *Calibration
}

// SetServoType declares the full-scale angle of a servo.
func (s *Servos) SetServoType(servo ServoID, st ServoType) error {
	return s.Calibration.Set(servo, st)
}

// ServoAngle turns the servo to angle degrees of its full scale.
func (s *Servos) ServoAngle(ctx context.Context, servo ServoID, angle float64) error {
	if !servo.IsValid() {
		return ErrInvalidServo
	}
	mapped := MapAngle(angle, s.Calibration.Get(servo))
	return s.Transport.Send(ctx, CmdServo, byte(servo), byte(mapped))
}
