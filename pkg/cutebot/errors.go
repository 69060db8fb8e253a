package cutebot

import "errors"

var (
	// ErrInvalidServo indicates the servo is not one of S1..S4.
	ErrInvalidServo = errors.New("invalid servo")
	// ErrInvalidServoType indicates an unsupported full-scale angle.
	ErrInvalidServoType = errors.New("invalid servo type")
	// ErrInvalidLED indicates the LED target is unknown.
	ErrInvalidLED = errors.New("invalid led")
	// ErrNoSonar indicates the ultrasonic pins are not configured.
	ErrNoSonar = errors.New("sonar pins not configured")
	// ErrShortReply indicates the board answered with fewer bytes than expected.
	ErrShortReply = errors.New("short reply")
)
