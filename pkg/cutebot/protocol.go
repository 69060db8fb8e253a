package cutebot

import "time"

// Command codes understood by the board.
const (
	CmdSpeed    byte = 0x10
	CmdLED      byte = 0x20
	CmdServo    byte = 0x40
	CmdTracking byte = 0x60
	CmdMove     byte = 0x84
	CmdStatus   byte = 0xA0
)

// StatusMotion is the CmdStatus param selecting the move-completed flag.
const StatusMotion byte = 0x05

// Motion limits and timings.
const (
	MaxDistanceCm = 6000
	MinMoveSpeed  = 200 // mm/s
	MaxMoveSpeed  = 500 // mm/s

	// speed percent to mm/s.
	speedScale = 5

	// PollInterval is the wait between two completion polls.
	PollInterval = 10 * time.Millisecond
	// CompletionGrace is the wait after a move completes or times out.
	CompletionGrace = 500 * time.Millisecond
)

// Direction flags.
const (
	DirLeftReverse  byte = 0x01
	DirRightReverse byte = 0x02

	MoveForward  byte = 0
	MoveBackward byte = 3
)

// param 0 of CmdSpeed, both wheels are addressed.
const wheelsBoth byte = 2
