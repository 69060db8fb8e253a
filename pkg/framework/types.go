package framework

import (
	"context"
	"time"
)

// Named is an abstraction for things with a name.
type Named interface {
	Name() string
}

// Runnable defines a generic interface for background runners.
type Runnable interface {
	Run(context.Context) error
}

// Message is anything posted to the loop, a command received from
// a registrar, an event from a connection or a background result.
type Message interface {
	// NewMessage creates an empty message.
	NewMessage() Message
}

// Controller is invoked once per loop iteration at its priority level.
type Controller interface {
	Control(ControlContext) error
}

// ControlFunc defines the func form of Controller.
type ControlFunc func(ControlContext) error

// Control implements Controller.
func (f ControlFunc) Control(ctx ControlContext) error {
	return f(ctx)
}

// TimeSource provides the time for controlling logic.
type TimeSource interface {
	Time() time.Time
}

// ControlContext is the state of the running iteration.
type ControlContext interface {
	TimeSource
	// Context carries the LoopControl, see LoopCtlOf.
	Context() context.Context
	PriorityLevel() int
	// Messages are collected when the iteration starts; anything not
	// taken is passed on to the lower priority levels.
	Messages() MessageStore

	LoopControl
}

// PriorityLevels is the total levels of priorities.
const PriorityLevels int = 16

// Predefined priority levels, lower runs first.
const (
	PrLvHigh   int = 4
	PrLvNormal int = 8
	PrLvLow    int = 12
	PrLvIdle   int = PriorityLevels - 1

	// PrLvControl handles commands.
	PrLvControl = PrLvNormal
	// PrLvAcuate drives outputs once commands are handled.
	PrLvAcuate = PrLvLow
	// PrLvPostProc reports results and events.
	PrLvPostProc = PrLvIdle - 1
)

// LoopControl is the part of the loop usable from other goroutines.
type LoopControl interface {
	// PostMessage enqueues the message for the next iteration.
	PostMessage(Message)
	// TriggerNext runs the next iteration without waiting for the interval.
	TriggerNext()
}

// MessageStore provides access to the messages of an iteration.
type MessageStore interface {
	ProcessMessages(MessageProcessor)
}

// MessageProcessor is used by MessageStore to process messages.
type MessageProcessor interface {
	ProcessMessage(MessageProcessingContext)
}

// ProcessMessageFunc is the func form of MessageProcessor.
type ProcessMessageFunc func(MessageProcessingContext)

// ProcessMessage implements MessageProcessor.
func (f ProcessMessageFunc) ProcessMessage(mc MessageProcessingContext) {
	f(mc)
}

// MessageProcessingContext provides context for current message.
type MessageProcessingContext interface {
	CurrentMessage() Message
	// MessageTaken removes the message from the store.
	MessageTaken()
}
