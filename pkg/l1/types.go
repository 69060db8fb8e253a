package l1

import (
	"context"
	"fmt"
	"strings"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
)

// Registrar makes an L1 controller reachable by L2 components.
// Commands arrive in the loop as CommandMsg.
type Registrar interface {
	// SendEvent sends an event to every connected L2 component.
	SendEvent(context.Context, fx.Message) error
}

// Command is a received command waiting for its reply.
type Command interface {
	Msg() fx.Message
	// Done sends the reply, CommandOK, CommandErr or a query result.
	Done(fx.Message) error
}

// CommandMsg wraps a Command as a Message.
type CommandMsg struct {
	Command Command
}

// NewMessage implements Message.
func (m *CommandMsg) NewMessage() fx.Message { return &CommandMsg{} }

// ControllerRef is a reference to an L1 controller.
type ControllerRef struct {
	// Type is controller type (robot type).
	Type string `json:"type"`
	// ID is unique ID of the device.
	ID string `json:"id"`
}

// ParseControllerRef parses TYPE/ID.
func ParseControllerRef(s string) (ControllerRef, error) {
	items := strings.Split(s, "/")
	ref := ControllerRef{Type: items[0]}
	if len(items) == 2 {
		ref.ID = items[1]
	}
	if len(items) != 2 || !ref.IsValid() {
		return ControllerRef{}, fmt.Errorf("invalid controller reference %q, expect TYPE/ID", s)
	}
	return ref, nil
}

// Name is TYPE/ID.
func (r ControllerRef) Name() string {
	return r.Type + "/" + r.ID
}

// String implements Stringer.
func (r ControllerRef) String() string {
	return r.Name()
}

// IsValid indicates ControllerRef is valid.
func (r ControllerRef) IsValid() bool {
	return r.Type != "" && r.ID != "" && !strings.Contains(r.Type+r.ID, "/")
}

// ControllerMeta provides metadata for L1 controller.
type ControllerMeta struct {
	Description string            `json:"description,omitempty"`
	Labels      map[string]string `json:"labels,omitempty"`
}

// ControllerInfo provides information of an L1 controller.
type ControllerInfo struct {
	Ref  ControllerRef  `json:"ref"`
	Meta ControllerMeta `json:"meta"`
}

// Connector is used by L2 components to connect to an L1 controller.
type Connector interface {
	// Discover enumerates reachable controllers.
	Discover(context.Context) ([]ControllerInfo, error)
	// Connect connects to the specified controller.
	Connect(context.Context, ControllerRef) (ControllerConn, error)
}

// ControllerConn is the connection to a controller. It usually also
// implements framework.LoopAdder to receive replies and events, and
// io.Closer.
type ControllerConn interface {
	DoCommand(fx.Message) CommandFuture
}

// Result is a reply or the error of a command, Err is set
// when the reply is CommandErr.
type Result struct {
	Msg fx.Message
	Err error
}

// CommandFuture is the future of sent command.
type CommandFuture interface {
	ResultChan() <-chan Result
}
