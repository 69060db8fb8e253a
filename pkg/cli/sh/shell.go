package sh

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/abiosoft/ishell"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	env "github.com/robotalks/cutebot.go/pkg/l1/env/connector"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

// Errors
var (
	ErrNotConnected   = errors.New("not connected")
	ErrCommandTimeout = errors.New("command timeout")
)

// Shell is an ishell session talking to one controller at a time.
type Shell struct {
	Interactive    bool
	OutputJSON     bool
	AutoConnect    bool
	CommandTimeout time.Duration

	Shell  *ishell.Shell
	Config *env.Config
	Loop   *ConnLoop
}

// ConnLoop runs the loop receiving replies and events of a connection.
type ConnLoop struct {
	Ref    l1.ControllerRef
	Conn   l1.ControllerConn
	Loop   *fx.Loop
	Cancel context.CancelFunc
}

const (
	shellKey          = "$shell"
	unconnectedPrompt = "[none] > "
)

var (
	evalOnly       bool
	outputJSON     bool
	commandTimeout = 2 * time.Second

	commands = []*ishell.Cmd{
		&DiscoverCmd,
		&ConnectCmd,
		&DisconnectCmd,
	}
)

func init() {
	flag.BoolVar(&evalOnly, "e", evalOnly, "Evaluate the arguments as a command and exit.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print output in JSON.")
	flag.DurationVar(&commandTimeout, "timeout", commandTimeout, "Time to wait for a command reply.")
}

// AddCmds registers more commands, called from init of command packages.
func AddCmds(cmds ...*ishell.Cmd) {
	commands = append(commands, cmds...)
}

// New creates a Shell with all registered commands.
func New(conf *env.Config) *Shell {
	s := &Shell{
		Interactive:    !evalOnly,
		OutputJSON:     outputJSON,
		CommandTimeout: commandTimeout,
		Shell:          ishell.New(),
		Config:         conf,
	}
	s.Shell.Set(shellKey, s)
	s.Shell.SetPrompt(unconnectedPrompt)
	for _, cmd := range commands {
		s.Shell.AddCmd(cmd)
	}
	return s
}

// ShellFrom gets Shell from ishell context.
func ShellFrom(c *ishell.Context) *Shell {
	return c.Get(shellKey).(*Shell)
}

// MustBeConnected rejects the command when no controller is connected.
func MustBeConnected(fn func(c *ishell.Context)) func(c *ishell.Context) {
	return func(c *ishell.Context) {
		if ShellFrom(c).Loop == nil {
			c.Err(ErrNotConnected)
			return
		}
		fn(c)
	}
}

// WithAutoConnect sets AutoConnect.
func (s *Shell) WithAutoConnect(en bool) *Shell {
	s.AutoConnect = en
	return s
}

// DoCommand sends msg to the connected controller and prints the reply.
func DoCommand(c *ishell.Context, msg fx.Message) error {
	s := ShellFrom(c)
	reply, err := s.Do(msg)
	switch {
	case err != nil:
		c.Err(err)
	case !s.OutputJSON && isCommandOK(reply):
		c.Println("OK")
	default:
		c.Println(FormatMessage(reply, s.OutputJSON))
	}
	return err
}

// Do sends msg to the connected controller and waits for the reply.
func (s *Shell) Do(msg fx.Message) (msgs.SerializableMessage, error) {
	if s.Loop == nil {
		return nil, ErrNotConnected
	}
	ctx := context.Background()
	if s.CommandTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.CommandTimeout)
		defer cancel()
	}
	return WaitReply(ctx, s.Loop.Conn.DoCommand(msg))
}

// WaitReply waits for the reply of a command.
func WaitReply(ctx context.Context, f l1.CommandFuture) (msgs.SerializableMessage, error) {
	select {
	case res := <-f.ResultChan():
		if res.Err != nil {
			return nil, res.Err
		}
		reply, ok := res.Msg.(msgs.SerializableMessage)
		if !ok {
			return nil, msgs.ErrNotSerializable
		}
		return reply, nil
	case <-ctx.Done():
		if ctx.Err() == context.DeadlineExceeded {
			return nil, ErrCommandTimeout
		}
		return nil, ctx.Err()
	}
}

func isCommandOK(msg fx.Message) bool {
	_, ok := msg.(*msgs.CommandOK)
	return ok
}

// DiscoverControllers lists the controllers accepted by filter, nil accepts all.
func (s *Shell) DiscoverControllers(filter func(l1.ControllerInfo) bool) ([]l1.ControllerInfo, error) {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return nil, err
	}
	ctx, cancel := s.connectContext()
	defer cancel()
	infoList, err := connector.Discover(ctx)
	if err != nil {
		return nil, err
	}
	return FilterControllers(infoList, filter), nil
}

// FilterControllers keeps the controllers accepted by filter, sorted by name.
func FilterControllers(infoList []l1.ControllerInfo, filter func(l1.ControllerInfo) bool) []l1.ControllerInfo {
	items := make([]l1.ControllerInfo, 0, len(infoList))
	for _, info := range infoList {
		if filter == nil || filter(info) {
			items = append(items, info)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].Ref.Name() < items[j].Ref.Name() })
	return items
}

// SelectController discovers controllers and asks for a choice if there
// are more than one. It returns nil if none is found.
func (s *Shell) SelectController(filter func(l1.ControllerInfo) bool) (*l1.ControllerInfo, error) {
	infoList, err := s.DiscoverControllers(filter)
	switch {
	case err != nil:
		return nil, err
	case len(infoList) == 0:
		return nil, nil
	case len(infoList) == 1:
		return &infoList[0], nil
	case !s.Interactive:
		return nil, fmt.Errorf("%d controllers discovered, pick one with TYPE/ID", len(infoList))
	}
	items := make([]string, len(infoList))
	for n, info := range infoList {
		items[n] = FormatInfo(info)
	}
	index := s.Shell.MultiChoice(items, "Which one to connect?")
	if index < 0 {
		return nil, nil
	}
	return &infoList[index], nil
}

func (s *Shell) connectContext() (context.Context, context.CancelFunc) {
	if s.Config.ConnectTimeout > 0 {
		return context.WithTimeout(context.Background(), s.Config.ConnectTimeout)
	}
	return context.WithCancel(context.Background())
}

// Connect connects the controller and replaces the current connection.
func (s *Shell) Connect(ref l1.ControllerRef) error {
	connector, err := s.Config.NewConnector()
	if err != nil {
		return err
	}
	ctx, cancel := s.connectContext()
	conn, err := connector.Connect(ctx, ref)
	cancel()
	if err != nil {
		return err
	}
	s.Disconnect()
	s.Loop = s.startLoop(ref, conn)
	s.Shell.SetPrompt(ref.Name() + " > ")
	return nil
}

func (s *Shell) startLoop(ref l1.ControllerRef, conn l1.ControllerConn) *ConnLoop {
	cl := &ConnLoop{Ref: ref, Conn: conn, Loop: fx.NewLoop()}
	if adder, ok := conn.(fx.LoopAdder); ok {
		cl.Loop.Add(adder)
	}
	cl.Loop.AddController(fx.PrLvPostProc, fx.ControlFunc(s.printEvents))
	var ctx context.Context
	ctx, cl.Cancel = context.WithCancel(context.Background())
	go cl.Loop.Run(ctx)
	return cl
}

// Close stops the loop and closes the connection.
func (l *ConnLoop) Close() {
	l.Cancel()
	if closer, ok := l.Conn.(io.Closer); ok {
		closer.Close()
	}
}

// Disconnect closes the current connection if any.
func (s *Shell) Disconnect() {
	if s.Loop == nil {
		return
	}
	s.Loop.Close()
	s.Loop = nil
	s.Shell.SetPrompt(unconnectedPrompt)
}

// printEvents prints events received from the controller.
func (s *Shell) printEvents(cc fx.ControlContext) error {
	cc.Messages().ProcessMessages(fx.ProcessMessageFunc(func(mctx fx.MessageProcessingContext) {
		if msg, ok := mctx.CurrentMessage().(msgs.SerializableMessage); ok {
			mctx.MessageTaken()
			s.Shell.Println(FormatMessage(msg, s.OutputJSON))
		}
	}))
	return nil
}

// FormatInfo formats ControllerInfo as "TYPE/ID: description [k=v ...]".
func FormatInfo(info l1.ControllerInfo) string {
	var sb strings.Builder
	sb.WriteString(info.Ref.Name())
	if info.Meta.Description != "" {
		sb.WriteString(": " + info.Meta.Description)
	}
	if len(info.Meta.Labels) > 0 {
		labels := make([]string, 0, len(info.Meta.Labels))
		for key, val := range info.Meta.Labels {
			labels = append(labels, key+"="+val)
		}
		sort.Strings(labels)
		sb.WriteString(" [" + strings.Join(labels, " ") + "]")
	}
	return sb.String()
}

// FormatMessage formats a message as "TypeName fields" or JSON.
func FormatMessage(msg msgs.SerializableMessage, asJSON bool) string {
	if asJSON {
		out, err := json.Marshal(msg.Serializable())
		if err != nil {
			return err.Error()
		}
		return string(out)
	}
	return fmt.Sprintf("%s %s",
		reflect.Indirect(reflect.ValueOf(msg)).Type().Name(),
		msg.Serializable().String())
}

// Run connects if configured, then evaluates args or starts the interactive shell.
func (s *Shell) Run(args ...string) {
	if s.AutoConnect && s.Config.Ref.IsValid() {
		if s.Interactive {
			s.Shell.Printf("Connecting %s ...\n", s.Config.Ref.Name())
		}
		if err := s.Connect(s.Config.Ref); err != nil {
			log.Fatalf("connect %s: %v", s.Config.Ref.Name(), err)
		}
	}
	switch {
	case len(args) > 0:
		if err := s.Shell.Process(args...); err != nil {
			log.Fatalln(err)
		}
	case s.Interactive:
		s.Shell.Run()
	default:
		log.Fatalln("command expected")
	}
}

// Main is a helper to provide a single call in main.
func Main() {
	flag.Parse()
	New(env.NewConfig()).WithAutoConnect(true).Run(flag.Args()...)
}
