package sh

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/cutebot.go/pkg/l1"
)

// ErrNoController is reported when discovery finds nothing to connect.
var ErrNoController = errors.New("no controller discovered")

// ParseConnectArgs interprets the args of connect. It returns a complete
// ref for "TYPE ID" or "TYPE/ID", otherwise a discovery filter: by type
// for "TYPE", nil for no args.
func ParseConnectArgs(args []string) (*l1.ControllerRef, func(l1.ControllerInfo) bool, error) {
	switch {
	case len(args) >= 2:
		ref := l1.ControllerRef{Type: args[0], ID: args[1]}
		if !ref.IsValid() {
			return nil, nil, fmt.Errorf("invalid controller reference %q", ref.Name())
		}
		return &ref, nil, nil
	case len(args) == 1 && strings.Contains(args[0], "/"):
		ref, err := l1.ParseControllerRef(args[0])
		if err != nil {
			return nil, nil, err
		}
		return &ref, nil, nil
	case len(args) == 1:
		typ := args[0]
		return nil, func(info l1.ControllerInfo) bool { return info.Ref.Type == typ }, nil
	}
	return nil, nil, nil
}

var (
	// DiscoverCmd lists controllers.
	DiscoverCmd = ishell.Cmd{
		Name:    "discover",
		Aliases: []string{"list", "l"},
		Help:    "[TYPE]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			var filter func(l1.ControllerInfo) bool
			if len(c.Args) > 0 {
				_, filter, _ = ParseConnectArgs(c.Args[:1])
			}
			infoList, err := s.DiscoverControllers(filter)
			if err != nil {
				c.Err(err)
				return
			}
			if s.OutputJSON {
				out, err := json.Marshal(infoList)
				if err != nil {
					c.Err(err)
					return
				}
				c.Println(string(out))
				return
			}
			if len(infoList) == 0 {
				c.Println("No controllers found")
			}
			for _, info := range infoList {
				c.Println(FormatInfo(info))
			}
		},
	}

	// ConnectCmd connects a controller, discovering it when not fully specified.
	ConnectCmd = ishell.Cmd{
		Name:    "connect",
		Aliases: []string{"c"},
		Help:    "[TYPE [ID] | TYPE/ID]",
		Func: func(c *ishell.Context) {
			s := ShellFrom(c)
			ref, filter, err := ParseConnectArgs(c.Args)
			if err != nil {
				c.Err(err)
				return
			}
			if ref == nil {
				info, err := s.SelectController(filter)
				if err != nil {
					c.Err(err)
					return
				}
				if info == nil {
					c.Err(ErrNoController)
					return
				}
				ref = &info.Ref
			}
			if err := s.Connect(*ref); err != nil {
				c.Err(err)
			}
		},
	}

	// DisconnectCmd closes the current connection.
	DisconnectCmd = ishell.Cmd{
		Name:    "disconnect",
		Aliases: []string{"d"},
		Func: func(c *ishell.Context) {
			ShellFrom(c).Disconnect()
		},
	}
)
