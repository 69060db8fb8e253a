package cutebot

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/abiosoft/ishell"

	"github.com/robotalks/cutebot.go/pkg/cli/sh"
	"github.com/robotalks/cutebot.go/pkg/cutebot"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

var (
	// SpeedCmd exposes CutebotSpeed command.
	SpeedCmd = ishell.Cmd{
		Name:    "cb.speed",
		Aliases: []string{"cbs"},
		Help:    "LEFT(%) RIGHT(%)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			vals, err := intArgs(c.Args, "LEFT", "RIGHT")
			if err != nil {
				c.Err(err)
				return
			}
			for _, v := range vals {
				if v < -100 || v > 100 {
					c.Err(fmt.Errorf("speed %d out of [-100, 100]", v))
					return
				}
			}
			sh.DoCommand(c, &msgs.CutebotSpeed{Left: int32(vals[0]), Right: int32(vals[1])})
		}),
	}

	// StopCmd exposes CutebotStop command.
	StopCmd = ishell.Cmd{
		Name:    "cb.stop",
		Aliases: []string{"cbx"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.CutebotStop{})
		}),
	}

	// MoveCmd exposes CutebotMove command.
	MoveCmd = ishell.Cmd{
		Name:    "cb.move",
		Aliases: []string{"cbm"},
		Help:    "SPEED(%, <=0 backward) DISTANCE(cm)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			vals, err := intArgs(c.Args, "SPEED", "DISTANCE")
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msgs.CutebotMove{Speed: int32(vals[0]), DistanceCm: int32(vals[1])})
		}),
	}

	// ServoTypeCmd exposes CutebotServoType command.
	ServoTypeCmd = ishell.Cmd{
		Name:    "cb.servo-type",
		Aliases: []string{"cbst"},
		Help:    "SERVO(S1-S4) TYPE(180|270|360)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("SERVO and TYPE required"))
				return
			}
			servo, err := parseServo(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			typ, err := strconv.ParseUint(c.Args[1], 10, 32)
			if err != nil {
				c.Err(fmt.Errorf("Invalid TYPE: %v", err))
				return
			}
			sh.DoCommand(c, &msgs.CutebotServoType{Servo: uint32(servo), FullScale: uint32(typ)})
		}),
	}

	// ServoCmd exposes CutebotServoAngle command.
	ServoCmd = ishell.Cmd{
		Name:    "cb.servo",
		Aliases: []string{"cbsa"},
		Help:    "SERVO(S1-S4) ANGLE(degrees)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("SERVO and ANGLE required"))
				return
			}
			servo, err := parseServo(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			angle, err := strconv.ParseFloat(c.Args[1], 32)
			if err != nil {
				c.Err(fmt.Errorf("Invalid ANGLE: %v", err))
				return
			}
			sh.DoCommand(c, &msgs.CutebotServoAngle{Servo: uint32(servo), Angle: float32(angle)})
		}),
	}

	// LEDCmd exposes CutebotLED command.
	LEDCmd = ishell.Cmd{
		Name:    "cb.led",
		Aliases: []string{"cbl"},
		Help:    "LED(left|right|both) COLOR(name|#rrggbb)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 2 {
				c.Err(fmt.Errorf("LED and COLOR required"))
				return
			}
			led, err := cutebot.ParseLED(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			color, err := cutebot.ParseColor(c.Args[1])
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msgs.CutebotLED{Led: uint32(led), Color: uint32(color)})
		}),
	}

	// TrackingCmd exposes CutebotTrackingQuery command.
	TrackingCmd = ishell.Cmd{
		Name:    "cb.tracking",
		Aliases: []string{"cbt"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.CutebotTrackingQuery{})
		}),
	}

	// OnTrackCmd exposes CutebotOnTrackQuery command.
	OnTrackCmd = ishell.Cmd{
		Name:    "cb.ontrack",
		Aliases: []string{"cbot"},
		Help:    "MASK(e.g. L|R or 0x06)",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			if len(c.Args) < 1 {
				c.Err(fmt.Errorf("MASK required"))
				return
			}
			mask, err := cutebot.ParseTrackState(c.Args[0])
			if err != nil {
				c.Err(err)
				return
			}
			sh.DoCommand(c, &msgs.CutebotOnTrackQuery{Mask: uint32(mask)})
		}),
	}

	// DistanceCmd exposes CutebotDistanceQuery command.
	DistanceCmd = ishell.Cmd{
		Name:    "cb.distance",
		Aliases: []string{"cbd"},
		Help:    "",
		Func: sh.MustBeConnected(func(c *ishell.Context) {
			sh.DoCommand(c, &msgs.CutebotDistanceQuery{})
		}),
	}
)

func intArgs(args []string, names ...string) ([]int, error) {
	if len(args) < len(names) {
		return nil, fmt.Errorf("%s required", strings.Join(names, " and "))
	}
	vals := make([]int, len(names))
	for n, name := range names {
		v, err := strconv.Atoi(args[n])
		if err != nil {
			return nil, fmt.Errorf("Invalid %s: %v", name, err)
		}
		vals[n] = v
	}
	return vals, nil
}

func parseServo(s string) (cutebot.ServoID, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToUpper(s), "S"), 10, 8)
	if err != nil || !cutebot.ServoID(v).IsValid() {
		return 0, cutebot.ErrInvalidServo
	}
	return cutebot.ServoID(v), nil
}

func init() {
	sh.AddCmds(
		&SpeedCmd,
		&StopCmd,
		&MoveCmd,
		&ServoTypeCmd,
		&ServoCmd,
		&LEDCmd,
		&TrackingCmd,
		&OnTrackCmd,
		&DistanceCmd,
	)
}
