package board

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/physic"

	"github.com/robotalks/cutebot.go/pkg/cutebot"
	"github.com/robotalks/cutebot.go/pkg/l0/comm"
	"github.com/robotalks/cutebot.go/pkg/sim"
)

// ErrNoDevice is returned for transactions to an address other than the board's.
var ErrNoDevice = errors.New("no device at address")

// MaxHistory is the number of executed frames kept by the board.
const MaxHistory = 1024

// Clock provides the simulation time.
type Clock interface {
	Now() time.Time
}

// Wheels is the last wheel speed command, in percent.
type Wheels struct {
	Left, Right int
}

// Board is a simulated Cutebot Pro expansion board.
type Board struct {
	Model Model
	Addr  uint16
	Sonar *Sonar

	clock    Clock
	lock     sync.Mutex
	parser   comm.Parser
	pose     sim.Pose2D
	motion   state
	moving   bool
	moveDone bool
	reply    []byte
	wheels   Wheels
	servos   [cutebot.ServoCount]byte
	leds     [2]cutebot.Color
	tracking cutebot.TrackState
	history  []comm.Frame
	unknown  int
}

// New creates a Board at the default address.
func New(clock Clock) *Board {
	return &Board{
		Model: DefaultModel,
		Addr:  comm.BoardAddr,
		Sonar: NewSonar(clock),
		clock: clock,
	}
}

// String implements i2c.Bus.
func (b *Board) String() string {
	return "cutebot-sim"
}

// SetSpeed implements i2c.Bus.
func (b *Board) SetSpeed(physic.Frequency) error {
	return nil
}

// Close implements i2c.BusCloser.
func (b *Board) Close() error {
	return nil
}

// Tx implements i2c.Bus. Bytes written are decoded as command frames and
// a read returns the answer prepared by the last query command.
func (b *Board) Tx(addr uint16, w, r []byte) error {
	if addr != b.Addr {
		return fmt.Errorf("%w 0x%02x", ErrNoDevice, addr)
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	now := b.clock.Now()
	b.update(now)
	for _, f := range b.parser.ParseBytes(w) {
		b.execute(now, f)
	}
	if len(r) > 0 {
		n := copy(r, b.reply)
		for i := n; i < len(r); i++ {
			r[i] = 0
		}
		b.reply = nil
	}
	return nil
}

// Pose returns the estimated pose of the robot.
func (b *Board) Pose() sim.Pose2D {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.update(b.clock.Now())
	return b.pose
}

// SetPose places the robot and stops any motion.
func (b *Board) SetPose(pose sim.Pose2D) {
	b.lock.Lock()
	b.pose, b.motion, b.moving = pose, nil, false
	b.lock.Unlock()
}

// Moving tells whether a move command is in progress.
func (b *Board) Moving() bool {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.update(b.clock.Now())
	return b.moving
}

// Wheels returns the last wheel speed command.
func (b *Board) Wheels() Wheels {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.wheels
}

// Servo returns the last raw angle sent to the servo.
func (b *Board) Servo(id cutebot.ServoID) byte {
	if !id.IsValid() {
		return 0
	}
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.servos[id-cutebot.S1]
}

// LED returns the color of the left or right LED.
func (b *Board) LED(led cutebot.LED) cutebot.Color {
	b.lock.Lock()
	defer b.lock.Unlock()
	if led == cutebot.LEDRight {
		return b.leds[1]
	}
	return b.leds[0]
}

// SetTracking sets what the line sensors see.
func (b *Board) SetTracking(state cutebot.TrackState) {
	b.lock.Lock()
	b.tracking = state
	b.lock.Unlock()
}

// History returns the most recent executed frames.
func (b *Board) History() []comm.Frame {
	b.lock.Lock()
	defer b.lock.Unlock()
	return append([]comm.Frame(nil), b.history...)
}

// Errors returns the number of malformed or unknown frames and dropped bytes.
func (b *Board) Errors() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.unknown + b.parser.Errors()
}

func (b *Board) update(now time.Time) {
	if s := b.motion; s != nil {
		b.pose, b.motion = s.estimate(now)
	}
}

func (b *Board) execute(now time.Time, f *comm.Frame) {
	if glog.V(2) {
		glog.Infof("%s exec 0x%02x % x", b, f.Code, f.Params)
	}
	if !b.apply(now, f) {
		b.unknown++
		glog.Warningf("%s: unsupported frame 0x%02x % x", b, f.Code, f.Params)
		return
	}
	b.history = append(b.history, *f)
	if n := len(b.history); n > MaxHistory {
		b.history = append(b.history[:0], b.history[n-MaxHistory:]...)
	}
}

func (b *Board) apply(now time.Time, f *comm.Frame) bool {
	p := f.Params
	switch f.Code {
	case cutebot.CmdSpeed:
		if len(p) < 4 {
			return false
		}
		b.wheels = Wheels{Left: int(p[1]), Right: int(p[2])}
		if p[3]&cutebot.DirLeftReverse != 0 {
			b.wheels.Left = -b.wheels.Left
		}
		if p[3]&cutebot.DirRightReverse != 0 {
			b.wheels.Right = -b.wheels.Right
		}
		scale := b.Model.FullSpeed / 100
		b.moving = false
		b.motion = newWheelState(b.pose, now,
			float64(b.wheels.Left)*scale, float64(b.wheels.Right)*scale, b.Model.WheelBase)
	case cutebot.CmdMove:
		if len(p) < 5 {
			return false
		}
		dist := float64(int(p[0])<<8 | int(p[1]))
		speed := float64(int(p[2])<<8 | int(p[3]))
		if p[4] == cutebot.MoveBackward {
			speed = -speed
		}
		b.wheels = Wheels{}
		b.moveDone, b.moving = dist == 0, dist > 0
		if dist == 0 {
			b.motion = nil
			break
		}
		s := newRampState(b.motion, b.pose, now, speed, b.Model.Accel, dist)
		s.arrived = func() { b.moving, b.moveDone = false, true }
		b.motion = s
	case cutebot.CmdStatus:
		if len(p) < 1 || p[0] != cutebot.StatusMotion {
			return false
		}
		b.reply = []byte{0}
		if b.moveDone {
			b.reply[0] = 1
		}
	case cutebot.CmdTracking:
		b.reply = []byte{byte(b.tracking)}
	case cutebot.CmdServo:
		if len(p) < 2 || !cutebot.ServoID(p[0]).IsValid() {
			return false
		}
		b.servos[p[0]-byte(cutebot.S1)] = p[1]
	case cutebot.CmdLED:
		if len(p) < 4 || !cutebot.LED(p[0]).IsValid() {
			return false
		}
		c := cutebot.RGB(p[1], p[2], p[3])
		switch cutebot.LED(p[0]) {
		case cutebot.LEDLeft:
			b.leds[0] = c
		case cutebot.LEDRight:
			b.leds[1] = c
		default:
			b.leds[0], b.leds[1] = c, c
		}
	default:
		return false
	}
	return true
}
