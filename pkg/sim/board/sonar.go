package board

import (
	"sync"
	"time"

	"periph.io/x/conn/v3/gpio"
)

// DefaultEchoDelay is the time between the end of the trigger pulse and the echo.
const DefaultEchoDelay = 50 * time.Microsecond

// Sonar simulates an ultrasonic ranger wired to a trigger and an echo pin.
type Sonar struct {
	EchoDelay time.Duration

	clock    Clock
	lock     sync.Mutex
	obstacle float64
	trigger  gpio.Level
	firedAt  time.Time
}

// NewSonar creates a Sonar with nothing in range.
func NewSonar(clock Clock) *Sonar {
	return &Sonar{EchoDelay: DefaultEchoDelay, clock: clock, obstacle: -1}
}

// SetObstacle places an obstacle cm away, a negative value removes it.
func (s *Sonar) SetObstacle(cm float64) {
	s.lock.Lock()
	s.obstacle = cm
	s.lock.Unlock()
}

// Obstacle returns the obstacle distance, negative if none.
func (s *Sonar) Obstacle() float64 {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.obstacle
}

// Trigger returns the trigger pin.
func (s *Sonar) Trigger() *Pin {
	return &Pin{name: "SIM_TRIG", sonar: s}
}

// Echo returns the echo pin.
func (s *Sonar) Echo() *Pin {
	return &Pin{name: "SIM_ECHO", sonar: s, echo: true}
}

// EchoWidth is the echo pulse length for an obstacle cm away.
// Half a centimeter is added so the reading rounds to cm.
func EchoWidth(cm float64) time.Duration {
	return time.Duration((cm + 0.5) * 20000 / 343 * float64(time.Microsecond))
}

func (s *Sonar) out(l gpio.Level) {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.trigger == gpio.High && l == gpio.Low {
		s.firedAt = s.clock.Now()
	}
	s.trigger = l
}

func (s *Sonar) read() gpio.Level {
	s.lock.Lock()
	defer s.lock.Unlock()
	if s.firedAt.IsZero() || s.obstacle < 0 {
		return gpio.Low
	}
	el := s.clock.Now().Sub(s.firedAt)
	if el >= s.EchoDelay && el < s.EchoDelay+EchoWidth(s.obstacle) {
		return gpio.High
	}
	return gpio.Low
}

// Pin is one of the sonar pins.
type Pin struct {
	name  string
	sonar *Sonar
	echo  bool
}

// String implements conn.Resource.
func (p *Pin) String() string {
	return p.name
}

// Name implements pin.Pin.
func (p *Pin) Name() string {
	return p.name
}

// In implements gpio.PinIn.
func (p *Pin) In(gpio.Pull, gpio.Edge) error {
	return nil
}

// Read implements gpio.PinIn.
func (p *Pin) Read() gpio.Level {
	if !p.echo {
		return p.sonar.triggerLevel()
	}
	return p.sonar.read()
}

// Out implements gpio.PinOut.
func (p *Pin) Out(l gpio.Level) error {
	if !p.echo {
		p.sonar.out(l)
	}
	return nil
}

func (s *Sonar) triggerLevel() gpio.Level {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.trigger
}
