package cutebot

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"periph.io/x/conn/v3/gpio"
)

type triggerPin struct {
	clock  *testClock
	levels []gpio.Level
	pulls  []gpio.Pull
	outErr error
	fired  func(at time.Time)
}

func (p *triggerPin) In(pull gpio.Pull, edge gpio.Edge) error {
	p.pulls = append(p.pulls, pull)
	return nil
}

func (p *triggerPin) Read() gpio.Level { return gpio.Low }

func (p *triggerPin) Out(l gpio.Level) error {
	if p.outErr != nil {
		return p.outErr
	}
	if n := len(p.levels); n > 0 && p.levels[n-1] == gpio.High && l == gpio.Low && p.fired != nil {
		p.fired(p.clock.now)
	}
	p.levels = append(p.levels, l)
	return nil
}

// echoPin goes high delay after the trigger pulse for width.
// A negative width keeps it high.
type echoPin struct {
	clock        *testClock
	delay, width time.Duration
	start        time.Time
	armed        bool
	riseAt       time.Time
}

func (p *echoPin) In(gpio.Pull, gpio.Edge) error { return nil }
func (p *echoPin) Out(gpio.Level) error         { return nil }

func (p *echoPin) Read() gpio.Level {
	if !p.armed {
		return gpio.Low
	}
	el := p.clock.now.Sub(p.start)
	if el >= p.delay && (p.width < 0 || el < p.delay+p.width) {
		if p.riseAt.IsZero() {
			p.riseAt = p.clock.now
		}
		return gpio.High
	}
	return gpio.Low
}

func newTestSonar(delay, width time.Duration) (*Sonar, *triggerPin, *echoPin, *testClock) {
	clock := newTestClock()
	clock.step = time.Microsecond
	echo := &echoPin{clock: clock, delay: delay, width: width}
	trig := &triggerPin{clock: clock, fired: func(at time.Time) {
		echo.start, echo.armed = at, true
	}}
	return &Sonar{Trigger: trig, Echo: echo, Clock: clock}, trig, echo, clock
}

func TestSonarDistance(t *testing.T) {
	testCases := []struct {
		name  string
		width time.Duration
		cm    int
	}{
		{"10cm", 600 * time.Microsecond, 10},
		{"100cm", 5860 * time.Microsecond, 100},
		{"120cm", 7000 * time.Microsecond, 120},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, trig, _, clock := newTestSonar(100*time.Microsecond, tc.width)
			cm, err := s.ReadDistanceCm(context.Background())
			require.NoError(t, err)
			require.Equal(t, tc.cm, cm)
			require.Equal(t, []gpio.Level{gpio.Low, gpio.High, gpio.Low}, trig.levels)
			require.Equal(t, []gpio.Pull{gpio.Float}, trig.pulls)
			require.Equal(t, []time.Duration{triggerSettle, triggerPulse}, clock.sleeps)
		})
	}
}

func TestSonarOutOfRange(t *testing.T) {
	t.Run("echo never rises", func(t *testing.T) {
		s, _, _, _ := newTestSonar(time.Hour, time.Millisecond)
		cm, err := s.ReadDistanceCm(context.Background())
		require.NoError(t, err)
		require.Equal(t, DistanceOutOfRange, cm)
	})
	t.Run("echo stays high", func(t *testing.T) {
		s, _, echo, clock := newTestSonar(50*time.Microsecond, -1)
		cm, err := s.ReadDistanceCm(context.Background())
		require.NoError(t, err)
		require.Equal(t, DistanceOutOfRange, cm)
		require.False(t, echo.riseAt.IsZero())
		el := clock.now.Sub(echo.riseAt)
		require.True(t, el > DefaultEchoTimeout && el < DefaultEchoTimeout+10*time.Microsecond, "gave up after %v", el)
	})
	t.Run("echo too long", func(t *testing.T) {
		s, _, _, _ := newTestSonar(50*time.Microsecond, 8*time.Millisecond)
		cm, err := s.ReadDistanceCm(context.Background())
		require.NoError(t, err)
		require.Equal(t, DistanceOutOfRange, cm)
	})
}

func TestSonarErrors(t *testing.T) {
	s := &Sonar{Clock: newTestClock()}
	_, err := s.ReadDistanceCm(context.Background())
	require.Equal(t, ErrNoSonar, err)

	pinErr := errors.New("gpio busy")
	s, trig, _, _ := newTestSonar(0, time.Millisecond)
	trig.outErr = pinErr
	_, err = s.ReadDistanceCm(context.Background())
	require.Equal(t, pinErr, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s, _, _, _ = newTestSonar(0, time.Millisecond)
	_, err = s.ReadDistanceCm(ctx)
	require.Equal(t, context.Canceled, err)
}

func TestEchoToCm(t *testing.T) {
	require.Equal(t, 0, EchoToCm(0))
	require.Equal(t, 99, EchoToCm(5830*time.Microsecond))
	require.Equal(t, 100, EchoToCm(5831*time.Microsecond))
	require.Equal(t, 124, EchoToCm(DefaultEchoTimeout))
}
