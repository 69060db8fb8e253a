package cutebot

import (
	"context"
	"math"
	"time"

	"github.com/golang/glog"
)

// Transport sends command frames to the board.
type Transport interface {
	Send(ctx context.Context, code byte, params ...byte) error
	Query(ctx context.Context, code byte, params []byte, n int) ([]byte, error)
}

// MoveCommand is the board-level form of a Move request.
type MoveCommand struct {
	DistanceMm uint16
	SpeedMmS   uint16
	Direction  byte
}

// PlanMove converts a speed in percent and a distance in cm into a MoveCommand.
// distanceCm is clamped to [0, MaxDistanceCm]. A speed <= 0 moves backward.
// The speed is scaled to mm/s first and then clamped to [MinMoveSpeed, MaxMoveSpeed],
// so anything below 40% runs at MinMoveSpeed.
func PlanMove(speed, distanceCm int) MoveCommand {
	cmd := MoveCommand{
		DistanceMm: uint16(clamp(distanceCm, 0, MaxDistanceCm) * 10),
		Direction:  MoveForward,
	}
	if speed <= 0 {
		speed, cmd.Direction = -speed, MoveBackward
	}
	cmd.SpeedMmS = uint16(clamp(speed*speedScale, MinMoveSpeed, MaxMoveSpeed))
	return cmd
}

// Params encodes the command params, multi-byte values big-endian.
func (c MoveCommand) Params() []byte {
	return []byte{
		byte(c.DistanceMm >> 8), byte(c.DistanceMm),
		byte(c.SpeedMmS >> 8), byte(c.SpeedMmS),
		c.Direction,
	}
}

// Timeout is the time budget for the board to report completion.
func (c MoveCommand) Timeout() time.Duration {
	return MoveTimeout(int(c.DistanceMm))
}

// MoveTimeout computes round(mm / 1000 * 8000 + 3000) milliseconds.
func MoveTimeout(distanceMm int) time.Duration {
	ms := math.Round(float64(distanceMm)/1000*8000 + 3000)
	return time.Duration(ms) * time.Millisecond
}

// MoveResult reports how a Move finished.
type MoveResult struct {
	MoveCommand
	// Acknowledged is true if the board reported completion,
	// false if the time budget ran out.
	Acknowledged bool
	Elapsed      time.Duration
}

// Motion controls the wheels.
type Motion struct {
	Transport Transport
	Clock     Clock
}

// SetSpeed sets the wheel speeds in percent.
// Both values must be within [-100, 100], they are not clamped.
func (m *Motion) SetSpeed(ctx context.Context, left, right int) error {
	var dir byte
	if left < 0 {
		dir |= DirLeftReverse
	}
	if right < 0 {
		dir |= DirRightReverse
	}
	return m.Transport.Send(ctx, CmdSpeed, wheelsBoth, byte(abs(left)), byte(abs(right)), dir)
}

// Stop stops both wheels.
func (m *Motion) Stop(ctx context.Context) error {
	return m.SetSpeed(ctx, 0, 0)
}

// Move drives distanceCm and blocks until the board reports completion
// or the time budget expires. Cancelling ctx aborts the wait.
func (m *Motion) Move(ctx context.Context, speed, distanceCm int) (MoveResult, error) {
	res := MoveResult{MoveCommand: PlanMove(speed, distanceCm)}
	if err := m.Start(ctx, res.MoveCommand); err != nil {
		return res, err
	}
	start := m.Clock.Now()
	acked, err := m.WaitCompletion(ctx, res.Timeout())
	res.Acknowledged, res.Elapsed = acked, m.Clock.Now().Sub(start)
	if glog.V(1) {
		glog.Infof("move %dmm@%dmm/s dir=%d done: ack=%v elapsed=%v",
			res.DistanceMm, res.SpeedMmS, res.Direction, res.Acknowledged, res.Elapsed)
	}
	return res, err
}

// Start sends the move command without waiting.
func (m *Motion) Start(ctx context.Context, cmd MoveCommand) error {
	if glog.V(1) {
		glog.Infof("move %dmm@%dmm/s dir=%d", cmd.DistanceMm, cmd.SpeedMmS, cmd.Direction)
	}
	return m.Transport.Send(ctx, CmdMove, cmd.Params()...)
}

// WaitCompletion polls the board until it acknowledges the move or
// timeout elapses, then waits CompletionGrace.
func (m *Motion) WaitCompletion(ctx context.Context, timeout time.Duration) (bool, error) {
	deadline := m.Clock.Now().Add(timeout)
	for {
		acked := m.pollStatus(ctx)
		if acked || !m.Clock.Now().Before(deadline) {
			if !acked {
				glog.Warningf("move not acknowledged within %v", timeout)
			}
			return acked, m.Clock.Sleep(ctx, CompletionGrace)
		}
		if err := m.Clock.Sleep(ctx, PollInterval); err != nil {
			return false, err
		}
	}
}

// pollStatus treats a failed query as not acknowledged.
func (m *Motion) pollStatus(ctx context.Context) bool {
	reply, err := m.Transport.Query(ctx, CmdStatus, []byte{StatusMotion}, 1)
	if err != nil {
		if ctx.Err() == nil {
			glog.Warningf("motion status: %v", err)
		}
		return false
	}
	if len(reply) < 1 {
		return false
	}
	return reply[0] != 0
}
