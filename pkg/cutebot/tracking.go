package cutebot

import (
	"context"
	"strings"
)

// TrackSensor flags, combine with bitwise OR.
const (
	TrackFarLeft  TrackState = 0x01
	TrackLeft     TrackState = 0x02
	TrackRight    TrackState = 0x04
	TrackFarRight TrackState = 0x08
)

// TrackState is the bitmask of line sensors currently seeing the line.
type TrackState byte

var trackNames = []struct {
	flag TrackState
	name string
}{
	{TrackFarLeft, "FL"},
	{TrackLeft, "L"},
	{TrackRight, "R"},
	{TrackFarRight, "FR"},
}

// Has reports whether all sensors in mask are active.
func (s TrackState) Has(mask TrackState) bool {
	return s&mask == mask
}

// String implements Stringer.
func (s TrackState) String() string {
	var names []string
	for _, n := range trackNames {
		if s&n.flag != 0 {
			names = append(names, n.name)
		}
	}
	if len(names) == 0 {
		return "-"
	}
	return strings.Join(names, "|")
}

// Tracking reads the line sensors.
type Tracking struct {
	Transport Transport
}

// ReadTracking returns the current sensor bitmask.
func (t *Tracking) ReadTracking(ctx context.Context) (TrackState, error) {
	reply, err := t.Transport.Query(ctx, CmdTracking, []byte{0x00}, 1)
	if err != nil {
		return 0, err
	}
	if len(reply) < 1 {
		return 0, ErrShortReply
	}
	return TrackState(reply[0]), nil
}

// IsOnTrack reads the sensors and reports whether every sensor
// in mask sees the line. A single unset sensor makes it false.
func (t *Tracking) IsOnTrack(ctx context.Context, mask TrackState) (bool, error) {
	state, err := t.ReadTracking(ctx)
	if err != nil {
		return false, err
	}
	return state.Has(mask), nil
}
