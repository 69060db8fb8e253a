package see

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cutebot.go/pkg/sim"
)

func TestAdapterChanges(t *testing.T) {
	pose := sim.Pose2D{Pos2D: sim.Pos2D{X: 10, Y: 20}}
	showObstacle := true
	src := SourceFunc(func() []Object {
		objs := []Object{ObjectAt("bot", "cutebot/sim", pose, 50).Style("fill", "#ff0000")}
		if showObstacle {
			objs = append(objs, NewObject("wall", "wall").At(100, 0).Radius(5))
		}
		return objs
	})
	a := NewAdapter(&Config{W: 200, H: 100}, src, nil)

	msgs := a.Changes()
	require.Len(t, msgs, 7)
	require.Equal(t, ActionReset, msgs[0].Action)
	require.Equal(t, &Pos{X: -100, Y: -50}, msgs[1].Object[PropOrigin])
	require.Equal(t, "cutebot.sim", msgs[5].Object.ID())
	require.Equal(t, map[string]string{"fill": "#ff0000"}, msgs[5].Object[PropStyle])

	require.Empty(t, a.Changes())

	pose = pose.Advance(30)
	msgs = a.Changes()
	require.Len(t, msgs, 1)
	require.Equal(t, &Pos{X: 40, Y: 20}, msgs[0].Object[PropOrigin])

	showObstacle = false
	msgs = a.Changes()
	require.Equal(t, []Message{{Action: ActionRemove, RemoveID: "wall"}}, msgs)
}

func TestAdapterReport(t *testing.T) {
	var out bytes.Buffer
	a := NewAdapter(&Config{W: 10, H: 10}, nil, &out)
	require.NoError(t, a.ReportChanges(nil))
	var msgs []Message
	require.NoError(t, json.Unmarshal(out.Bytes(), &msgs))
	require.Len(t, msgs, 5)

	out.Reset()
	require.NoError(t, a.ReportChanges(nil))
	require.Empty(t, out.String())

	a = (&Config{Disabled: true}).NewAdapter(nil)
	require.Nil(t, a.Out)
	require.NoError(t, a.ReportChanges(nil))
}
