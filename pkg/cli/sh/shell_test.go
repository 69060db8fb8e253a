package sh

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cutebot.go/pkg/l1"
	env "github.com/robotalks/cutebot.go/pkg/l1/env/connector"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

type resultFuture chan l1.Result

func (f resultFuture) ResultChan() <-chan l1.Result { return f }

func TestFormatMessage(t *testing.T) {
	msg := &msgs.CutebotSpeed{Left: 10, Right: -20}
	text := FormatMessage(msg, false)
	require.Contains(t, text, "CutebotSpeed ")
	require.Contains(t, text, "left:10")
	require.Contains(t, text, "right:-20")

	require.JSONEq(t, `{"left":10,"right":-20}`, FormatMessage(msg, true))
	require.JSONEq(t, `{}`, FormatMessage(&msgs.CutebotStop{}, true))
}

func TestFormatInfo(t *testing.T) {
	info := l1.ControllerInfo{Ref: l1.ControllerRef{Type: "cutebot", ID: "bot1"}}
	require.Equal(t, "cutebot/bot1", FormatInfo(info))
	info.Meta.Description = "Cutebot Pro"
	info.Meta.Labels = map[string]string{"room": "lab", "bus": "1"}
	require.Equal(t, "cutebot/bot1: Cutebot Pro [bus=1 room=lab]", FormatInfo(info))
}

func TestParseConnectArgs(t *testing.T) {
	bot := l1.ControllerInfo{Ref: l1.ControllerRef{Type: "cutebot", ID: "bot1"}}
	other := l1.ControllerInfo{Ref: l1.ControllerRef{Type: "sim-cutebot", ID: "bot1"}}

	ref, filter, err := ParseConnectArgs([]string{"cutebot", "bot1"})
	require.NoError(t, err)
	require.Nil(t, filter)
	require.Equal(t, bot.Ref, *ref)

	ref, filter, err = ParseConnectArgs([]string{"cutebot/bot1"})
	require.NoError(t, err)
	require.Nil(t, filter)
	require.Equal(t, bot.Ref, *ref)

	ref, filter, err = ParseConnectArgs([]string{"cutebot"})
	require.NoError(t, err)
	require.Nil(t, ref)
	require.True(t, filter(bot))
	require.False(t, filter(other))

	ref, filter, err = ParseConnectArgs(nil)
	require.NoError(t, err)
	require.Nil(t, ref)
	require.Nil(t, filter)

	for _, args := range [][]string{{"cutebot/"}, {"a/b/c"}, {"cutebot", ""}, {"cute/bot", "1"}} {
		_, _, err = ParseConnectArgs(args)
		require.Error(t, err, "%v", args)
	}
}

func TestFilterControllers(t *testing.T) {
	infoList := []l1.ControllerInfo{
		{Ref: l1.ControllerRef{Type: "sim-cutebot", ID: "b"}},
		{Ref: l1.ControllerRef{Type: "cutebot", ID: "b"}},
		{Ref: l1.ControllerRef{Type: "cutebot", ID: "a"}},
	}
	all := FilterControllers(infoList, nil)
	require.Len(t, all, 3)
	require.Equal(t, "cutebot/a", all[0].Ref.Name())
	require.Equal(t, "sim-cutebot/b", all[2].Ref.Name())

	_, filter, err := ParseConnectArgs([]string{"cutebot"})
	require.NoError(t, err)
	require.Len(t, FilterControllers(infoList, filter), 2)

	none := FilterControllers(nil, nil)
	require.NotNil(t, none)
	require.Empty(t, none)
}

func TestWaitReply(t *testing.T) {
	f := make(resultFuture, 1)
	f <- l1.Result{Msg: msgs.NewCommandOK()}
	reply, err := WaitReply(context.Background(), f)
	require.NoError(t, err)
	require.True(t, isCommandOK(reply))

	failure := errors.New("servo failed")
	f <- l1.Result{Err: failure}
	_, err = WaitReply(context.Background(), f)
	require.Equal(t, failure, err)

	ctx, cancel := context.WithTimeout(context.Background(), 0)
	defer cancel()
	_, err = WaitReply(ctx, make(resultFuture))
	require.Equal(t, ErrCommandTimeout, err)

	ctx, cancel = context.WithCancel(context.Background())
	cancel()
	_, err = WaitReply(ctx, make(resultFuture))
	require.Equal(t, context.Canceled, err)
}

func TestDoNotConnected(t *testing.T) {
	s := &Shell{Config: env.NewConfig()}
	_, err := s.Do(&msgs.CutebotStop{})
	require.Equal(t, ErrNotConnected, err)
	s.Disconnect()
	require.Nil(t, s.Loop)
}
