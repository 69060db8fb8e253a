package cutebot

import (
	"context"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetColor(t *testing.T) {
	testCases := []struct {
		led    LED
		color  Color
		expect []byte
	}{
		{LEDBoth, 0x112233, []byte{2, 0x11, 0x22, 0x33}},
		{LEDLeft, Red, []byte{0, 0xff, 0, 0}},
		{LEDRight, Indigo, []byte{1, 0x4b, 0, 0x82}},
		{LEDBoth, Black, []byte{2, 0, 0, 0}},
	}

	for _, tc := range testCases {
		t.Run(tc.led.String()+" "+tc.color.String(), func(t *testing.T) {
			tr := &testTransport{}
			l := &LEDs{Transport: tr}
			require.NoError(t, l.SetColor(context.Background(), tc.led, tc.color))
			require.Equal(t, []sentFrame{{code: CmdLED, params: tc.expect}}, tr.sent)
		})
	}

	tr := &testTransport{}
	l := &LEDs{Transport: tr}
	require.Equal(t, ErrInvalidLED, l.SetColor(context.Background(), 3, White))
	require.Empty(t, tr.sent)
}

func TestColor(t *testing.T) {
	require.Equal(t, Color(0x112233), RGB(0x11, 0x22, 0x33))
	require.Equal(t, Color(0x112233), ColorOf(color.RGBA{R: 0x11, G: 0x22, B: 0x33, A: 0xff}))
	require.Equal(t, White, ColorOf(color.White))
	require.Equal(t, "#ffa500", Orange.String())
	c := Violet
	require.Equal(t, byte(0x8a), c.R())
	require.Equal(t, byte(0x2b), c.G())
	require.Equal(t, byte(0xe2), c.B())
}
