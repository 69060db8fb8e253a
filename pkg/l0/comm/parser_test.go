package comm

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParser(t *testing.T) {
	testCases := []struct {
		name    string
		in      []byte
		expect  []*Frame
		dropped int
	}{
		{
			name:   "single frame",
			in:     []byte{0xff, 0xf9, 0x10, 4, 2, 50, 30, 2},
			expect: []*Frame{{Code: 0x10, Params: []byte{2, 50, 30, 2}}},
		},
		{
			name:   "no params",
			in:     []byte{0xff, 0xf9, 0x60, 0},
			expect: []*Frame{{Code: 0x60}},
		},
		{
			name: "back to back",
			in:   []byte{0xff, 0xf9, 0xa0, 1, 5, 0xff, 0xf9, 0x60, 1, 0},
			expect: []*Frame{
				{Code: 0xa0, Params: []byte{5}},
				{Code: 0x60, Params: []byte{0}},
			},
		},
		{
			name:    "garbage before header",
			in:      []byte{1, 2, 0xff, 0xf9, 0x40, 2, 1, 90},
			expect:  []*Frame{{Code: 0x40, Params: []byte{1, 90}}},
			dropped: 2,
		},
		{
			name:   "repeated 0xff",
			in:     []byte{0xff, 0xff, 0xf9, 0x60, 0},
			expect: []*Frame{{Code: 0x60}},
		},
		{
			name:    "broken header resync",
			in:      []byte{0xff, 0x00, 0xff, 0xf9, 0x60, 0},
			expect:  []*Frame{{Code: 0x60}},
			dropped: 1,
		},
		{
			name:    "count too large",
			in:      []byte{0xff, 0xf9, 0x60, 0xfc, 0xff, 0xf9, 0x60, 0},
			expect:  []*Frame{{Code: 0x60}},
			dropped: 1,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			var p Parser
			frames := p.ParseBytes(tc.in)
			require.Len(t, frames, len(tc.expect))
			for n, f := range frames {
				require.Equal(t, tc.expect[n].Code, f.Code)
				if len(tc.expect[n].Params) > 0 {
					require.Equal(t, tc.expect[n].Params, f.Params)
				} else {
					require.Empty(t, f.Params)
				}
			}
			require.Equal(t, tc.dropped, p.Errors())
			require.False(t, p.Receiving())
		})
	}
}

func TestParserPartial(t *testing.T) {
	var p Parser
	require.Nil(t, p.Parse(0xff).Frame)
	require.True(t, p.Receiving())
	require.Nil(t, p.Parse(0xf9).Frame)
	require.Nil(t, p.Parse(0x20).Frame)
	require.Nil(t, p.Parse(1).Frame)
	p.Reset()
	require.False(t, p.Receiving())
	frames := p.ParseBytes([]byte{0xff, 0xf9, 0x20, 1, 7})
	require.Len(t, frames, 1)
	require.Equal(t, []byte{7}, frames[0].Params)
}
