package cutebot

import (
	"fmt"
	"strconv"
	"strings"
)

var colorNames = map[string]Color{
	"black":  Black,
	"red":    Red,
	"orange": Orange,
	"yellow": Yellow,
	"green":  Green,
	"blue":   Blue,
	"indigo": Indigo,
	"violet": Violet,
	"purple": Purple,
	"white":  White,
}

// ParseColor accepts a predefined color name, #RRGGBB or 0xRRGGBB.
func ParseColor(s string) (Color, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if c, ok := colorNames[s]; ok {
		return c, nil
	}
	hex := strings.TrimPrefix(strings.TrimPrefix(s, "#"), "0x")
	if hex == s || len(hex) == 0 || len(hex) > 6 {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid color %q", s)
	}
	return Color(v), nil
}

// ParseLED accepts left, right, both or the numeric id.
func ParseLED(s string) (LED, error) {
	for l := LEDLeft; l <= LEDBoth; l++ {
		if strings.EqualFold(s, l.String()) || s == strconv.Itoa(int(l)) {
			return l, nil
		}
	}
	return 0, ErrInvalidLED
}

// ParseTrackState accepts flag names joined by "|" (FL|L|R|FR),
// "-" for none, or a number.
func ParseTrackState(s string) (TrackState, error) {
	if s == "-" {
		return 0, nil
	}
	if v, err := strconv.ParseUint(s, 0, 8); err == nil {
		if v > 0x0f {
			return 0, fmt.Errorf("invalid track state %q", s)
		}
		return TrackState(v), nil
	}
	var state TrackState
	for _, name := range strings.Split(s, "|") {
		found := false
		for _, n := range trackNames {
			if strings.EqualFold(name, n.name) {
				state, found = state|n.flag, true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("invalid track state %q", s)
		}
	}
	return state, nil
}
