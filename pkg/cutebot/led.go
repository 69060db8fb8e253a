package cutebot

import (
	"context"
	"fmt"
	"image/color"
)

// LED selects the headlight(s).
type LED byte

// LED targets.
const (
	LEDLeft LED = iota
	LEDRight
	LEDBoth
)

// IsValid checks the LED target.
func (l LED) IsValid() bool {
	return l <= LEDBoth
}

// String implements Stringer.
func (l LED) String() string {
	switch l {
	case LEDLeft:
		return "left"
	case LEDRight:
		return "right"
	case LEDBoth:
		return "both"
	}
	return fmt.Sprintf("led(%d)", byte(l))
}

// Color is a 24-bit 0xRRGGBB value.
type Color uint32

// Predefined colors.
const (
	Black  Color = 0x000000
	Red    Color = 0xFF0000
	Orange Color = 0xFFA500
	Yellow Color = 0xFFFF00
	Green  Color = 0x00FF00
	Blue   Color = 0x0000FF
	Indigo Color = 0x4B0082
	Violet Color = 0x8A2BE2
	Purple Color = 0xFF00FF
	White  Color = 0xFFFFFF
)

// RGB composes a Color.
func RGB(r, g, b byte) Color {
	return Color(r)<<16 | Color(g)<<8 | Color(b)
}

// ColorOf converts any color.Color, alpha is ignored.
func ColorOf(c color.Color) Color {
	r, g, b, _ := c.RGBA()
	return RGB(byte(r>>8), byte(g>>8), byte(b>>8))
}

// R returns the red channel.
func (c Color) R() byte { return byte(c >> 16) }

// G returns the green channel.
func (c Color) G() byte { return byte(c >> 8) }

// B returns the blue channel.
func (c Color) B() byte { return byte(c) }

// String implements Stringer.
func (c Color) String() string {
	return fmt.Sprintf("#%06x", uint32(c)&0xffffff)
}

// LEDs controls the headlights.
type LEDs struct {
	Transport Transport
}

// SetColor sets the color of the selected LED(s).
func (l *LEDs) SetColor(ctx context.Context, led LED, c Color) error {
	if !led.IsValid() {
		return ErrInvalidLED
	}
	return l.Transport.Send(ctx, CmdLED, byte(led), c.R(), c.G(), c.B())
}
