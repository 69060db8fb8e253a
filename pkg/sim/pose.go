package sim

import (
	"fmt"
	"math"
)

// Pos2D is a position on the floor, in mm.
type Pos2D struct {
	X, Y float64
}

// Add returns p + p1.
func (p Pos2D) Add(p1 Pos2D) Pos2D {
	return Pos2D{X: p.X + p1.X, Y: p.Y + p1.Y}
}

// OffsetBy performs Add in-place.
func (p *Pos2D) OffsetBy(p1 Pos2D) *Pos2D {
	p.X += p1.X
	p.Y += p1.Y
	return p
}

// Distance returns the euclidean distance to p1.
func (p Pos2D) Distance(p1 Pos2D) float64 {
	return math.Hypot(p1.X-p.X, p1.Y-p.Y)
}

// Pose2D is a position with a heading.
type Pose2D struct {
	Pos2D
	Heading Angle
}

// Advance moves the pose dist mm along its heading.
func (p Pose2D) Advance(dist float64) Pose2D {
	p.Pos2D.OffsetBy(p.Heading.Project(dist))
	return p
}

func (p Pose2D) String() string {
	return fmt.Sprintf("(%.1f,%.1f)@%.1f°", p.X, p.Y, p.Heading.Degrees())
}

// Angle is in radians, normalized to (-π, π].
type Angle float64

// AngleFromDegrees creates Angle from degrees.
func AngleFromDegrees(d float64) Angle {
	return AngleFromRadians(d * math.Pi / 180)
}

// AngleFromRadians creates Angle from radians.
func AngleFromRadians(r float64) Angle {
	return Angle(normalizeRadians(r))
}

// AddRadians rotates the angle by r.
func (a Angle) AddRadians(r float64) Angle {
	return AngleFromRadians(float64(a) + r)
}

// Radians returns the angle in radians.
func (a Angle) Radians() float64 { return float64(a) }

// Degrees returns the angle in degrees.
func (a Angle) Degrees() float64 { return float64(a) * 180 / math.Pi }

// Project splits dist into X and Y along the angle.
func (a Angle) Project(dist float64) Pos2D {
	return Pos2D{X: dist * math.Cos(float64(a)), Y: dist * math.Sin(float64(a))}
}

func normalizeRadians(r float64) float64 {
	if r >= 2*math.Pi || r <= -2*math.Pi {
		r = math.Remainder(r, 2*math.Pi)
	}
	if r > math.Pi {
		r -= 2 * math.Pi
	} else if r <= -math.Pi {
		r += 2 * math.Pi
	}
	return r
}
