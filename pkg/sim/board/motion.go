package board

import (
	"math"
	"time"

	"github.com/robotalks/cutebot.go/pkg/sim"
)

// Model describes the physical characteristics of the simulated robot.
type Model struct {
	// Accel is the linear acceleration in mm/s² used by moves, 0 means instant.
	Accel float64
	// WheelBase is the distance between the wheels in mm.
	WheelBase float64
	// FullSpeed is the wheel speed in mm/s at 100%.
	FullSpeed float64
}

// DefaultModel approximates a Cutebot Pro.
var DefaultModel = Model{
	Accel:     1000,
	WheelBase: 95,
	FullSpeed: 500,
}

type state interface {
	estimate(now time.Time) (sim.Pose2D, state)
}

type speeder interface {
	speed(now time.Time) float64
}

// rampState drives straight, accelerating from the previous speed to
// desiredSpeed, and stops after target mm if target > 0.
type rampState struct {
	startPose    sim.Pose2D
	startTime    time.Time
	startSpeed   float64
	desiredSpeed float64
	accel        float64
	accelEndTime time.Time
	target       float64
	arrived      func()
}

func newRampState(old state, pose sim.Pose2D, now time.Time, speed, accel, target float64) *rampState {
	s := &rampState{
		startPose:    pose,
		startTime:    now,
		desiredSpeed: speed,
		accelEndTime: now,
		target:       target,
	}
	if sp, ok := old.(speeder); ok {
		s.startSpeed = sp.speed(now)
	}
	accel = math.Abs(accel)
	if accel == 0 {
		s.startSpeed = speed
		return s
	}
	if diff := math.Abs(speed - s.startSpeed); diff > 0 {
		s.accelEndTime = now.Add(time.Duration(diff * 1000000 / accel) * time.Microsecond)
	}
	if s.startSpeed > speed {
		accel = -accel
	}
	s.accel = accel
	return s
}

func (s *rampState) speed(now time.Time) float64 {
	if now.Before(s.accelEndTime) {
		return s.startSpeed + s.accel*now.Sub(s.startTime).Seconds()
	}
	return s.desiredSpeed
}

func (s *rampState) distance(now time.Time) float64 {
	secs := now.Sub(s.startTime).Seconds()
	if secs <= 0 {
		return 0
	}
	accelSecs := s.accelEndTime.Sub(s.startTime).Seconds()
	if secs <= accelSecs {
		return secs*s.startSpeed + s.accel*secs*secs/2
	}
	return accelSecs*s.startSpeed + s.accel*accelSecs*accelSecs/2 +
		(secs-accelSecs)*s.desiredSpeed
}

func (s *rampState) estimate(now time.Time) (sim.Pose2D, state) {
	dist := s.distance(now)
	if s.target > 0 && math.Abs(dist) >= s.target {
		if s.arrived != nil {
			s.arrived()
		}
		return s.startPose.Advance(math.Copysign(s.target, dist)), nil
	}
	pose := s.startPose.Advance(dist)
	if s.desiredSpeed == 0 && !now.Before(s.accelEndTime) {
		return pose, nil
	}
	return pose, s
}

// wheelState runs both wheels at constant speeds, following an arc
// when they differ.
type wheelState struct {
	startPose   sim.Pose2D
	startTime   time.Time
	left, right float64
	wheelBase   float64
}

func newWheelState(pose sim.Pose2D, now time.Time, left, right, wheelBase float64) state {
	if left == 0 && right == 0 {
		return nil
	}
	return &wheelState{
		startPose: pose,
		startTime: now,
		left:      left,
		right:     right,
		wheelBase: wheelBase,
	}
}

func (s *wheelState) speed(time.Time) float64 {
	return (s.left + s.right) / 2
}

func (s *wheelState) estimate(now time.Time) (sim.Pose2D, state) {
	secs := now.Sub(s.startTime).Seconds()
	v := (s.left + s.right) / 2
	var w float64
	if s.wheelBase > 0 {
		w = (s.right - s.left) / s.wheelBase
	}
	if w == 0 {
		return s.startPose.Advance(v * secs), s
	}
	pose := s.startPose
	h0 := pose.Heading.Radians()
	h1 := h0 + w*secs
	pose.X += v / w * (math.Sin(h1) - math.Sin(h0))
	pose.Y -= v / w * (math.Cos(h1) - math.Cos(h0))
	pose.Heading = sim.AngleFromRadians(h1)
	return pose, s
}
