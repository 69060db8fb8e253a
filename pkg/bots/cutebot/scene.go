package cutebot

import (
	"github.com/robotalks/cutebot.go/pkg/cutebot"
	"github.com/robotalks/cutebot.go/pkg/sim/board"
	"github.com/robotalks/cutebot.go/pkg/sim/visualization/see"
)

// BotRadius is the radius (mm) of the robot drawn in the scene.
const BotRadius = 55

// Scene renders the simulated board: the robot with its headlight colors
// and, when the sonar sees one, the obstacle in front of it.
func Scene(name string, b *board.Board) see.Source {
	return see.SourceFunc(func() []see.Object {
		pose := b.Pose()
		objs := []see.Object{
			see.ObjectAt("cutebot", name, pose, BotRadius).
				With("led-left", b.LED(cutebot.LEDLeft).String()).
				With("led-right", b.LED(cutebot.LEDRight).String()).
				With("moving", b.Moving()),
		}
		if cm := b.Sonar.Obstacle(); cm >= 0 {
			at := pose.Advance(BotRadius + cm*10)
			objs = append(objs, see.NewObject("obstacle", see.ObjectID(name)+".obstacle").
				At(at.X, at.Y).
				Radius(10))
		}
		return objs
	})
}
