package see

import (
	"strings"

	"github.com/robotalks/cutebot.go/pkg/sim"
)

// Object is the data model used to represents an object.
type Object map[string]interface{}

// Rect is object rect area.
type Rect struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Pos is a position.
type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Message is the message for see.
type Message struct {
	Action   string `json:"action"`
	Object   Object `json:"object,omitempty"`
	RemoveID string `json:"id,omitempty"`
}

// Actions
const (
	ActionReset  = "reset"
	ActionObject = "object"
	ActionRemove = "remove"
)

// Properties
const (
	PropID     = "id"
	PropType   = "type"
	PropRect   = "rect"
	PropOrigin = "origin"
	PropRadius = "radius"
	PropRotate = "rotate"
	PropStyle  = "style"
)

// ObjectID converts object name to ID.
func ObjectID(name string) string {
	return strings.Replace(name, "/", ".", -1)
}

// NewObject creates Object.
func NewObject(typ, id string) Object {
	return Object{PropID: id, PropType: typ}
}

// ObjectAt creates a round object placed at pose.
func ObjectAt(typ, name string, pose sim.Pose2D, radius float64) Object {
	return NewObject(typ, ObjectID(name)).
		At(pose.X, pose.Y).
		Radius(radius).
		Rotate(pose.Heading.Degrees())
}

// ID returns the object ID.
func (o Object) ID() string {
	id, _ := o[PropID].(string)
	return id
}

// Rc sets rect.
func (o Object) Rc(x, y, w, h float64) Object {
	o[PropRect] = &Rect{X: x, Y: y, W: w, H: h}
	return o
}

// At sets origin.
func (o Object) At(x, y float64) Object {
	o[PropOrigin] = &Pos{X: x, Y: y}
	return o
}

// Radius sets radius.
func (o Object) Radius(r float64) Object {
	o[PropRadius] = r
	return o
}

// Rotate sets rotate.
func (o Object) Rotate(deg float64) Object {
	o[PropRotate] = deg
	return o
}

// Style sets a CSS style property.
func (o Object) Style(key, val string) Object {
	styles, _ := o[PropStyle].(map[string]string)
	if styles == nil {
		styles = make(map[string]string)
		o[PropStyle] = styles
	}
	styles[key] = val
	return o
}

// With sets a custom property.
func (o Object) With(key string, val interface{}) Object {
	o[key] = val
	return o
}
