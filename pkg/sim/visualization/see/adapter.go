// Package see is the adapter to visualize a 2D world in
// github.com/robotalks/see.
package see

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/golang/glog"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
)

// Source provides the objects currently in the world.
type Source interface {
	SeeObjects() []Object
}

// SourceFunc is the func form of Source.
type SourceFunc func() []Object

// SeeObjects implements Source.
func (f SourceFunc) SeeObjects() []Object {
	return f()
}

// Adapter is the visualization adapter to visualize using
// github.com/robotalks/see. Each loop iteration it emits the
// objects which changed since the last report.
type Adapter struct {
	Config *Config
	Source Source
	Out    io.Writer

	initial  bool
	reported map[string]string
}

// NewAdapter creates the adapter.
func NewAdapter(config *Config, src Source, out io.Writer) *Adapter {
	return &Adapter{
		Config:  config,
		Source:  src,
		Out:     out,
		initial: true,
	}
}

// AddToLoop implements LoopAdder.
func (a *Adapter) AddToLoop(l *fx.Loop) {
	l.AddController(fx.PrLvPostProc, fx.ControlFunc(a.ReportChanges))
}

// ReportChanges is a controller to report changes.
func (a *Adapter) ReportChanges(cc fx.ControlContext) error {
	if a.Out == nil {
		return nil
	}
	msgs := a.Changes()
	if len(msgs) == 0 {
		return nil
	}
	encoded, err := json.Marshal(msgs)
	if err != nil {
		return err
	}
	if _, err = fmt.Fprintln(a.Out, string(encoded)); err != nil {
		glog.Warningf("see output error: %v", err)
	}
	return nil
}

// Changes computes the messages since last call.
func (a *Adapter) Changes() []Message {
	var msgs []Message
	if a.initial {
		w, h := a.Config.W/2, a.Config.H/2
		msgs = []Message{
			{Action: ActionReset},
			{Action: ActionObject, Object: NewObject("corner", "corner-lt").With("loc", "lt").At(-w, -h).Radius(1)},
			{Action: ActionObject, Object: NewObject("corner", "corner-lb").With("loc", "lb").At(-w, h).Radius(1)},
			{Action: ActionObject, Object: NewObject("corner", "corner-rt").With("loc", "rt").At(w, -h).Radius(1)},
			{Action: ActionObject, Object: NewObject("corner", "corner-rb").With("loc", "rb").At(w, h).Radius(1)},
		}
		a.initial = false
		a.reported = make(map[string]string)
	}

	present := make(map[string]bool)
	if a.Source != nil {
		for _, obj := range a.Source.SeeObjects() {
			id := obj.ID()
			present[id] = true
			encoded, err := json.Marshal(obj)
			if err != nil {
				glog.Warningf("see object %s: %v", id, err)
				continue
			}
			if a.reported[id] == string(encoded) {
				continue
			}
			a.reported[id] = string(encoded)
			msgs = append(msgs, Message{Action: ActionObject, Object: obj})
		}
	}
	for id := range a.reported {
		if !present[id] {
			delete(a.reported, id)
			msgs = append(msgs, Message{Action: ActionRemove, RemoveID: id})
		}
	}
	return msgs
}
