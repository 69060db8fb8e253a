package mqtt

import (
	"context"
	"encoding/json"

	"github.com/golang/glog"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/comm"
)

// ClientIDPrefix prefixes the default MQTT client ID of controllers.
const ClientIDPrefix = "cutebot:"

// Registrar implements l1.Registrar using MQTT. The controller
// announces itself with a retained TYPE/ID/meta message which is
// cleared on exit, and by the will if the connection is lost.
type Registrar struct {
	Queue *Queue
	Info  l1.ControllerInfo

	metaJSON  []byte
	registrar comm.Registrar
}

// NewRegistrar creates a Registrar.
func NewRegistrar(brokerURL string, info l1.ControllerInfo) (*Registrar, error) {
	meta, err := json.Marshal(&info.Meta)
	if err != nil {
		return nil, err
	}
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	opts.SetBinaryWill(topicPrefix+MetaTopic(info.Ref), nil, 1, true)
	if opts.ClientID == "" {
		opts.SetClientID(ClientIDPrefix + info.Ref.Name())
	}
	r := &Registrar{
		Queue:    NewQueue(opts, topicPrefix),
		Info:     info,
		metaJSON: meta,
	}
	r.Queue.OnConnect = func(*Queue) { r.publishMeta(r.metaJSON) }
	r.registrar.Init(NewPacketReadWriter(r.Queue).ForController(info.Ref))
	return r, nil
}

// MetaTopic is where a controller publishes its metadata.
func MetaTopic(ref l1.ControllerRef) string {
	return ref.Name() + "/meta"
}

// SendEvent implements Registrar.
func (r *Registrar) SendEvent(ctx context.Context, msg fx.Message) error {
	return r.registrar.SendEvent(ctx, msg)
}

// AddToLoop implements LoopAdder.
func (r *Registrar) AddToLoop(loop *fx.Loop) {
	loop.Add(&r.registrar)
	loop.AddRunnable(fx.NamedRun("mqtt-registrar", r))
}

// Run implements Runnable.
func (r *Registrar) Run(ctx context.Context) error {
	if token := r.Queue.Connect(); token.Wait() && token.Error() != nil {
		glog.Warningf("MQTT connect: %v, retrying in background", token.Error())
	}
	<-ctx.Done()
	r.publishMeta(nil)
	r.Queue.Close()
	return nil
}

func (r *Registrar) publishMeta(meta []byte) {
	token := r.Queue.PubWith(MetaTopic(r.Info.Ref), meta, 1, true)
	if token.Wait() && token.Error() != nil {
		glog.Errorf("publish meta error: %v", token.Error())
	}
}
