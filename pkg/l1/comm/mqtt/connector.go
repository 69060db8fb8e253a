package mqtt

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/golang/glog"

	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/comm"
)

// Connector implements l1.Connector using MQTT.
type Connector struct {
	DiscoverTimeout time.Duration

	options     *paho.ClientOptions
	topicPrefix string
}

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// NewConnector creates a Connector.
func NewConnector(brokerURL string) (*Connector, error) {
	opts, topicPrefix, err := ClientOptionsFromURL(brokerURL)
	if err != nil {
		return nil, err
	}
	return &Connector{
		DiscoverTimeout: DefaultDiscoverTimeout,
		options:         opts,
		topicPrefix:     topicPrefix,
	}, nil
}

// ParseMeta converts a retained meta message into ControllerInfo.
// An empty payload means the controller has gone.
func ParseMeta(topic string, payload []byte) (l1.ControllerInfo, bool) {
	items := strings.Split(topic, "/")
	if len(items) != 3 || items[2] != "meta" || len(payload) == 0 {
		return l1.ControllerInfo{}, false
	}
	info := l1.ControllerInfo{Ref: l1.ControllerRef{Type: items[0], ID: items[1]}}
	if err := json.Unmarshal(payload, &info.Meta); err != nil {
		glog.Warningf("bad meta of %s: %v", info.Ref.Name(), err)
	}
	return info, true
}

// Discover implements Connector by collecting retained meta messages.
func (c *Connector) Discover(ctx context.Context) (res []l1.ControllerInfo, err error) {
	q := NewQueue(c.options, c.topicPrefix)
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		return nil, token.Error()
	}
	defer q.Close()
	resCh := make(chan l1.ControllerInfo, 16)
	done := make(chan struct{})
	defer close(done)
	q.Sub("+/+/meta", Handler(func(topic string, payload []byte) {
		if info, ok := ParseMeta(topic, payload); ok {
			select {
			case resCh <- info:
			case <-done:
			}
		}
	}))

	dur := c.DiscoverTimeout
	if dur == 0 {
		dur = DefaultDiscoverTimeout
	}
	timeout := time.NewTimer(dur)
	defer timeout.Stop()
	for {
		select {
		case info := <-resCh:
			res = append(res, info)
		case <-timeout.C:
			return
		case <-ctx.Done():
			err = ctx.Err()
			return
		}
	}
}

// Connect implements Connector.
func (c *Connector) Connect(ctx context.Context, ref l1.ControllerRef) (l1.ControllerConn, error) {
	conn := &ControllerConn{
		Queue: NewQueue(c.options, c.topicPrefix),
	}
	conn.Init(NewPacketReadWriter(conn.Queue).ForConnector(ref))
	token := conn.Queue.Connect()
	token.Wait()
	if err := token.Error(); err != nil {
		return nil, err
	}
	return conn, nil
}

// ControllerConn implements ControllerConn using MQTT.
type ControllerConn struct {
	comm.ControllerConn
	Queue *Queue
}

// Close disconnects from the broker.
func (c *ControllerConn) Close() error {
	c.ControllerConn.Close()
	return c.Queue.Close()
}
