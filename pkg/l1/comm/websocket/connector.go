package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"golang.org/x/net/websocket"

	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/comm"
)

// Connector implements l1.Connector by dialing a single controller
// served by Server, e.g. ws://host:port.
type Connector struct {
	URL *url.URL
}

// NewConnector creates a Connector.
func NewConnector(serverURL string) (*Connector, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("unsupported websocket scheme %q", u.Scheme)
	}
	return &Connector{URL: u}, nil
}

func (c *Connector) endpoint(scheme, path string) string {
	u := *c.URL
	u.Scheme, u.Path, u.RawQuery = scheme, path, ""
	return u.String()
}

func (c *Connector) httpScheme() string {
	if c.URL.Scheme == "wss" {
		return "https"
	}
	return "http"
}

// Discover implements l1.Connector. It reports the controller behind the URL.
func (c *Connector) Discover(ctx context.Context) ([]l1.ControllerInfo, error) {
	req, err := http.NewRequest(http.MethodGet, c.endpoint(c.httpScheme(), PathInfo), nil)
	if err != nil {
		return nil, err
	}
	resp, err := http.DefaultClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("discover: %s", resp.Status)
	}
	var info l1.ControllerInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, err
	}
	return []l1.ControllerInfo{info}, nil
}

// Connect implements l1.Connector. The ref is not verified.
func (c *Connector) Connect(ctx context.Context, ref l1.ControllerRef) (l1.ControllerConn, error) {
	conn, err := websocket.Dial(c.endpoint(c.URL.Scheme, PathL1), "", c.endpoint(c.httpScheme(), "/"))
	if err != nil {
		return nil, err
	}
	cc := &ControllerConn{Ref: ref}
	cc.Init(New(conn))
	return cc, nil
}

// ControllerConn implements ControllerConn over websocket.
type ControllerConn struct {
	comm.ControllerConn
	Ref l1.ControllerRef
}
