package connector

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"time"

	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/cutebot.go/pkg/l1/comm/websocket"
)

// Config provides common options to setup Connectors.
type Config struct {
	Ref l1.ControllerRef

	// RegistryURL is either an MQTT broker where controllers register,
	// e.g. mqtt://host:port/topic-prefix, or a controller serving
	// websocket directly, e.g. ws://host:port.
	RegistryURL string

	// ConnectTimeout bounds Connect.
	ConnectTimeout time.Duration
}

// DefaultConnectTimeout is the default of Config.ConnectTimeout.
const DefaultConnectTimeout = 5 * time.Second

var defaultConfig = Config{
	RegistryURL:    "mqtt://localhost:1883/robo/",
	ConnectTimeout: DefaultConnectTimeout,
}

func init() {
	if val := os.Getenv("ROBO_TYPE"); val != "" {
		defaultConfig.Ref.Type = val
	}
	if val := os.Getenv("ROBO_ID"); val != "" {
		defaultConfig.Ref.ID = val
	}
	if val := os.Getenv("ROBO_REGISTRY_URL"); val != "" {
		defaultConfig.RegistryURL = val
	}
}

// SetupFlags sets up command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Ref.Type, "robot-type", defaultConfig.Ref.Type, "Robot type to connect, e.g. cutebot.")
	flag.StringVar(&defaultConfig.Ref.ID, "robot-id", defaultConfig.Ref.ID, "Robot ID to connect.")
	flag.StringVar(&defaultConfig.RegistryURL, "robot-reg", defaultConfig.RegistryURL, "Robot Registry URL (mqtt:// or ws://).")
	flag.DurationVar(&defaultConfig.ConnectTimeout, "connect-timeout", defaultConfig.ConnectTimeout, "Timeout connecting a robot.")
}

// Default gets the default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewConnector picks the Connector by the registry URL scheme.
func (c *Config) NewConnector() (l1.Connector, error) {
	parsedURL, err := url.Parse(c.RegistryURL)
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %v", err)
	}
	switch parsedURL.Scheme {
	case "mqtt", "tcp", "ssl":
		return mqtt.NewConnector(c.RegistryURL)
	case "ws", "wss":
		return websocket.NewConnector(c.RegistryURL)
	default:
		return nil, fmt.Errorf("unknown registry URL scheme: %q", parsedURL.Scheme)
	}
}

// Connect directly connects to the configured controller.
func (c *Config) Connect(ctx context.Context) (l1.ControllerConn, error) {
	if !c.Ref.IsValid() {
		return nil, fmt.Errorf("robot type and id must be specified")
	}
	connector, err := c.NewConnector()
	if err != nil {
		return nil, err
	}
	if c.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.ConnectTimeout)
		defer cancel()
	}
	return connector.Connect(ctx, c.Ref)
}

// MustConnect connects to the controller and fails on error.
func (c *Config) MustConnect() l1.ControllerConn {
	conn, err := c.Connect(context.Background())
	if err != nil {
		log.Fatalln(err)
	}
	return conn
}
