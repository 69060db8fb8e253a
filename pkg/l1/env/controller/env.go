package controller

import (
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"

	"github.com/golang/glog"

	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	"github.com/robotalks/cutebot.go/pkg/l1/comm"
	"github.com/robotalks/cutebot.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/cutebot.go/pkg/l1/comm/websocket"
	"github.com/robotalks/cutebot.go/pkg/l1/env"
)

// Config provides common options to setup an env for L1 controllers.
type Config struct {
	Info l1.ControllerInfo

	// MQTTBrokerURL specifies the MQTT broker to use.
	// e.g. mqtt://host:port/topic-prefix
	MQTTBrokerURL string

	// WebSocketListen is the address connectors dial directly
	// with ws://host:port, empty to disable.
	WebSocketListen string
}

var defaultConfig = Config{
	MQTTBrokerURL: "mqtt://localhost:1883/robo/",
}

func init() {
	if val, ok := os.LookupEnv("ROBO_MQTT_URL"); ok {
		defaultConfig.MQTTBrokerURL = val
	}
	if val := os.Getenv("ROBO_WS_LISTEN"); val != "" {
		defaultConfig.WebSocketListen = val
	}
	defaultConfig.Info.Ref.ID = env.MachineID()
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.Info.Ref.Type, "type", defaultConfig.Info.Ref.Type, "Controller type")
	flag.StringVar(&defaultConfig.Info.Ref.ID, "id", defaultConfig.Info.Ref.ID, "Controller ID")
	flag.StringVar(&defaultConfig.MQTTBrokerURL, "mqtt", defaultConfig.MQTTBrokerURL, "MQTT broker URL, empty to disable")
	flag.StringVar(&defaultConfig.WebSocketListen, "ws-listen", defaultConfig.WebSocketListen, "Listen address for direct websocket connectors, e.g. :8080")
	flag.Var(&labelsValue{labels: &defaultConfig.Info.Meta.Labels}, "label", "Controller label KEY=VALUE, repeatable")
}

// labelsValue collects repeated KEY=VALUE flags into controller labels.
type labelsValue struct {
	labels *map[string]string
}

func (v *labelsValue) String() string {
	if v.labels == nil || len(*v.labels) == 0 {
		return ""
	}
	pairs := make([]string, 0, len(*v.labels))
	for key, val := range *v.labels {
		pairs = append(pairs, key+"="+val)
	}
	sort.Strings(pairs)
	return strings.Join(pairs, ",")
}

func (v *labelsValue) Set(s string) error {
	key, val, ok := strings.Cut(s, "=")
	if key = strings.TrimSpace(key); !ok || key == "" {
		return fmt.Errorf("invalid label %q, expect KEY=VALUE", s)
	}
	if *v.labels == nil {
		*v.labels = make(map[string]string)
	}
	(*v.labels)[key] = strings.TrimSpace(val)
	return nil
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// SetControllerType should be called in init with basic info about the controller.
// Labels already set by flags are kept.
func SetControllerType(typ string, meta l1.ControllerMeta) {
	defaultConfig.Info.Ref.Type = typ
	labels := mergeLabels(meta.Labels, defaultConfig.Info.Meta.Labels)
	defaultConfig.Info.Meta = meta
	defaultConfig.Info.Meta.Labels = labels
}

func mergeLabels(sets ...map[string]string) map[string]string {
	var merged map[string]string
	for _, labels := range sets {
		for key, val := range labels {
			if merged == nil {
				merged = make(map[string]string)
			}
			merged[key] = val
		}
	}
	return merged
}

// Env is the env for L1 controllers.
type Env struct {
	Config       *Config
	RegistryURLs []string
	Registrar    *comm.RegistrarMux
}

// NewConfig creates a Config with default configurations.
func NewConfig() *Config {
	conf := defaultConfig
	conf.Info.Meta.Labels = mergeLabels(defaultConfig.Info.Meta.Labels)
	return &conf
}

// NewEnv creates Env from config.
func (c *Config) NewEnv() (*Env, error) {
	if !c.Info.Ref.IsValid() {
		return nil, fmt.Errorf("robot type and id must be specified")
	}
	env := &Env{
		Config:    c,
		Registrar: &comm.RegistrarMux{},
	}
	if c.MQTTBrokerURL != "" {
		reg, err := mqtt.NewRegistrar(c.MQTTBrokerURL, c.Info)
		if err != nil {
			return nil, fmt.Errorf("create MQTT registrar error: %v", err)
		}
		env.Registrar.Add(reg)
		env.RegistryURLs = append(env.RegistryURLs, c.MQTTBrokerURL)
	}
	if c.WebSocketListen != "" {
		srv := websocket.NewServer(c.WebSocketListen, c.Info)
		addr, err := srv.Listen()
		if err != nil {
			return nil, fmt.Errorf("websocket listen error: %v", err)
		}
		env.Registrar.Add(srv)
		env.RegistryURLs = append(env.RegistryURLs, "ws://"+addr.String())
	}
	if len(env.Registrar.Registrars) == 0 {
		return nil, fmt.Errorf("at least one registrar is required")
	}
	return env, nil
}

// MustNewEnv creates Env and fails on error.
func (c *Config) MustNewEnv() *Env {
	env, err := c.NewEnv()
	if err != nil {
		log.Fatalln(err)
	}
	return env
}

// AddToLoop adds controllers/runners to loop.
func (e *Env) AddToLoop(loop *fx.Loop) {
	for _, u := range e.RegistryURLs {
		glog.Infof("%s registering at %s", e.Config.Info.Ref.Name(), u)
	}
	loop.Add(e.Registrar)
	loop.Add(&comm.UnsupportedCommands{})
}
