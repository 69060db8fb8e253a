package connector

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/robotalks/cutebot.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/cutebot.go/pkg/l1/comm/websocket"
)

func TestNewConnector(t *testing.T) {
	conf := NewConfig()
	conf.RegistryURL = "mqtt://localhost:1883/robo/"
	c, err := conf.NewConnector()
	require.NoError(t, err)
	require.IsType(t, &mqtt.Connector{}, c)

	conf.RegistryURL = "ws://localhost:8080"
	c, err = conf.NewConnector()
	require.NoError(t, err)
	require.IsType(t, &websocket.Connector{}, c)

	conf.RegistryURL = "http://localhost"
	_, err = conf.NewConnector()
	require.Error(t, err)
}

func TestConnectInvalidRef(t *testing.T) {
	conf := NewConfig()
	conf.Ref.Type, conf.Ref.ID = "cutebot", ""
	_, err := conf.Connect(context.Background())
	require.Error(t, err)
}
