package main

import (
	"flag"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/robotalks/cutebot.go/pkg/cli/sh"
	"github.com/robotalks/cutebot.go/pkg/l1/comm/mqtt"
	"github.com/robotalks/cutebot.go/pkg/l1/msgs"
)

var (
	mqttURL    = "mqtt://localhost:1883/robo/"
	filter     = "#"
	outputJSON bool
)

func init() {
	if val := os.Getenv("ROBO_MQTT_URL"); val != "" {
		mqttURL = val
	}
	flag.StringVar(&mqttURL, "mqtt", mqttURL, "MQTT broker URL.")
	flag.StringVar(&filter, "topic", filter, "Topic filter relative to the URL prefix, e.g. cutebot/+/msg.")
	flag.BoolVar(&outputJSON, "json", outputJSON, "Print messages in JSON.")
}

func printPacket(topic string, payload []byte) {
	if strings.HasSuffix(topic, "/meta") {
		if info, ok := mqtt.ParseMeta(topic, payload); ok {
			log.Printf("%s: online %q", info.Ref.Name(), info.Meta.Description)
		} else {
			log.Printf("%s: offline", strings.TrimSuffix(topic, "/meta"))
		}
		return
	}
	typed, err := msgs.DecodeTyped(payload)
	if err != nil {
		log.Printf("%s: bad message: %v", topic, err)
		return
	}
	msg, err := typed.Decode()
	if err != nil {
		log.Printf("%s: decode error: (type_id=%x) %v", topic, typed.TypeId, err)
		return
	}
	log.Printf("%s: #%d %s", topic, typed.Sequence,
		sh.FormatMessage(msg.(msgs.SerializableMessage), outputJSON))
}

func main() {
	flag.Parse()
	log.SetFlags(log.Lmicroseconds)

	q, err := mqtt.NewQueueFromURL(mqttURL)
	if err != nil {
		log.Fatalln(err)
	}
	if token := q.Connect(); token.Wait() && token.Error() != nil {
		log.Fatalln(token.Error())
	}
	defer q.Close()
	q.Sub(filter, mqtt.Handler(printPacket))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt)
	<-sigCh
}
