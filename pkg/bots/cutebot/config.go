package cutebot

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/golang/glog"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"

	"github.com/robotalks/cutebot.go/pkg/cutebot"
	"github.com/robotalks/cutebot.go/pkg/l0/comm"
	"github.com/robotalks/cutebot.go/pkg/sim/board"
)

// Config defines the configuration for the bot.
type Config struct {
	// I2CBus is the periph bus name, empty for the first bus found.
	I2CBus  string
	I2CAddr uint
	// TriggerPin and EchoPin are the sonar pins, empty to go without sonar.
	TriggerPin string
	EchoPin    string
	Settle     time.Duration

	// Sim replaces the hardware with a simulated board.
	Sim bool
	// SimObstacle is the obstacle distance (cm) seen by the simulated sonar.
	SimObstacle float64
}

// Defaults
const (
	DefaultTriggerPin = "GPIO23"
	DefaultEchoPin    = "GPIO24"
)

var defaultConfig = Config{
	I2CAddr:     uint(comm.BoardAddr),
	TriggerPin:  DefaultTriggerPin,
	EchoPin:     DefaultEchoPin,
	Settle:      comm.DefaultSettle,
	SimObstacle: -1,
}

func init() {
	if val := os.Getenv("CUTEBOT_I2C_BUS"); val != "" {
		defaultConfig.I2CBus = val
	}
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.StringVar(&defaultConfig.I2CBus, "i2c-bus", defaultConfig.I2CBus, "I2C bus name, empty for the default bus.")
	flag.UintVar(&defaultConfig.I2CAddr, "i2c-addr", defaultConfig.I2CAddr, "I2C address of the Cutebot board.")
	flag.StringVar(&defaultConfig.TriggerPin, "trigger-pin", defaultConfig.TriggerPin, "Sonar trigger pin (P8 on micro:bit), empty to disable sonar.")
	flag.StringVar(&defaultConfig.EchoPin, "echo-pin", defaultConfig.EchoPin, "Sonar echo pin (P12 on micro:bit), empty to disable sonar.")
	flag.DurationVar(&defaultConfig.Settle, "settle", defaultConfig.Settle, "Quiet time after each command frame.")
	flag.BoolVar(&defaultConfig.Sim, "sim", defaultConfig.Sim, "Use a simulated board.")
	flag.Float64Var(&defaultConfig.SimObstacle, "sim-obstacle", defaultConfig.SimObstacle, "Obstacle distance (cm) for the simulated sonar, negative for none.")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates the default configuration.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// Device is an opened Cutebot.
type Device struct {
	Bot *cutebot.Cutebot
	// Board is set when simulated.
	Board *board.Board

	bus io.Closer
}

// Close releases the bus.
func (d *Device) Close() error {
	return d.bus.Close()
}

// Open opens the bus and the sonar pins.
func (c *Config) Open() (*Device, error) {
	if c.I2CAddr > 0x7f {
		return nil, fmt.Errorf("invalid I2C address 0x%x", c.I2CAddr)
	}
	bc := cutebot.NewConfig()
	bc.Addr, bc.Settle = uint16(c.I2CAddr), c.Settle

	if c.Sim {
		b := board.New(bc.Clock)
		b.Addr = bc.Addr
		b.Sonar.SetObstacle(c.SimObstacle)
		glog.Infof("using simulated board at 0x%02x", b.Addr)
		return &Device{
			Bot:   bc.New(b, b.Sonar.Trigger(), b.Sonar.Echo()),
			Board: b,
			bus:   b,
		}, nil
	}

	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %v", err)
	}
	bus, err := i2creg.Open(c.I2CBus)
	if err != nil {
		return nil, fmt.Errorf("open I2C bus %q: %v", c.I2CBus, err)
	}
	var trigger, echo cutebot.Pin
	if c.TriggerPin != "" && c.EchoPin != "" {
		trig, ech := gpioreg.ByName(c.TriggerPin), gpioreg.ByName(c.EchoPin)
		if trig == nil || ech == nil {
			bus.Close()
			return nil, fmt.Errorf("sonar pins %q/%q not found", c.TriggerPin, c.EchoPin)
		}
		trigger, echo = trig, ech
	} else {
		glog.Warning("sonar disabled")
	}
	glog.Infof("using %s at 0x%02x", bus, bc.Addr)
	return &Device{Bot: bc.New(bus, trigger, echo), bus: bus}, nil
}

// MustOpen opens the device and fails on error.
func (c *Config) MustOpen() *Device {
	dev, err := c.Open()
	if err != nil {
		log.Fatalln(err)
	}
	return dev
}
