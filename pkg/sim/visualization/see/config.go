package see

import (
	"flag"
	"os"
)

// Config represents configuration for see.
type Config struct {
	// W and H are the size (mm) of the floor area shown.
	W float64
	H float64
	// Disabled turns off the output.
	Disabled bool
}

var defaultConfig = Config{
	W: 2000,
	H: 2000,
}

// SetupFlags sets command line flags.
func SetupFlags() {
	flag.Float64Var(&defaultConfig.W, "see-w", defaultConfig.W, "Width (mm) of visualization area")
	flag.Float64Var(&defaultConfig.H, "see-h", defaultConfig.H, "Height (mm) of visualization area")
	flag.BoolVar(&defaultConfig.Disabled, "see-off", defaultConfig.Disabled, "Disable visualization output on stdout")
}

// Default gets default config.
func Default() *Config {
	return &defaultConfig
}

// NewConfig creates a default config.
func NewConfig() *Config {
	conf := defaultConfig
	return &conf
}

// NewAdapter creates adapter writing to stdout.
func (c *Config) NewAdapter(src Source) *Adapter {
	a := NewAdapter(c, src, os.Stdout)
	if c.Disabled {
		a.Out = nil
	}
	return a
}
