package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/robotalks/cutebot.go/pkg/bots/cutebot"
	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	env "github.com/robotalks/cutebot.go/pkg/l1/env/controller"
	"github.com/robotalks/cutebot.go/pkg/sim/visualization/see"
)

func init() {
	env.SetControllerType("sim-"+cutebot.ControllerType, l1.ControllerMeta{Description: "Simulation: Cutebot Pro"})
	env.SetupFlags()
	cutebot.SetupFlags()
	see.SetupFlags()
}

func main() {
	flag.Parse()

	env := env.NewConfig().MustNewEnv()
	conf := cutebot.NewConfig()
	conf.Sim = true
	dev := conf.MustOpen()
	defer dev.Close()
	ctl := cutebot.NewController(env, dev.Bot)
	vis := see.NewConfig().NewAdapter(cutebot.Scene(env.Config.Info.Ref.Name(), dev.Board))

	fx.NewLoop().
		Add(env, ctl, vis).
		RunOrFail()
}
