package main

import (
	"flag"

	"github.com/robotalks/cutebot.go/pkg/bots/cutebot"
	fx "github.com/robotalks/cutebot.go/pkg/framework"
	"github.com/robotalks/cutebot.go/pkg/l1"
	env "github.com/robotalks/cutebot.go/pkg/l1/env/controller"
)

func init() {
	env.SetControllerType(cutebot.ControllerType, l1.ControllerMeta{Description: "Cutebot Pro"})
	env.SetupFlags()
	cutebot.SetupFlags()
}

func main() {
	flag.Parse()

	env := env.NewConfig().MustNewEnv()
	dev := cutebot.NewConfig().MustOpen()
	defer dev.Close()
	ctl := cutebot.NewController(env, dev.Bot)
	fx.NewLoop().Add(env, ctl).RunOrFail()
}
