// robocli is an interactive shell for L1 controllers.
// With -e it evaluates the command line arguments and exits.
//
//	robocli -robot-reg mqtt://localhost:1883/robo/ connect cutebot/bot1
//	[cutebot/bot1] > cb.move 60 30
package main

import (
	"github.com/robotalks/cutebot.go/pkg/cli/sh"
	env "github.com/robotalks/cutebot.go/pkg/l1/env/connector"

	_ "github.com/robotalks/cutebot.go/pkg/cli/cmds/all"
)

//go-build: CGO_ENABLED=0

func init() {
	env.SetupFlags()
}

func main() {
	sh.Main()
}
