// Package all links every shell command provider.
package all

import (
	_ "github.com/robotalks/cutebot.go/pkg/cli/cmds/cutebot"
)
