// Package main is the entry point for the zoomgrab application.
package main

import (
	"github.com/samber/lo"

	"github.com/zoomgrab-cli/zoomgrab/cmd"
	"github.com/zoomgrab-cli/zoomgrab/config"
	"github.com/zoomgrab-cli/zoomgrab/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	cmd.Execute()
}
