package cmd

import (
	"github.com/df07/go-spectral-raytracer/pkg/log"
	"github.com/urfave/cli"
)

var logger = log.New("cli")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("verbose") {
		log.SetLevel(log.Info)
	}

	// event logging is written at debug level
	if ctx.GlobalInt("debug") != 0 {
		log.SetLevel(log.Debug)
	}
}
