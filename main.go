package main

import (
	"os"

	"github.com/df07/go-spectral-raytracer/cmd"
	"github.com/df07/go-spectral-raytracer/pkg/log"
	"github.com/urfave/cli"
)

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "spectral"
	app.Usage = "trace light through optical devices one wavelength at a time"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "verbose, v",
			Usage: "enable verbose logging",
		},
		cli.IntFlag{
			Name:  "debug",
			Usage: "log ray events; a mask of refract=1 reflect=2 light=4 escape=8 die=16 screen=32 generate=64 end=128, -1 for all",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "preview",
			Usage: "draw the devices of a scene",
			Description: `
Shade every surface a camera ray passes through with its preview colour. No
light transport is simulated; this shows where the devices are.`,
			Flags:  cmd.SceneFlags,
			Action: cmd.Preview,
		},
		{
			Name:  "eye",
			Usage: "render a scene as seen by a camera",
			Description: `
Trace spectral rays backwards from the camera and add up the light they
gather from emissive surfaces.`,
			Flags:  cmd.SceneFlags,
			Action: cmd.Eye,
		},
		{
			Name:  "emit",
			Usage: "emit rays from a scene's sources and record them on its screens",
			Description: `
Forward-trace rays from every light source, print the event counts and write
each screen's raster to the output directory.`,
			Flags:  cmd.EmitFlags,
			Action: cmd.Emit,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("main").Error(err.Error())
		os.Exit(1)
	}
}
