package cmd

import (
	"fmt"
	"time"

	"github.com/df07/go-spectral-raytracer/pkg/recorder"
	"github.com/urfave/cli"
)

// EmitFlags extend SceneFlags for the emit command
var EmitFlags = append([]cli.Flag{
	cli.BoolFlag{
		Name:  "csv",
		Usage: "also save every screen's recorded rays as CSV",
	},
	cli.BoolFlag{
		Name:  "no-picture",
		Usage: "skip the devices picture with the screens inset",
	},
}, SceneFlags...)

// Emit sends rays from the scene's sources and writes what its screens saw
func Emit(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return err
	}
	if s.Rays == 0 {
		return fmt.Errorf("scene %s has no light sources; use eye or preview", s.Name)
	}

	counter := recorder.NewCounter()
	s.Engine.AddRecorder(counter)

	start := time.Now()
	if err := s.Engine.Emit(s.Rays); err != nil {
		return err
	}
	logger.Noticef("emitted %d rays in %s", s.Rays, time.Since(start).Round(time.Millisecond))
	counter.Table(ctx.App.Writer)

	for _, v := range s.Views {
		logger.Infof("screen %s recorded %d rays", v.Label, v.Screen.Len())
		if err := writeImage(ctx, v.Image(), v.Label+".png",
			fmt.Sprintf("%s: %d rays", v.Label, v.Screen.Len())); err != nil {
			return err
		}
		if !ctx.Bool("csv") {
			continue
		}
		path, err := outputPath(ctx, v.Label+".csv")
		if err != nil {
			return err
		}
		if err := v.Screen.SaveCSV(path); err != nil {
			return err
		}
		logger.Noticef("wrote %s", path)
	}

	if ctx.Bool("no-picture") {
		return nil
	}
	bmp, err := s.Engine.DevicesPicture(s.Picture)
	if err != nil {
		return err
	}
	bmp, err = insetViews(bmp, s.Views)
	if err != nil {
		return err
	}
	return writeImage(ctx, bmp, "picture.png", s.Name)
}
