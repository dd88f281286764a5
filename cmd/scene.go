package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-spectral-raytracer/pkg/bitmap"
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/recorder"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// SceneFlags are accepted by every command that builds a scene
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:  "scene, s",
		Value: "spheres",
		Usage: "scene to build; see the scenes command",
	},
	cli.StringFlag{
		Name:  "quality, q",
		Value: "fast",
		Usage: "fast, good or best",
	},
	cli.IntFlag{
		Name:  "width",
		Usage: "picture width; 0 keeps the scene's",
	},
	cli.IntFlag{
		Name:  "height",
		Usage: "picture height; 0 keeps the scene's",
	},
	cli.IntFlag{
		Name:  "samples",
		Usage: "eye samples per pixel; 0 keeps the scene's",
	},
	cli.IntFlag{
		Name:  "rays",
		Usage: "rays to emit; 0 keeps the scene's",
	},
	cli.Uint64Flag{
		Name:  "seed",
		Value: 1,
		Usage: "random seed",
	},
	cli.IntFlag{
		Name:  "workers",
		Usage: "render goroutines; 0 uses every CPU",
	},
	cli.BoolFlag{
		Name:  "shadows",
		Usage: "trace shadow rays in device pictures",
	},
	cli.StringFlag{
		Name:  "out, o",
		Value: "output",
		Usage: "output directory",
	},
}

// ListScenes prints the registered scenes
func ListScenes(ctx *cli.Context) error {
	setupLogging(ctx)

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Group", "Scene", "Name", "Emits", "Description"})
	for _, g := range scene.ListGroups() {
		for _, info := range g.Scenes {
			emits := ""
			if info.Emits {
				emits = "yes"
			}
			table.Append([]string{g.Name, info.ID, info.DisplayName, emits, info.Description})
		}
	}
	table.SetFooter([]string{"", "", "", "TOTAL", fmt.Sprintf("%d", len(scene.Names()))})
	table.Render()
	return nil
}

// loadScene builds the scene named by the flags and applies the picture
// overrides
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	q, err := scene.ParseQuality(ctx.String("quality"))
	if err != nil {
		return nil, err
	}
	name := ctx.String("scene")
	s, err := scene.Build(name, q)
	if err != nil {
		return nil, err
	}
	logger.Infof("built scene %s (%s quality, %d devices)", name, q, len(s.Engine.Devices()))

	if w := ctx.Int("width"); w > 0 {
		s.Picture.Width = w
	}
	if h := ctx.Int("height"); h > 0 {
		s.Picture.Height = h
	}
	if n := ctx.Int("samples"); n > 0 {
		s.Picture.SamplesPerPixel = n
	}
	if n := ctx.Int("rays"); n > 0 {
		s.Rays = n
	}
	s.Picture.Workers = ctx.Int("workers")
	s.Picture.Parallel = s.Picture.Workers != 1
	s.Picture.Shadows = ctx.Bool("shadows")
	s.Engine.SetSeed(ctx.Uint64("seed"))

	if flags := ctx.GlobalInt("debug"); flags != 0 {
		events := recorder.NewLogger(flags)
		s.Engine.AddRecorder(events)
		for _, v := range s.Views {
			v.Screen.SetLogger(events)
		}
	}
	return s, nil
}

// outputPath returns dir/<scene>_<suffix> and creates dir
func outputPath(ctx *cli.Context, suffix string) (string, error) {
	dir := ctx.String("out")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	name := strings.ReplaceAll(ctx.String("scene"), string(filepath.Separator), "_")
	return filepath.Join(dir, name+"_"+suffix), nil
}

// caption labels the bottom left corner of bmp
func caption(bmp *bitmap.Bitmap, text string) (*bitmap.Bitmap, error) {
	return bitmap.Annotate(bmp, []bitmap.Label{{
		Text:    text,
		X:       4,
		Y:       float64(bmp.Height) - 4,
		Color:   core.White,
		AnchorY: 1,
	}})
}

// writeImage labels bmp and writes it next to the other outputs
func writeImage(ctx *cli.Context, bmp *bitmap.Bitmap, suffix, text string) error {
	out, err := caption(bmp, text)
	if err != nil {
		return err
	}
	path, err := outputPath(ctx, suffix)
	if err != nil {
		return err
	}
	if err := out.Write(path); err != nil {
		return err
	}
	logger.Noticef("wrote %s", path)
	return nil
}
