package cmd

import (
	"fmt"
	"image"

	"github.com/df07/go-spectral-raytracer/pkg/bitmap"
	"github.com/df07/go-spectral-raytracer/pkg/core"
	"github.com/df07/go-spectral-raytracer/pkg/scene"
	"github.com/urfave/cli"
)

// Preview draws the scene's devices without light transport
func Preview(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return err
	}
	bmp, err := s.Engine.DevicesPicture(s.Picture)
	if err != nil {
		return err
	}
	return writeImage(ctx, bmp, "picture.png", s.Name)
}

// Eye renders the scene as seen from the picture origin
func Eye(ctx *cli.Context) error {
	setupLogging(ctx)

	s, err := loadScene(ctx)
	if err != nil {
		return err
	}
	bmp, err := s.Engine.Eye(s.Picture)
	if err != nil {
		return err
	}
	bmp.NormalizeColor()
	return writeImage(ctx, bmp, "eye.png",
		fmt.Sprintf("%s, %d samples", s.Name, s.Picture.SamplesPerPixel))
}

// insetViews draws each view's raster along the top edge of bmp, one
// square tile per view, and labels it
func insetViews(bmp *bitmap.Bitmap, views []scene.View) (*bitmap.Bitmap, error) {
	if len(views) == 0 {
		return bmp, nil
	}
	size := min(bmp.Height/3, bmp.Width/len(views))
	labels := make([]bitmap.Label, 0, len(views))
	for i, v := range views {
		r := image.Rect(i*size, 0, (i+1)*size, size)
		bmp.Draw(v.Image(), r)
		labels = append(labels, bitmap.Label{
			Text:  v.Label,
			X:     float64(r.Min.X + 4),
			Y:     float64(r.Min.Y + 4),
			Color: core.White,
		})
	}
	return bitmap.Annotate(bmp, labels)
}
