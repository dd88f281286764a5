package renderer

// Scaler maps between pixel coordinates and world coordinates on a
// rectangular window. Pixel y grows downwards while world y grows upwards.
type Scaler struct {
	XMin, XMax float64
	YMin, YMax float64
	W, H       float64
}

// PixelWidthX returns the world width of one pixel column
func (s Scaler) PixelWidthX() float64 { return (s.XMax - s.XMin) / s.W }

// PixelWidthY returns the world height of one pixel row
func (s Scaler) PixelWidthY() float64 { return (s.YMax - s.YMin) / s.H }

func (s Scaler) PixelToWorldX(x float64) float64 {
	return x/s.W*(s.XMax-s.XMin) + s.XMin
}

func (s Scaler) PixelToWorldY(y float64) float64 {
	return (s.H-y)/s.H*(s.YMax-s.YMin) + s.YMin
}

func (s Scaler) WorldToPixelX(x float64) float64 {
	return (x - s.XMin) / (s.XMax - s.XMin) * s.W
}

func (s Scaler) WorldToPixelY(y float64) float64 {
	return (s.YMax - y) / (s.YMax - s.YMin) * s.H
}
