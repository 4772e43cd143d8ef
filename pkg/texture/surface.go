// Package texture provides the read-only pixel surfaces the scene samples
// for wall albedo. A Surface is a dense row-major grid of linear-light
// colors, keyed by wrapped integer coordinates.
package texture

import (
	"fmt"
	"image"
	"image/png"
	"io"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Surface is a fixed-size 2D pixel array with wrapping lookups
type Surface struct {
	Width  int
	Height int
	Pixels []core.Vec3 // row-major: Pixels[y*Width + x]
}

// NewSurface creates an all-black surface
func NewSurface(width, height int) *Surface {
	return &Surface{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}
}

// At samples the surface at integer coordinates, wrapping both axes
func (s *Surface) At(x, y int) core.Vec3 {
	x %= s.Width
	if x < 0 {
		x += s.Width
	}
	y %= s.Height
	if y < 0 {
		y += s.Height
	}
	return s.Pixels[y*s.Width+x]
}

// Decode reads a PNG image into a surface
func Decode(r io.Reader) (*Surface, error) {
	img, err := png.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decoding surface: %w", err)
	}
	bounds := img.Bounds()
	s := NewSurface(bounds.Dx(), bounds.Dy())
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			r16, g16, b16, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			s.Pixels[y*s.Width+x] = core.NewVec3(
				float64(r16)/65535.0,
				float64(g16)/65535.0,
				float64(b16)/65535.0,
			)
		}
	}
	return s, nil
}

// ToImage converts the surface to an 8-bit RGBA image
func (s *Surface) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for y := 0; y < s.Height; y++ {
		for x := 0; x < s.Width; x++ {
			c := s.Pixels[y*s.Width+x].Clamp(0, 1)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8(c.X * 255.0)
			img.Pix[i+1] = uint8(c.Y * 255.0)
			img.Pix[i+2] = uint8(c.Z * 255.0)
			img.Pix[i+3] = 255
		}
	}
	return img
}
