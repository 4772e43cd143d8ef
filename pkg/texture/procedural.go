package texture

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// NewCheckerboard creates a procedural checkerboard surface
func NewCheckerboard(width, height, checkSize int, color1, color2 core.Vec3) *Surface {
	s := NewSurface(width, height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			if ((x/checkSize)+(y/checkSize))%2 == 0 {
				s.Pixels[y*width+x] = color1
			} else {
				s.Pixels[y*width+x] = color2
			}
		}
	}
	return s
}

// NewGradient creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradient(width, height int, color1, color2 core.Vec3) *Surface {
	s := NewSurface(width, height)
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		color := color1.Multiply(1.0 - t).Add(color2.Multiply(t))
		for x := 0; x < width; x++ {
			s.Pixels[y*width+x] = color
		}
	}
	return s
}

// NewLogo creates the back-wall logo surface: light lettering-style rings on
// a dark ground, so the wall reads as textured rather than flat
func NewLogo(width, height int) *Surface {
	s := NewSurface(width, height)
	bg := core.NewVec3(0.12, 0.12, 0.14)
	fg := core.NewVec3(0.85, 0.8, 0.55)
	cx, cy := float64(width)/2, float64(height)/2
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			dx := (float64(x) - cx) / cy
			dy := (float64(y) - cy) / cy
			d := math.Sqrt(dx*dx + dy*dy)
			c := bg
			if d > 0.45 && d < 0.7 || d < 0.2 {
				c = fg
			}
			s.Pixels[y*width+x] = c
		}
	}
	return s
}
