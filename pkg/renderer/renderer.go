// Package renderer drives the per-frame render: camera rays in, a
// tone-mapped pixel buffer out, with the recursive Whitted evaluator in
// between. Scanlines fan out over a dynamic worker pool; pixels within a
// scanline stay sequential, so no two workers ever touch the same
// accumulator slot.
package renderer

import (
	"image"
	"runtime"
	"sync"
	"time"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	Width    int
	Height   int
	MaxDepth int // maximum recursion depth for the evaluator
	Workers  int // scanline workers; 0 means NumCPU
}

// DefaultConfig returns sensible default values
func DefaultConfig() Config {
	return Config{
		Width:    1280,
		Height:   720,
		MaxDepth: 8,
	}
}

// Surface is the display collaborator: a fixed-size buffer of packed
// 0xAARRGGBB pixels a frontend can blit directly
type Surface struct {
	Width  int
	Height int
	Pixels []uint32
}

// NewSurface creates a display surface
func NewSurface(width, height int) *Surface {
	return &Surface{Width: width, Height: height, Pixels: make([]uint32, width*height)}
}

// ToImage converts the surface into an 8-bit RGBA image
func (s *Surface) ToImage() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, s.Width, s.Height))
	for i, p := range s.Pixels {
		img.Pix[i*4+0] = uint8(p >> 16)
		img.Pix[i*4+1] = uint8(p >> 8)
		img.Pix[i*4+2] = uint8(p)
		img.Pix[i*4+3] = uint8(p >> 24)
	}
	return img
}

// Renderer owns the floating-point accumulator and the animation clock, and
// renders one frame per Tick
type Renderer struct {
	scene       *scene.Scene
	camera      *Camera
	whitted     *Whitted
	config      Config
	accumulator []core.Vec3
	animating   bool
	animTime    float64
	stats       FrameStats
}

// NewRenderer creates a renderer for the given scene and camera
func NewRenderer(s *scene.Scene, camera *Camera, config Config) *Renderer {
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Renderer{
		scene:       s,
		camera:      camera,
		whitted:     NewWhitted(s, config.MaxDepth),
		config:      config,
		accumulator: make([]core.Vec3, config.Width*config.Height),
		stats:       NewFrameStats(),
	}
}

// Camera returns the camera collaborator
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// SetAnimating toggles the per-frame animation clock advance
func (r *Renderer) SetAnimating(animating bool) {
	r.animating = animating
}

// Animating reports whether the animation clock advances each frame
func (r *Renderer) Animating() bool {
	return r.animating
}

// Tick renders one frame into the target surface. The animation clock
// advances and SetTime completes before the parallel fan-out begins, so
// every scanline worker observes the same transforms.
func (r *Renderer) Tick(deltaTime float64, target *Surface) {
	if r.animating {
		r.animTime += deltaTime * 0.002
		r.scene.SetTime(r.animTime)
	}
	start := time.Now()

	// scanlines are dispatched dynamically: per-pixel cost varies a lot
	// around the dielectric and reflective objects, so pre-partitioned
	// chunks would balance poorly
	rows := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < r.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				r.renderScanline(y, target)
			}
		}()
	}
	for y := 0; y < r.config.Height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()

	r.stats.Update(float64(time.Since(start).Microseconds()) / 1000.0)
}

// renderScanline traces a primary ray for every pixel on line y, overwrites
// the accumulator and converts to display pixels. Only this call ever writes
// row y, which is what makes the framebuffer lock-free.
func (r *Renderer) renderScanline(y int, target *Surface) {
	base := y * r.config.Width
	for x := 0; x < r.config.Width; x++ {
		ray := r.camera.PrimaryRay(float64(x), float64(y))
		color := r.whitted.Trace(&ray, 0)
		r.accumulator[base+x] = color
		target.Pixels[base+x] = color.RGBA8()
	}
}

// AccumulatorAt returns the linear-light color last written for a pixel
func (r *Renderer) AccumulatorAt(x, y int) core.Vec3 {
	return r.accumulator[y*r.config.Width+x]
}

// Stats returns the frame-time statistics
func (r *Renderer) Stats() FrameStats {
	return r.stats
}
