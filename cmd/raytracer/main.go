// Interactive frontend: renders the animated scene into an SDL window at
// interactive rates, with free camera movement and persisted camera state.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

var arguments struct {
	width, height int
	workers       int
	stateFile     string
	fullscreen    bool
	noAnimation   bool
}

func init() {
	// SDL event handling must stay on the main OS thread
	runtime.LockOSThread()

	flag.IntVar(&arguments.width, "width", 1280, "render width in pixels")
	flag.IntVar(&arguments.height, "height", 720, "render height in pixels")
	flag.IntVar(&arguments.workers, "workers", 0, "scanline workers, 0 = all CPUs")
	flag.StringVar(&arguments.stateFile, "state", "appstate.dat", "camera state file, empty to disable")
	flag.BoolVar(&arguments.fullscreen, "fullscreen", false, "start fullscreen")
	flag.BoolVar(&arguments.noAnimation, "no-animation", false, "start with the animation paused")
}

func toggleFullscreen(window *sdl.Window) {
	if window.GetFlags()&sdl.WINDOW_FULLSCREEN != 0 {
		window.SetFullscreen(0)
	} else {
		window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}
}

// readInput maps the held keys to one frame of camera control
func readInput() renderer.InputState {
	keys := sdl.GetKeyboardState()
	return renderer.InputState{
		Forward:   keys[sdl.SCANCODE_W] != 0,
		Backward:  keys[sdl.SCANCODE_S] != 0,
		Left:      keys[sdl.SCANCODE_A] != 0,
		Right:     keys[sdl.SCANCODE_D] != 0,
		Up:        keys[sdl.SCANCODE_R] != 0,
		Down:      keys[sdl.SCANCODE_F] != 0,
		TurnLeft:  keys[sdl.SCANCODE_LEFT] != 0,
		TurnRight: keys[sdl.SCANCODE_RIGHT] != 0,
		TurnUp:    keys[sdl.SCANCODE_UP] != 0,
		TurnDown:  keys[sdl.SCANCODE_DOWN] != 0,
	}
}

func loadCameraState(camera *renderer.Camera, path string) {
	f, err := os.Open(path)
	if err != nil {
		return // first run, keep defaults
	}
	defer f.Close()
	if err := camera.Load(f); err != nil {
		log.Printf("ignoring camera state %s: %v", path, err)
	}
}

func saveCameraState(camera *renderer.Camera, path string) {
	f, err := os.Create(path)
	if err != nil {
		log.Printf("could not save camera state: %v", err)
		return
	}
	defer f.Close()
	if err := camera.Save(f); err != nil {
		log.Printf("could not save camera state: %v", err)
	}
}

func run() error {
	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return fmt.Errorf("initializing SDL: %w", err)
	}
	defer sdl.Quit()

	window, err := sdl.CreateWindow("Whitted Raytracer",
		sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED,
		int32(arguments.width), int32(arguments.height), sdl.WINDOW_SHOWN)
	if err != nil {
		return fmt.Errorf("creating window: %w", err)
	}
	defer window.Destroy()
	if arguments.fullscreen {
		window.SetFullscreen(sdl.WINDOW_FULLSCREEN_DESKTOP)
	}

	sdlRenderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC)
	if err != nil {
		return fmt.Errorf("creating renderer: %w", err)
	}
	defer sdlRenderer.Destroy()

	texture, err := sdlRenderer.CreateTexture(sdl.PIXELFORMAT_ARGB8888,
		sdl.TEXTUREACCESS_STREAMING, int32(arguments.width), int32(arguments.height))
	if err != nil {
		return fmt.Errorf("creating texture: %w", err)
	}
	defer texture.Destroy()

	sc := scene.New()
	camera := renderer.NewCamera(arguments.width, arguments.height)
	if arguments.stateFile != "" {
		loadCameraState(camera, arguments.stateFile)
	}
	config := renderer.Config{
		Width:    arguments.width,
		Height:   arguments.height,
		MaxDepth: 8,
		Workers:  arguments.workers,
	}
	rt := renderer.NewRenderer(sc, camera, config)
	rt.SetAnimating(!arguments.noAnimation)
	surface := renderer.NewSurface(arguments.width, arguments.height)

	lastFrame := time.Now()
	for running := true; running; {
		for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
			switch e := event.(type) {
			case *sdl.QuitEvent:
				running = false
			case *sdl.KeyboardEvent:
				if e.Type != sdl.KEYDOWN {
					break
				}
				switch e.Keysym.Sym {
				case sdl.K_ESCAPE:
					running = false
				case sdl.K_SPACE:
					rt.SetAnimating(!rt.Animating())
				case sdl.K_f:
					toggleFullscreen(window)
				}
			}
		}

		now := time.Now()
		deltaMs := float64(now.Sub(lastFrame).Microseconds()) / 1000.0
		lastFrame = now

		rt.Tick(deltaMs, surface)
		camera.HandleInput(readInput(), deltaMs)

		if err := texture.UpdateRGBA(nil, surface.Pixels, arguments.width); err != nil {
			return fmt.Errorf("updating texture: %w", err)
		}
		sdlRenderer.Clear()
		sdlRenderer.Copy(texture, nil, nil)
		sdlRenderer.Present()

		stats := rt.Stats()
		window.SetTitle(fmt.Sprintf("Whitted Raytracer - %5.2fms (%.1ffps) - %.1fMrays/s",
			stats.AvgFrameMs, stats.FPS(),
			stats.RaysPerSecond(arguments.width*arguments.height)/1e6))
	}

	if arguments.stateFile != "" {
		saveCameraState(camera, arguments.stateFile)
	}
	return nil
}

func main() {
	flag.Parse()
	if err := run(); err != nil {
		log.Fatal(err)
	}
}
