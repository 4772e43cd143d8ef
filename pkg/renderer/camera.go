package renderer

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// Camera generates primary rays over a virtual screen plane two units ahead
// of the eye point
type Camera struct {
	Position core.Vec3
	Target   core.Vec3

	width, height float64
	aspect        float64
	topLeft       core.Vec3
	topRight      core.Vec3
	bottomLeft    core.Vec3
}

// InputState carries one frame's worth of camera control flags, decoupling
// the camera from whichever frontend collects the events
type InputState struct {
	Forward, Backward   bool
	Left, Right         bool
	Up, Down            bool
	TurnLeft, TurnRight bool
	TurnUp, TurnDown    bool
}

// NewCamera creates a camera for the given output resolution, placed at the
// scene's default viewpoint
func NewCamera(width, height int) *Camera {
	c := &Camera{
		Position: core.NewVec3(0, 0, -2),
		Target:   core.NewVec3(0, 0, -1),
		width:    float64(width),
		height:   float64(height),
		aspect:   float64(width) / float64(height),
	}
	c.update()
	return c
}

// update recomputes the screen-plane corners from position and target
func (c *Camera) update() {
	ahead := c.Target.Subtract(c.Position).Normalize()
	right := core.NewVec3(0, 1, 0).Cross(ahead).Normalize()
	up := ahead.Cross(right).Normalize()
	center := c.Position.Add(ahead.Multiply(2))
	c.topLeft = center.Subtract(right.Multiply(c.aspect)).Add(up)
	c.topRight = center.Add(right.Multiply(c.aspect)).Add(up)
	c.bottomLeft = center.Subtract(right.Multiply(c.aspect)).Subtract(up)
}

// PrimaryRay generates the ray through pixel (x, y)
func (c *Camera) PrimaryRay(x, y float64) core.Ray {
	u := x / c.width
	v := y / c.height
	p := c.topLeft.
		Add(c.topRight.Subtract(c.topLeft).Multiply(u)).
		Add(c.bottomLeft.Subtract(c.topLeft).Multiply(v))
	return core.NewRay(c.Position, p.Subtract(c.Position).Normalize())
}

// HandleInput applies one frame of camera control, reporting whether the
// camera moved
func (c *Camera) HandleInput(in InputState, deltaTime float64) bool {
	ahead := c.Target.Subtract(c.Position).Normalize()
	right := core.NewVec3(0, 1, 0).Cross(ahead).Normalize()
	up := ahead.Cross(right).Normalize()
	speed := 0.0025 * deltaTime
	moved := false

	move := func(dir core.Vec3) {
		c.Position = c.Position.Add(dir.Multiply(speed * 2))
		c.Target = c.Target.Add(dir.Multiply(speed * 2))
		moved = true
	}
	if in.Forward {
		move(ahead)
	}
	if in.Backward {
		move(ahead.Negate())
	}
	if in.Left {
		move(right.Negate())
	}
	if in.Right {
		move(right)
	}
	if in.Up {
		move(up)
	}
	if in.Down {
		move(up.Negate())
	}
	if in.TurnLeft {
		c.Target = c.Target.Subtract(right.Multiply(speed * 0.5))
		moved = true
	}
	if in.TurnRight {
		c.Target = c.Target.Add(right.Multiply(speed * 0.5))
		moved = true
	}
	if in.TurnUp {
		c.Target = c.Target.Add(up.Multiply(speed * 0.5))
		moved = true
	}
	if in.TurnDown {
		c.Target = c.Target.Subtract(up.Multiply(speed * 0.5))
		moved = true
	}
	if moved {
		c.Target = c.Position.Add(c.Target.Subtract(c.Position).Normalize())
		c.update()
	}
	return moved
}

// cameraState is the fixed-size binary blob persisted between runs
type cameraState struct {
	Position [3]float64
	Target   [3]float64
}

// Save writes the camera state as a fixed-size little-endian blob
func (c *Camera) Save(w io.Writer) error {
	state := cameraState{
		Position: [3]float64{c.Position.X, c.Position.Y, c.Position.Z},
		Target:   [3]float64{c.Target.X, c.Target.Y, c.Target.Z},
	}
	if err := binary.Write(w, binary.LittleEndian, state); err != nil {
		return fmt.Errorf("saving camera state: %w", err)
	}
	return nil
}

// Load restores a camera state blob written by Save
func (c *Camera) Load(r io.Reader) error {
	var state cameraState
	if err := binary.Read(r, binary.LittleEndian, &state); err != nil {
		return fmt.Errorf("loading camera state: %w", err)
	}
	c.Position = core.NewVec3(state.Position[0], state.Position[1], state.Position[2])
	c.Target = core.NewVec3(state.Target[0], state.Target[1], state.Target[2])
	c.update()
	return nil
}
