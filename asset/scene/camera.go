package scene

import (
	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

// A pinhole camera generating primary rays for normalized image coordinates.
type Camera struct {
	Position types.Vec3
	LookAt   types.Vec3
	Up       types.Vec3

	// Vertical field of view in degrees.
	FOV float32

	lowerLeft  types.Vec3
	horizontal types.Vec3
	vertical   types.Vec3
}

// Create a camera at pos looking towards look. Aspect is the image width
// divided by its height.
func NewCamera(pos, look types.Vec3, fov, aspect float32) *Camera {
	c := &Camera{
		Position: pos,
		LookAt:   look,
		Up:       worldUp,
		FOV:      fov,
	}

	w := pos.Sub(look).Normalize()
	if math32.Abs(w.Dot(c.Up)) > 0.999 {
		c.Up = types.XYZ(0, 0, -1)
	}
	u := c.Up.Cross(w).Normalize()
	v := w.Cross(u)

	halfH := math32.Tan(fov * math32.Pi / 360.0)
	halfW := aspect * halfH

	c.horizontal = u.Mul(2 * halfW)
	c.vertical = v.Mul(2 * halfH)
	c.lowerLeft = pos.Sub(c.horizontal.Mul(0.5)).Sub(c.vertical.Mul(0.5)).Sub(w)
	return c
}

// Generate a ray through the image plane point (s, t) where (0, 0) is the
// lower-left corner and (1, 1) the upper-right one.
func (c *Camera) Ray(s, t float32) types.Ray {
	dir := c.lowerLeft.Add(c.horizontal.Mul(s)).Add(c.vertical.Mul(t)).Sub(c.Position)
	return types.NewRay(c.Position, dir)
}
