package scene

import (
	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

var worldUp = types.XYZ(0, 1, 0)

func (p *Primitive) hitSphere(r types.Ray, tMin, tMax float32) (HitRecord, bool) {
	center := p.Vertices[0]
	oc := r.Origin.Sub(center)
	a := r.Dir.Dot(r.Dir)
	b := 2.0 * oc.Dot(r.Dir)
	c := oc.Dot(oc) - p.Radius*p.Radius
	discriminant := b*b - 4*a*c
	if discriminant <= 0 {
		return HitRecord{}, false
	}

	// Try the near root first and only fall back to the far one if it is
	// outside the window.
	sqrtDisc := math32.Sqrt(discriminant)
	t := (-b - sqrtDisc) / (2.0 * a)
	if t <= tMin || t >= tMax {
		t = (-b + sqrtDisc) / (2.0 * a)
		if t <= tMin || t >= tMax {
			return HitRecord{}, false
		}
	}

	point := r.PointAt(t)
	normal := point.Sub(center).Div(p.Radius)

	// cartesian -> spherical -> uv
	theta := math32.Atan2(-normal[2], normal[0]) + math32.Pi
	phi := 0.5 + math32.Asin(types.Clamp(normal[1], -1, 1))/math32.Pi

	tangent := normal.Cross(worldUp).Normalize().Neg()
	return HitRecord{
		T:             t,
		Point:         point,
		Normal:        normal,
		UV:            types.XY(theta/(2.0*math32.Pi), phi),
		Tangent:       tangent,
		Bitangent:     normal.Cross(tangent),
		MaterialIndex: p.MaterialIndex,
	}, true
}
