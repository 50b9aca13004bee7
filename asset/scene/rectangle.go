package scene

import (
	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

// Rays whose direction is this close to perpendicular to a plane normal are
// treated as parallel to the plane.
const parallelEpsilon = 1e-8

// Double-sided rectangle intersection. The reported normal always faces the
// incoming ray.
func (p *Primitive) hitRectangle(r types.Ray, tMin, tMax float32) (HitRecord, bool) {
	a, b, d := p.Vertices[0], p.Vertices[1], p.Vertices[3]
	ab := b.Sub(a)
	ad := d.Sub(a)
	normal := ab.Cross(ad).Normalize()

	denom := normal.Dot(r.Dir)
	if math32.Abs(denom) < parallelEpsilon {
		return HitRecord{}, false
	}

	t := normal.Dot(a.Sub(r.Origin)) / denom
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	q := r.PointAt(t)
	for edge := 0; edge < 4; edge++ {
		v0 := p.Vertices[edge]
		v1 := p.Vertices[(edge+1)%4]
		if v1.Sub(v0).Cross(q.Sub(v0)).Dot(normal) < 0 {
			return HitRecord{}, false
		}
	}

	aq := q.Sub(a)
	if denom > 0 {
		normal = normal.Neg()
	}
	tangent := ab.Normalize()
	return HitRecord{
		T:             t,
		Point:         q,
		Normal:        normal,
		UV:            types.XY(aq.Dot(ab)/ab.LenSquared(), aq.Dot(ad)/ad.LenSquared()),
		Tangent:       tangent,
		Bitangent:     normal.Cross(tangent),
		MaterialIndex: p.MaterialIndex,
	}, true
}
