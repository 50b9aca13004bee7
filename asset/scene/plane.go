package scene

import (
	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

const (
	// Half-extent used for the bounds of infinite planes.
	planeExtent = 1e6

	// Half-thickness of axis-aligned plane bounds.
	planeThickness = 1e-3
)

// Double-sided plane intersection. UVs are the planar coordinates of the hit
// point relative to the plane origin.
func (p *Primitive) hitPlane(r types.Ray, tMin, tMax float32) (HitRecord, bool) {
	origin, normal := p.Vertices[0], p.Normals[0]

	denom := normal.Dot(r.Dir)
	if math32.Abs(denom) < parallelEpsilon {
		return HitRecord{}, false
	}

	t := normal.Dot(origin.Sub(r.Origin)) / denom
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	q := r.PointAt(t)
	tangent, bitangent := planeFrame(normal)
	oq := q.Sub(origin)
	if denom > 0 {
		normal = normal.Neg()
		bitangent = bitangent.Neg()
	}
	return HitRecord{
		T:             t,
		Point:         q,
		Normal:        normal,
		UV:            types.XY(oq.Dot(tangent), oq.Dot(bitangent)),
		Tangent:       tangent,
		Bitangent:     bitangent,
		MaterialIndex: p.MaterialIndex,
	}, true
}

// Build an orthonormal tangent frame for a plane normal.
func planeFrame(normal types.Vec3) (tangent, bitangent types.Vec3) {
	ref := worldUp
	if math32.Abs(normal.Dot(ref)) > 0.999 {
		ref = types.XYZ(1, 0, 0)
	}
	tangent = ref.Cross(normal).Normalize()
	return tangent, normal.Cross(tangent)
}

// Planes are unbounded; axis-aligned planes get a thin slab along their
// normal axis and a large extent along the others.
func (p *Primitive) planeBBox() BBox {
	origin, normal := p.Vertices[0], p.Normals[0]
	bbox := BBox{
		types.XYZ(-planeExtent, -planeExtent, -planeExtent),
		types.XYZ(planeExtent, planeExtent, planeExtent),
	}
	for axis := 0; axis < 3; axis++ {
		if math32.Abs(normal[axis]) > 0.999 {
			bbox[0][axis] = origin[axis] - planeThickness
			bbox[1][axis] = origin[axis] + planeThickness
		}
	}
	return bbox
}
