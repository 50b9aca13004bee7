package scene

import "github.com/achilleasa/hitscan/types"

// Rays must be at least this opposed to the face normal to register a hit.
const triangleFacingEpsilon = 1e-3

// Single-sided triangle intersection. The inside test uses the three signed
// sub-triangle areas which, normalized by the face area, double as the
// barycentric weights of the hit point.
func (p *Primitive) hitTriangle(r types.Ray, tMin, tMax float32) (HitRecord, bool) {
	a, b, c := p.Vertices[0], p.Vertices[1], p.Vertices[2]
	ab := b.Sub(a)
	ac := c.Sub(a)
	normal := ab.Cross(ac).Normalize()

	denom := -normal.Dot(r.Dir)
	if denom < triangleFacingEpsilon {
		return HitRecord{}, false
	}

	t := normal.Dot(r.Origin.Sub(a)) / denom
	if t < tMin || t > tMax {
		return HitRecord{}, false
	}

	q := r.PointAt(t)
	cab := ab.Cross(q.Sub(a)).Dot(normal)
	ccb := c.Sub(b).Cross(q.Sub(b)).Dot(normal)
	cac := a.Sub(c).Cross(q.Sub(c)).Dot(normal)
	if cab < 0 || ccb < 0 || cac < 0 {
		return HitRecord{}, false
	}

	area := ab.Cross(ac).Dot(normal)
	alpha := ccb / area
	beta := cac / area
	gamma := cab / area

	shadingNormal := normal
	if p.hasVertexNormals() {
		shadingNormal = p.Normals[0].Mul(alpha).
			Add(p.Normals[1].Mul(beta)).
			Add(p.Normals[2].Mul(gamma)).
			Normalize()
	}

	tangent := ab.Normalize()
	return HitRecord{
		T:             t,
		Point:         q,
		Normal:        shadingNormal,
		UV:            types.XY(beta, gamma),
		Tangent:       tangent,
		Bitangent:     shadingNormal.Cross(tangent),
		MaterialIndex: p.MaterialIndex,
	}, true
}

func (p *Primitive) hasVertexNormals() bool {
	return p.Normals[0].LenSquared() != 0 &&
		p.Normals[1].LenSquared() != 0 &&
		p.Normals[2].LenSquared() != 0
}
