package scene

import (
	"fmt"

	"github.com/achilleasa/hitscan/types"
)

type PrimitiveType uint8

const (
	SpherePrimitive PrimitiveType = iota
	TrianglePrimitive
	RectanglePrimitive
	PlanePrimitive
)

func (pt PrimitiveType) String() string {
	switch pt {
	case SpherePrimitive:
		return "sphere"
	case TrianglePrimitive:
		return "triangle"
	case RectanglePrimitive:
		return "rectangle"
	case PlanePrimitive:
		return "plane"
	}
	return fmt.Sprintf("primitive(%d)", uint8(pt))
}

// Primitive is a closed set of surface types sharing one layout. Field usage
// depends on Type:
//
// - sphere: Vertices[0] is the center; Radius is the radius
// - triangle: Vertices[0:3] in counter-clockwise order; Normals[0:3] are optional vertex normals
// - rectangle: Vertices[0:4] are coplanar corners in counter-clockwise order
// - plane: Vertices[0] is a point on the plane; Normals[0] is the unit plane normal
type Primitive struct {
	Type PrimitiveType

	Vertices [4]types.Vec3
	Normals  [3]types.Vec3
	Radius   float32

	// Index into the scene material list.
	MaterialIndex uint32
}

// Create a sphere primitive.
func NewSphere(center types.Vec3, radius float32, materialIndex uint32) Primitive {
	return Primitive{
		Type:          SpherePrimitive,
		Vertices:      [4]types.Vec3{center},
		Radius:        radius,
		MaterialIndex: materialIndex,
	}
}

// Create a flat-shaded triangle. Vertices must be specified in counter-clockwise order.
func NewTriangle(v0, v1, v2 types.Vec3, materialIndex uint32) Primitive {
	return Primitive{
		Type:          TrianglePrimitive,
		Vertices:      [4]types.Vec3{v0, v1, v2},
		MaterialIndex: materialIndex,
	}
}

// Create a triangle whose shading normal is interpolated from its vertex
// normals. If any vertex normal is zero the triangle is flat-shaded.
func NewSmoothTriangle(vertices [3]types.Vec3, normals [3]types.Vec3, materialIndex uint32) Primitive {
	return Primitive{
		Type:          TrianglePrimitive,
		Vertices:      [4]types.Vec3{vertices[0], vertices[1], vertices[2]},
		Normals:       normals,
		MaterialIndex: materialIndex,
	}
}

// Create a rectangle from four coplanar corners in counter-clockwise order.
func NewRectangle(a, b, c, d types.Vec3, materialIndex uint32) Primitive {
	return Primitive{
		Type:          RectanglePrimitive,
		Vertices:      [4]types.Vec3{a, b, c, d},
		MaterialIndex: materialIndex,
	}
}

// Create an infinite plane passing through origin.
func NewPlane(origin, normal types.Vec3, materialIndex uint32) Primitive {
	return Primitive{
		Type:          PlanePrimitive,
		Vertices:      [4]types.Vec3{origin},
		Normals:       [3]types.Vec3{normal.Normalize()},
		MaterialIndex: materialIndex,
	}
}

// Intersect the primitive with r. Only hits whose distance lies in the
// [tMin, tMax] window are reported; spheres exclude both ends of the window.
func (p *Primitive) Hit(r types.Ray, tMin, tMax float32) (HitRecord, bool) {
	switch p.Type {
	case SpherePrimitive:
		return p.hitSphere(r, tMin, tMax)
	case TrianglePrimitive:
		return p.hitTriangle(r, tMin, tMax)
	case RectanglePrimitive:
		return p.hitRectangle(r, tMin, tMax)
	case PlanePrimitive:
		return p.hitPlane(r, tMin, tMax)
	}
	return HitRecord{}, false
}

// Get the primitive AABB.
func (p *Primitive) BBox() BBox {
	switch p.Type {
	case SpherePrimitive:
		r := types.XYZ(p.Radius, p.Radius, p.Radius)
		return BBox{p.Vertices[0].Sub(r), p.Vertices[0].Add(r)}
	case TrianglePrimitive:
		return BBoxFromPoints(p.Vertices[0], p.Vertices[1], p.Vertices[2])
	case RectanglePrimitive:
		return BBoxFromPoints(p.Vertices[:]...)
	case PlanePrimitive:
		return p.planeBBox()
	}
	return EmptyBBox()
}

func (p *Primitive) String() string {
	switch p.Type {
	case SpherePrimitive:
		return fmt.Sprintf("sphere center: %v, radius: %.3f, material: %d", p.Vertices[0], p.Radius, p.MaterialIndex)
	case TrianglePrimitive:
		return fmt.Sprintf("triangle %v %v %v, material: %d", p.Vertices[0], p.Vertices[1], p.Vertices[2], p.MaterialIndex)
	case RectanglePrimitive:
		return fmt.Sprintf("rectangle %v %v %v %v, material: %d", p.Vertices[0], p.Vertices[1], p.Vertices[2], p.Vertices[3], p.MaterialIndex)
	default:
		return fmt.Sprintf("plane origin: %v, normal: %v, material: %d", p.Vertices[0], p.Normals[0], p.MaterialIndex)
	}
}
