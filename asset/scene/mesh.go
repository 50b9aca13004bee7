package scene

import (
	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

const (
	numBoundingFaces = 6

	// Mesh bounds are grown by this amount before building the bounding
	// faces so that flat meshes still get non-degenerate faces.
	boundingFacePadding = 1e-4
)

// A mesh owns a list of primitives and a coarse bounding volume expressed as
// the 6 rectangular faces of its AABB.
type Mesh struct {
	Primitives    []Primitive
	BoundingFaces []Primitive
	Bounds        BBox
}

// Create an empty mesh.
func NewMesh() *Mesh {
	return &Mesh{
		Primitives: make([]Primitive, 0),
		Bounds:     EmptyBBox(),
	}
}

// Pre-allocate space for count additional primitives.
func (m *Mesh) ReservePrimitives(count int) {
	if cap(m.Primitives)-len(m.Primitives) >= count {
		return
	}
	grown := make([]Primitive, len(m.Primitives), len(m.Primitives)+count)
	copy(grown, m.Primitives)
	m.Primitives = grown
}

// Append a primitive and extend the bounding volume to include it.
func (m *Mesh) AddPrimitive(prim Primitive) {
	m.Primitives = append(m.Primitives, prim)
	m.Bounds = m.Bounds.Union(prim.BBox())
	m.BoundingFaces = boundingFaces(m.Bounds)
}

// Append a primitive without touching the bounding volume. Callers must
// invoke CalculateBoundingFaces once all primitives have been added.
func (m *Mesh) AddPrimitiveNoRecalc(prim Primitive) {
	m.Primitives = append(m.Primitives, prim)
}

// Recompute the bounding volume from all owned primitives.
func (m *Mesh) CalculateBoundingFaces() {
	m.Bounds = EmptyBBox()
	for index := range m.Primitives {
		m.Bounds = m.Bounds.Union(m.Primitives[index].BBox())
	}
	m.BoundingFaces = boundingFaces(m.Bounds)
}

// Returns true if the mesh has few enough primitives that testing them
// directly is cheaper than testing the bounding faces first.
func (m *Mesh) skipBoundsTest() bool {
	return len(m.Primitives) <= numBoundingFaces
}

// Test r against the bounding faces. The upper distance must stay unbounded
// and never be clamped to the current closest hit.
func (m *Mesh) boundsHit(r types.Ray, tMin float32) bool {
	for index := range m.BoundingFaces {
		if _, hit := m.BoundingFaces[index].Hit(r, tMin, math32.MaxFloat32); hit {
			return true
		}
	}
	return false
}

// Build the 6 outward-facing rectangles of a box.
func boundingFaces(bbox BBox) []Primitive {
	if bbox.IsEmpty() {
		return nil
	}

	bbox = bbox.Pad(boundingFacePadding)
	x0, y0, z0 := bbox[0][0], bbox[0][1], bbox[0][2]
	x1, y1, z1 := bbox[1][0], bbox[1][1], bbox[1][2]

	return []Primitive{
		NewRectangle(types.XYZ(x0, y0, z0), types.XYZ(x0, y0, z1), types.XYZ(x0, y1, z1), types.XYZ(x0, y1, z0), 0),
		NewRectangle(types.XYZ(x1, y0, z0), types.XYZ(x1, y1, z0), types.XYZ(x1, y1, z1), types.XYZ(x1, y0, z1), 0),
		NewRectangle(types.XYZ(x0, y0, z0), types.XYZ(x1, y0, z0), types.XYZ(x1, y0, z1), types.XYZ(x0, y0, z1), 0),
		NewRectangle(types.XYZ(x0, y1, z0), types.XYZ(x0, y1, z1), types.XYZ(x1, y1, z1), types.XYZ(x1, y1, z0), 0),
		NewRectangle(types.XYZ(x0, y0, z0), types.XYZ(x0, y1, z0), types.XYZ(x1, y1, z0), types.XYZ(x1, y0, z0), 0),
		NewRectangle(types.XYZ(x0, y0, z1), types.XYZ(x1, y0, z1), types.XYZ(x1, y1, z1), types.XYZ(x0, y1, z1), 0),
	}
}
