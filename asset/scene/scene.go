package scene

import (
	"github.com/achilleasa/hitscan/asset/texture"
	"github.com/achilleasa/hitscan/types"
)

// Scene owns all meshes, materials and textures loaded from a scene
// description. Primitives and textured materials reference materials and
// textures by index. Once loading completes the scene is read-only and may be
// queried from multiple goroutines.
type Scene struct {
	Name string

	// Output image dimensions.
	ImageWidth  uint32
	ImageHeight uint32

	// Render settings consumed by the integrator.
	NumThreads        uint32
	NumSamples        uint32
	MaxRecursionDepth uint32

	Ambient types.Vec3

	// Camera placement.
	CameraPos  types.Vec3
	CameraLook types.Vec3

	Materials []Material
	Textures  []texture.Image
	Meshes    []Mesh
}

// Create an empty scene.
func New() *Scene {
	return &Scene{
		CameraLook: types.XYZ(0, 0, -1),
		Materials:  make([]Material, 0),
		Textures:   make([]texture.Image, 0),
		Meshes:     make([]Mesh, 0),
	}
}

// Append a material and return its index.
func (sc *Scene) AddMaterial(mat Material) uint32 {
	sc.Materials = append(sc.Materials, mat)
	return uint32(len(sc.Materials) - 1)
}

// Append a texture and return its index.
func (sc *Scene) AddTexture(img *texture.Image) int32 {
	sc.Textures = append(sc.Textures, *img)
	return int32(len(sc.Textures) - 1)
}

// Append a mesh.
func (sc *Scene) AddMesh(mesh *Mesh) {
	sc.Meshes = append(sc.Meshes, *mesh)
}

// Get the material referenced by a hit record.
func (sc *Scene) MaterialFor(rec HitRecord) *Material {
	return &sc.Materials[rec.MaterialIndex]
}

// Find the nearest intersection of r with the scene geometry inside the
// (tMin, tMax) window.
//
// Meshes with more primitives than bounding faces are first tested against
// their bounding faces and skipped if none of them is hit. Every primitive
// hit shrinks the window so later candidates only need to beat the current
// closest distance.
func (sc *Scene) AnythingHit(r types.Ray, tMin, tMax float32) (HitRecord, bool) {
	var rec HitRecord
	closest := tMax
	hitAnything := false

	for meshIndex := range sc.Meshes {
		mesh := &sc.Meshes[meshIndex]
		if !mesh.skipBoundsTest() && !mesh.boundsHit(r, tMin) {
			continue
		}

		for primIndex := range mesh.Primitives {
			if tmpRec, hit := mesh.Primitives[primIndex].Hit(r, tMin, closest); hit {
				closest = tmpRec.T
				rec = tmpRec
				hitAnything = true
			}
		}
	}

	return rec, hitAnything
}

// Same as AnythingHit but tests every primitive without consulting the
// mesh bounding volumes.
func (sc *Scene) AnythingHitBruteForce(r types.Ray, tMin, tMax float32) (HitRecord, bool) {
	var rec HitRecord
	closest := tMax
	hitAnything := false

	for meshIndex := range sc.Meshes {
		prims := sc.Meshes[meshIndex].Primitives
		for primIndex := range prims {
			if tmpRec, hit := prims[primIndex].Hit(r, tMin, closest); hit {
				closest = tmpRec.T
				rec = tmpRec
				hitAnything = true
			}
		}
	}

	return rec, hitAnything
}
