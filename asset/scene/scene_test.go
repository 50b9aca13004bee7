package scene

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
	"github.com/google/go-cmp/cmp"
)

func meshOf(prims ...Primitive) *Mesh {
	mesh := NewMesh()
	for _, prim := range prims {
		mesh.AddPrimitive(prim)
	}
	return mesh
}

func TestAnythingHitNearestWins(t *testing.T) {
	near := meshOf(NewSphere(types.XYZ(0, 0, -3), 1, 0))
	far := meshOf(NewSphere(types.XYZ(0, 0, -10), 1, 1))
	r := types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1))

	for _, order := range [][]*Mesh{{near, far}, {far, near}} {
		sc := New()
		sc.AddMaterial(NewLambertian(types.XYZ(0.5, 0.5, 0.5)))
		sc.AddMaterial(NewMetal(types.XYZ(0.5, 0.5, 0.5), 0.1))
		for _, mesh := range order {
			sc.AddMesh(mesh)
		}

		rec, hit := sc.AnythingHit(r, 0.001, math32.MaxFloat32)
		if !hit {
			t.Fatal("expected a hit")
		}
		if !approxEqual(rec.T, 2) || rec.MaterialIndex != 0 {
			t.Fatalf("expected nearest sphere at t=2 with material 0; got t=%f, material %d", rec.T, rec.MaterialIndex)
		}
		if sc.MaterialFor(rec).Type != LambertianMaterial {
			t.Fatalf("expected lambertian material; got %s", sc.MaterialFor(rec).Type)
		}
	}
}

func TestAnythingHitWindow(t *testing.T) {
	sc := New()
	sc.AddMaterial(NewLambertian(types.XYZ(1, 1, 1)))
	sc.AddMesh(meshOf(NewSphere(types.XYZ(0, 0, -3), 1, 0)))
	r := types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1))

	// The near root is outside the window so the far root is reported.
	rec, hit := sc.AnythingHit(r, 2.5, 100)
	if !hit || !approxEqual(rec.T, 4) {
		t.Fatalf("expected far root at t=4; got t=%f (hit: %t)", rec.T, hit)
	}

	rec, hit = sc.AnythingHit(r, 0.001, 1.5)
	if hit {
		t.Fatal("expected no hit inside the window")
	}
	if diff := cmp.Diff(HitRecord{}, rec); diff != "" {
		t.Fatalf("expected untouched record on miss (-want +got):\n%s", diff)
	}
}

// A ray starting inside a mesh bounding box must still find that mesh's
// primitives even if the box exit face lies beyond the current closest hit.
func TestAnythingHitFromInsideBounds(t *testing.T) {
	enclosing := NewMesh()
	enclosing.AddPrimitive(NewSphere(types.XYZ(0, 0, -1.5), 0.25, 1))
	for _, corner := range []types.Vec3{
		{10, 10, 20}, {-10, 10, 20}, {10, -10, 20},
		{-10, -10, -20}, {10, 10, -20}, {-10, 10, -20}, {10, -10, -20},
	} {
		enclosing.AddPrimitive(NewSphere(corner, 0.5, 0))
	}

	sc := New()
	sc.AddMaterial(NewLambertian(types.XYZ(1, 0, 0)))
	sc.AddMaterial(NewLambertian(types.XYZ(0, 1, 0)))
	sc.AddMesh(meshOf(NewSphere(types.XYZ(0, 0, -4), 1, 0)))
	sc.AddMesh(enclosing)

	rec, hit := sc.AnythingHit(types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), 0.001, math32.MaxFloat32)
	if !hit || rec.MaterialIndex != 1 || !approxEqual(rec.T, 1.25) {
		t.Fatalf("expected to hit the enclosed sphere at t=1.25; got t=%f material %d (hit: %t)", rec.T, rec.MaterialIndex, hit)
	}
}

func TestAnythingHitMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	randVec := func(scale float32) types.Vec3 {
		return types.XYZ(
			(rng.Float32()*2-1)*scale,
			(rng.Float32()*2-1)*scale,
			(rng.Float32()*2-1)*scale,
		)
	}

	sc := New()
	sc.AddMaterial(NewLambertian(types.XYZ(1, 1, 1)))
	for meshIndex := 0; meshIndex < 6; meshIndex++ {
		mesh := NewMesh()
		offset := randVec(10)
		for primIndex := 0; primIndex < 12; primIndex++ {
			if primIndex%2 == 0 {
				mesh.AddPrimitiveNoRecalc(NewSphere(offset.Add(randVec(2)), 0.2+rng.Float32(), 0))
			} else {
				v0 := offset.Add(randVec(2))
				mesh.AddPrimitiveNoRecalc(NewTriangle(v0, v0.Add(randVec(1)), v0.Add(randVec(1)), 0))
			}
		}
		mesh.CalculateBoundingFaces()
		sc.AddMesh(mesh)
	}

	for rayIndex := 0; rayIndex < 500; rayIndex++ {
		r := types.NewRay(randVec(15), randVec(1))
		got, gotHit := sc.AnythingHit(r, 0.001, math32.MaxFloat32)
		exp, expHit := sc.AnythingHitBruteForce(r, 0.001, math32.MaxFloat32)
		if gotHit != expHit {
			t.Fatalf("[ray %d] expected hit to be %t; got %t", rayIndex, expHit, gotHit)
		}
		if gotHit && got.T != exp.T {
			t.Fatalf("[ray %d] expected nearest t to be %f; got %f", rayIndex, exp.T, got.T)
		}
	}
}

func TestSceneStats(t *testing.T) {
	sc := New()
	sc.AddMaterial(NewLambertian(types.XYZ(1, 1, 1)))
	sc.AddMaterial(NewEmissive(types.XYZ(4, 4, 4)))
	sc.AddMesh(meshOf(NewSphere(types.Vec3{}, 1, 0), NewPlane(types.Vec3{}, types.XYZ(0, 1, 0), 1)))

	stats := sc.Stats()
	for _, exp := range []string{"Geometry", "sphere", "plane", "emissive", "Textures", "Total"} {
		if !strings.Contains(stats, exp) {
			t.Fatalf("expected stats to mention %q; got:\n%s", exp, stats)
		}
	}
}

func TestCameraRays(t *testing.T) {
	cam := NewCamera(types.XYZ(0, 0, 0), types.XYZ(0, 0, -1), 90, 2)

	center := cam.Ray(0.5, 0.5)
	if !approxVec3(center.Dir.Normalize(), types.XYZ(0, 0, -1)) {
		t.Fatalf("expected center ray to point at the look-at target; got %v", center.Dir)
	}

	// 90 degree vertical fov: the top edge is 45 degrees up.
	top := cam.Ray(0.5, 1)
	if !approxVec3(top.Dir, types.XYZ(0, 1, -1)) {
		t.Fatalf("expected top ray direction (0, 1, -1); got %v", top.Dir)
	}
	right := cam.Ray(1, 0.5)
	if !approxVec3(right.Dir, types.XYZ(2, 0, -1)) {
		t.Fatalf("expected right ray direction (2, 0, -1); got %v", right.Dir)
	}
}
