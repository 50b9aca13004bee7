package scene

import (
	"testing"

	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

const testEpsilon = 1e-4

func approxEqual(a, b float32) bool {
	return math32.Abs(a-b) <= testEpsilon
}

func approxVec3(a, b types.Vec3) bool {
	return approxEqual(a[0], b[0]) && approxEqual(a[1], b[1]) && approxEqual(a[2], b[2])
}

func TestSphereHit(t *testing.T) {
	sphere := NewSphere(types.XYZ(0, 0, -1), 0.5, 3)

	rec, hit := sphere.Hit(types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray to hit the sphere")
	}
	if !approxEqual(rec.T, 0.5) {
		t.Fatalf("expected t to be 0.5; got %f", rec.T)
	}
	if !approxVec3(rec.Normal, types.XYZ(0, 0, 1)) {
		t.Fatalf("expected normal to be (0, 0, 1); got %v", rec.Normal)
	}
	if rec.MaterialIndex != 3 {
		t.Fatalf("expected material index 3; got %d", rec.MaterialIndex)
	}

	_, hit = sphere.Hit(types.NewRay(types.XYZ(2, 0, 0), types.XYZ(0, 1, 0)), 0.001, 1000)
	if hit {
		t.Fatal("expected ray to miss the sphere")
	}
}

func TestSphereFarRootFromInside(t *testing.T) {
	sphere := NewSphere(types.Vec3{}, 1, 0)

	rec, hit := sphere.Hit(types.NewRay(types.Vec3{}, types.XYZ(1, 0, 0)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray starting inside the sphere to hit the far side")
	}
	if !approxEqual(rec.T, 1) {
		t.Fatalf("expected t to be 1; got %f", rec.T)
	}

	// Both roots outside the window.
	_, hit = sphere.Hit(types.NewRay(types.XYZ(0, 0, 5), types.XYZ(0, 0, -1)), 0.001, 3)
	if hit {
		t.Fatal("expected no hit when both roots lie beyond tMax")
	}
}

func TestSphereHitProperties(t *testing.T) {
	center := types.XYZ(1, -2, -6)
	radius := float32(1.5)
	sphere := NewSphere(center, radius, 0)

	origins := []types.Vec3{
		{0, 0, 0}, {3, 1, 2}, {-4, -2, -6}, {1, 5, -6}, {1.2, -1.9, 1},
	}
	for idx, origin := range origins {
		r := types.NewRay(origin, center.Add(types.XYZ(0.3, -0.2, 0.1)).Sub(origin))
		rec, hit := sphere.Hit(r, 0.001, math32.MaxFloat32)
		if !hit {
			t.Fatalf("[spec %d] expected ray to hit the sphere", idx)
		}

		if d := rec.Point.Sub(center).Len(); !approxEqual(d, radius) {
			t.Fatalf("[spec %d] expected hit point at distance %f from center; got %f", idx, radius, d)
		}
		if l := rec.Normal.Len(); !approxEqual(l, 1) {
			t.Fatalf("[spec %d] expected unit normal; got length %f", idx, l)
		}
		if !approxVec3(rec.Normal, rec.Point.Sub(center).Normalize()) {
			t.Fatalf("[spec %d] expected normal to be parallel to point - center; got %v", idx, rec.Normal)
		}
		if rec.UV[0] < 0 || rec.UV[0] > 1 || rec.UV[1] < 0 || rec.UV[1] > 1 {
			t.Fatalf("[spec %d] expected uv in [0, 1]; got %v", idx, rec.UV)
		}
	}
}

func TestSphereBBox(t *testing.T) {
	sphere := NewSphere(types.XYZ(1, 2, 3), 2, 0)
	exp := BBox{types.XYZ(-1, 0, 1), types.XYZ(3, 4, 5)}
	if got := sphere.BBox(); got != exp {
		t.Fatalf("expected bbox %v; got %v", exp, got)
	}
}

func TestTriangleHit(t *testing.T) {
	tri := NewTriangle(types.XYZ(-1, -1, -2), types.XYZ(1, -1, -2), types.XYZ(0, 1, -2), 1)

	rec, hit := tri.Hit(types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray to hit the triangle")
	}
	if !approxEqual(rec.T, 2) {
		t.Fatalf("expected t to be 2; got %f", rec.T)
	}
	if !approxVec3(rec.Normal, types.XYZ(0, 0, 1)) {
		t.Fatalf("expected flat normal (0, 0, 1); got %v", rec.Normal)
	}

	// Single-sided: rays travelling along the normal are rejected.
	_, hit = tri.Hit(types.NewRay(types.XYZ(0, 0, -4), types.XYZ(0, 0, 1)), 0.001, 1000)
	if hit {
		t.Fatal("expected back-facing hit to be rejected")
	}

	// Outside the edges.
	_, hit = tri.Hit(types.NewRay(types.XYZ(2, 0, 0), types.XYZ(0, 0, -1)), 0.001, 1000)
	if hit {
		t.Fatal("expected ray outside the triangle to miss")
	}

	// Outside the t window.
	_, hit = tri.Hit(types.NewRay(types.Vec3{}, types.XYZ(0, 0, -1)), 0.001, 1)
	if hit {
		t.Fatal("expected hit beyond tMax to be rejected")
	}
}

func TestSmallTriangleHit(t *testing.T) {
	edge := float32(2.5e-4)
	tri := NewTriangle(types.XYZ(0, 0, -1), types.XYZ(edge, 0, -1), types.XYZ(0, edge, -1), 0)

	rec, hit := tri.Hit(types.NewRay(types.XYZ(edge/4, edge/4, 0), types.XYZ(0, 0, -1)), 0.001, 1000)
	if !hit {
		t.Fatalf("expected ray to hit triangle with edge %g", edge)
	}
	if !approxEqual(rec.T, 1) {
		t.Fatalf("expected t to be 1; got %f", rec.T)
	}
	if !approxVec3(rec.Normal, types.XYZ(0, 0, 1)) {
		t.Fatalf("expected flat normal (0, 0, 1); got %v", rec.Normal)
	}
	if !approxEqual(rec.UV[0], 0.25) || !approxEqual(rec.UV[1], 0.25) {
		t.Fatalf("expected uv (0.25, 0.25); got %v", rec.UV)
	}

	// Collinear vertices have no face normal.
	degenerate := NewTriangle(types.XYZ(0, 0, -1), types.XYZ(1, 0, -1), types.XYZ(2, 0, -1), 0)
	_, hit = degenerate.Hit(types.NewRay(types.XYZ(0.5, 0, 0), types.XYZ(0, 0, -1)), 0.001, 1000)
	if hit {
		t.Fatal("expected degenerate triangle to be rejected")
	}
}

func TestTriangleBarycentrics(t *testing.T) {
	a, b, c := types.XYZ(0, 0, 0), types.XYZ(2, 0, 0), types.XYZ(0, 3, 0)
	tri := NewTriangle(a, b, c, 0)

	targets := []types.Vec3{
		{0.1, 0.1, 0}, {1, 1, 0}, {0.5, 2, 0}, {1.5, 0.2, 0}, {0, 0, 0},
	}
	for idx, target := range targets {
		r := types.NewRay(target.Add(types.XYZ(0.2, -0.1, 4)), types.XYZ(-0.2, 0.1, -4))
		rec, hit := tri.Hit(r, 0.001, 1000)
		if !hit {
			t.Fatalf("[spec %d] expected ray to hit the triangle", idx)
		}

		beta, gamma := rec.UV[0], rec.UV[1]
		alpha := 1 - beta - gamma
		if alpha < -testEpsilon || beta < 0 || gamma < 0 {
			t.Fatalf("[spec %d] expected non-negative barycentrics; got (%f, %f, %f)", idx, alpha, beta, gamma)
		}

		interpolated := a.Mul(alpha).Add(b.Mul(beta)).Add(c.Mul(gamma))
		if !approxVec3(interpolated, rec.Point) {
			t.Fatalf("[spec %d] expected barycentric point %v to match hit point %v", idx, interpolated, rec.Point)
		}
	}
}

func TestSmoothTriangleNormals(t *testing.T) {
	n := types.XYZ(1, 0, 1).Normalize()
	tri := NewSmoothTriangle(
		[3]types.Vec3{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}},
		[3]types.Vec3{n, n, n},
		0,
	)
	rec, hit := tri.Hit(types.NewRay(types.XYZ(0.25, 0.25, 1), types.XYZ(0, 0, -1)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray to hit the triangle")
	}
	if !approxVec3(rec.Normal, n) {
		t.Fatalf("expected interpolated normal %v; got %v", n, rec.Normal)
	}

	// A single missing vertex normal falls back to flat shading.
	tri.Normals[2] = types.Vec3{}
	rec, _ = tri.Hit(types.NewRay(types.XYZ(0.25, 0.25, 1), types.XYZ(0, 0, -1)), 0.001, 1000)
	if !approxVec3(rec.Normal, types.XYZ(0, 0, 1)) {
		t.Fatalf("expected flat normal; got %v", rec.Normal)
	}
}

func TestRectangleHit(t *testing.T) {
	rect := NewRectangle(
		types.XYZ(-1, -1, -3), types.XYZ(1, -1, -3), types.XYZ(1, 1, -3), types.XYZ(-1, 1, -3),
		2,
	)

	rec, hit := rect.Hit(types.NewRay(types.XYZ(0.5, 0.5, 0), types.XYZ(0, 0, -1)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray to hit the rectangle")
	}
	if !approxEqual(rec.T, 3) {
		t.Fatalf("expected t to be 3; got %f", rec.T)
	}
	if !approxVec3(rec.Normal, types.XYZ(0, 0, 1)) {
		t.Fatalf("expected normal facing the ray; got %v", rec.Normal)
	}
	if !approxEqual(rec.UV[0], 0.75) || !approxEqual(rec.UV[1], 0.75) {
		t.Fatalf("expected uv (0.75, 0.75); got %v", rec.UV)
	}

	// Double-sided.
	rec, hit = rect.Hit(types.NewRay(types.XYZ(0, 0, -6), types.XYZ(0, 0, 1)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray from behind to hit the rectangle")
	}
	if !approxVec3(rec.Normal, types.XYZ(0, 0, -1)) {
		t.Fatalf("expected flipped normal; got %v", rec.Normal)
	}

	_, hit = rect.Hit(types.NewRay(types.XYZ(1.5, 0, 0), types.XYZ(0, 0, -1)), 0.001, 1000)
	if hit {
		t.Fatal("expected ray outside the rectangle to miss")
	}

	exp := BBox{types.XYZ(-1, -1, -3), types.XYZ(1, 1, -3)}
	if got := rect.BBox(); got != exp {
		t.Fatalf("expected bbox %v; got %v", exp, got)
	}
}

func TestSmallRectangleHit(t *testing.T) {
	edge := float32(2.5e-4)
	rect := NewRectangle(
		types.XYZ(0, 0, -1), types.XYZ(edge, 0, -1), types.XYZ(edge, edge, -1), types.XYZ(0, edge, -1),
		0,
	)

	rec, hit := rect.Hit(types.NewRay(types.XYZ(edge/2, edge/2, 0), types.XYZ(0, 0, -1)), 0.001, 1000)
	if !hit {
		t.Fatalf("expected ray to hit rectangle with edge %g", edge)
	}
	if !approxEqual(rec.T, 1) {
		t.Fatalf("expected t to be 1; got %f", rec.T)
	}
	if !approxVec3(rec.Normal, types.XYZ(0, 0, 1)) {
		t.Fatalf("expected normal facing the ray; got %v", rec.Normal)
	}
}

func TestPlaneHit(t *testing.T) {
	plane := NewPlane(types.XYZ(0, -1, 0), types.XYZ(0, 2, 0), 0)

	rec, hit := plane.Hit(types.NewRay(types.XYZ(3, 1, 2), types.XYZ(0, -1, 0)), 0.001, 1000)
	if !hit {
		t.Fatal("expected ray to hit the plane")
	}
	if !approxEqual(rec.T, 2) {
		t.Fatalf("expected t to be 2; got %f", rec.T)
	}
	if !approxVec3(rec.Normal, types.XYZ(0, 1, 0)) {
		t.Fatalf("expected unit normal (0, 1, 0); got %v", rec.Normal)
	}

	_, hit = plane.Hit(types.NewRay(types.XYZ(0, 1, 0), types.XYZ(1, 0, 0)), 0.001, 1000)
	if hit {
		t.Fatal("expected parallel ray to miss")
	}

	rec, hit = plane.Hit(types.NewRay(types.XYZ(0, -3, 0), types.XYZ(0, 1, 0)), 0.001, 1000)
	if !hit || !approxVec3(rec.Normal, types.XYZ(0, -1, 0)) {
		t.Fatalf("expected hit from below with flipped normal; got %v (hit: %t)", rec.Normal, hit)
	}

	bbox := plane.BBox()
	if bbox[0][1] > -1 || bbox[1][1] < -1 || bbox[1][1]-bbox[0][1] > 0.01 {
		t.Fatalf("expected a thin slab around y=-1; got %v", bbox)
	}
}

func TestPrimitiveTypeString(t *testing.T) {
	if got := TrianglePrimitive.String(); got != "triangle" {
		t.Fatalf("expected triangle; got %s", got)
	}
	if got := PrimitiveType(42).String(); got != "primitive(42)" {
		t.Fatalf("expected primitive(42); got %s", got)
	}
}
