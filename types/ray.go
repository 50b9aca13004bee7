package types

// A ray is defined by an origin and a (not necessarily normalized) direction.
type Ray struct {
	Origin Vec3
	Dir    Vec3
}

// Create a new ray.
func NewRay(origin, dir Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// Get the point at distance t along the ray: origin + t*dir.
func (r Ray) PointAt(t float32) Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
