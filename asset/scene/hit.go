package scene

import "github.com/achilleasa/hitscan/types"

// HitRecord describes a ray-surface intersection.
type HitRecord struct {
	// Distance along the ray.
	T float32

	// World-space hit point and surface normal.
	Point  types.Vec3
	Normal types.Vec3

	// Surface texture coordinates.
	UV types.Vec2

	// Surface tangent frame.
	Tangent   types.Vec3
	Bitangent types.Vec3

	// Index of the struck material in the scene material list.
	MaterialIndex uint32
}
