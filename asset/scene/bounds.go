package scene

import (
	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

// An axis-aligned bounding box stored as a [min, max] corner pair.
type BBox [2]types.Vec3

// Create an inverted box that any union will replace.
func EmptyBBox() BBox {
	return BBox{
		types.XYZ(math32.MaxFloat32, math32.MaxFloat32, math32.MaxFloat32),
		types.XYZ(-math32.MaxFloat32, -math32.MaxFloat32, -math32.MaxFloat32),
	}
}

// Create the tightest box containing all points.
func BBoxFromPoints(points ...types.Vec3) BBox {
	bbox := EmptyBBox()
	for _, p := range points {
		bbox[0] = types.MinVec3(bbox[0], p)
		bbox[1] = types.MaxVec3(bbox[1], p)
	}
	return bbox
}

// Returns true if the box contains no points.
func (b BBox) IsEmpty() bool {
	return b[0][0] > b[1][0] || b[0][1] > b[1][1] || b[0][2] > b[1][2]
}

// Get the union of two boxes.
func (b BBox) Union(other BBox) BBox {
	return BBox{
		types.MinVec3(b[0], other[0]),
		types.MaxVec3(b[1], other[1]),
	}
}

// Grow the box by pad units along each axis.
func (b BBox) Pad(pad float32) BBox {
	p := types.XYZ(pad, pad, pad)
	return BBox{b[0].Sub(p), b[1].Add(p)}
}

// Get the box center.
func (b BBox) Center() types.Vec3 {
	return b[0].Add(b[1]).Mul(0.5)
}
