package texture

import (
	"fmt"

	"github.com/achilleasa/hitscan/asset"
	"github.com/achilleasa/hitscan/types"
	"github.com/chewxy/math32"
)

// Raw holds undecoded texel bytes as produced by a Decoder. Texels are stored
// row by row; each texel occupies BytesPerPixel bytes in BGR(A) order or a
// single luminance byte.
type Raw struct {
	Width         uint32
	Height        uint32
	BytesPerPixel uint32
	Pixels        []byte
}

// A Decoder turns an image resource into raw texel bytes.
type Decoder interface {
	Decode(res *asset.Resource) (*Raw, error)
}

// A decoded texture image with normalized RGB colors.
type Image struct {
	Path   string
	Width  uint32
	Height uint32
	Colors []types.Vec3
}

// Convert raw texel bytes into a normalized color buffer.
func New(path string, raw *Raw) (*Image, error) {
	bpp := raw.BytesPerPixel
	if bpp != 1 && bpp != 3 && bpp != 4 {
		return nil, fmt.Errorf("texture: unsupported bytes per pixel %d while loading %s", bpp, path)
	}

	texelCount := int(raw.Width) * int(raw.Height)
	if len(raw.Pixels) < texelCount*int(bpp) {
		return nil, fmt.Errorf("texture: expected %d bytes of pixel data for %s; got %d", texelCount*int(bpp), path, len(raw.Pixels))
	}

	colors := make([]types.Vec3, texelCount)
	offset := 0
	for index := range colors {
		if bpp == 1 {
			l := float32(raw.Pixels[offset]) / 255
			colors[index] = types.XYZ(l, l, l)
		} else {
			colors[index] = types.XYZ(
				float32(raw.Pixels[offset+2])/255,
				float32(raw.Pixels[offset+1])/255,
				float32(raw.Pixels[offset])/255,
			)
		}
		offset += int(bpp)
	}

	return &Image{
		Path:   path,
		Width:  raw.Width,
		Height: raw.Height,
		Colors: colors,
	}, nil
}

// Open the image at path (resolved relative to relTo) and decode it.
func Load(path string, relTo *asset.Resource, decoder Decoder) (*Image, error) {
	res, err := asset.NewResource(path, relTo)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	raw, err := decoder.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err.Error())
	}

	return New(res.Path(), raw)
}

// Get the color of the texel at (x, y).
func (img *Image) At(x, y uint32) types.Vec3 {
	return img.Colors[y*img.Width+x]
}

// Sample the texture at uv using nearest-texel lookup. Coordinates wrap
// around the [0, 1) range.
func (img *Image) Sample(uv types.Vec2) types.Vec3 {
	if img.Width == 0 || img.Height == 0 {
		return types.Vec3{}
	}

	u := uv[0] - math32.Floor(uv[0])
	v := uv[1] - math32.Floor(uv[1])

	x := uint32(u * float32(img.Width))
	y := uint32(v * float32(img.Height))
	if x >= img.Width {
		x = img.Width - 1
	}
	if y >= img.Height {
		y = img.Height - 1
	}
	return img.At(x, y)
}
