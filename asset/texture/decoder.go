package texture

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"

	"github.com/achilleasa/hitscan/asset"
	_ "golang.org/x/image/bmp"
)

// ImageDecoder decodes BMP, PNG and JPEG images into 3-byte BGR texels
// (or 1-byte luminance texels for grayscale images).
type ImageDecoder struct{}

// Decode the image stored in res.
func (ImageDecoder) Decode(res *asset.Resource) (*Raw, error) {
	img, _, err := image.Decode(res)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	raw := &Raw{
		Width:  uint32(bounds.Dx()),
		Height: uint32(bounds.Dy()),
	}

	if gray, isGray := img.(*image.Gray); isGray {
		raw.BytesPerPixel = 1
		raw.Pixels = make([]byte, 0, bounds.Dx()*bounds.Dy())
		for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
			for x := bounds.Min.X; x < bounds.Max.X; x++ {
				raw.Pixels = append(raw.Pixels, gray.GrayAt(x, y).Y)
			}
		}
		return raw, nil
	}

	raw.BytesPerPixel = 3
	raw.Pixels = make([]byte, 0, bounds.Dx()*bounds.Dy()*3)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			raw.Pixels = append(raw.Pixels, c.B, c.G, c.R)
		}
	}
	return raw, nil
}
