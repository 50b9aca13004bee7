package reader

import (
	"strings"

	"github.com/achilleasa/hitscan/asset"
	"github.com/achilleasa/hitscan/asset/scene"
	"github.com/achilleasa/hitscan/asset/texture"
)

// The Reader interface is implemented by all scene readers.
type Reader interface {
	// Read scene definition from a resource.
	Read(*asset.Resource) (*scene.Scene, error)
}

// Read scene from file. Files with a .zip extension are treated as compiled
// scenes; anything else is parsed as a scene description.
func ReadScene(filename string) (*scene.Scene, error) {
	return ReadSceneWithDecoder(filename, texture.ImageDecoder{})
}

// Read scene from file using a custom decoder for any referenced textures.
func ReadSceneWithDecoder(filename string, decoder texture.Decoder) (*scene.Scene, error) {
	res, err := asset.NewResource(filename, nil)
	if err != nil {
		return nil, err
	}
	defer res.Close()

	// Select reader based on file extension
	var reader Reader
	if strings.HasSuffix(strings.ToLower(filename), ".zip") {
		reader = newZipSceneReader()
	} else {
		reader = newDescriptionReader(decoder)
	}
	return reader.Read(res)
}
