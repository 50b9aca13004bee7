package reader

import (
	"archive/zip"
	"bytes"
	"encoding/gob"
	"io/ioutil"
	"time"

	"github.com/achilleasa/hitscan/asset"
	"github.com/achilleasa/hitscan/asset/scene"
	"github.com/achilleasa/hitscan/log"
	"github.com/pkg/errors"
)

const (
	// The zip entry holding the gob-encoded scene.
	DataFile = "scene.bin"
)

type zipSceneReader struct {
	logger log.Logger
}

// Create a new zip scene reader.
func newZipSceneReader() *zipSceneReader {
	return &zipSceneReader{
		logger: log.New("zip reader"),
	}
}

// Read a compiled scene from a zip file.
func (p *zipSceneReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	p.logger.Noticef(`parsing compiled scene from "%s"`, sceneRes.Path())
	start := time.Now()

	// zip package requires a reader implementing ReaderAt. To work around
	// this requirement we read the entire zip file into memory and create
	// a reader from the bytes package that implements ReaderAt
	data, err := ioutil.ReadAll(sceneRes)
	if err != nil {
		return nil, errors.Wrapf(err, "zipSceneReader: could not read %s", sceneRes.Path())
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "zipSceneReader: %s: %s", sceneRes.Path(), err.Error())
	}

	var sc *scene.Scene
	for _, f := range zr.File {
		if f.Name != DataFile {
			p.logger.Warningf("unknown file %s in scene zip file; skipping", f.Name)
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrapf(err, "zipSceneReader: could not open %s", f.Name)
		}
		sc = &scene.Scene{}
		err = gob.NewDecoder(rc).Decode(sc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(ErrUnsupportedFormat, "zipSceneReader: failed to load %s: %s", f.Name, err.Error())
		}
	}

	if sc == nil {
		return nil, errors.Wrapf(ErrUnsupportedFormat, "zipSceneReader: %s does not contain %s", sceneRes.Path(), DataFile)
	}

	p.logger.Noticef("loaded scene in %d ms", time.Since(start).Nanoseconds()/1000000)
	return sc, nil
}
