package writer

import (
	"archive/zip"
	"encoding/gob"
	"os"
	"time"

	"github.com/achilleasa/hitscan/asset/scene"
	"github.com/achilleasa/hitscan/asset/scene/reader"
	"github.com/achilleasa/hitscan/log"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
)

type zipSceneWriter struct {
	logger    log.Logger
	sceneFile string
}

// Create a new zip scene writer
func newZipSceneWriter(sceneFile string) *zipSceneWriter {
	return &zipSceneWriter{
		logger:    log.New("zip writer"),
		sceneFile: sceneFile,
	}
}

// Write scene definition to zip file.
func (w *zipSceneWriter) Write(sc *scene.Scene) (err error) {
	w.logger.Noticef("writing compressed scene to %s", w.sceneFile)
	start := time.Now()

	zipFile, err := os.Create(w.sceneFile)
	if err != nil {
		return errors.Wrap(err, "zipSceneWriter")
	}
	defer func() {
		if closeErr := zipFile.Close(); err == nil && closeErr != nil {
			err = errors.Wrap(closeErr, "zipSceneWriter")
		}
	}()

	// Write scene data
	zw := zip.NewWriter(zipFile)
	cw, err := zw.Create(reader.DataFile)
	if err != nil {
		return errors.Wrap(err, "zipSceneWriter")
	}
	if err = gob.NewEncoder(cw).Encode(sc); err != nil {
		return errors.Wrapf(err, "zipSceneWriter: could not encode scene")
	}
	if err = zw.Close(); err != nil {
		return errors.Wrap(err, "zipSceneWriter")
	}

	if info, statErr := zipFile.Stat(); statErr == nil {
		w.logger.Noticef(
			"compressed scene to %s in %d ms",
			humanize.Bytes(uint64(info.Size())),
			time.Since(start).Nanoseconds()/1000000,
		)
	}
	return nil
}
