package reader

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/achilleasa/hitscan/asset"
	"github.com/pkg/errors"
)

func TestZipReaderErrors(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("readme.txt")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("not a scene"))
	if err = zw.Close(); err != nil {
		t.Fatal(err)
	}

	type spec struct {
		name    string
		payload []byte
	}
	specs := []spec{
		{"garbage.zip", []byte("not a zip file")},
		{"empty.zip", buf.Bytes()},
	}

	for idx, s := range specs {
		res := asset.NewResourceFromStream(s.name, bytes.NewReader(s.payload))
		sc, err := newZipSceneReader().Read(res)
		if sc != nil || errors.Cause(err) != ErrUnsupportedFormat {
			t.Fatalf("[spec %d] expected an unsupported format error; got %v", idx, err)
		}
	}
}
