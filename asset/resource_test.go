package asset

import (
	"fmt"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLocalResource(t *testing.T) {
	dir, err := ioutil.TempDir("", "hitscan-resource")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	scenePath := filepath.Join(dir, "scene.txt")
	if err = ioutil.WriteFile(scenePath, []byte("NAME \"test\""), 0644); err != nil {
		t.Fatal(err)
	}

	res, err := NewResource(scenePath, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if res.IsRemote() {
		t.Fatal("expected local resource")
	}
	if res.Name() != "scene.txt" {
		t.Fatalf("expected resource name to be scene.txt; got %s", res.Name())
	}

	_, err = NewResource(filepath.Join(dir, "missing.txt"), nil)
	if err == nil || !os.IsNotExist(err) {
		t.Fatalf("expected a not-exist error; got %v", err)
	}
}

func TestRelativeLocalResource(t *testing.T) {
	dir, err := ioutil.TempDir("", "hitscan-resource")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	if err = os.Mkdir(filepath.Join(dir, "models"), 0755); err != nil {
		t.Fatal(err)
	}
	if err = ioutil.WriteFile(filepath.Join(dir, "scene.txt"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if err = ioutil.WriteFile(filepath.Join(dir, "models", "cube.obj"), []byte("v 0 0 0"), 0644); err != nil {
		t.Fatal(err)
	}

	parent, err := NewResource(filepath.Join(dir, "scene.txt"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer parent.Close()

	child, err := NewResource("models/cube.obj", parent)
	if err != nil {
		t.Fatal(err)
	}
	defer child.Close()

	data, err := ioutil.ReadAll(child)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "v 0 0 0" {
		t.Fatalf("expected to read cube.obj contents; got %q", string(data))
	}
}

func TestHttpResource(t *testing.T) {
	serverFn := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/scenes/room.txt", "/scenes/textures/wall.bmp":
			w.Write([]byte("OK"))
		default:
			http.NotFound(w, r)
		}
	})
	server := httptest.NewServer(serverFn)
	defer server.Close()

	res, err := NewResource(server.URL+"/scenes/room.txt", nil)
	if err != nil {
		t.Fatal(err)
	}
	defer res.Close()

	if !res.IsRemote() {
		t.Fatal("expected remote resource")
	}

	tex, err := NewResource("textures/wall.bmp", res)
	if err != nil {
		t.Fatal(err)
	}
	defer tex.Close()

	if tex.Name() != "wall.bmp" {
		t.Fatalf("expected resource name to be wall.bmp; got %s", tex.Name())
	}

	fetchUrl := server.URL + "/file-not-found.txt"
	expError := fmt.Sprintf("resource: could not fetch '%s': status %d", fetchUrl, 404)
	_, err = NewResource(fetchUrl, nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestUnsupportedResourceScheme(t *testing.T) {
	expError := "resource: unsupported scheme 'gopher'"
	_, err := NewResource("gopher://digging.txt", nil)
	if err == nil || err.Error() != expError {
		t.Fatalf("expected to get: %s; got %v", expError, err)
	}
}

func TestResourceFromStream(t *testing.T) {
	res := NewResourceFromStream("embedded", strings.NewReader("payload"))
	defer res.Close()

	if res.Path() != "embedded" {
		t.Fatalf("expected path to be embedded; got %s", res.Path())
	}
	data, _ := ioutil.ReadAll(res)
	if string(data) != "payload" {
		t.Fatalf("expected payload; got %q", string(data))
	}
}
