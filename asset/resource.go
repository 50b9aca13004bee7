package asset

import (
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// A Resource is a readable stream backed by a local file or an http(s) URL.
// Scene descriptions, OBJ meshes and texture images are all loaded through
// resources so that relative references can be resolved against the file
// that mentions them.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns the file name component of the resource path.
func (r *Resource) Name() string {
	if r.IsRemote() {
		return filepath.Base(r.url.Path)
	}
	return filepath.Base(r.Path())
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Open a resource. If relTo is not nil and pathToResource is a relative local
// path, the new resource is located next to relTo.
//
// The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	loc, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	if loc.Scheme == "" && relTo != nil && !filepath.IsAbs(loc.Path) {
		loc, err = resolveRelative(loc.Path, relTo)
		if err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch loc.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(loc.Path))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(loc.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", loc.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", loc.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", loc.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        loc,
	}, nil
}

func resolveRelative(path string, relTo *Resource) (*url.URL, error) {
	loc, _ := url.Parse(relTo.url.String())
	if loc.Scheme != "" {
		loc.Path = filepath.ToSlash(filepath.Join(filepath.Dir(loc.Path), path))
		return loc, nil
	}

	// Resources created from streams have no meaningful location.
	if relTo.url.Path == "" {
		return &url.URL{Path: path}, nil
	}

	prefix, err := filepath.Abs(relTo.url.Path)
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", relTo.url.String(), err.Error())
	}
	return &url.URL{Path: filepath.Join(filepath.Dir(prefix), path)}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	loc, err := url.Parse(name)
	if err != nil {
		loc = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: ioutil.NopCloser(source),
		url:        loc,
	}
}
