package reader

import (
	"bufio"
	"bytes"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/hitscan/asset"
	"github.com/achilleasa/hitscan/asset/scene"
	"github.com/achilleasa/hitscan/log"
	"github.com/achilleasa/hitscan/types"
)

const (
	// Scale factor applied to all OBJ vertex coordinates before the
	// placement offset is added.
	objScale = 0.25
)

// wavefrontReader loads the triangle subset of the wavefront object format
// into a single mesh.
type wavefrontReader struct {
	logger log.Logger

	// List of vertices and normals parsed so far.
	vertexList []types.Vec3
	normalList []types.Vec3

	errorStack
}

// Create a new wavefront reader that annotates errors with the frames of
// the supplied error stack.
func newWavefrontReader(logger log.Logger, stack errorStack) *wavefrontReader {
	frames := make(errorStack, len(stack))
	copy(frames, stack)
	return &wavefrontReader{
		logger:     logger,
		errorStack: frames,
	}
}

// Load all triangular faces from res into mesh. Vertices are scaled by
// objScale and translated by offset; all triangles use matIndex. The mesh
// bounding faces are calculated once after all triangles have been added.
func (r *wavefrontReader) load(res *asset.Resource, mesh *scene.Mesh, offset types.Vec3, matIndex uint32) error {
	r.logger.Infof(`reading obj file "%s"`, res.Path())
	start := time.Now()

	data, err := ioutil.ReadAll(res)
	if err != nil {
		return r.emitError(ErrInvalidParameters, res.Path(), 0, "could not read file: %s", err.Error())
	}

	// Count vertices and normals so we can pre-size our buffers
	var numVertices, numNormals int
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, "v "):
			numVertices++
		case strings.HasPrefix(line, "vn "):
			numNormals++
		}
	}
	r.vertexList = make([]types.Vec3, 0, numVertices)
	r.normalList = make([]types.Vec3, 0, numNormals)
	mesh.ReservePrimitives(numVertices / 3)

	var lineNum int = 0
	scanner = bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(ErrInvalidParameters, res.Path(), lineNum, "%s", err.Error())
			}
			r.vertexList = append(r.vertexList, v.Mul(objScale))
		case "vn":
			v, err := parseVec3(lineTokens)
			if err != nil {
				return r.emitError(ErrInvalidParameters, res.Path(), lineNum, "%s", err.Error())
			}
			r.normalList = append(r.normalList, v.Normalize())
		case "f":
			prim, err := r.parseFace(lineTokens, offset, matIndex)
			if err != nil {
				if kErr, ok := err.(*kindError); ok {
					return r.emitError(kErr.kind, res.Path(), lineNum, "%s", kErr.msg)
				}
				return r.emitError(ErrInvalidParameters, res.Path(), lineNum, "%s", err.Error())
			}
			mesh.AddPrimitiveNoRecalc(prim)
		}
	}
	if err = scanner.Err(); err != nil {
		return r.emitError(ErrInvalidParameters, res.Path(), lineNum, "could not read file: %s", err.Error())
	}

	mesh.CalculateBoundingFaces()

	r.logger.Infof(
		"loaded %d triangles from %d vertices and %d normals in %d ms",
		len(mesh.Primitives), len(r.vertexList), len(r.normalList),
		time.Since(start).Nanoseconds()/1e6,
	)
	return nil
}

// Parse a triangular face. Each face argument has the form v, v/t, v//n or
// v/t/n. If every argument references a normal the triangle is smooth-shaded.
func (r *wavefrontReader) parseFace(lineTokens []string, offset types.Vec3, matIndex uint32) (scene.Primitive, error) {
	if len(lineTokens) != 4 {
		return scene.Primitive{}, withKind(ErrUnsupportedFace, `expected 3 arguments for "f"; got %d. Select the triangulation option in your exporter`, len(lineTokens)-1)
	}

	var vertices [3]types.Vec3
	var normals [3]types.Vec3
	var vOffset int
	var err error
	normalCount := 0
	for arg := 0; arg < 3; arg++ {
		vTokens := strings.Split(lineTokens[arg+1], "/")
		if len(vTokens) > 3 {
			return scene.Primitive{}, withKind(ErrUnsupportedFace, "face argument %d contains %d indices", arg, len(vTokens))
		}

		// Faces must at least define a vertex coord
		if vTokens[0] == "" {
			return scene.Primitive{}, withKind(ErrUnsupportedFace, "face argument %d does not include a vertex index", arg)
		}

		vOffset, err = selectFaceCoordIndex(vTokens[0], len(r.vertexList))
		if err != nil {
			return scene.Primitive{}, fmt.Errorf("could not parse vertex coord for face argument %d: %s", arg, err.Error())
		}
		vertices[arg] = r.vertexList[vOffset].Add(offset)

		if len(vTokens) == 3 && vTokens[2] != "" {
			vOffset, err = selectFaceCoordIndex(vTokens[2], len(r.normalList))
			if err != nil {
				return scene.Primitive{}, fmt.Errorf("could not parse normal coord for face argument %d: %s", arg, err.Error())
			}
			normals[arg] = r.normalList[vOffset]
			normalCount++
		}
	}

	if normalCount == 3 {
		return scene.NewSmoothTriangle(vertices, normals, matIndex), nil
	}
	return scene.NewTriangle(vertices[0], vertices[1], vertices[2], matIndex), nil
}

// Given an index for a face coord type (vertex, normal) calculate the proper
// offset into the coord list. Wavefront format can also use negative indices
// to reference elements from the end of the coord list.
func selectFaceCoordIndex(indexToken string, coordListLen int) (int, error) {
	index, err := strconv.ParseInt(indexToken, 10, 32)
	if err != nil {
		return -1, err
	}

	var vOffset int = 0
	if index < 0 {
		vOffset = coordListLen + int(index)
	} else {
		vOffset = int(index - 1)
	}
	if vOffset < 0 || vOffset >= coordListLen {
		return -1, fmt.Errorf("index %d out of bounds", index)
	}
	return vOffset, nil
}

// Parse an unsigned scalar value. Any tokens following the value are ignored.
func parseUint32(lineTokens []string) (uint32, error) {
	if len(lineTokens) < 2 {
		return 0, fmt.Errorf(`unsupported syntax for "%s"; expected 1 argument; got %d`, lineTokens[0], len(lineTokens)-1)
	}

	val, err := strconv.ParseUint(lineTokens[1], 10, 32)
	if err != nil {
		return 0, err
	}

	return uint32(val), nil
}

// Parse count float arguments following the keyword. Any tokens following
// the last argument are ignored.
func parseFloats(lineTokens []string, count int) ([]float32, error) {
	if len(lineTokens) < count+1 {
		return nil, fmt.Errorf(`unsupported syntax for "%s"; expected %d arguments; got %d`, lineTokens[0], count, len(lineTokens)-1)
	}

	vals := make([]float32, count)
	for tokIdx := 1; tokIdx <= count; tokIdx++ {
		val, err := strconv.ParseFloat(lineTokens[tokIdx], 32)
		if err != nil {
			return nil, err
		}
		vals[tokIdx-1] = float32(val)
	}
	return vals, nil
}

// Parse a Vec3 row.
func parseVec3(lineTokens []string) (types.Vec3, error) {
	vals, err := parseFloats(lineTokens, 3)
	if err != nil {
		return types.Vec3{}, err
	}
	return types.XYZ(vals[0], vals[1], vals[2]), nil
}
