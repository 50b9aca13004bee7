package reader

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/achilleasa/hitscan/asset"
	"github.com/achilleasa/hitscan/asset/scene"
	"github.com/achilleasa/hitscan/asset/texture"
	"github.com/achilleasa/hitscan/log"
	"github.com/achilleasa/hitscan/types"
)

const (
	// The minimum number of scene parameter lines that must precede any
	// material or primitive line.
	minSceneParams = 5
)

type lineKind uint8

const (
	unknownLine lineKind = iota
	sceneParamLine
	materialLine
	primitiveLine
)

var lineKinds = map[string]lineKind{
	"NAME":          sceneParamLine,
	"IMG_WIDTH":     sceneParamLine,
	"IMG_HEIGHT":    sceneParamLine,
	"NUM_THREADS":   sceneParamLine,
	"NUM_SAMPLES":   sceneParamLine,
	"MAX_RDEPTH":    sceneParamLine,
	"AMBIENT":       sceneParamLine,
	"CAM_POS":       sceneParamLine,
	"CAM_LOOK":      sceneParamLine,
	"LAMBERTIAN":    materialLine,
	"METAL":         materialLine,
	"DIELECTRIC":    materialLine,
	"EMISSIVE":      materialLine,
	"TEXTURED":      materialLine,
	"p_SPHERE":      primitiveLine,
	"p_TRIANGLE":    primitiveLine,
	"p_RECTANGLE3D": primitiveLine,
	"p_PLANE":       primitiveLine,
	"OBJ":           primitiveLine,
}

// descriptionReader parses the line-oriented scene description format.
type descriptionReader struct {
	logger  log.Logger
	decoder texture.Decoder

	// The scene being populated.
	sc *scene.Scene

	// Number of scene parameter lines consumed so far.
	sceneParams int

	errorStack
}

// Create a new scene description reader.
func newDescriptionReader(decoder texture.Decoder) *descriptionReader {
	return &descriptionReader{
		logger:     log.New("scene reader"),
		decoder:    decoder,
		errorStack: make(errorStack, 0),
	}
}

// Read scene definition.
func (r *descriptionReader) Read(sceneRes *asset.Resource) (*scene.Scene, error) {
	r.logger.Noticef(`parsing scene from "%s"`, sceneRes.Path())
	start := time.Now()

	r.sc = scene.New()
	r.sceneParams = 0
	if err := r.parse(sceneRes); err != nil {
		return nil, err
	}

	r.logger.Noticef(
		"parsed scene in %d ms: %d materials, %d textures, %d meshes",
		time.Since(start).Nanoseconds()/1e6,
		len(r.sc.Materials), len(r.sc.Textures), len(r.sc.Meshes),
	)
	return r.sc, nil
}

func (r *descriptionReader) parse(res *asset.Resource) error {
	var lineNum int = 0
	var err error

	scanner := bufio.NewScanner(res)
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		lineTokens := strings.Fields(line)
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		kind := lineKinds[lineTokens[0]]
		switch {
		case kind == unknownLine:
			return r.emitError(ErrUndefinedParameter, res.Path(), lineNum, "%q", line)
		case kind != sceneParamLine && r.sceneParams < minSceneParams:
			return r.emitError(ErrSceneParamsFirst, res.Path(), lineNum, "expected at least %d scene parameters before %q; got %d", minSceneParams, lineTokens[0], r.sceneParams)
		case kind == primitiveLine && len(r.sc.Materials) == 0:
			return r.emitError(ErrMaterialRequired, res.Path(), lineNum, "%q", lineTokens[0])
		}

		switch kind {
		case sceneParamLine:
			err = r.parseSceneParam(line, lineTokens)
			r.sceneParams++
		case materialLine:
			err = r.parseMaterial(res, line, lineTokens)
		case primitiveLine:
			err = r.parsePrimitive(res, lineNum, line, lineTokens)
		}

		if err != nil {
			switch tErr := err.(type) {
			case *ParseError:
				// Errors from referenced files are already annotated
				return err
			case *kindError:
				return r.emitError(tErr.kind, res.Path(), lineNum, "%s", tErr.msg)
			default:
				return r.emitError(ErrInvalidParameters, res.Path(), lineNum, "%s", err.Error())
			}
		}
	}

	if err = scanner.Err(); err != nil {
		return r.emitError(ErrInvalidParameters, res.Path(), lineNum, "could not read scene: %s", err.Error())
	}
	return nil
}

// Parse a scene parameter line.
func (r *descriptionReader) parseSceneParam(line string, lineTokens []string) error {
	var err error
	switch lineTokens[0] {
	case "NAME":
		quoteStart := strings.Index(line, `"`)
		quoteEnd := -1
		if quoteStart != -1 {
			quoteEnd = strings.Index(line[quoteStart+1:], `"`)
		}
		if quoteStart == -1 || quoteEnd == -1 {
			r.logger.Warning("no name for this scene was specified")
			return nil
		}
		r.sc.Name = line[quoteStart+1 : quoteStart+1+quoteEnd]
		r.logger.Infof("scene name: %q", r.sc.Name)
	case "IMG_WIDTH":
		r.sc.ImageWidth, err = parseUint32(lineTokens)
		r.logger.Infof("width: %d", r.sc.ImageWidth)
	case "IMG_HEIGHT":
		r.sc.ImageHeight, err = parseUint32(lineTokens)
		r.logger.Infof("height: %d", r.sc.ImageHeight)
	case "NUM_THREADS":
		r.sc.NumThreads, err = parseUint32(lineTokens)
	case "NUM_SAMPLES":
		r.sc.NumSamples, err = parseUint32(lineTokens)
	case "MAX_RDEPTH":
		r.sc.MaxRecursionDepth, err = parseUint32(lineTokens)
	case "AMBIENT":
		r.sc.Ambient, err = parseVec3(lineTokens)
	case "CAM_POS":
		r.sc.CameraPos, err = parseVec3(lineTokens)
	case "CAM_LOOK":
		r.sc.CameraLook, err = parseVec3(lineTokens)
	}

	if err != nil {
		return withKind(ErrInvalidParameters, "invalid parameter specified for %s: %s", lineTokens[0], err.Error())
	}
	return nil
}

// Parse a material line and append it to the scene.
func (r *descriptionReader) parseMaterial(res *asset.Resource, line string, lineTokens []string) error {
	var mat scene.Material
	switch lineTokens[0] {
	case "LAMBERTIAN":
		args, err := parseFloats(lineTokens, 3)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid albedo RGB values: %s", err.Error())
		}
		mat = scene.NewLambertian(types.XYZ(args[0], args[1], args[2]))
	case "METAL":
		args, err := parseFloats(lineTokens, 4)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid metal parameters: %s", err.Error())
		}
		mat = scene.NewMetal(types.XYZ(args[0], args[1], args[2]), args[3])
	case "DIELECTRIC":
		args, err := parseFloats(lineTokens, 4)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid dielectric parameters: %s", err.Error())
		}
		mat = scene.NewDielectric(args[3], types.XYZ(args[0], args[1], args[2]))
	case "EMISSIVE":
		args, err := parseFloats(lineTokens, 3)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid emissive parameters: %s", err.Error())
		}
		mat = scene.NewEmissive(types.XYZ(args[0], args[1], args[2]))
	case "TEXTURED":
		var err error
		mat, err = r.parseTexturedMaterial(res, line, lineTokens)
		if err != nil {
			return err
		}
	}

	matIndex := r.sc.AddMaterial(mat)
	r.logger.Infof("material %d: %s", matIndex, mat.String())
	return nil
}

// Parse a textured material line. The 4 texture paths are enclosed in single
// quotes and may be empty; the albedo path is mandatory.
func (r *descriptionReader) parseTexturedMaterial(res *asset.Resource, line string, lineTokens []string) (scene.Material, error) {
	if len(lineTokens) < 2 {
		return scene.Material{}, withKind(ErrInvalidParameters, "expected emissive flag and 4 quoted texture paths")
	}
	emissiveFlag, err := strconv.ParseInt(lineTokens[1], 10, 32)
	if err != nil {
		return scene.Material{}, withKind(ErrInvalidParameters, "invalid emissive flag: %s", err.Error())
	}

	paths := quotedArgs(line, '\'')
	if len(paths) != 4 {
		return scene.Material{}, withKind(ErrInvalidParameters, "expected 4 quoted texture paths; got %d", len(paths))
	}
	if paths[0] == "" {
		return scene.Material{}, withKind(ErrInvalidParameters, "an albedo map must be specified")
	}

	var texIndices [4]int32
	var albedo *texture.Image
	for i, path := range paths {
		texIndices[i] = scene.NoTexture
		if path == "" {
			continue
		}

		r.logger.Infof("loading %s map: %s", textureRoles[i], path)
		img, err := texture.Load(path, res, r.decoder)
		if err != nil {
			return scene.Material{}, withKind(ErrTextureLoad, err.Error())
		}
		if i == 0 {
			albedo = img
		}
		texIndices[i] = r.sc.AddTexture(img)
	}

	return scene.NewTextured(
		texIndices[0], texIndices[1], texIndices[2], texIndices[3],
		emissiveFlag != 0,
		albedo.Width, albedo.Height,
	), nil
}

var textureRoles = [4]string{"color", "normal", "roughness", "occlusion"}

// Parse a primitive line. Each primitive line yields a new mesh.
func (r *descriptionReader) parsePrimitive(res *asset.Resource, lineNum int, line string, lineTokens []string) error {
	mesh := scene.NewMesh()
	switch lineTokens[0] {
	case "p_SPHERE":
		if len(lineTokens) != 6 {
			return withKind(ErrInvalidParameters, "invalid sphere parameters; expected center, radius and material index; got %d arguments", len(lineTokens)-1)
		}
		args, err := parseFloats(lineTokens, 4)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid sphere parameters: %s", err.Error())
		}
		if args[3] < 0 {
			return withKind(ErrInvalidParameters, "invalid sphere radius %f", args[3])
		}
		matIndex, err := r.parseMaterialIndex(lineTokens[5])
		if err != nil {
			return err
		}
		mesh.AddPrimitive(scene.NewSphere(types.XYZ(args[0], args[1], args[2]), args[3], matIndex))
	case "p_TRIANGLE":
		if len(lineTokens) != 11 {
			return withKind(ErrInvalidParameters, "invalid triangle parameters; expected 3 vertices and material index; got %d arguments", len(lineTokens)-1)
		}
		args, err := parseFloats(lineTokens, 9)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid triangle parameters: %s", err.Error())
		}
		matIndex, err := r.parseMaterialIndex(lineTokens[10])
		if err != nil {
			return err
		}
		mesh.AddPrimitive(scene.NewTriangle(
			types.XYZ(args[0], args[1], args[2]),
			types.XYZ(args[3], args[4], args[5]),
			types.XYZ(args[6], args[7], args[8]),
			matIndex,
		))
	case "p_RECTANGLE3D":
		if len(lineTokens) != 14 {
			return withKind(ErrInvalidParameters, "invalid rectangle parameters; expected 4 corners and material index; got %d arguments", len(lineTokens)-1)
		}
		args, err := parseFloats(lineTokens, 12)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid rectangle parameters: %s", err.Error())
		}
		matIndex, err := r.parseMaterialIndex(lineTokens[13])
		if err != nil {
			return err
		}
		mesh.AddPrimitive(scene.NewRectangle(
			types.XYZ(args[0], args[1], args[2]),
			types.XYZ(args[3], args[4], args[5]),
			types.XYZ(args[6], args[7], args[8]),
			types.XYZ(args[9], args[10], args[11]),
			matIndex,
		))
	case "p_PLANE":
		if len(lineTokens) != 8 {
			return withKind(ErrInvalidParameters, "invalid plane parameters; expected origin, normal and material index; got %d arguments", len(lineTokens)-1)
		}
		args, err := parseFloats(lineTokens, 6)
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid plane parameters: %s", err.Error())
		}
		normal := types.XYZ(args[3], args[4], args[5])
		if normal.IsZero() {
			return withKind(ErrInvalidParameters, "plane normal must not be zero")
		}
		matIndex, err := r.parseMaterialIndex(lineTokens[7])
		if err != nil {
			return err
		}
		mesh.AddPrimitive(scene.NewPlane(types.XYZ(args[0], args[1], args[2]), normal, matIndex))
	case "OBJ":
		if len(lineTokens) < 6 {
			return withKind(ErrInvalidParameters, `invalid OBJ parameters; expected material index, offset and "path"`)
		}
		matIndex, err := r.parseMaterialIndex(lineTokens[1])
		if err != nil {
			return err
		}
		offset, err := parseVec3(lineTokens[1:])
		if err != nil {
			return withKind(ErrInvalidParameters, "invalid OBJ offset: %s", err.Error())
		}
		path := lineTokens[5]
		if quoted := quotedArgs(line, '"'); len(quoted) != 0 {
			path = quoted[0]
		}
		if path == "" {
			return withKind(ErrInvalidParameters, "missing OBJ path")
		}

		objRes, err := asset.NewResource(path, res)
		if err != nil {
			return withKind(ErrInvalidParameters, "could not open OBJ file: %s", err.Error())
		}
		defer objRes.Close()

		r.pushFrame(fmt.Sprintf("referenced from %s:%d [%s]", res.Path(), lineNum, lineTokens[0]))
		err = newWavefrontReader(r.logger, r.errorStack).load(objRes, mesh, offset, matIndex)
		if err != nil {
			return err
		}
		r.popFrame()
	}

	r.logger.Infof("mesh %d: %s", len(r.sc.Meshes), primitiveSummary(mesh))
	r.sc.AddMesh(mesh)
	return nil
}

// Parse a material index and ensure it refers to an already declared material.
func (r *descriptionReader) parseMaterialIndex(token string) (uint32, error) {
	index, err := strconv.ParseUint(token, 10, 32)
	if err != nil {
		return 0, withKind(ErrInvalidParameters, "invalid material index %q", token)
	}
	if index >= uint64(len(r.sc.Materials)) {
		return 0, withKind(ErrUndefinedMaterial, "material index %d; %d materials defined so far", index, len(r.sc.Materials))
	}
	return uint32(index), nil
}

func primitiveSummary(mesh *scene.Mesh) string {
	if len(mesh.Primitives) == 1 {
		return mesh.Primitives[0].String()
	}
	return fmt.Sprintf("%d primitives", len(mesh.Primitives))
}

// Extract the contents of each quote-enclosed argument in line.
func quotedArgs(line string, quote byte) []string {
	args := make([]string, 0)
	for {
		start := strings.IndexByte(line, quote)
		if start == -1 {
			return args
		}
		end := strings.IndexByte(line[start+1:], quote)
		if end == -1 {
			return args
		}
		args = append(args, line[start+1:start+1+end])
		line = line[start+end+2:]
	}
}

// An error annotated with one of the reader error kinds but not yet with
// location information.
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func withKind(kind error, msgFormat string, args ...interface{}) error {
	return &kindError{kind: kind, msg: fmt.Sprintf(msgFormat, args...)}
}
