package reader

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Error kinds returned by the scene readers. Use errors.Cause to extract the
// kind from an error returned by ReadScene.
var (
	ErrSceneParamsFirst   = errors.New("scene parameters must be specified first")
	ErrMaterialRequired   = errors.New("at least one material must be specified before any primitive")
	ErrUndefinedMaterial  = errors.New("undefined material")
	ErrUndefinedParameter = errors.New("undefined parameter")
	ErrInvalidParameters  = errors.New("invalid parameters")
	ErrTextureLoad        = errors.New("could not load texture")
	ErrUnsupportedFace    = errors.New("unsupported face")
	ErrUnsupportedFormat  = errors.New("unsupported file format")
)

// ParseError describes a failure at a particular line of a scene or model
// file. Stack lists the files that referenced the failing file, innermost
// first.
type ParseError struct {
	Kind  error
	File  string
	Line  int
	Msg   string
	Stack []string
}

func (e *ParseError) Error() string {
	var errMsg string
	if e.File != "" {
		errMsg = fmt.Sprintf("[%s: %d] error: %s: %s\n%s", e.File, e.Line, e.Kind, e.Msg, strings.Join(e.Stack, "\n"))
	} else {
		errMsg = fmt.Sprintf("error: %s: %s\n%s", e.Kind, e.Msg, strings.Join(e.Stack, "\n"))
	}
	return strings.Trim(errMsg, "\n")
}

// Cause implements the causer interface used by errors.Cause.
func (e *ParseError) Cause() error { return e.Kind }

// Unwrap allows errors.Is from the standard library to match the kind.
func (e *ParseError) Unwrap() error { return e.Kind }

// An error stack that provides additional error information when scene files
// reference other files (OBJ models).
type errorStack []string

// Generate an error of the given kind that also includes any data in the
// error stack.
func (s errorStack) emitError(kind error, file string, line int, msgFormat string, args ...interface{}) error {
	stack := make([]string, len(s))
	copy(stack, s)
	return &ParseError{
		Kind:  kind,
		File:  file,
		Line:  line,
		Msg:   fmt.Sprintf(msgFormat, args...),
		Stack: stack,
	}
}

// Push a frame to the error stack.
func (s *errorStack) pushFrame(msg string) {
	*s = append(errorStack{msg}, *s...)
}

// Pop a frame from the error stack.
func (s *errorStack) popFrame() {
	*s = (*s)[1:]
}
