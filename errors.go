package shader

import (
	"errors"
	"fmt"
)

var (
	// ErrCompile is matched by every *CompileError.
	ErrCompile = errors.New("shader: compilation failed")
	// ErrLink is matched by every *LinkError.
	ErrLink = errors.New("shader: link failed")
	// ErrDecodeLog reports a diagnostic log that is not valid UTF-8.
	ErrDecodeLog = errors.New("shader: diagnostic log is not valid UTF-8")
	// ErrCreateFailed reports that the context returned no object.
	ErrCreateFailed = errors.New("shader: object creation failed")
	// ErrMissingSource reports an empty vertex or fragment source.
	ErrMissingSource = errors.New("shader: missing source")
)

// CompileError is returned by New when a stage fails to compile.
type CompileError struct {
	Stage Stage
	// Log is the raw compiler diagnostic.
	Log string
	// Err is set when the log itself could not be decoded.
	Err error
}

func (e *CompileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s shader compilation failed: %v", e.Stage, e.Err)
	}
	return fmt.Sprintf("%s shader compilation failed: %s", e.Stage, e.Log)
}

func (e *CompileError) Is(target error) bool { return target == ErrCompile }

func (e *CompileError) Unwrap() error { return e.Err }

// LinkError is returned by New when the program fails to link.
type LinkError struct {
	Log string
	Err error
}

// Stage always reports Link. Use FailedStage to read the stage of either
// error kind without switching on the type.
func (e *LinkError) Stage() Stage { return Link }

func (e *LinkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s link failed: %v", Link, e.Err)
	}
	return fmt.Sprintf("%s link failed: %s", Link, e.Log)
}

func (e *LinkError) Is(target error) bool { return target == ErrLink }

func (e *LinkError) Unwrap() error { return e.Err }

// FailedStage returns the stage named by a *CompileError or *LinkError
// anywhere in err's chain. It lets callers report both kinds alike:
//
//	if stage, ok := shader.FailedStage(err); ok {
//	    log.Printf("%s failed:\n%s", stage, shader.FailureLog(err))
//	}
func FailedStage(err error) (Stage, bool) {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr.Stage, true
	}
	var lerr *LinkError
	if errors.As(err, &lerr) {
		return Link, true
	}
	return 0, false
}

// FailureLog returns the driver log of a *CompileError or *LinkError in
// err's chain, or "" if there is none.
func FailureLog(err error) string {
	var cerr *CompileError
	if errors.As(err, &cerr) {
		return cerr.Log
	}
	var lerr *LinkError
	if errors.As(err, &lerr) {
		return lerr.Log
	}
	return ""
}

// ResourceError reports that the context could not create an object.
type ResourceError struct {
	// Object is "program" or the stage name of the shader.
	Object string
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("create %s object: %v", e.Object, ErrCreateFailed)
}

func (e *ResourceError) Unwrap() error { return ErrCreateFailed }
