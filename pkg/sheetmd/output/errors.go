package output

import (
	"errors"
	"fmt"
)

// ErrRender indicates the Markdown renderer failed.
var ErrRender = errors.New("render error")

// ErrDigest indicates the minifier rejected a chunk of the document.
var ErrDigest = errors.New("digest error")

// RenderError represents a failure while assembling the HTML document.
type RenderError struct {
	Stage string // "markdown", "sanitize", "digest", "finalize"
	Kind  error
	Err   error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("%v during %s: %v", e.Kind, e.Stage, e.Err)
}

func (e *RenderError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}
