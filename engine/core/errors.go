package core

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedMesh  = errors.New("malformed mesh")
	ErrNoDocument     = errors.New("no document loaded")
	ErrEmptyDocument  = errors.New("document has no scene graph")
	ErrWatcherClosed  = errors.New("document watcher already closed")
	ErrInvalidOpacity = errors.New("opacity must be within [0, 1]")
	ErrUnknown        = errors.New("unknown")
)

// MalformedMeshError reports an index buffer that points past the end of its
// vertex buffer. The offending solid is never uploaded.
type MalformedMeshError struct {
	SolidID     string
	Index       uint32
	Position    int
	VertexCount int
}

func (e *MalformedMeshError) Error() string {
	return fmt.Sprintf("solid '%s': index %d at position %d out of range (vertex count %d)",
		e.SolidID, e.Index, e.Position, e.VertexCount)
}

func (e *MalformedMeshError) Unwrap() error {
	return ErrMalformedMesh
}
