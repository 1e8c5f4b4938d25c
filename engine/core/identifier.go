package core

import "github.com/google/uuid"

// Generation identifies one document load. Work scheduled against a
// generation that is no longer current is stale and must be dropped.
type Generation uuid.UUID

// InvalidGeneration is the zero generation, current before any load.
var InvalidGeneration = Generation(uuid.Nil)

func NewGeneration() Generation {
	return Generation(uuid.New())
}

func (g Generation) IsValid() bool {
	return g != InvalidGeneration
}

func (g Generation) String() string {
	return uuid.UUID(g).String()
}
