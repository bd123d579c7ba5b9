package idgen

import (
	"strings"

	"github.com/google/uuid"
)

const shortLength = 14

// NewFunc returns a new short unique identifier.
var NewFunc = func() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:shortLength]
}

// New returns a new identifier.
func New() string { return NewFunc() }
