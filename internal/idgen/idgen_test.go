package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	first, second := New(), New()
	assert.Len(t, first, shortLength)
	assert.NotEqual(t, first, second)
	assert.NotContains(t, first, "-")
}
