package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidID(t *testing.T) {
	assert.True(t, ValidID("6f1c2d4e-8a9b-4c3d-9e0f-112233445566"))
	assert.False(t, ValidID("abc"))
	assert.False(t, ValidID(""))
	assert.False(t, ValidID("6f1c2d4e-8a9b-4c3d-9e0f-11223344556Z"))
}
