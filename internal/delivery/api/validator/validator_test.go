package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type point struct {
	Latitude *float64 `validate:"omitempty,min=-90,max=90"`
}

func TestValidate(t *testing.T) {
	v := New()

	ok := 45.0
	bad := 91.0

	assert.NoError(t, v.Validate(&point{}))
	assert.NoError(t, v.Validate(&point{Latitude: &ok}))
	assert.Error(t, v.Validate(&point{Latitude: &bad}))
}
