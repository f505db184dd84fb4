package sizeclass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tjol/gopolycubes/internal/errs"
)

func TestValidateInRange(t *testing.T) {
	for n := 1; n <= Nmax; n++ {
		assert.NoError(t, Validate(n))
	}
}

func TestValidateOutOfRange(t *testing.T) {
	err := Validate(Nmax + 1)
	require.Error(t, err)
	var us errs.UnsupportedSize
	require.ErrorAs(t, err, &us)
	assert.Equal(t, Nmax+1, us.N)

	assert.Error(t, Validate(0))
	assert.Error(t, Validate(-1))
}
