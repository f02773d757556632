package convert

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToInt32(t *testing.T) {
	v, err := IntToInt32(-100)
	require.NoError(t, err)
	assert.Equal(t, int32(-100), v)

	v, err = IntToInt32(math.MaxInt32)
	require.NoError(t, err)
	assert.Equal(t, int32(math.MaxInt32), v)

	_, err = IntToInt32(math.MaxInt32 + 1)
	assert.Error(t, err)
}

func TestIntToInt32Clamped(t *testing.T) {
	assert.Equal(t, int32(25), IntToInt32Clamped(25))
	assert.Equal(t, int32(math.MaxInt32), IntToInt32Clamped(math.MaxInt32+10))
	assert.Equal(t, int32(math.MinInt32), IntToInt32Clamped(math.MinInt32-10))
}

func TestIntToUintClamped(t *testing.T) {
	assert.Equal(t, uint(0), IntToUintClamped(-1))
	assert.Equal(t, uint(7), IntToUintClamped(7))
}

func TestIntToUint32Clamped(t *testing.T) {
	assert.Equal(t, uint32(0), IntToUint32Clamped(-5))
	assert.Equal(t, uint32(5), IntToUint32Clamped(5))
	assert.Equal(t, uint32(math.MaxUint32), IntToUint32Clamped(math.MaxUint32+1))
}
