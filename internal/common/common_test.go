package common

import (
	"math"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextPowerOfTwo(t *testing.T) {
	cases := map[int]int{
		-3: 1, 0: 1, 1: 1, 2: 2, 3: 4, 4: 4, 5: 8,
		28: 32, 32: 32, 33: 64, 1000: 1024, 1 << 20: 1 << 20, 1<<20 + 1: 1 << 21,
	}
	for in, want := range cases {
		got, ok := NextPowerOfTwo(in)
		require.True(t, ok, "NextPowerOfTwo(%d)", in)
		assert.Equal(t, want, got, "NextPowerOfTwo(%d)", in)
	}

	got, ok := NextPowerOfTwo(maxPowerOfTwo)
	require.True(t, ok)
	require.Equal(t, maxPowerOfTwo, got)
	for _, in := range []int{maxPowerOfTwo + 1, math.MaxInt} {
		_, ok := NextPowerOfTwo(in)
		assert.False(t, ok, "NextPowerOfTwo(%d)", in)
	}
}

func TestIsFixedKind(t *testing.T) {
	for _, k := range []reflect.Kind{reflect.Bool, reflect.Uint16, reflect.Float32, reflect.Int64, reflect.Complex128} {
		assert.True(t, IsFixedKind(k), k.String())
	}
	for _, k := range []reflect.Kind{reflect.Int, reflect.Uint, reflect.Uintptr, reflect.String, reflect.Pointer} {
		assert.False(t, IsFixedKind(k), k.String())
	}
}

func TestIsBlittable(t *testing.T) {
	type packed struct {
		A uint32
		B float32
		C [2]uint16
	}
	type padded struct {
		A uint8
		B uint32
	}
	type tail struct {
		A uint64
		B uint8
	}
	type withPtr struct {
		A *uint32
	}
	type withString struct {
		S string
	}

	assert.True(t, IsBlittable(reflect.TypeOf(uint16(0))))
	assert.True(t, IsBlittable(reflect.TypeOf([4]int32{})))
	assert.True(t, IsBlittable(reflect.TypeOf(packed{})))
	assert.False(t, IsBlittable(reflect.TypeOf(padded{})))
	assert.False(t, IsBlittable(reflect.TypeOf(tail{})))
	assert.False(t, IsBlittable(reflect.TypeOf(withPtr{})))
	assert.False(t, IsBlittable(reflect.TypeOf(withString{})))
	assert.False(t, IsBlittable(reflect.TypeOf(0)))
}

func TestStringBytesViews(t *testing.T) {
	require.Nil(t, StringToBytes(""))
	require.Equal(t, "", BytesToString(nil))

	b := StringToBytes("hello")
	require.Equal(t, []byte("hello"), b)
	require.Equal(t, "hello", BytesToString(b))
}
