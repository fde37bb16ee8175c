package wacc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolGetReturn(t *testing.T) {
	code := watToWasm(t, logHelloWat)

	factory := func() *Context {
		return NewContext(NewMemPairs(), NewMemPairs(), NewMemStack(), NewMemStack(), "")
	}

	pool, err := NewPool(code, 4, factory, 0)
	require.NoError(t, err)
	defer pool.Close()

	for i := 0; i < 10; i++ {
		instance, err := pool.Get(10 * time.Millisecond)
		require.NoError(t, err)

		ok, err := instance.Run("move_every_zig")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, []byte("Hello World!\n"), instance.Log())

		require.NoError(t, pool.Return(instance))
	}
}

func TestPoolGetTimesOutWhenExhausted(t *testing.T) {
	code := watToWasm(t, logHelloWat)

	factory := func() *Context {
		return NewContext(NewMemPairs(), NewMemPairs(), NewMemStack(), NewMemStack(), "")
	}

	pool, err := NewPool(code, 1, factory, 0)
	require.NoError(t, err)
	defer pool.Close()

	instance, err := pool.Get(10 * time.Millisecond)
	require.NoError(t, err)

	_, err = pool.Get(10 * time.Millisecond)
	assert.Error(t, err)

	require.NoError(t, pool.Return(instance))
}
