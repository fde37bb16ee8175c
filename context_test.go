package wacc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestContext() *Context {
	return NewContext(NewMemPairs(), NewMemPairs(), NewMemStack(), NewMemStack(), "")
}

func TestContextCheckFailIncrementsCountAndPushesFailure(t *testing.T) {
	ctx := newTestContext()
	ok := ctx.checkFail("boom")
	assert.False(t, ok)
	assert.Equal(t, uint64(1), ctx.CheckCount())

	top, has := ctx.RStack.Top()
	require.True(t, has)
	reason, isFailure := top.Failure()
	require.True(t, isFailure)
	assert.Equal(t, "boom", reason)
}

func TestContextCheckSucceedCarriesCheckCount(t *testing.T) {
	ctx := newTestContext()
	ctx.checkFail("first")
	ok := ctx.checkSucceed()
	assert.True(t, ok)
	assert.Equal(t, uint64(2), ctx.CheckCount())

	top, has := ctx.RStack.Top()
	require.True(t, has)
	n, isSuccess := top.Success()
	require.True(t, isSuccess)
	assert.Equal(t, uint64(2), n)
}

func TestContextFailDoesNotIncrementCheckCount(t *testing.T) {
	ctx := newTestContext()
	ctx.fail("not a check")
	assert.Equal(t, uint64(0), ctx.CheckCount())
}

func TestContextAppendLog(t *testing.T) {
	ctx := newTestContext()
	ctx.appendLog("Hello World!")
	assert.Equal(t, []byte("Hello World!\n"), ctx.Log())
}

func TestContextReserveWriteIsMonotonic(t *testing.T) {
	ctx := newTestContext()
	const memSize = 64

	off1, err := ctx.reserveWrite(memSize, 8)
	require.NoError(t, err)

	off2, err := ctx.reserveWrite(memSize, 8)
	require.NoError(t, err)

	assert.NotEqual(t, off1, off2)
	assert.Less(t, off2, off1)
}

func TestContextReserveWriteRejectsOverflow(t *testing.T) {
	ctx := newTestContext()
	_, err := ctx.reserveWrite(8, 100)
	require.Error(t, err)
}
