package wacc

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyRejectsEmpty(t *testing.T) {
	_, err := ParseKey("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyKey)
}

func TestParseKeyRejectsMissingRootSeparator(t *testing.T) {
	_, err := ParseKey("foo/bar")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRootSeparator)
}

func TestParseKeyDefaultIsEmptyBranch(t *testing.T) {
	k, err := ParseKey("/")
	require.NoError(t, err)
	assert.True(t, k.IsBranch())
	assert.Equal(t, 0, k.Len())
}

func TestParseKeyCollapsesRepeatedSeparators(t *testing.T) {
	a, err := ParseKey("/entry//proof")
	require.NoError(t, err)
	b, err := ParseKey("/entry/proof")
	require.NoError(t, err)
	assert.Equal(t, a.String(), b.String())
}

func TestParseKeyLeafVsBranch(t *testing.T) {
	leaf, err := ParseKey("/entry/proof")
	require.NoError(t, err)
	assert.True(t, leaf.IsLeaf())
	assert.False(t, leaf.IsBranch())

	branch, err := ParseKey("/entry/")
	require.NoError(t, err)
	assert.True(t, branch.IsBranch())
	assert.False(t, branch.IsLeaf())
}

func TestParseKeyIsIdempotentUnderFormat(t *testing.T) {
	inputs := []string{"/", "/entry/", "/entry/proof", "/a/b/c/"}
	for _, s := range inputs {
		k1, err := ParseKey(s)
		require.NoError(t, err)
		k2, err := ParseKey(k1.String())
		require.NoError(t, err)
		assert.Equal(t, k1.String(), k2.String())
	}
}
