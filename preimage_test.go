package wacc

import (
	"testing"

	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerifyPreimageMatches(t *testing.T) {
	data := []byte("for great justice, move every zig!")
	stored, err := multihash.Sum(data, multihash.SHA3_256, -1)
	require.NoError(t, err)

	ok, err := verifyPreimage(stored, data)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyPreimageMismatch(t *testing.T) {
	stored, err := multihash.Sum([]byte("original"), multihash.SHA3_256, -1)
	require.NoError(t, err)

	ok, err := verifyPreimage(stored, []byte("tampered"))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVerifyPreimageRejectsMalformedMultihash(t *testing.T) {
	_, err := verifyPreimage([]byte{0xff}, []byte("x"))
	assert.Error(t, err)
}
