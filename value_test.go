package wacc

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueBytes(t *testing.T) {
	bin := BinValue([]byte("foo"))
	b, ok := bin.Bytes()
	assert.True(t, ok)
	assert.Equal(t, []byte("foo"), b)

	str := StrValue("foo")
	b, ok = str.Bytes()
	assert.True(t, ok)
	assert.Equal(t, []byte("foo"), b)

	_, ok = SuccessValue(1).Bytes()
	assert.False(t, ok)
}

func TestValueEqualDistinguishesBinAndStr(t *testing.T) {
	assert.False(t, BinValue([]byte("foo")).Equal(StrValue("foo")))
	assert.True(t, BinValue([]byte("foo")).Equal(BinValue([]byte("foo"))))
	assert.True(t, StrValue("foo").Equal(StrValue("foo")))
}

func TestValueSuccessFailureNeverEqualBinStr(t *testing.T) {
	assert.False(t, SuccessValue(1).Equal(BinValue([]byte{1})))
	assert.False(t, FailureValue("x").Equal(StrValue("x")))
}

func TestValueSuccessAndFailureAccessors(t *testing.T) {
	n, ok := SuccessValue(7).Success()
	assert.True(t, ok)
	assert.Equal(t, uint64(7), n)

	reason, ok := FailureValue("nope").Failure()
	assert.True(t, ok)
	assert.Equal(t, "nope", reason)

	_, ok = BinValue(nil).Success()
	assert.False(t, ok)
	_, ok = BinValue(nil).Failure()
	assert.False(t, ok)
}
