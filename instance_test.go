package wacc

import (
	"crypto/ed25519"
	"testing"

	"github.com/bytecodealliance/wasmtime-go"
	"github.com/multiformats/go-multihash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cryptidtech/wacc/multikey"
	"github.com/cryptidtech/wacc/multisig"
)

// watToWasm compiles an inline WAT fixture to wasm bytes for a test.
func watToWasm(t *testing.T, wat string) []byte {
	t.Helper()
	b, err := wasmtime.Wat2Wasm(wat)
	require.NoError(t, err)
	return b
}

// logHelloWat is scenario 1 (§8): move_every_zig logs "Hello World!" and
// returns true.
const logHelloWat = `
(module
  (import "wacc" "_log" (func $log (param i32 i32) (result i32)))
  (memory (export "memory") 1)
  (data (i32.const 0) "Hello World!")
  (func (export "move_every_zig") (result i32)
    (drop (call $log (i32.const 0) (i32.const 12)))
    (i32.const 1)))
`

func TestScenarioLogHello(t *testing.T) {
	ctx := NewContext(NewMemPairs(), NewMemPairs(), NewMemStack(), NewMemStack(), "")
	instance, err := NewBuilder().
		WithBytes(watToWasm(t, logHelloWat)).
		WithContext(ctx).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	ok, err := instance.Run("move_every_zig")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("Hello World!\n"), instance.Log())
	assert.True(t, ctx.PStack.IsEmpty())
	assert.True(t, ctx.RStack.IsEmpty())
}

// unlockPushPushWat is scenario 3 (§8): for_great_justice pushes two
// current-store entries onto pstack.
const unlockPushPushWat = `
(module
  (import "wacc" "_push" (func $push (param i32 i32) (result i32)))
  (memory (export "memory") 1)
  (data (i32.const 0) "/entry/")
  (data (i32.const 16) "/entry/proof")
  (func (export "for_great_justice") (result i32)
    (drop (call $push (i32.const 0) (i32.const 7)))
    (drop (call $push (i32.const 16) (i32.const 12)))
    (i32.const 1)))
`

func TestScenarioUnlockPushPush(t *testing.T) {
	current := NewMemPairs()
	current.Put("/entry/", BinValue([]byte("foo")))
	current.Put("/entry/proof", BinValue([]byte("bar")))

	pstack := NewMemStack()
	ctx := NewContext(current, NewMemPairs(), pstack, NewMemStack(), "")

	instance, err := NewBuilder().
		WithBytes(watToWasm(t, unlockPushPushWat)).
		WithContext(ctx).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	ok, err := instance.Run("for_great_justice")
	require.NoError(t, err)
	assert.True(t, ok)

	require.Equal(t, 2, pstack.Len())
	top, _ := pstack.Top()
	b, _ := top.Bytes()
	assert.Equal(t, []byte("bar"), b)

	bottom, _ := pstack.Peek(1)
	b, _ = bottom.Bytes()
	assert.Equal(t, []byte("foo"), b)

	assert.True(t, ctx.RStack.IsEmpty())
}

// invalidUTF8LogWat is scenario 2 (§8): a non-UTF-8 byte sequence passed to
// _log surfaces as a Failure without panicking the engine.
const invalidUTF8LogWat = `
(module
  (import "wacc" "_log" (func $log (param i32 i32) (result i32)))
  (memory (export "memory") 1)
  (data (i32.const 0) "\ff")
  (func (export "move_every_zig") (result i32)
    (drop (call $log (i32.const 0) (i32.const 1)))
    (i32.const 1)))
`

func TestScenarioInvalidUTF8ToLog(t *testing.T) {
	ctx := NewContext(NewMemPairs(), NewMemPairs(), NewMemStack(), NewMemStack(), "")
	instance, err := NewBuilder().
		WithBytes(watToWasm(t, invalidUTF8LogWat)).
		WithContext(ctx).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	ok, err := instance.Run("move_every_zig")
	require.NoError(t, err)
	assert.True(t, ok)

	top, has := ctx.RStack.Top()
	require.True(t, has)
	reason, isFailure := top.Failure()
	require.True(t, isFailure)
	assert.Equal(t, "invalid utf-8 sequence of 1 bytes from index 0", reason)
	assert.Equal(t, 0, len(ctx.Log()))
}

func TestPopOnEmptyStackFails(t *testing.T) {
	ctx := NewContext(NewMemPairs(), NewMemPairs(), NewMemStack(), NewMemStack(), "")
	wat := `
(module
  (import "wacc" "_pop" (func $pop (result i32)))
  (memory (export "memory") 1)
  (func (export "move_every_zig") (result i32)
    (call $pop)))
`
	instance, err := NewBuilder().
		WithBytes(watToWasm(t, wat)).
		WithContext(ctx).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	ok, err := instance.Run("move_every_zig")
	require.NoError(t, err)
	assert.False(t, ok)

	top, has := ctx.RStack.Top()
	require.True(t, has)
	_, isFailure := top.Failure()
	assert.True(t, isFailure)
}

func TestFuelExhaustionSurfacesAsEngineError(t *testing.T) {
	ctx := NewContext(NewMemPairs(), NewMemPairs(), NewMemStack(), NewMemStack(), "")
	wat := `
(module
  (memory (export "memory") 1)
  (func (export "move_every_zig") (result i32)
    (local $i i32)
    (loop $loop
      (local.set $i (i32.add (local.get $i) (i32.const 1)))
      (br_if $loop (i32.lt_u (local.get $i) (i32.const 1000000000))))
    (i32.const 1)))
`
	instance, err := NewBuilder().
		WithBytes(watToWasm(t, wat)).
		WithContext(ctx).
		WithFuel(10).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	_, err = instance.Run("move_every_zig")
	assert.Error(t, err)
	var engineErr *EngineError
	assert.ErrorAs(t, err, &engineErr)
}

// preimageLockWat is scenario 4 (§8): check_signature("/tpubkey") ||
// check_signature("/pubkey") || check_preimage("/hash"), exercising both
// _check_signature_legacy and _check_preimage through an actual instance.
const preimageLockWat = `
(module
  (import "wacc" "_push" (func $push (param i32 i32) (result i32)))
  (import "wacc" "_check_signature_legacy" (func $check_sig (param i32 i32) (result i32)))
  (import "wacc" "_check_preimage" (func $check_preimage (param i32 i32) (result i32)))
  (memory (export "memory") 1)
  (data (i32.const 0) "/proof")
  (data (i32.const 16) "/tpubkey")
  (data (i32.const 32) "/pubkey")
  (data (i32.const 48) "/hash")
  (func (export "move_every_zig") (result i32)
    (drop (call $push (i32.const 0) (i32.const 6)))
    (if (result i32)
      (call $check_sig (i32.const 16) (i32.const 8))
      (then (i32.const 1))
      (else
        (if (result i32)
          (call $check_sig (i32.const 32) (i32.const 7))
          (then (i32.const 1))
          (else (call $check_preimage (i32.const 48) (i32.const 5))))))))
`

func TestScenarioPreimageLock(t *testing.T) {
	text := []byte("for great justice, move every zig!")
	hash, err := multihash.Sum(text, multihash.SHA3_256, -1)
	require.NoError(t, err)

	current := NewMemPairs()
	current.Put("/proof", BinValue(text))
	current.Put("/hash", BinValue(hash))
	// "/tpubkey" and "/pubkey" are deliberately absent: both
	// check_signature_legacy calls fail before the preimage check runs.

	ctx := NewContext(current, NewMemPairs(), NewMemStack(), NewMemStack(), "")
	instance, err := NewBuilder().
		WithBytes(watToWasm(t, preimageLockWat)).
		WithContext(ctx).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	ok, err := instance.Run("move_every_zig")
	require.NoError(t, err)
	assert.True(t, ok)

	top, has := ctx.RStack.Top()
	require.True(t, has)
	n, isSuccess := top.Success()
	require.True(t, isSuccess)
	assert.Equal(t, uint64(3), n)
	assert.Equal(t, uint64(3), ctx.CheckCount())
	assert.True(t, ctx.PStack.IsEmpty())
}

// pubkeyLockWat is scenario 5 (§8): check_signature("/tpubkey") ||
// check_signature("/pubkey"), exercising a real ed25519 verification
// through multikey/multisig decoding at the wasm boundary.
const pubkeyLockWat = `
(module
  (import "wacc" "_push" (func $push (param i32 i32) (result i32)))
  (import "wacc" "_check_signature_legacy" (func $check_sig (param i32 i32) (result i32)))
  (memory (export "memory") 1)
  (data (i32.const 0) "/msg")
  (data (i32.const 16) "/sig")
  (data (i32.const 32) "/tpubkey")
  (data (i32.const 48) "/pubkey")
  (func (export "move_every_zig") (result i32)
    (drop (call $push (i32.const 0) (i32.const 4)))
    (drop (call $push (i32.const 16) (i32.const 4)))
    (if (result i32)
      (call $check_sig (i32.const 32) (i32.const 8))
      (then (i32.const 1))
      (else (call $check_sig (i32.const 48) (i32.const 7))))))
`

func TestScenarioPubkeyLock(t *testing.T) {
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)

	message := []byte("for great justice, move every zig!")
	sig := ed25519.Sign(priv, message)

	mk := &multikey.Multikey{
		Codec:      multikey.Ed25519Pub,
		Attributes: []multikey.Attribute{{ID: multikey.KeyAttr, Bytes: []byte(pub)}},
	}
	ms := &multisig.Multisig{
		Codec:      multisig.Ed25519Sig,
		Attributes: []multisig.Attribute{{ID: multisig.SigAttr, Bytes: sig}},
	}

	current := NewMemPairs()
	current.Put("/msg", BinValue(message))
	current.Put("/sig", BinValue(ms.Encode()))
	current.Put("/pubkey", BinValue(mk.Encode()))
	// "/tpubkey" is deliberately absent: the first check_signature_legacy
	// call fails before the second one succeeds against "/pubkey".

	ctx := NewContext(current, NewMemPairs(), NewMemStack(), NewMemStack(), "")
	instance, err := NewBuilder().
		WithBytes(watToWasm(t, pubkeyLockWat)).
		WithContext(ctx).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	ok, err := instance.Run("move_every_zig")
	require.NoError(t, err)
	assert.True(t, ok)

	top, has := ctx.RStack.Top()
	require.True(t, has)
	n, isSuccess := top.Success()
	require.True(t, isSuccess)
	assert.Equal(t, uint64(2), n)
	assert.True(t, ctx.PStack.IsEmpty())
}

// branchCompositionWat is scenario 6 (§8): branch("pubkey") under context
// "/forks/child/" yields a slot that a following check primitive treats as
// if current["/forks/child/pubkey"] had been addressed directly.
const branchCompositionWat = `
(module
  (import "wacc" "_push" (func $push (param i32 i32) (result i32)))
  (import "wacc" "_branch" (func $branch (param i32 i32) (result i32 i32)))
  (import "wacc" "_check_eq" (func $check_eq (param i32 i32) (result i32)))
  (memory (export "memory") 1)
  (data (i32.const 0) "/proof")
  (data (i32.const 16) "pubkey")
  (func (export "move_every_zig") (result i32)
    (local $ptr i32)
    (local $len i32)
    (drop (call $push (i32.const 0) (i32.const 6)))
    (call $branch (i32.const 16) (i32.const 6))
    (local.set $len)
    (local.set $ptr)
    (call $check_eq (local.get $ptr) (local.get $len))))
`

func TestScenarioBranchComposition(t *testing.T) {
	current := NewMemPairs()
	current.Put("/proof", BinValue([]byte("headvalue")))
	current.Put("/forks/child/pubkey", BinValue([]byte("headvalue")))

	pstack := NewMemStack()
	ctx := NewContext(current, NewMemPairs(), pstack, NewMemStack(), "/forks/child/")

	instance, err := NewBuilder().
		WithBytes(watToWasm(t, branchCompositionWat)).
		WithContext(ctx).
		TryBuild()
	require.NoError(t, err)
	defer instance.Close()

	ok, err := instance.Run("move_every_zig")
	require.NoError(t, err)
	assert.True(t, ok)

	top, has := ctx.RStack.Top()
	require.True(t, has)
	n, isSuccess := top.Success()
	require.True(t, isSuccess)
	assert.Equal(t, uint64(1), n)
	assert.True(t, pstack.IsEmpty())
}
