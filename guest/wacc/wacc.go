// Package wacc is the guest-side ABI shim (§4.1, §6.2): thin wrappers over
// the host imports in the "wacc" module namespace, converting Go strings to
// the (ptr, len) pairs the bridge expects. Grounded on
// original_source/examples/*/src/lib.rs, translated from Rust's
// #[link(wasm_import_module = "wacc")] extern blocks to Go's
// //go:wasmimport directive.
package wacc

import "unsafe"

//go:wasmimport wacc _push
func hostPush(ptr unsafe.Pointer, length uint32) int32

//go:wasmimport wacc _pop
func hostPop() int32

//go:wasmimport wacc _branch
func hostBranch(ptr unsafe.Pointer, length uint32) (uint32, uint32)

//go:wasmimport wacc _check_eq
func hostCheckEq(ptr unsafe.Pointer, length uint32) int32

//go:wasmimport wacc _check_preimage
func hostCheckPreimage(ptr unsafe.Pointer, length uint32) int32

//go:wasmimport wacc _check_signature
func hostCheckSignature(pubkeyPtr unsafe.Pointer, pubkeyLen uint32, msgPtr unsafe.Pointer, msgLen uint32) int32

//go:wasmimport wacc _check_signature_legacy
func hostCheckSignatureLegacy(ptr unsafe.Pointer, length uint32) int32

//go:wasmimport wacc _check_version
func hostCheckVersion(expected int64) int32

//go:wasmimport wacc _log
func hostLog(ptr unsafe.Pointer, length uint32) int32

func stringPtr(s string) (unsafe.Pointer, uint32) {
	if len(s) == 0 {
		return nil, 0
	}
	return unsafe.Pointer(unsafe.StringData(s)), uint32(len(s))
}

// Push looks up key in the current store and pushes it onto pstack.
func Push(key string) bool {
	ptr, length := stringPtr(key)
	return hostPush(ptr, length) != 0
}

// Pop drops the top of pstack.
func Pop() bool {
	return hostPop() != 0
}

// Branch returns context++key as written back by the host into a region of
// this module's own linear memory.
func Branch(key string) string {
	ptr, length := stringPtr(key)
	outPtr, outLen := hostBranch(ptr, length)
	if outLen == 0 {
		return ""
	}
	buf := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(outPtr))), outLen)
	return string(buf)
}

// CheckEq asserts current[key] equals the top of pstack.
func CheckEq(key string) bool {
	ptr, length := stringPtr(key)
	return hostCheckEq(ptr, length) != 0
}

// CheckPreimage asserts the top of pstack hashes to the multihash at current[key].
func CheckPreimage(key string) bool {
	ptr, length := stringPtr(key)
	return hostCheckPreimage(ptr, length) != 0
}

// CheckSignature is the 4-param primary form: verifies the multisig on top
// of pstack against current[pubkeyKey] over proposed[msgKey].
func CheckSignature(pubkeyKey, msgKey string) bool {
	pubkeyPtr, pubkeyLen := stringPtr(pubkeyKey)
	msgPtr, msgLen := stringPtr(msgKey)
	return hostCheckSignature(pubkeyPtr, pubkeyLen, msgPtr, msgLen) != 0
}

// CheckSignatureLegacy is the 2-param compatibility form: pubkey from
// current[key], message from the second pstack entry down.
func CheckSignatureLegacy(key string) bool {
	ptr, length := stringPtr(key)
	return hostCheckSignatureLegacy(ptr, length) != 0
}

// CheckVersion compares current["version"] to expected.
func CheckVersion(expected int64) bool {
	return hostCheckVersion(expected) != 0
}

// Log appends line plus a trailing newline to the run's log buffer.
func Log(line string) bool {
	ptr, length := stringPtr(line)
	return hostLog(ptr, length) != 0
}
