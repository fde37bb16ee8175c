package wacc

import (
	"unicode/utf8"

	"github.com/bytecodealliance/wasmtime-go"
)

// wasmTrue and wasmFalse are the i32 host-call boolean protocol values used
// by every import in the wacc module namespace (§4.1: 1=true, 0=false).
var (
	wasmTrue  = wasmtime.ValI32(1)
	wasmFalse = wasmtime.ValI32(0)
)

// callerMemory fetches the guest's exported linear memory named "memory".
func callerMemory(caller *wasmtime.Caller) (*wasmtime.Memory, error) {
	ext := caller.GetExport("memory")
	if ext == nil {
		return nil, &BridgeError{Op: "get_string", Err: ErrMissingMemoryExport}
	}
	mem := ext.Memory()
	if mem == nil {
		return nil, &BridgeError{Op: "get_string", Err: ErrMissingMemoryExport}
	}
	return mem, nil
}

// getString reads a UTF-8 string out of the guest's linear memory given a
// (ptr, len) pair of i32 params, per §4.1's get_string helper.
func getString(caller *wasmtime.Caller, params []wasmtime.Val) (string, error) {
	if len(params) < 2 {
		return "", &BridgeError{Op: "get_string", Err: ErrIncorrectParamCount}
	}
	if params[0].Kind() != wasmtime.KindI32 || params[1].Kind() != wasmtime.KindI32 {
		return "", &BridgeError{Op: "get_string", Err: ErrInvalidParam}
	}
	ptr := uint32(params[0].I32())
	length := uint32(params[1].I32())

	mem, err := callerMemory(caller)
	if err != nil {
		return "", err
	}

	data := mem.UnsafeData(caller)
	if uint64(ptr)+uint64(length) > uint64(len(data)) {
		return "", &BridgeError{Op: "get_string", Err: ErrMemoryOutOfRange}
	}
	buf := make([]byte, length)
	copy(buf, data[ptr:ptr+length])

	if !utf8.Valid(buf) {
		return "", &BridgeError{Op: "get_string", Err: utf8InvalidError(buf)}
	}
	return string(buf), nil
}

// putString reserves space at the top of guest memory via the Context's
// monotonic write cursor, writes s there, and returns the (ptr, len) pair
// per §4.1's put_string helper.
func putString(caller *wasmtime.Caller, ctx *Context, s string) (ptr, length uint32, err error) {
	mem, err := callerMemory(caller)
	if err != nil {
		return 0, 0, err
	}

	memSize := uint32(mem.DataSize(caller))
	n := uint32(len(s))
	offset, err := ctx.reserveWrite(memSize, n)
	if err != nil {
		return 0, 0, err
	}

	data := mem.UnsafeData(caller)
	copy(data[offset:offset+n], s)
	return offset, n, nil
}
