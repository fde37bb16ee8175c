package wacc

import "github.com/bytecodealliance/wasmtime-go"

// newLogFunc implements the "_log" import (§4.3 log): append the UTF-8
// slice plus a trailing newline to the Context's log buffer. log is not a
// check primitive.
func newLogFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	i32 := wasmtime.NewValType(wasmtime.KindI32)
	ty := wasmtime.NewFuncType([]*wasmtime.ValType{i32, i32}, []*wasmtime.ValType{i32})
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		line, err := getString(caller, params)
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmFalse}, nil
		}

		ctx.appendLog(line)
		return []wasmtime.Val{wasmTrue}, nil
	})
}
