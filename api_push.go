package wacc

import "github.com/bytecodealliance/wasmtime-go"

// newPushFunc implements the "_push" import (§4.3 push): look up key in
// current; on hit, push the value onto pstack and return true; on miss, fail
// without incrementing check_count. push is not a check primitive.
func newPushFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	ty := wasmtime.NewFuncType(
		[]*wasmtime.ValType{wasmtime.NewValType(wasmtime.KindI32), wasmtime.NewValType(wasmtime.KindI32)},
		[]*wasmtime.ValType{wasmtime.NewValType(wasmtime.KindI32)},
	)
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		key, err := getString(caller, params)
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmFalse}, nil
		}

		v, ok := ctx.Current.Get(key)
		if !ok {
			ctx.fail("kvp missing key: " + key)
			return []wasmtime.Val{wasmFalse}, nil
		}

		ctx.PStack.Push(v)
		return []wasmtime.Val{wasmTrue}, nil
	})
}
