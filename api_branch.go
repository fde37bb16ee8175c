package wacc

import "github.com/bytecodealliance/wasmtime-go"

// newBranchFunc implements the "_branch" import (§4.3 branch): concatenates
// the current branch prefix with key (no separator inserted) and writes the
// result back into guest memory via put_string. Never fails on a well-formed
// key; marshaling failure records Failure and returns an empty slot.
// branch is not a check primitive.
func newBranchFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	i32 := wasmtime.NewValType(wasmtime.KindI32)
	ty := wasmtime.NewFuncType(
		[]*wasmtime.ValType{i32, i32},
		[]*wasmtime.ValType{i32, i32},
	)
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		key, err := getString(caller, params)
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmtime.ValI32(0), wasmtime.ValI32(0)}, nil
		}

		s := ctx.BranchPrefix() + key

		ptr, length, err := putString(caller, ctx, s)
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmtime.ValI32(0), wasmtime.ValI32(0)}, nil
		}

		return []wasmtime.Val{wasmtime.ValI32(int32(ptr)), wasmtime.ValI32(int32(length))}, nil
	})
}
