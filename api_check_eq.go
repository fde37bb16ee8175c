package wacc

import "github.com/bytecodealliance/wasmtime-go"

// newCheckEqFunc implements the "_check_eq" import (§4.3 check_eq): assert
// that current[key] equals the top of pstack, consuming the top on success.
func newCheckEqFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	i32 := wasmtime.NewValType(wasmtime.KindI32)
	ty := wasmtime.NewFuncType([]*wasmtime.ValType{i32, i32}, []*wasmtime.ValType{i32})
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		key, err := getString(caller, params)
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmFalse}, nil
		}

		want, ok := ctx.Current.Get(key)
		if !ok {
			ctx.checkFail("no value associated with " + key)
			return []wasmtime.Val{wasmFalse}, nil
		}
		if !want.IsBin() && !want.IsStr() {
			ctx.checkFail("unexpected value type associated with " + key)
			return []wasmtime.Val{wasmFalse}, nil
		}

		if ctx.PStack.IsEmpty() {
			ctx.checkFail("pstack is empty")
			return []wasmtime.Val{wasmFalse}, nil
		}
		top, _ := ctx.PStack.Top()
		if !top.IsBin() && !top.IsStr() {
			ctx.checkFail("unexpected value type on pstack")
			return []wasmtime.Val{wasmFalse}, nil
		}

		if !want.Equal(top) {
			ctx.checkFail("values don't match")
			return []wasmtime.Val{wasmFalse}, nil
		}

		ctx.PStack.Pop()
		ctx.checkSucceed()
		return []wasmtime.Val{wasmTrue}, nil
	})
}
