package wacc

import "github.com/bytecodealliance/wasmtime-go"

// newPopFunc implements the "_pop" import (§4.3 pop): drop the top of
// pstack, failing if it is empty. pop is not a check primitive.
func newPopFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	ty := wasmtime.NewFuncType(nil, []*wasmtime.ValType{wasmtime.NewValType(wasmtime.KindI32)})
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		if ctx.PStack.IsEmpty() {
			ctx.fail("pstack is empty")
			return []wasmtime.Val{wasmFalse}, nil
		}
		ctx.PStack.Pop()
		return []wasmtime.Val{wasmTrue}, nil
	})
}
