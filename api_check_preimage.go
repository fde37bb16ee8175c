package wacc

import "github.com/bytecodealliance/wasmtime-go"

// newCheckPreimageFunc implements the "_check_preimage" import (§4.3
// check_preimage): assert that the top of pstack hashes, under the codec
// named by the stored multihash, to current[key].
func newCheckPreimageFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	i32 := wasmtime.NewValType(wasmtime.KindI32)
	ty := wasmtime.NewFuncType([]*wasmtime.ValType{i32, i32}, []*wasmtime.ValType{i32})
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		key, err := getString(caller, params)
		if err != nil {
			ctx.fail(bridgeReason(err))
			return []wasmtime.Val{wasmFalse}, nil
		}

		stored, ok := ctx.Current.Get(key)
		if !ok || !stored.IsBin() {
			ctx.checkFail("no multihash associated with " + key)
			return []wasmtime.Val{wasmFalse}, nil
		}
		storedBytes, _ := stored.Bytes()

		if ctx.PStack.IsEmpty() {
			ctx.checkFail("pstack is empty")
			return []wasmtime.Val{wasmFalse}, nil
		}
		top, _ := ctx.PStack.Top()
		if !top.IsBin() && !top.IsStr() {
			ctx.checkFail("unexpected value type on pstack")
			return []wasmtime.Val{wasmFalse}, nil
		}
		candidate, _ := top.Bytes()

		ok, err = verifyPreimage(storedBytes, candidate)
		if err != nil {
			ctx.checkFail(err.Error())
			return []wasmtime.Val{wasmFalse}, nil
		}
		if !ok {
			ctx.checkFail("preimage doesn't match")
			return []wasmtime.Val{wasmFalse}, nil
		}

		ctx.PStack.Pop()
		ctx.checkSucceed()
		return []wasmtime.Val{wasmTrue}, nil
	})
}
