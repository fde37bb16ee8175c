package wacc

import (
	"github.com/bytecodealliance/wasmtime-go"
	"github.com/multiformats/go-varint"
)

// newCheckVersionFunc implements the "_check_version" import (§4.3
// check_version): compares current["version"], decoded as a varuint,
// against expected. Does not touch pstack.
//
// Per the uniform rule resolved in SPEC_FULL.md (§9 Open Question),
// check_count is incremented on both the success and failure path here,
// diverging from the literal source behavior of leaving it untouched on
// success.
func newCheckVersionFunc(store *wasmtime.Store, ctx *Context) *wasmtime.Func {
	i64 := wasmtime.NewValType(wasmtime.KindI64)
	i32 := wasmtime.NewValType(wasmtime.KindI32)
	ty := wasmtime.NewFuncType([]*wasmtime.ValType{i64}, []*wasmtime.ValType{i32})
	return wasmtime.NewFunc(store, ty, func(caller *wasmtime.Caller, params []wasmtime.Val) ([]wasmtime.Val, *wasmtime.Trap) {
		if len(params) < 1 || params[0].Kind() != wasmtime.KindI64 {
			ctx.fail("invalid check_version parameter")
			return []wasmtime.Val{wasmFalse}, nil
		}
		expected := uint64(params[0].I64())

		stored, ok := ctx.Current.Get("version")
		if !ok || (!stored.IsBin() && !stored.IsStr()) {
			ctx.checkFail("no version stored")
			return []wasmtime.Val{wasmFalse}, nil
		}
		raw, _ := stored.Bytes()

		got, _, err := varint.FromUvarint(raw)
		if err != nil {
			ctx.checkFail("undecodable version")
			return []wasmtime.Val{wasmFalse}, nil
		}

		if got != expected {
			ctx.checkFail("version mismatch v != expected")
			return []wasmtime.Val{wasmFalse}, nil
		}

		ctx.checkSucceed()
		return []wasmtime.Val{wasmTrue}, nil
	})
}
