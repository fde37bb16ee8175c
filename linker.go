package wacc

import "github.com/bytecodealliance/wasmtime-go"

// wamModule is the import module namespace every wacc host call is
// registered under (§4.1).
const wamModule = "wacc"

// defineImports registers the full §4.1 import surface on linker, binding
// each host function to ctx. Grounded on the teacher's linker wiring in
// engines/wasmtime/wasmtime.go, generalized from waPC's single guestCall
// import to wacc's nine-function surface.
func defineImports(linker *wasmtime.Linker, store *wasmtime.Store, ctx *Context) error {
	imports := []struct {
		name string
		fn   *wasmtime.Func
	}{
		{"_push", newPushFunc(store, ctx)},
		{"_pop", newPopFunc(store, ctx)},
		{"_branch", newBranchFunc(store, ctx)},
		{"_check_eq", newCheckEqFunc(store, ctx)},
		{"_check_preimage", newCheckPreimageFunc(store, ctx)},
		{"_check_signature", newCheckSignatureFunc(store, ctx)},
		{"_check_signature_legacy", newCheckSignatureLegacyFunc(store, ctx)},
		{"_check_version", newCheckVersionFunc(store, ctx)},
		{"_log", newLogFunc(store, ctx)},
	}

	for _, imp := range imports {
		if err := linker.Define(wamModule, imp.name, imp.fn); err != nil {
			return &BuilderError{Op: "define import " + imp.name, Err: err}
		}
	}
	return nil
}
