package wacc

import "github.com/bytecodealliance/wasmtime-go"

// Instance owns a compiled module, its store, and the linker wiring the
// import surface to a Context. One Instance runs exactly one invocation of
// one exported function at a time; it is not safe for concurrent use
// (§5, Non-goals).
type Instance struct {
	linker *wasmtime.Linker
	module *wasmtime.Module
	store  *wasmtime.Store
	ctx    *Context

	closed bool
}

// Run instantiates the module, looks up the nullary exported function
// fname, calls it, and reports true iff it returned non-zero (§4.5).
func (i *Instance) Run(fname string) (bool, error) {
	if i.closed {
		return false, &EngineError{Op: "run", Err: ErrModuleClosed}
	}

	inst, err := i.linker.Instantiate(i.store, i.module)
	if err != nil {
		return false, &BuilderError{Op: "instantiate", Err: err}
	}

	fn := inst.GetFunc(i.store, fname)
	if fn == nil {
		return false, &EngineError{Op: "run", Err: &funcNotFoundError{fname}}
	}

	ret, err := fn.Call(i.store)
	if err != nil {
		return false, &EngineError{Op: "run", Err: err}
	}

	n, ok := ret.(int32)
	if !ok {
		return false, &EngineError{Op: "run", Err: &badReturnTypeError{fname}}
	}
	return n != 0, nil
}

// Log returns a copy of the Context's accumulated log bytes.
func (i *Instance) Log() []byte {
	return i.ctx.Log()
}

// Close marks the Instance closed, so later Run calls fail with
// ErrModuleClosed. It does not free the store or module. Safe to call more
// than once.
func (i *Instance) Close() {
	i.closed = true
}

// ComposeRun runs unlock's exported unlockFn, then lock's exported lockFn,
// returning the lock phase's result. Both instances must have been built
// against Contexts sharing the same pstack/rstack, so the proofs the unlock
// script pushes are visible to the lock script's checks — the two-phase
// composition described by the Context lifecycle note in §3.4.
func ComposeRun(unlock *Instance, unlockFn string, lock *Instance, lockFn string) (bool, error) {
	if _, err := unlock.Run(unlockFn); err != nil {
		return false, err
	}
	return lock.Run(lockFn)
}

type funcNotFoundError struct{ name string }

func (e *funcNotFoundError) Error() string {
	return "exported function not found: " + e.name
}

type badReturnTypeError struct{ name string }

func (e *badReturnTypeError) Error() string {
	return "exported function did not return i32: " + e.name
}
