package wacc

import "github.com/bytecodealliance/wasmtime-go"

const (
	defaultMemoryPages  = 1    // 64 KiB
	defaultMaxInstances = 2
	defaultMaxMemories  = 1
)

// Builder configures and compiles a sandbox (§4.5). Grounded on the
// teacher's Module/Engine split in engines/wasmtime/wasmtime.go,
// collapsed into a single fluent builder since wacc has one engine.
type Builder struct {
	bytes   []byte
	ctx     *Context
	fuel    *uint64
	useFuel bool
}

// NewBuilder starts a Builder with no code, context, or fuel budget set.
func NewBuilder() *Builder {
	return &Builder{}
}

// WithBytes sets the guest module's compiled WebAssembly bytes.
func (b *Builder) WithBytes(code []byte) *Builder {
	b.bytes = code
	return b
}

// WithContext sets the Context the sandbox's host calls will operate on.
func (b *Builder) WithContext(ctx *Context) *Builder {
	b.ctx = ctx
	return b
}

// WithFuel enables fuel metering with the given budget. Omit to run without
// a fuel limit.
func (b *Builder) WithFuel(n uint64) *Builder {
	b.useFuel = true
	b.fuel = &n
	return b
}

// TryBuild compiles (ahead-of-time, then deserializes the artifact),
// instantiates a store around ctx's resource limits, wires the import
// surface, and returns an Instance ready to run an exported function.
func (b *Builder) TryBuild() (*Instance, error) {
	if b.ctx == nil {
		return nil, &BuilderError{Op: "try_build", Err: ErrMissingContext}
	}
	if len(b.bytes) == 0 {
		return nil, &BuilderError{Op: "try_build", Err: ErrMissingBytes}
	}

	cfg := wasmtime.NewConfig()
	if b.useFuel {
		cfg.SetConsumeFuel(true)
	}
	engine := wasmtime.NewEngineWithConfig(cfg)

	// Ahead-of-time compile, then deserialize the compiled artifact: this
	// exercises the AOT path and keeps instantiation startup deterministic.
	module, err := wasmtime.NewModule(engine, b.bytes)
	if err != nil {
		return nil, &BuilderError{Op: "compile", Err: err}
	}
	serialized, err := module.Serialize()
	if err != nil {
		return nil, &BuilderError{Op: "serialize", Err: err}
	}
	module, err = wasmtime.NewModuleDeserialize(engine, serialized)
	if err != nil {
		return nil, &BuilderError{Op: "deserialize", Err: err}
	}

	store := wasmtime.NewStore(engine)
	if b.useFuel {
		if err := store.AddFuel(*b.fuel); err != nil {
			return nil, &BuilderError{Op: "add_fuel", Err: err}
		}
	}

	limits := b.ctx.Limits
	memPages := limits.MemoryPages
	if memPages == 0 {
		memPages = defaultMemoryPages
	}
	maxInstances := limits.MaxInstances
	if maxInstances == 0 {
		maxInstances = defaultMaxInstances
	}
	maxMemories := limits.MaxMemories
	if maxMemories == 0 {
		maxMemories = defaultMaxMemories
	}
	store.Limiter(wasmtime.NewStoreLimits(memPages*wasmPageSize, -1, maxInstances, -1, maxMemories))

	linker := wasmtime.NewLinker(engine)
	if err := defineImports(linker, store, b.ctx); err != nil {
		return nil, err
	}

	return &Instance{
		linker: linker,
		module: module,
		store:  store,
		ctx:    b.ctx,
	}, nil
}

// wasmPageSize is the size, in bytes, of one unit of wasm linear memory.
const wasmPageSize = 64 * 1024
