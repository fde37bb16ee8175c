package wacc

import "bytes"

// Limits configures the resource caps the Builder installs on the sandbox's
// store limiter (§5). Zero values fall back to the Builder's defaults.
type Limits struct {
	// MemoryPages caps guest linear memory, in 64KiB wasm pages.
	MemoryPages int64
	// MaxInstances caps the number of module instances a store may hold.
	MaxInstances int64
	// MaxMemories caps the number of memories a store may hold.
	MaxMemories int64
}

// Context is the per-invocation execution state: two stacks, two store
// views, and the bookkeeping the check primitives share. A Context is built
// once, aliases the embedder's stores and stacks, runs for exactly one
// Instance.Run call (or a composed pair via ComposeRun), and is then
// discarded. Grounded on original_source/src/vm/context.rs.
type Context struct {
	// Current is the committed state view check primitives verify against.
	Current Pairs
	// Proposed is the state being proposed, used by check_signature for
	// what was signed.
	Proposed Pairs
	// Blocks is the optional content-addressed store. No primitive here
	// calls it; reserved for future opcodes.
	Blocks Blocks

	// PStack is the parameter stack: unlock proofs live here.
	PStack Stack
	// RStack is the return stack: success/failure markers accumulate here.
	RStack Stack

	// Limits configures the sandbox's resource limiter.
	Limits Limits

	checkCount uint64
	writeIdx   uint32
	branch     string
	log        bytes.Buffer
}

// NewContext builds a Context aliasing the given stores and stacks, with the
// given branch prefix (used by the branch host call). Pass "" for the
// default (root) branch prefix.
func NewContext(current, proposed Pairs, pstack, rstack Stack, branchPrefix string) *Context {
	return &Context{
		Current:  current,
		Proposed: proposed,
		PStack:   pstack,
		RStack:   rstack,
		branch:   branchPrefix,
	}
}

// CheckCount returns the number of check primitives attempted so far.
func (c *Context) CheckCount() uint64 { return c.checkCount }

// Log returns a copy of the accumulated log buffer.
func (c *Context) Log() []byte {
	return append([]byte(nil), c.log.Bytes()...)
}

// BranchPrefix returns the current branch prefix used by branch(key).
func (c *Context) BranchPrefix() string { return c.branch }

// SetBranchPrefix overrides the branch prefix, e.g. to compose nested forks
// between runs.
func (c *Context) SetBranchPrefix(prefix string) { c.branch = prefix }

// fail records a non-check bridge failure (push/pop/branch/log): pushes
// Failure on rstack and returns false without touching check_count.
func (c *Context) fail(reason string) bool {
	c.RStack.Push(FailureValue(reason))
	return false
}

// checkFail records a check-primitive failure: bumps check_count once, then
// pushes Failure on rstack and returns false.
func (c *Context) checkFail(reason string) bool {
	c.checkCount++
	c.RStack.Push(FailureValue(reason))
	return false
}

// checkSucceed records a check-primitive success: bumps check_count once,
// then pushes Success(check_count) on rstack and returns true.
//
// Per the uniform rule resolved in SPEC_FULL.md (§9 Open Question), every
// check primitive increments check_count on both the success and failure
// path, including check_version.
func (c *Context) checkSucceed() bool {
	c.checkCount++
	c.RStack.Push(SuccessValue(c.checkCount))
	return true
}

// appendLog appends s and a trailing newline to the log buffer.
func (c *Context) appendLog(s string) {
	c.log.WriteString(s)
	c.log.WriteByte('\n')
}

// reserveWrite advances the write cursor by n bytes within a guest memory of
// the given size and returns the absolute offset to write at: the cursor
// grows top-down from the end of memory and is strictly monotonic, never
// reclaimed within an invocation, and never exceeds memSize-1.
func (c *Context) reserveWrite(memSize, n uint32) (uint32, error) {
	next := c.writeIdx + n
	if memSize == 0 || next > memSize-1 {
		return 0, &BridgeError{Op: "put_string", Err: errWriteOutOfRange}
	}
	offset := memSize - next - 1
	c.writeIdx = next
	return offset, nil
}
