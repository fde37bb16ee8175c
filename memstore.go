package wacc

import (
	"encoding/base64"
	"sync"

	"github.com/multiformats/go-multihash"
)

// MemPairs is a simple in-memory Pairs store, useful for tests and the
// cmd/wacc-run CLI fixture loader.
type MemPairs struct {
	mu     sync.RWMutex
	values map[string]Value
}

// NewMemPairs returns an empty MemPairs store.
func NewMemPairs() *MemPairs {
	return &MemPairs{values: make(map[string]Value)}
}

// Get implements Pairs.
func (m *MemPairs) Get(key string) (Value, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok
}

// Put implements Pairs.
func (m *MemPairs) Put(key string, value Value) (Value, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	prev, had := m.values[key]
	m.values[key] = value
	return prev, had
}

// MemStack is a simple in-memory Stack backed by a slice, used for both
// pstack and rstack by default.
type MemStack struct {
	values []Value
}

// NewMemStack returns an empty MemStack.
func NewMemStack() *MemStack {
	return &MemStack{}
}

// Push implements Stack.
func (s *MemStack) Push(v Value) {
	s.values = append(s.values, v)
}

// Pop implements Stack.
func (s *MemStack) Pop() (Value, bool) {
	if len(s.values) == 0 {
		return Value{}, false
	}
	top := s.values[len(s.values)-1]
	s.values = s.values[:len(s.values)-1]
	return top, true
}

// Top implements Stack.
func (s *MemStack) Top() (Value, bool) {
	if len(s.values) == 0 {
		return Value{}, false
	}
	return s.values[len(s.values)-1], true
}

// Peek implements Stack. idxFromTop 0 is the top of the stack.
func (s *MemStack) Peek(idxFromTop int) (Value, bool) {
	if idxFromTop < 0 || idxFromTop >= len(s.values) {
		return Value{}, false
	}
	return s.values[len(s.values)-1-idxFromTop], true
}

// Len implements Stack.
func (s *MemStack) Len() int { return len(s.values) }

// IsEmpty implements Stack.
func (s *MemStack) IsEmpty() bool { return len(s.values) == 0 }

// MemBlocks is a simple in-memory, content-addressed blob store keyed by a
// sha2-256 multihash rendered as base64, standing in for the multicid.Cid
// type the original Rust source uses. Reserved for future opcodes: nothing
// in this package calls Blocks today.
type MemBlocks struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemBlocks returns an empty MemBlocks store.
func NewMemBlocks() *MemBlocks {
	return &MemBlocks{data: make(map[string][]byte)}
}

// Get implements Blocks.
func (b *MemBlocks) Get(cid string) ([]byte, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.data[cid]
	return v, ok
}

// Put implements Blocks, returning the content identifier for data.
func (b *MemBlocks) Put(data []byte) (string, error) {
	sum, err := multihash.Sum(data, multihash.SHA2_256, -1)
	if err != nil {
		return "", err
	}
	cid := base64.RawURLEncoding.EncodeToString(sum)

	b.mu.Lock()
	defer b.mu.Unlock()
	cp := append([]byte(nil), data...)
	b.data[cid] = cp
	return cid, nil
}
