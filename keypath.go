package wacc

import "strings"

// KeySeparator is the canonical key-path separator.
const KeySeparator = '/'

// Key is a canonical '/'-separated path into a Pairs store. A Key ending in
// the separator is a branch (namespace); otherwise it is a leaf (value).
//
// Grounded on original_source/src/vm/key.rs: leading '/' mandatory, runs of
// '/' collapse, empty input rejected.
type Key struct {
	parts []string
}

// DefaultKey is the root branch, "/", with length 0.
func DefaultKey() Key {
	return Key{parts: []string{"", ""}}
}

// ParseKey canonicalizes s into a Key, or returns an error for malformed input.
func ParseKey(s string) (Key, error) {
	if len(s) == 0 {
		return Key{}, ErrEmptyKey
	}

	var b strings.Builder
	prev := byte(KeySeparator)
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case i == 0:
			if c != KeySeparator {
				return Key{}, &KeyError{Op: "parse", Key: s, Err: ErrMissingRootSeparator}
			}
			b.WriteByte(c)
		case c == KeySeparator:
			if c != prev {
				b.WriteByte(c)
				prev = c
			}
		default:
			b.WriteByte(c)
			prev = c
		}
	}

	return Key{parts: strings.Split(b.String(), string(KeySeparator))}, nil
}

// IsBranch reports whether k names a namespace (trailing separator).
func (k Key) IsBranch() bool {
	return len(k.parts) > 0 && k.parts[len(k.parts)-1] == ""
}

// IsLeaf reports whether k names a single value (no trailing separator).
func (k Key) IsLeaf() bool {
	return len(k.parts) > 0 && k.parts[len(k.parts)-1] != ""
}

// Len returns the number of non-root parts in k.
func (k Key) Len() int {
	switch len(k.parts) {
	case 0:
		return 0
	default:
		if k.IsBranch() {
			return len(k.parts) - 2
		}
		return len(k.parts) - 1
	}
}

// String renders k back to its canonical form.
func (k Key) String() string {
	return strings.Join(k.parts, string(KeySeparator))
}
