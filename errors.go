package wacc

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Sentinel errors used by key-path parsing, the Builder and Instance.
var (
	ErrEmptyKey             = errors.New("wacc: empty key")
	ErrMissingRootSeparator = errors.New("wacc: key must begin with '/'")
	ErrMissingContext       = errors.New("wacc: builder missing context")
	ErrMissingBytes         = errors.New("wacc: builder missing module bytes")
	ErrModuleClosed         = errors.New("wacc: module is closed")

	// Bridge-level sentinel errors (§4.1).
	ErrMissingMemoryExport = errors.New("missing vm export: memory")
	ErrIncorrectParamCount = errors.New("incorrect number of vm function params")
	ErrInvalidParam        = errors.New("invalid vm function param")
	ErrMemoryOutOfRange    = errors.New("out of range reading guest memory")

	errWriteOutOfRange = errors.New("write cursor exceeds guest memory")
)

// utf8InvalidError mirrors the message shape of Rust's
// std::string::FromUtf8Error Display impl ("invalid utf-8 sequence of N
// bytes from index I"), since spec §8 scenario 2 pins this exact wording.
func utf8InvalidError(buf []byte) error {
	for i := 0; i < len(buf); {
		r, size := utf8.DecodeRune(buf[i:])
		if r == utf8.RuneError && size <= 1 {
			n := size
			if n == 0 {
				n = 1
			}
			return fmt.Errorf("invalid utf-8 sequence of %d bytes from index %d", n, i)
		}
		i += size
	}
	return fmt.Errorf("invalid utf-8 sequence of 1 bytes from index 0")
}

// KeyError reports a malformed key-path.
type KeyError struct {
	Op  string
	Key string
	Err error
}

func (e *KeyError) Error() string {
	return fmt.Sprintf("wacc: %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *KeyError) Unwrap() error { return e.Err }

// BridgeError reports a failure marshaling bytes across the guest/host
// boundary: missing memory export, bad param count/type, OOB read, invalid
// UTF-8. Per spec §7 these never increment check_count.
type BridgeError struct {
	Op  string
	Err error
}

func (e *BridgeError) Error() string {
	return fmt.Sprintf("wacc: bridge %s: %v", e.Op, e.Err)
}

func (e *BridgeError) Unwrap() error { return e.Err }

// bridgeReason extracts the underlying message from a bridge-boundary
// error, e.g. "invalid utf-8 sequence of 1 bytes from index 0" rather than
// the wrapped "wacc: bridge get_string: invalid utf-8 sequence...". Host
// calls push this bare message onto rstack (§8 scenario 2 pins the exact
// wording), keeping the "wacc: bridge ..." prefix for Go callers that
// inspect the error value itself.
func bridgeReason(err error) string {
	var be *BridgeError
	if errors.As(err, &be) {
		return be.Err.Error()
	}
	return err.Error()
}

// CheckError reports a failure inside a check primitive: missing key, wrong
// variant, codec decode error, verification mismatch. Per spec §7 these
// increment check_count exactly once and surface as Failure on rstack, never
// as a Go error returned to the caller of the host call itself.
type CheckError struct {
	Op  string
	Key string
	Err error
}

func (e *CheckError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("wacc: check %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("wacc: check %s(%s): %v", e.Op, e.Key, e.Err)
}

func (e *CheckError) Unwrap() error { return e.Err }

// EngineError wraps a hard failure from the underlying WASM engine: fuel
// exhaustion, limiter denial, a trap. These propagate out of Instance.Run.
type EngineError struct {
	Op  string
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("wacc: engine %s: %v", e.Op, e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// BuilderError wraps a failure building a sandbox: compile, instantiate,
// missing context. Propagates from Builder.TryBuild / Instance.Run.
type BuilderError struct {
	Op  string
	Err error
}

func (e *BuilderError) Error() string {
	return fmt.Sprintf("wacc: builder %s: %v", e.Op, e.Err)
}

func (e *BuilderError) Unwrap() error { return e.Err }
