package multikey

import (
	"crypto/ed25519"
	"fmt"
)

// Verifier returns a VerifyFunc bound to this multikey's public key,
// dispatching on Codec. Only Ed25519Pub is implemented.
func (m *Multikey) Verifier() (VerifyFunc, error) {
	switch m.Codec {
	case Ed25519Pub:
		raw, ok := m.Attr(KeyAttr)
		if !ok {
			return nil, ErrMissingKeyAttr
		}
		if len(raw) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("multikey: ed25519 public key has wrong length %d", len(raw))
		}
		pub := ed25519.PublicKey(raw)
		return func(sig, message []byte) error {
			if !ed25519.Verify(pub, message, sig) {
				return fmt.Errorf("multikey: ed25519 signature verification failed")
			}
			return nil
		}, nil
	default:
		return nil, fmt.Errorf("%w: %#x", ErrUnsupportedCodec, uint64(m.Codec))
	}
}
