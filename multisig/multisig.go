// Package multisig decodes the self-describing multisig wire format
// consumed by check_signature: structurally identical to a multikey
// (codec varint, comment, attributes) but the codec names a signature
// algorithm and the attribute bytes hold the signature itself, not a key.
// Grounded on wacc spec §6.3; hand-rolled atop go-varint since no Go
// ecosystem package implements cryptidtech's bespoke container.
package multisig

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-varint"
)

// Codec identifies the signature algorithm named by a multisig's leading varint.
type Codec uint64

// Ed25519Sig is the multisig codec for a detached Ed25519 signature.
const Ed25519Sig Codec = 0xeb

// SigAttr is the attribute id under which the raw signature bytes are stored.
const SigAttr uint64 = 0

// ErrMissingSigAttr reports a multisig with no SigAttr attribute.
var ErrMissingSigAttr = errors.New("multisig: missing signature attribute")

// Attribute is one (id, bytes) pair trailing a multisig's comment.
type Attribute struct {
	ID    uint64
	Bytes []byte
}

// Multisig is a decoded self-describing signature container.
type Multisig struct {
	Codec      Codec
	Comment    string
	Attributes []Attribute
}

// Attr returns the bytes of the first attribute with the given id.
func (m *Multisig) Attr(id uint64) ([]byte, bool) {
	for _, a := range m.Attributes {
		if a.ID == id {
			return a.Bytes, true
		}
	}
	return nil, false
}

// Signature returns the raw signature bytes carried in SigAttr.
func (m *Multisig) Signature() ([]byte, error) {
	b, ok := m.Attr(SigAttr)
	if !ok {
		return nil, ErrMissingSigAttr
	}
	return b, nil
}

// Decode parses buf as <codec-varint><comment-len-varint><comment-bytes>
// <attr-count-varint><(attr-id-varint, attr-len-varint, attr-bytes)*>.
func Decode(buf []byte) (*Multisig, error) {
	codec, n, err := varint.FromUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("multisig: decode codec: %w", err)
	}
	buf = buf[n:]

	commentLen, n, err := varint.FromUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("multisig: decode comment length: %w", err)
	}
	buf = buf[n:]
	if uint64(len(buf)) < commentLen {
		return nil, fmt.Errorf("multisig: comment truncated")
	}
	comment := string(buf[:commentLen])
	buf = buf[commentLen:]

	attrCount, n, err := varint.FromUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("multisig: decode attribute count: %w", err)
	}
	buf = buf[n:]

	attrs := make([]Attribute, 0, attrCount)
	for i := uint64(0); i < attrCount; i++ {
		id, n, err := varint.FromUvarint(buf)
		if err != nil {
			return nil, fmt.Errorf("multisig: decode attribute %d id: %w", i, err)
		}
		buf = buf[n:]

		length, n, err := varint.FromUvarint(buf)
		if err != nil {
			return nil, fmt.Errorf("multisig: decode attribute %d length: %w", i, err)
		}
		buf = buf[n:]
		if uint64(len(buf)) < length {
			return nil, fmt.Errorf("multisig: attribute %d truncated", i)
		}
		attrs = append(attrs, Attribute{ID: id, Bytes: append([]byte(nil), buf[:length]...)})
		buf = buf[length:]
	}

	return &Multisig{Codec: Codec(codec), Comment: comment, Attributes: attrs}, nil
}

// Encode serializes m back into the multisig wire format.
func (m *Multisig) Encode() []byte {
	out := varint.ToUvarint(uint64(m.Codec))
	out = append(out, varint.ToUvarint(uint64(len(m.Comment)))...)
	out = append(out, m.Comment...)
	out = append(out, varint.ToUvarint(uint64(len(m.Attributes)))...)
	for _, a := range m.Attributes {
		out = append(out, varint.ToUvarint(a.ID)...)
		out = append(out, varint.ToUvarint(uint64(len(a.Bytes)))...)
		out = append(out, a.Bytes...)
	}
	return out
}
