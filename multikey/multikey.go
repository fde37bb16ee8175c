// Package multikey decodes and encodes the self-describing multikey wire
// format consumed by check_signature: a codec varint identifying the key
// algorithm, a length-prefixed comment, and a set of codec-specific
// attributes. Grounded on wacc spec §6.3 (no Go ecosystem package implements
// cryptidtech's bespoke multikey container, so this is hand-rolled atop the
// real go-varint decoder and the standard library's ed25519 primitive).
package multikey

import (
	"errors"
	"fmt"

	"github.com/multiformats/go-varint"
)

// Codec identifies the key algorithm named by a multikey's leading varint.
type Codec uint64

// Ed25519Pub is the multikey codec for an Ed25519 public key.
const Ed25519Pub Codec = 0xed

// KeyAttr is the attribute id under which the raw key bytes are stored.
const KeyAttr uint64 = 0

var (
	// ErrUnsupportedCodec reports a multikey codec this package cannot verify with.
	ErrUnsupportedCodec = errors.New("multikey: unsupported codec")
	// ErrMissingKeyAttr reports a multikey with no KeyAttr attribute.
	ErrMissingKeyAttr = errors.New("multikey: missing key attribute")
)

// Attribute is one (id, bytes) pair trailing a multikey's comment.
type Attribute struct {
	ID    uint64
	Bytes []byte
}

// Multikey is a decoded self-describing public key container.
type Multikey struct {
	Codec      Codec
	Comment    string
	Attributes []Attribute
}

// Attr returns the bytes of the first attribute with the given id.
func (m *Multikey) Attr(id uint64) ([]byte, bool) {
	for _, a := range m.Attributes {
		if a.ID == id {
			return a.Bytes, true
		}
	}
	return nil, false
}

// Decode parses buf as <codec-varint><comment-len-varint><comment-bytes>
// <attr-count-varint><(attr-id-varint, attr-len-varint, attr-bytes)*>.
func Decode(buf []byte) (*Multikey, error) {
	codec, n, err := varint.FromUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("multikey: decode codec: %w", err)
	}
	buf = buf[n:]

	commentLen, n, err := varint.FromUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("multikey: decode comment length: %w", err)
	}
	buf = buf[n:]
	if uint64(len(buf)) < commentLen {
		return nil, fmt.Errorf("multikey: comment truncated")
	}
	comment := string(buf[:commentLen])
	buf = buf[commentLen:]

	attrCount, n, err := varint.FromUvarint(buf)
	if err != nil {
		return nil, fmt.Errorf("multikey: decode attribute count: %w", err)
	}
	buf = buf[n:]

	attrs := make([]Attribute, 0, attrCount)
	for i := uint64(0); i < attrCount; i++ {
		id, n, err := varint.FromUvarint(buf)
		if err != nil {
			return nil, fmt.Errorf("multikey: decode attribute %d id: %w", i, err)
		}
		buf = buf[n:]

		length, n, err := varint.FromUvarint(buf)
		if err != nil {
			return nil, fmt.Errorf("multikey: decode attribute %d length: %w", i, err)
		}
		buf = buf[n:]
		if uint64(len(buf)) < length {
			return nil, fmt.Errorf("multikey: attribute %d truncated", i)
		}
		attrs = append(attrs, Attribute{ID: id, Bytes: append([]byte(nil), buf[:length]...)})
		buf = buf[length:]
	}

	return &Multikey{Codec: Codec(codec), Comment: comment, Attributes: attrs}, nil
}

// Encode serializes m back into the multikey wire format.
func (m *Multikey) Encode() []byte {
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

// VerifyFunc verifies a message against a signature for the key's algorithm.
type VerifyFunc func(sig, message []byte) error
