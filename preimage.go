package wacc

import "github.com/multiformats/go-multihash"

// verifyPreimage decodes stored as a self-describing multihash, recomputes a
// multihash of the same codec over candidate, and reports whether the two
// digests match byte-for-byte. Grounded on check_preimage (§4.3): the stored
// side names its own hash function, so the candidate must be rehashed with
// that same function rather than a fixed one.
func verifyPreimage(stored, candidate []byte) (bool, error) {
	decoded, err := multihash.Decode(stored)
	if err != nil {
		return false, err
	}

	recomputed, err := multihash.Sum(candidate, decoded.Code, decoded.Length)
	if err != nil {
		return false, err
	}

	return string(recomputed) == string(stored), nil
}
