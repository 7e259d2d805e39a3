package polyline

import "github.com/cockroachdb/errors"

// Alphabet is the URL-safe character set used for every encoded value.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"

const (
	chunkBits    = 5
	chunkMask    = 0x1f
	continuation = 0x20
)

// decodingTable maps a byte to its alphabet index, or -1.
var decodingTable = func() (table [256]int8) {
	for i := range table {
		table[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		table[Alphabet[i]] = int8(i)
	}
	return table
}()

// appendUnsignedVarint writes value least-significant chunk first,
// flagging every chunk but the last with the continuation bit.
func appendUnsignedVarint(dst []byte, value uint64) []byte {
	for value > chunkMask {
		dst = append(dst, Alphabet[(value&chunkMask)|continuation])
		value >>= chunkBits
	}
	return append(dst, Alphabet[value])
}

// decodeUnsignedVarint reads one value starting at pos and returns it with the
// position of the next unread character. It returns errEndOfStream when pos
// is already at the end of s.
func decodeUnsignedVarint(s string, pos int) (uint64, int, error) {
	if pos >= len(s) {
		return 0, pos, errEndOfStream
	}

	var (
		result uint64
		shift  uint
	)
	for pos < len(s) {
		v := decodingTable[s[pos]]
		if v < 0 {
			return 0, pos, errors.Wrapf(ErrCorruptEncoding, "invalid character %q at offset %d", s[pos], pos)
		}
		if shift > 60 || (shift == 60 && v&chunkMask > 0x0f) {
			return 0, pos, errors.Wrapf(ErrCorruptEncoding, "value overflows 64 bits at offset %d", pos)
		}
		pos++
		result |= uint64(v&chunkMask) << shift
		if v&continuation == 0 {
			return result, pos, nil
		}
		shift += chunkBits
	}

	return 0, pos, errors.Wrapf(ErrCorruptEncoding, "input ends inside a value at offset %d", pos)
}
