package calldata

import (
	"encoding/hex"
	"strings"

	"github.com/ethereum/go-ethereum/crypto"
)

// SelectorSize is the length of the call selector prefix.
const SelectorSize = 4

// Selector is the first four bytes of the Keccak-256 hash of a canonical signature.
type Selector [SelectorSize]byte

// Hex returns the selector as 8 lowercase hex digits without a 0x prefix.
func (s Selector) Hex() string {
	return hex.EncodeToString(s[:])
}

// String returns the selector with a 0x prefix.
func (s Selector) String() string {
	return "0x" + s.Hex()
}

// Bytes returns a copy of the selector bytes.
func (s Selector) Bytes() []byte {
	return append([]byte(nil), s[:]...)
}

// CanonicalSignature renders name and bare argument types with no names or
// whitespace, e.g. "submit((address,uint256)[],string)".
func CanonicalSignature(name string, args []Argument) string {
	var sb strings.Builder
	sb.WriteString(name)
	sb.WriteByte('(')
	for i, a := range args {
		if i > 0 {
			sb.WriteByte(',')
		}
		a.Type.writeCanonical(&sb)
	}
	sb.WriteByte(')')
	return sb.String()
}

// SelectorOf hashes the UTF-8 bytes of a canonical signature and keeps the
// first four bytes.
func SelectorOf(canonical string) Selector {
	var sel Selector
	copy(sel[:], crypto.Keccak256([]byte(canonical))[:SelectorSize])
	return sel
}
