package builders

import (
	"encoding/hex"
	"fmt"
	"unicode/utf8"
)

// binaryHexLimit is the largest non-text value rendered as hex.
const binaryHexLimit = 100

// BinaryToText renders raw bytes: valid UTF-8 as text, short binary as 0x
// prefixed lowercase hex, and anything longer as a size placeholder.
func BinaryToText(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}

	if len(b) > binaryHexLimit {
		return fmt.Sprintf("<binary: %d bytes>", len(b))
	}

	return "0x" + hex.EncodeToString(b)
}
