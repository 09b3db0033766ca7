package batch

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"sqlalign/internal/config"
)

// ErrInvalidEncoding is returned in strict mode for input that is neither
// UTF-8 nor UTF-16 with a byte order mark.
var ErrInvalidEncoding = errors.New("input is not valid UTF-8")

var (
	bomUTF16BE = []byte{0xFE, 0xFF}
	bomUTF16LE = []byte{0xFF, 0xFE}
)

// Decode turns raw file bytes into text. A leading byte order mark selects
// UTF-8 or UTF-16 and is dropped; anything else is read as UTF-8. In lenient
// mode bytes that do not decode as UTF-8 are removed instead of rejected;
// U+FFFD characters already present in the input are kept.
func Decode(data []byte, mode config.DecodeMode) (string, error) {
	utf16 := bytes.HasPrefix(data, bomUTF16BE) || bytes.HasPrefix(data, bomUTF16LE)
	if !utf16 && !utf8.Valid(data) {
		if mode != config.DecodeLenient {
			return "", ErrInvalidEncoding
		}
		data = dropInvalidUTF8(data)
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return string(out), nil
}

// dropInvalidUTF8 returns data without the bytes that fail to decode.
func dropInvalidUTF8(data []byte) []byte {
	out := make([]byte, 0, len(data))
	for len(data) > 0 {
		r, size := utf8.DecodeRune(data)
		if r != utf8.RuneError || size > 1 {
			out = append(out, data[:size]...)
		}
		data = data[size:]
	}
	return out
}
