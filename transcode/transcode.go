// Package transcode converts between the encodings that appear at the
// engine's boundaries (UTF-8 and UTF-16 on the outside, UCS-4 rune slices
// inside) and applies Unicode canonical decomposition. All functions are
// stateless; malformed input is replaced with U+FFFD.
package transcode

import (
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ByteOrder identifies the byte order of a UTF-16 byte stream.
type ByteOrder int

const (
	LittleEndian ByteOrder = iota
	BigEndian
)

// UTF8ToRunes decodes UTF-8 bytes to runes.
// Invalid sequences decode to U+FFFD, one replacement per offending byte.
func UTF8ToRunes(b []byte) []rune {
	runes := make([]rune, 0, len(b))
	for len(b) > 0 {
		r, size := utf8.DecodeRune(b)
		runes = append(runes, r)
		b = b[size:]
	}
	return runes
}

// RunesToUTF8 encodes runes as UTF-8 bytes. Surrogate halves and
// out-of-range values encode as U+FFFD.
func RunesToUTF8(runes []rune) []byte {
	b := make([]byte, 0, len(runes))
	for _, r := range runes {
		b = utf8.AppendRune(b, r)
	}
	return b
}

// UTF16ToRunes decodes UTF-16 bytes in the given byte order to runes.
// Unpaired surrogates and a trailing odd byte decode to U+FFFD.
func UTF16ToRunes(b []byte, order ByteOrder) []rune {
	dec := utf16Codec(order).NewDecoder()
	decoded, err := dec.Bytes(b)
	if err != nil {
		// The decoder substitutes rather than fails; an error here means
		// something unexpected, so degrade to a single replacement.
		return []rune{utf8.RuneError}
	}
	return UTF8ToRunes(decoded)
}

// RunesToUTF16 encodes runes as UTF-16 bytes in the given byte order,
// without a byte order mark.
func RunesToUTF16(runes []rune, order ByteOrder) []byte {
	enc := utf16Codec(order).NewEncoder()
	encoded, err := enc.Bytes(RunesToUTF8(runes))
	if err != nil {
		return nil
	}
	return encoded
}

func utf16Codec(order ByteOrder) encoding.Encoding {
	endianness := unicode.LittleEndian
	if order == BigEndian {
		endianness = unicode.BigEndian
	}
	return unicode.UTF16(endianness, unicode.IgnoreBOM)
}
