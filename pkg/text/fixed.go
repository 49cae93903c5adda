// Package text converts strings to and from bytes for the cursor layer.
//
// Fixed-width forms copy code units verbatim: ANSI keeps the low byte of
// each rune, UTF-16 writes each code unit as a native-order uint16. Their
// length is a character count. Variable-width forms go through an Encoding
// and their length is a byte count.
package text

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/rawbytedev/bytestream/internal/common"
	"github.com/rawbytedev/bytestream/pkg/codec"
)

const (
	ANSIUnit  = 1
	UTF16Unit = 2
)

// ANSILen returns the number of ANSI characters s occupies: one per rune.
func ANSILen(s string) int {
	return utf8.RuneCountInString(s)
}

// PutANSI writes the low byte of each rune of s at off and returns the
// number of bytes written.
func PutANSI(b []byte, off int, s string) int {
	i := off
	for _, r := range s {
		b[i] = byte(r)
		i++
	}
	return i - off
}

// GetANSI reads count single-byte characters at off, mapping each byte to
// the code point of the same value.
func GetANSI(b []byte, off, count int) string {
	src := b[off : off+count]
	ascii := true
	for _, c := range src {
		if c >= utf8.RuneSelf {
			ascii = false
			break
		}
	}
	if ascii {
		return string(src)
	}
	out := make([]byte, 0, count*2)
	for _, c := range src {
		out = utf8.AppendRune(out, rune(c))
	}
	return common.BytesToString(out)
}

// UTF16Len returns the number of UTF-16 code units needed for s.
func UTF16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}

// PutUTF16 writes s as native-order UTF-16 code units at off and returns
// the number of bytes written.
func PutUTF16(b []byte, off int, s string) int {
	i := off
	for _, r := range s {
		if r >= 0x10000 {
			r1, r2 := utf16.EncodeRune(r)
			codec.PutUint16(b, i, uint16(r1))
			codec.PutUint16(b, i+2, uint16(r2))
			i += 4
			continue
		}
		codec.PutUint16(b, i, uint16(r))
		i += 2
	}
	return i - off
}

// GetUTF16 reads count UTF-16 code units at off. Unpaired surrogates
// decode to U+FFFD.
func GetUTF16(b []byte, off, count int) string {
	out := make([]byte, 0, count*3)
	for i := 0; i < count; i++ {
		r := rune(codec.GetUint16(b, off+i*2))
		if utf16.IsSurrogate(r) && i+1 < count {
			if dec := utf16.DecodeRune(r, rune(codec.GetUint16(b, off+(i+1)*2))); dec != utf8.RuneError {
				out = utf8.AppendRune(out, dec)
				i++
				continue
			}
		}
		if utf16.IsSurrogate(r) {
			r = utf8.RuneError
		}
		out = utf8.AppendRune(out, r)
	}
	return common.BytesToString(out)
}
