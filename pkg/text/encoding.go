package text

import (
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/rawbytedev/bytestream/internal/common"
)

var ErrUnknownEncoding = errors.New("unknown text encoding")

// Encoding converts between Go strings and a byte representation whose
// length is independent of the character count.
type Encoding interface {
	Name() string
	// ByteCount returns the exact number of bytes Encode will produce.
	ByteCount(s string) (int, error)
	// Encode writes s into dst, which must hold ByteCount(s) bytes.
	Encode(dst []byte, s string) (int, error)
	Decode(src []byte) (string, error)
}

var (
	UTF8        Encoding = utf8Encoding{}
	UTF16LE              = FromXText("utf-16le", unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM))
	UTF16BE              = FromXText("utf-16be", unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM))
	Windows1252          = FromXText("windows-1252", charmap.Windows1252)
	Latin1               = FromXText("iso-8859-1", charmap.ISO8859_1)
)

// Lookup resolves an encoding by its WHATWG name or alias ("utf-8",
// "utf-16le", "latin1", "shift_jis", ...).
func Lookup(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "utf-8", "utf8":
		return UTF8, nil
	case "utf-16le", "utf-16":
		return UTF16LE, nil
	case "utf-16be":
		return UTF16BE, nil
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return nil, errors.Wrapf(ErrUnknownEncoding, "%q", name)
	}
	canonical, _ := htmlindex.Name(enc)
	return FromXText(canonical, enc), nil
}

// utf8Encoding copies the string bytes as they are.
type utf8Encoding struct{}

func (utf8Encoding) Name() string                    { return "utf-8" }
func (utf8Encoding) ByteCount(s string) (int, error) { return len(s), nil }
func (utf8Encoding) Encode(dst []byte, s string) (int, error) {
	if len(dst) < len(s) {
		return 0, transform.ErrShortDst
	}
	return copy(dst, s), nil
}
func (utf8Encoding) Decode(src []byte) (string, error) { return string(src), nil }

type xtext struct {
	name string
	enc  encoding.Encoding
}

// FromXText adapts an x/text encoding.
func FromXText(name string, enc encoding.Encoding) Encoding {
	return xtext{name: name, enc: enc}
}

func (x xtext) Name() string { return x.name }

func (x xtext) ByteCount(s string) (int, error) {
	t := x.enc.NewEncoder()
	var scratch [512]byte
	src := common.StringToBytes(s)
	n := 0
	for {
		nDst, nSrc, err := t.Transform(scratch[:], src, true)
		n += nDst
		src = src[nSrc:]
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, transform.ErrShortDst) && (nDst > 0 || nSrc > 0):
			continue
		default:
			return 0, errors.Wrap(err, x.name)
		}
	}
}

func (x xtext) Encode(dst []byte, s string) (int, error) {
	nDst, _, err := x.enc.NewEncoder().Transform(dst, common.StringToBytes(s), true)
	if err != nil {
		return nDst, errors.Wrap(err, x.name)
	}
	return nDst, nil
}

func (x xtext) Decode(src []byte) (string, error) {
	out, err := x.enc.NewDecoder().Bytes(src)
	if err != nil {
		return "", errors.Wrap(err, x.name)
	}
	return common.BytesToString(out), nil
}
