package frame

import (
	"bytes"
	"hash/crc32"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/bytestream"
	"github.com/rawbytedev/bytestream/pkg/codec"
)

func newPair(t *testing.T, opts ...Option) (*Encoder, *Decoder) {
	t.Helper()
	enc, err := NewEncoder(opts...)
	require.NoError(t, err)
	dec, err := NewDecoder(0)
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, enc.Close())
		dec.Close()
	})
	return enc, dec
}

func TestFrame_RoundTrip(t *testing.T) {
	bodies := [][]byte{
		{},
		[]byte("hello frame"),
		bytes.Repeat([]byte{0xAB}, 70000),
	}
	for _, name := range []string{"plain", "zstd"} {
		t.Run(name, func(t *testing.T) {
			var opts []Option
			if name == "zstd" {
				opts = append(opts, WithZstd(zstd.SpeedDefault))
			}
			enc, dec := newPair(t, opts...)
			for i, body := range bodies {
				out, err := enc.Encode(uint16(i+1), body)
				require.NoError(t, err)
				require.Equal(t, len(out), int(codec.GetInt32(out, 0)))

				f, err := dec.Decode(out)
				require.NoError(t, err)
				require.Equal(t, uint16(i+1), f.Kind)
				require.Equal(t, len(out), f.Length)
				require.Equal(t, name == "zstd", f.Compressed())
				require.Equal(t, len(body), len(f.Body))
				if len(body) > 0 {
					require.Equal(t, body, f.Body)
				}
			}
		})
	}
}

func TestFrame_PlainLayout(t *testing.T) {
	enc, _ := newPair(t)
	out, err := enc.Encode(7, []byte{1, 2, 3})
	require.NoError(t, err)
	require.Len(t, out, MinLen+3)

	r, err := bytestream.NewReader(out)
	require.NoError(t, err)
	n, _ := r.ReadInt32()
	flags, _ := r.ReadByte()
	kind, _ := r.ReadUint16()
	body, err := r.ReadBytes(3)
	require.NoError(t, err)
	require.Equal(t, int32(MinLen+3), n)
	require.Zero(t, flags)
	require.Equal(t, uint16(7), kind)
	require.Equal(t, []byte{1, 2, 3}, body)
}

func TestFrame_CompressionShrinksRepetitiveBody(t *testing.T) {
	enc, dec := newPair(t, WithZstd(zstd.SpeedFastest), WithBufferSize(16))
	body := []byte(strings.Repeat("bytestream ", 1000))
	out, err := enc.Encode(1, body)
	require.NoError(t, err)
	require.Less(t, len(out), len(body)/4)

	f, err := dec.Decode(out)
	require.NoError(t, err)
	require.Equal(t, body, f.Body)
}

func TestFrame_Corruption(t *testing.T) {
	enc, dec := newPair(t)
	good, err := enc.Encode(3, []byte("payload"))
	require.NoError(t, err)
	frame := append([]byte(nil), good...)

	t.Run("short", func(t *testing.T) {
		_, err := dec.Decode(frame[:MinLen-1])
		require.ErrorIs(t, err, ErrShortFrame)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := dec.Decode(frame[:len(frame)-1])
		require.ErrorIs(t, err, ErrLengthMismatch)
	})
	t.Run("body bit flip", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[headerLen] ^= 0x01
		_, err := dec.Decode(bad)
		require.ErrorIs(t, err, ErrChecksum)
	})
	t.Run("checksum bit flip", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[len(bad)-1] ^= 0x80
		_, err := dec.Decode(bad)
		require.ErrorIs(t, err, ErrChecksum)
	})
	t.Run("unknown flag", func(t *testing.T) {
		bad := append([]byte(nil), frame...)
		bad[lengthLen] = 0x80
		end := len(bad) - trailerLen
		codec.PutUint32(bad, end, crc32.ChecksumIEEE(bad[lengthLen:end]))
		_, err := dec.Decode(bad)
		require.ErrorIs(t, err, ErrUnknownFlags)
	})
}

func TestFrame_EncodeTo(t *testing.T) {
	enc, dec := newPair(t, WithZstd(zstd.SpeedDefault))
	var buf bytes.Buffer
	n, err := enc.EncodeTo(&buf, 9, []byte("to writer"))
	require.NoError(t, err)
	require.Equal(t, buf.Len(), n)

	f, err := dec.Decode(buf.Bytes())
	require.NoError(t, err)
	require.Equal(t, "to writer", string(f.Body))
}

func TestFrame_EncoderReusesBuffer(t *testing.T) {
	enc, dec := newPair(t)
	first, err := enc.Encode(1, []byte("first"))
	require.NoError(t, err)
	saved := append([]byte(nil), first...)
	_, err = enc.Encode(2, []byte("second, longer body"))
	require.NoError(t, err)

	f, err := dec.Decode(saved)
	require.NoError(t, err)
	require.Equal(t, "first", string(f.Body))
}

func FuzzFrame_Decode(f *testing.F) {
	enc, err := NewEncoder()
	if err != nil {
		f.Fatal(err)
	}
	seed, _ := enc.Encode(1, []byte("seed"))
	f.Add(append([]byte(nil), seed...))
	f.Add([]byte{})
	dec, err := NewDecoder(1 << 20)
	if err != nil {
		f.Fatal(err)
	}
	defer dec.Close()
	f.Fuzz(func(t *testing.T, data []byte) {
		_, _ = dec.Decode(data)
	})
}

func BenchmarkFrame_Encode(b *testing.B) {
	body := bytes.Repeat([]byte("0123456789abcdef"), 256)
	for _, name := range []string{"plain", "zstd"} {
		b.Run(name, func(b *testing.B) {
			var opts []Option
			if name == "zstd" {
				opts = append(opts, WithZstd(zstd.SpeedFastest))
			}
			enc, err := NewEncoder(opts...)
			require.NoError(b, err)
			defer enc.Close()
			b.ReportAllocs()
			b.SetBytes(int64(len(body)))
			for i := 0; i < b.N; i++ {
				_, _ = enc.Encode(1, body)
			}
		})
	}
}
