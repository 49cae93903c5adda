package main

import (
	"io"

	units "github.com/docker/go-units"
	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/bytestream"
	"github.com/rawbytedev/bytestream/pkg/frame"
	"github.com/rawbytedev/bytestream/pkg/text"
)

type encodeOptions struct {
	Kind     uint16
	Zstd     bool
	Level    string
	Encoding string
}

// stringBody wraps s as a length-prefixed string in the named encoding.
func stringBody(s, encoding string) ([]byte, error) {
	enc, err := text.Lookup(encoding)
	if err != nil {
		return nil, err
	}
	w, err := bytestream.NewWriter(bytestream.Options{InitialSize: len(s) + 2})
	if err != nil {
		return nil, err
	}
	if err := w.WriteString(s, enc); err != nil {
		return nil, errors.Wrapf(err, "encode body as %s", enc.Name())
	}
	return w.Bytes(), nil
}

// encodeFrame reads all of in and writes it to out as a single frame.
func encodeFrame(in io.Reader, out io.Writer, opts encodeOptions, log logrus.FieldLogger) (int, error) {
	body, err := io.ReadAll(in)
	if err != nil {
		return 0, errors.Wrap(err, "read body")
	}
	if opts.Encoding != "" {
		if body, err = stringBody(string(body), opts.Encoding); err != nil {
			return 0, err
		}
	}

	var fopts []frame.Option
	if opts.Zstd {
		ok, level := zstd.EncoderLevelFromString(opts.Level)
		if !ok {
			return 0, errors.Errorf("unknown zstd level %q", opts.Level)
		}
		fopts = append(fopts, frame.WithZstd(level))
	}
	enc, err := frame.NewEncoder(fopts...)
	if err != nil {
		return 0, err
	}
	defer enc.Close()

	n, err := enc.EncodeTo(out, opts.Kind, body)
	if err != nil {
		return n, errors.Wrap(err, "write frame")
	}
	log.WithFields(logrus.Fields{
		"kind":  opts.Kind,
		"body":  units.BytesSize(float64(len(body))),
		"frame": units.BytesSize(float64(n)),
		"zstd":  opts.Zstd,
	}).Info("Encoded frame")
	return n, nil
}

// inspectFrame decodes data and logs its header. When encoding is set the
// body is decoded as a length-prefixed string and returned.
func inspectFrame(data []byte, maxBody uint64, encoding string, log logrus.FieldLogger) (frame.Frame, string, error) {
	dec, err := frame.NewDecoder(maxBody)
	if err != nil {
		return frame.Frame{}, "", err
	}
	defer dec.Close()

	f, err := dec.Decode(data)
	if err != nil {
		return f, "", err
	}
	fields := logrus.Fields{
		"length":     f.Length,
		"flags":      f.Flags,
		"kind":       f.Kind,
		"body":       units.BytesSize(float64(len(f.Body))),
		"compressed": f.Compressed(),
	}
	var s string
	if encoding != "" {
		enc, err := text.Lookup(encoding)
		if err != nil {
			return f, "", err
		}
		r, err := bytestream.NewReader(f.Body)
		if err != nil {
			return f, "", err
		}
		if s, err = r.ReadString(enc); err != nil {
			return f, "", errors.Wrapf(err, "decode body as %s", enc.Name())
		}
		fields["text"] = s
	}
	log.WithFields(fields).Info("Frame")
	return f, s, nil
}
