package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rawbytedev/bytestream"
	"github.com/rawbytedev/bytestream/pkg/frame"
)

func TestLoadProfileConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
iterations: 25
buffer_size: 4KiB
raw: true
output: heap.prof
hold: 2s
`), 0o644))

	cfg, err := loadProfileConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Iterations)
	assert.True(t, cfg.Raw)
	assert.Equal(t, "heap.prof", cfg.Output)
	assert.Equal(t, 2*time.Second, cfg.Hold)
	n, err := cfg.bufferBytes()
	require.NoError(t, err)
	assert.Equal(t, 4096, n)
}

func TestLoadProfileConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "profile.yaml")
	require.NoError(t, os.WriteFile(path, []byte("iterations: 1\nbogus: true\n"), 0o644))
	_, err := loadProfileConfig(path)
	require.Error(t, err)
}

func TestParseSize(t *testing.T) {
	for in, want := range map[string]int{"512": 512, "4KiB": 4096, "1m": 1 << 20} {
		got, err := parseSize(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := parseSize("0")
	require.Error(t, err)
	_, err = parseSize("lots")
	require.Error(t, err)
}

func TestSampleRoundTrip(t *testing.T) {
	w, err := bytestream.NewWriter(bytestream.Options{InitialSize: 8})
	require.NoError(t, err)
	in := newSample()
	require.NoError(t, writeSample(w, &in))

	r, err := bytestream.NewReader(w.Bytes())
	require.NoError(t, err)
	var out sample
	require.NoError(t, readSample(r, &out))
	require.Equal(t, in, out)
	require.Zero(t, r.Remaining())
}

func TestRunProfile(t *testing.T) {
	for _, raw := range []bool{false, true} {
		cfg := defaultProfileConfig()
		cfg.Iterations = 20
		cfg.BufferSize = "16"
		cfg.Raw = raw
		cfg.Output = filepath.Join(t.TempDir(), "mem.prof")

		log, hook := test.NewNullLogger()
		stats, err := runProfile(cfg, log)
		require.NoError(t, err)
		assert.Equal(t, 20, stats.Iterations)
		assert.GreaterOrEqual(t, stats.Capacity, stats.FrameSize)

		info, err := os.Stat(cfg.Output)
		require.NoError(t, err)
		assert.NotZero(t, info.Size())

		entry := hook.LastEntry()
		require.NotNil(t, entry)
		assert.Equal(t, logrus.InfoLevel, entry.Level)
		assert.Equal(t, raw, entry.Data["raw"])
	}
}

func TestEncodeInspect(t *testing.T) {
	cases := []struct {
		name string
		opts encodeOptions
	}{
		{"plain", encodeOptions{Kind: 3}},
		{"zstd", encodeOptions{Kind: 4, Zstd: true, Level: "fastest"}},
		{"utf-16le string", encodeOptions{Kind: 5, Encoding: "utf-16le"}},
		{"windows-1252 zstd", encodeOptions{Kind: 6, Zstd: true, Level: "best", Encoding: "windows-1252"}},
	}
	const input = "café au lait "
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			log, hook := test.NewNullLogger()
			var out bytes.Buffer
			n, err := encodeFrame(strings.NewReader(strings.Repeat(input, 20)), &out, tc.opts, log)
			require.NoError(t, err)
			require.Equal(t, out.Len(), n)
			require.Len(t, hook.Entries, 1)

			f, s, err := inspectFrame(out.Bytes(), 1<<20, tc.opts.Encoding, log)
			require.NoError(t, err)
			assert.Equal(t, tc.opts.Kind, f.Kind)
			assert.Equal(t, tc.opts.Zstd, f.Compressed())
			if tc.opts.Encoding != "" {
				assert.Equal(t, strings.Repeat(input, 20), s)
				assert.Equal(t, s, hook.LastEntry().Data["text"])
			} else {
				assert.Equal(t, strings.Repeat(input, 20), string(f.Body))
			}
		})
	}
}

func TestEncodeRejectsBadLevel(t *testing.T) {
	log, _ := test.NewNullLogger()
	_, err := encodeFrame(strings.NewReader("x"), &bytes.Buffer{}, encodeOptions{Zstd: true, Level: "ludicrous"}, log)
	require.Error(t, err)
}

func TestInspectCorruptFrame(t *testing.T) {
	log, _ := test.NewNullLogger()
	var out bytes.Buffer
	_, err := encodeFrame(strings.NewReader("payload"), &out, encodeOptions{Kind: 1}, log)
	require.NoError(t, err)
	data := out.Bytes()
	data[len(data)-5] ^= 0xFF
	_, _, err = inspectFrame(data, 0, "", log)
	require.ErrorIs(t, err, frame.ErrChecksum)
}

func TestAppRunsProfileFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "profile.yaml")
	out := filepath.Join(dir, "heap.prof")
	require.NoError(t, os.WriteFile(cfgPath, []byte("iterations: 5\nbuffer_size: 64\n"), 0o644))

	err := newApp().Run([]string{"bytestream", "--log.verbosity", "1", "profile", "--config", cfgPath, "--out", out})
	require.NoError(t, err)
	_, err = os.Stat(out)
	require.NoError(t, err)
}

func TestAppRejectsLogFormat(t *testing.T) {
	err := newApp().Run([]string{"bytestream", "--log.format", "xml", "profile"})
	require.Error(t, err)
}
