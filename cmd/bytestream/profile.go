package main

import (
	"net/http"
	_ "net/http/pprof"
	"os"
	"runtime"
	"runtime/pprof"
	"time"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/rawbytedev/bytestream"
	"github.com/rawbytedev/bytestream/pkg/store"
	"github.com/rawbytedev/bytestream/pkg/text"
)

type sampleHeader struct {
	ID      uint64
	Created int64
	Score   float32
	Flags   uint32
}

type sample struct {
	Header   sampleHeader
	Name     string
	Label    string
	Integers []int16
	Floats   []float64
}

func newSample() sample {
	return sample{
		Header:   sampleHeader{ID: 42, Created: 1700000000, Score: 12.13, Flags: 0b1011},
		Name:     "手機瀏覽",
		Label:    "azerty hello world random",
		Integers: []int16{100, 250, 300},
		Floats:   []float64{100.5, 165.63, 153.5},
	}
}

func writeSample(w *bytestream.Writer, s *sample) error {
	if err := bytestream.Write(w, s.Header); err != nil {
		return err
	}
	if err := w.WriteUTF16(s.Name, true); err != nil {
		return err
	}
	if err := w.WriteString(s.Label, text.UTF8); err != nil {
		return err
	}
	if err := w.WriteUint16(uint16(len(s.Integers))); err != nil {
		return err
	}
	for _, v := range s.Integers {
		if err := w.WriteInt16(v); err != nil {
			return err
		}
	}
	if err := w.WriteUint16(uint16(len(s.Floats))); err != nil {
		return err
	}
	for _, v := range s.Floats {
		if err := w.WriteFloat64(v); err != nil {
			return err
		}
	}
	return nil
}

func readSample(r *bytestream.Reader, s *sample) error {
	var err error
	if s.Header, err = bytestream.Read[sampleHeader](r); err != nil {
		return err
	}
	if s.Name, err = r.ReadUTF16(); err != nil {
		return err
	}
	if s.Label, err = r.ReadString(text.UTF8); err != nil {
		return err
	}
	n, err := r.ReadUint16()
	if err != nil {
		return err
	}
	s.Integers = s.Integers[:0]
	for i := 0; i < int(n); i++ {
		v, err := r.ReadInt16()
		if err != nil {
			return err
		}
		s.Integers = append(s.Integers, v)
	}
	if n, err = r.ReadUint16(); err != nil {
		return err
	}
	s.Floats = s.Floats[:0]
	for i := 0; i < int(n); i++ {
		v, err := r.ReadFloat64()
		if err != nil {
			return err
		}
		s.Floats = append(s.Floats, v)
	}
	return nil
}

type profileStats struct {
	Iterations int
	FrameSize  int
	Capacity   int
	Elapsed    time.Duration
}

// runProfile round-trips the sample cfg.Iterations times through one writer
// and writes a heap profile to cfg.Output.
func runProfile(cfg ProfileConfig, log logrus.FieldLogger) (profileStats, error) {
	size, err := cfg.bufferBytes()
	if err != nil {
		return profileStats{}, err
	}
	opts := bytestream.Options{InitialSize: size}
	if cfg.Raw {
		opts.Allocator = store.DefaultAllocator()
	}
	w, err := bytestream.NewWriter(opts)
	if err != nil {
		return profileStats{}, err
	}
	defer w.Free()

	f, err := os.Create(cfg.Output)
	if err != nil {
		return profileStats{}, errors.Wrap(err, "create heap profile")
	}
	defer f.Close()

	rate := runtime.MemProfileRate
	runtime.MemProfileRate = 1
	defer func() { runtime.MemProfileRate = rate }()

	in, out := newSample(), sample{}
	start := time.Now()
	for i := 0; i < cfg.Iterations; i++ {
		w.Clear()
		if err := writeSample(w, &in); err != nil {
			return profileStats{}, errors.Wrapf(err, "iteration %d: write", i)
		}
		r, err := bytestream.NewReader(w.Bytes())
		if err != nil {
			return profileStats{}, err
		}
		if err := readSample(r, &out); err != nil {
			return profileStats{}, errors.Wrapf(err, "iteration %d: read", i)
		}
	}
	stats := profileStats{
		Iterations: cfg.Iterations,
		FrameSize:  w.Offset(),
		Capacity:   w.Len(),
		Elapsed:    time.Since(start),
	}
	if out.Name != in.Name || out.Label != in.Label || out.Header != in.Header {
		return stats, errors.New("decoded sample does not match the original")
	}

	if err := pprof.WriteHeapProfile(f); err != nil {
		return stats, errors.Wrap(err, "write heap profile")
	}
	log.WithFields(logrus.Fields{
		"iterations": stats.Iterations,
		"frame":      units.BytesSize(float64(stats.FrameSize)),
		"capacity":   units.BytesSize(float64(stats.Capacity)),
		"raw":        cfg.Raw,
		"elapsed":    stats.Elapsed,
		"profile":    cfg.Output,
	}).Info("Profile complete")
	return stats, nil
}

// servePprof exposes net/http/pprof on addr until the process exits.
func servePprof(addr string, log logrus.FieldLogger) {
	go func() {
		log.WithField("addr", addr).Info("Serving pprof")
		if err := http.ListenAndServe(addr, nil); err != nil {
			log.WithError(err).Error("pprof server stopped")
		}
	}()
}
