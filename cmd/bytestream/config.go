package main

import (
	"os"
	"time"

	units "github.com/docker/go-units"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"
)

const defaultIterations = 10000

// ProfileConfig drives the profile command. It can be loaded from YAML with
// --config; flags given on the command line take precedence.
type ProfileConfig struct {
	Iterations int           `yaml:"iterations"`
	BufferSize string        `yaml:"buffer_size"`
	Raw        bool          `yaml:"raw"`
	Output     string        `yaml:"output"`
	PprofAddr  string        `yaml:"pprof_addr"`
	Hold       time.Duration `yaml:"hold"`
}

func defaultProfileConfig() ProfileConfig {
	return ProfileConfig{
		Iterations: defaultIterations,
		BufferSize: bufferSizeFlag.Value,
		Output:     profileOutFlag.Value,
		Hold:       holdFlag.Value,
	}
}

// loadProfileConfig reads path over the defaults. Unknown keys are rejected.
func loadProfileConfig(path string) (ProfileConfig, error) {
	cfg := defaultProfileConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, errors.Wrap(err, "open config")
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	return cfg, nil
}

// profileConfigFromContext merges the config file, if any, with the flags set
// on the command line.
func profileConfigFromContext(ctx *cli.Context) (ProfileConfig, error) {
	cfg := defaultProfileConfig()
	if path := ctx.String(configFlag.Name); path != "" {
		var err error
		if cfg, err = loadProfileConfig(path); err != nil {
			return cfg, err
		}
	}
	if ctx.IsSet(iterationsFlag.Name) {
		cfg.Iterations = ctx.Int(iterationsFlag.Name)
	}
	if ctx.IsSet(bufferSizeFlag.Name) {
		cfg.BufferSize = ctx.String(bufferSizeFlag.Name)
	}
	if ctx.IsSet(rawFlag.Name) {
		cfg.Raw = ctx.Bool(rawFlag.Name)
	}
	if ctx.IsSet(profileOutFlag.Name) {
		cfg.Output = ctx.String(profileOutFlag.Name)
	}
	if ctx.IsSet(pprofAddrFlag.Name) {
		cfg.PprofAddr = ctx.String(pprofAddrFlag.Name)
	}
	if ctx.IsSet(holdFlag.Name) {
		cfg.Hold = ctx.Duration(holdFlag.Name)
	}
	return cfg, cfg.validate()
}

func (c ProfileConfig) validate() error {
	if c.Iterations < 1 {
		return errors.Errorf("iterations must be positive, got %d", c.Iterations)
	}
	if c.Output == "" {
		return errors.New("profile output path is empty")
	}
	_, err := c.bufferBytes()
	return err
}

func (c ProfileConfig) bufferBytes() (int, error) {
	return parseSize(c.BufferSize)
}

// parseSize accepts plain byte counts and binary units such as 4KiB or 1m.
func parseSize(s string) (int, error) {
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, errors.Wrapf(err, "size %q", s)
	}
	if n < 1 {
		return 0, errors.Errorf("size %q must be positive", s)
	}
	return int(n), nil
}
