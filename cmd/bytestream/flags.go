package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"
)

var (
	logFormatFlag = cli.StringFlag{
		Name:  "log.format",
		Usage: "Log output format (text|json)",
		Value: "text",
	}
	logVerbosityFlag = cli.IntFlag{
		Name:  "log.verbosity",
		Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
		Value: 3,
	}

	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "YAML file with profile settings; flags override it",
	}
	iterationsFlag = cli.IntFlag{
		Name:  "iterations",
		Usage: "Number of encode/decode round trips",
		Value: defaultIterations,
	}
	bufferSizeFlag = cli.StringFlag{
		Name:  "buffer",
		Usage: "Initial writer capacity (e.g. 512, 4KiB, 1MiB)",
		Value: "1KiB",
	}
	rawFlag = cli.BoolFlag{
		Name:  "raw",
		Usage: "Back the writer with memory outside the Go heap",
	}
	profileOutFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Heap profile destination",
		Value: "mem.prof",
	}
	pprofAddrFlag = cli.StringFlag{
		Name:  "pprof.addr",
		Usage: "Serve net/http/pprof on this address while profiling (empty disables)",
	}
	holdFlag = cli.DurationFlag{
		Name:  "hold",
		Usage: "Keep the pprof server up this long after profiling",
		Value: 5 * time.Minute,
	}

	kindFlag = cli.UintFlag{
		Name:  "kind",
		Usage: "Frame kind written into the header",
		Value: 1,
	}
	zstdFlag = cli.BoolFlag{
		Name:  "zstd",
		Usage: "Compress the frame body",
	}
	levelFlag = cli.StringFlag{
		Name:  "zstd.level",
		Usage: "Compression level (fastest|default|better|best)",
		Value: "default",
	}
	outFlag = cli.StringFlag{
		Name:  "out",
		Usage: "Write the frame here instead of stdout",
	}
	encodingFlag = cli.StringFlag{
		Name:  "encoding",
		Usage: "Treat the body as a length-prefixed string in this encoding (utf-8, utf-16le, windows-1252, ...)",
	}
	maxBodyFlag = cli.StringFlag{
		Name:  "max-body",
		Usage: "Largest inflated body accepted",
		Value: "64MiB",
	}
)

// setupLogging applies --log.format and --log.verbosity to the standard logger.
func setupLogging(ctx *cli.Context) error {
	switch ctx.GlobalString(logFormatFlag.Name) {
	case "text":
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	default:
		return errors.Errorf("invalid log format: %s", ctx.GlobalString(logFormatFlag.Name))
	}
	v := ctx.GlobalInt(logVerbosityFlag.Name)
	if v < 0 || v > 5 {
		return errors.Errorf("invalid log verbosity: %d", v)
	}
	logrus.SetLevel(logrus.Level(v + 1))
	logrus.SetOutput(os.Stderr)
	return nil
}
