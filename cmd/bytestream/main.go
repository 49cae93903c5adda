// Command bytestream profiles the cursor and reads and writes frames.
package main

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	cli "gopkg.in/urfave/cli.v1"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "bytestream"
	app.Usage = "Binary buffer cursor tooling"
	app.Version = "0.1.0"
	app.Writer = os.Stdout
	app.Flags = []cli.Flag{logFormatFlag, logVerbosityFlag}
	app.Before = setupLogging
	app.Commands = []cli.Command{
		{
			Name:   "profile",
			Usage:  "Round-trip a sample record and write a heap profile",
			Flags:  []cli.Flag{configFlag, iterationsFlag, bufferSizeFlag, rawFlag, profileOutFlag, pprofAddrFlag, holdFlag},
			Action: profileAction,
		},
		{
			Name:      "encode",
			Usage:     "Frame stdin",
			ArgsUsage: " ",
			Flags:     []cli.Flag{kindFlag, zstdFlag, levelFlag, outFlag, encodingFlag},
			Action:    encodeAction,
		},
		{
			Name:      "inspect",
			Usage:     "Validate a frame file and print its header",
			ArgsUsage: "<file>",
			Flags:     []cli.Flag{maxBodyFlag, encodingFlag},
			Action:    inspectAction,
		},
	}
	return app
}

func profileAction(ctx *cli.Context) error {
	cfg, err := profileConfigFromContext(ctx)
	if err != nil {
		return err
	}
	log := logrus.WithField("cmd", "profile")
	if cfg.PprofAddr != "" {
		servePprof(cfg.PprofAddr, log)
	}
	if _, err := runProfile(cfg, log); err != nil {
		return err
	}
	if cfg.PprofAddr != "" && cfg.Hold > 0 {
		log.WithField("hold", cfg.Hold).Info("Holding pprof server")
		time.Sleep(cfg.Hold)
	}
	return nil
}

func encodeAction(ctx *cli.Context) error {
	kind := ctx.Uint(kindFlag.Name)
	if kind > 0xFFFF {
		return errors.Errorf("frame kind %d does not fit in 16 bits", kind)
	}
	var out io.Writer = os.Stdout
	if path := ctx.String(outFlag.Name); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return errors.Wrap(err, "create output")
		}
		defer f.Close()
		out = f
	}
	_, err := encodeFrame(os.Stdin, out, encodeOptions{
		Kind:     uint16(kind),
		Zstd:     ctx.Bool(zstdFlag.Name),
		Level:    ctx.String(levelFlag.Name),
		Encoding: ctx.String(encodingFlag.Name),
	}, logrus.WithField("cmd", "encode"))
	return err
}

func inspectAction(ctx *cli.Context) error {
	path := ctx.Args().First()
	if path == "" {
		return errors.New("inspect needs a frame file")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "read frame")
	}
	maxBody, err := parseSize(ctx.String(maxBodyFlag.Name))
	if err != nil {
		return err
	}
	_, _, err = inspectFrame(data, uint64(maxBody), ctx.String(encodingFlag.Name),
		logrus.WithFields(logrus.Fields{"cmd": "inspect", "file": path}))
	return err
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("bytestream failed")
	}
}
