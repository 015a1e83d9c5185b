// keccaksum prints Keccak digests of files or standard input.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	keccak "github.com/Giulio2002/zk_keccak"
	"github.com/Giulio2002/zk_keccak/log"
	"github.com/Giulio2002/zk_keccak/metrics"
)

var (
	configFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	bitsFlag = cli.IntFlag{
		Name:  "bits",
		Usage: "Security level: 224, 256, 384 or 512",
		Value: 256,
	}
	strategyFlag = cli.StringFlag{
		Name:  "strategy",
		Usage: "Hashing strategy: direct or adaptive",
		Value: "direct",
	}
	thresholdFlag = cli.IntFlag{
		Name:  "threshold",
		Usage: "Bytes buffered by the adaptive strategy before committing to the sponge",
		Value: keccak.DefaultThreshold,
	}
	lengthFlag = cli.IntFlag{
		Name:  "length",
		Usage: "Digest length in bytes (0 = standard size)",
	}
	verbosityFlag = cli.StringFlag{
		Name:  "verbosity",
		Usage: "Log level: debug, info, warn, error",
		Value: "warn",
	}
	metricsFlag = cli.BoolFlag{
		Name:  metrics.EnabledFlag,
		Usage: "Collect hashing metrics and print them on exit",
	}
)

const readBufferSize = 64 * 1024

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "keccaksum"
	app.Usage = "print Keccak digests"
	app.ArgsUsage = "[FILE...]"
	app.Flags = []cli.Flag{
		configFileFlag,
		bitsFlag,
		strategyFlag,
		thresholdFlag,
		lengthFlag,
		verbosityFlag,
		metricsFlag,
	}
	app.Commands = []cli.Command{
		{
			Action:      dumpConfig,
			Name:        "dumpconfig",
			Usage:       "Show configuration values",
			Description: `The dumpconfig command shows the effective configuration as TOML.`,
		},
	}
	app.Before = func(ctx *cli.Context) error {
		log.SetLevel(ctx.GlobalString(verbosityFlag.Name))
		if ctx.GlobalBool(metricsFlag.Name) {
			metrics.Enable()
		}
		return nil
	}
	app.Action = keccaksum
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.Errorf("%v", err)
		log.Sync()
		os.Exit(1)
	}
}

func keccaksum(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	log.Debugf("Hashing with %d bits, %v strategy, threshold %d", cfg.Hasher.Bits, cfg.Hasher.Strategy, cfg.Hasher.Threshold)

	names := []string(ctx.Args())
	if len(names) == 0 {
		names = []string{"-"}
	}
	for _, name := range names {
		digest, err := hashFile(name, cfg.Hasher)
		if err != nil {
			return errors.Wrapf(err, "hashing %s", name)
		}
		fmt.Fprintf(ctx.App.Writer, "%s  %s\n", hex.EncodeToString(digest), name)
	}
	if metrics.Enabled() {
		metrics.WriteOnce(os.Stderr)
	}
	return nil
}

func hashFile(name string, cfg hasherConfig) ([]byte, error) {
	var r io.Reader = os.Stdin
	if name != "-" {
		f, err := os.Open(name)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return hashReader(bufio.NewReaderSize(r, readBufferSize), cfg)
}

func hashReader(r io.Reader, cfg hasherConfig) ([]byte, error) {
	h, err := keccak.New(cfg.Bits, cfg.keccakConfig())
	if err != nil {
		return nil, err
	}
	buf := make([]byte, readBufferSize)
	for {
		n, err := r.Read(buf)
		h.Update(buf[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
	}
	length := cfg.Length
	if length == 0 {
		length = h.Size()
	}
	out := make([]byte, length)
	if err := h.Finalize(out); err != nil {
		return nil, err
	}
	return out, nil
}
