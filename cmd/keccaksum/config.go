package main

import (
	"bufio"
	"io"
	"os"
	"reflect"

	"github.com/naoina/toml"
	"github.com/pkg/errors"
	"gopkg.in/urfave/cli.v1"

	keccak "github.com/Giulio2002/zk_keccak"
)

var tomlSettings = toml.Config{
	NormFieldName: func(rt reflect.Type, key string) string {
		return key
	},
	FieldToKey: func(rt reflect.Type, field string) string {
		return field
	},
	MissingField: func(rt reflect.Type, field string) error {
		return errors.Errorf("field '%s' is not defined in %s", field, rt.String())
	},
}

type hasherConfig struct {
	Bits      int
	Strategy  keccak.Strategy
	Threshold int
	Length    int `toml:",omitempty"` // digest bytes; 0 means the standard size
}

type keccaksumConfig struct {
	Hasher hasherConfig
}

func defaultConfig() keccaksumConfig {
	def := keccak.DefaultConfig()
	return keccaksumConfig{
		Hasher: hasherConfig{
			Bits:      256,
			Strategy:  def.Strategy,
			Threshold: def.Threshold,
		},
	}
}

func loadConfig(file string, cfg *keccaksumConfig) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()

	err = tomlSettings.NewDecoder(bufio.NewReader(f)).Decode(cfg)
	return errors.Wrap(err, file)
}

// makeConfig layers the config file and then explicit flags over the defaults.
func makeConfig(ctx *cli.Context) (keccaksumConfig, error) {
	cfg := defaultConfig()
	if file := ctx.GlobalString(configFileFlag.Name); file != "" {
		if err := loadConfig(file, &cfg); err != nil {
			return cfg, err
		}
	}
	if ctx.GlobalIsSet(bitsFlag.Name) {
		cfg.Hasher.Bits = ctx.GlobalInt(bitsFlag.Name)
	}
	if ctx.GlobalIsSet(strategyFlag.Name) {
		if err := cfg.Hasher.Strategy.UnmarshalText([]byte(ctx.GlobalString(strategyFlag.Name))); err != nil {
			return cfg, err
		}
	}
	if ctx.GlobalIsSet(thresholdFlag.Name) {
		cfg.Hasher.Threshold = ctx.GlobalInt(thresholdFlag.Name)
	}
	if ctx.GlobalIsSet(lengthFlag.Name) {
		cfg.Hasher.Length = ctx.GlobalInt(lengthFlag.Name)
	}
	if cfg.Hasher.Length < 0 {
		return cfg, errors.Errorf("invalid digest length %d", cfg.Hasher.Length)
	}
	return cfg, nil
}

// keccakConfig turns the file/flag settings into a hasher configuration.
// The adaptive strategy is served by x/crypto on a host.
func (c hasherConfig) keccakConfig() keccak.Config {
	cfg := keccak.DefaultConfig()
	cfg.Strategy = c.Strategy
	cfg.Threshold = c.Threshold
	if cfg.Strategy == keccak.Adaptive && cfg.Accelerator == nil {
		cfg.Accelerator = keccak.XCryptoAccelerator{}
	}
	return cfg
}

func dumpConfig(ctx *cli.Context) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	out, err := tomlSettings.Marshal(&cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(ctx.App.Writer, string(out))
	return err
}
