package keccak

import (
	"fmt"

	"github.com/pkg/errors"
)

// DefaultThreshold is the number of raw input bytes an adaptive hasher buffers
// before it gives up on the accelerator and commits to the sponge.
const DefaultThreshold = 100_000

// keccakDelim is the Keccak (pre-SHA-3) domain separation byte.
const keccakDelim = 0x01

var (
	// ErrUnsupportedBits is returned for security levels other than 224, 256, 384 and 512.
	ErrUnsupportedBits = errors.New("keccak: unsupported security level")
	// ErrNoAccelerator is returned when Adaptive is configured without an Accelerator.
	ErrNoAccelerator = errors.New("keccak: adaptive strategy requires an accelerator")
	// ErrUnknownStrategy is returned for a Strategy value or name that does not exist.
	ErrUnknownStrategy = errors.New("keccak: unknown strategy")
)

// Strategy selects how a hasher computes its digest.
type Strategy int

const (
	// Direct absorbs every byte straight into the sponge.
	Direct Strategy = iota
	// Adaptive buffers input and hands it to an Accelerator at finalization,
	// committing to the sponge once the buffer would exceed the threshold.
	Adaptive
)

// String returns the strategy name used in configuration files.
func (s Strategy) String() string {
	switch s {
	case Direct:
		return "direct"
	case Adaptive:
		return "adaptive"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

// MarshalText encodes the strategy as its name.
func (s Strategy) MarshalText() ([]byte, error) {
	switch s {
	case Direct, Adaptive:
		return []byte(s.String()), nil
	}
	return nil, errors.Wrapf(ErrUnknownStrategy, "%d", int(s))
}

// UnmarshalText parses "direct" or "adaptive".
func (s *Strategy) UnmarshalText(text []byte) error {
	switch string(text) {
	case "direct":
		*s = Direct
	case "adaptive":
		*s = Adaptive
	default:
		return errors.Wrapf(ErrUnknownStrategy, "%q", text)
	}
	return nil
}

// Config controls the strategy a hasher is built with.
type Config struct {
	Strategy  Strategy
	Threshold int // raw bytes buffered before committing; <= 0 means DefaultThreshold
	// Accelerator computes buffered digests for the Adaptive strategy.
	Accelerator Accelerator
}

var defaultConfig = Config{
	Strategy:  Direct,
	Threshold: DefaultThreshold,
}

// DefaultConfig returns the configuration used by V224..V512. It is Direct
// unless the build registered a guest accelerator.
func DefaultConfig() Config {
	return defaultConfig
}

func (c Config) threshold() int {
	if c.Threshold <= 0 {
		return DefaultThreshold
	}
	return c.Threshold
}

func (c Config) validate() error {
	switch c.Strategy {
	case Direct:
		return nil
	case Adaptive:
		if c.Accelerator == nil {
			return ErrNoAccelerator
		}
		return nil
	}
	return errors.Wrapf(ErrUnknownStrategy, "%d", int(c.Strategy))
}

// BitsToRate returns the sponge rate in bytes for a security level, which is
// the 1600-bit width minus a capacity of twice the digest size.
func BitsToRate(bits int) (int, error) {
	switch bits {
	case 224, 256, 384, 512:
		return width - 2*(bits/8), nil
	}
	return 0, errors.Wrapf(ErrUnsupportedBits, "%d bits", bits)
}
