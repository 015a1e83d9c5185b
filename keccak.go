// Package keccak implements the Keccak-224/256/384/512 hash functions on a
// generic sponge over Keccak-f[1600].
//
// A hasher runs one of two strategies. Direct absorbs input into the sponge
// as it arrives. Adaptive is meant for zkVM guests where every permutation is
// expensive but the host offers an accelerated digest call: input is buffered
// and handed to the Accelerator in one go, unless it grows past a threshold,
// in which case the hasher commits to the sponge for good. Both strategies
// produce the same digest for the same input.
package keccak

import (
	"github.com/Giulio2002/zk_keccak/metrics"
)

var absorbedMeter = metrics.NewMeter("keccak/absorbed")

// Hasher absorbs input any number of times and is then finalized once.
type Hasher interface {
	Update(p []byte)
	Finalize(out []byte) error
}

var _ Hasher = (*Keccak)(nil)

// Keccak is a Keccak hasher. It must not be used after Finalize.
type Keccak struct {
	strategy strategy
	rate     int
	size     int
	done     bool
}

// V224 returns a Keccak-224 hasher built with DefaultConfig.
func V224() *Keccak { return mustNew(224) }

// V256 returns a Keccak-256 hasher built with DefaultConfig.
func V256() *Keccak { return mustNew(256) }

// V384 returns a Keccak-384 hasher built with DefaultConfig.
func V384() *Keccak { return mustNew(384) }

// V512 returns a Keccak-512 hasher built with DefaultConfig.
func V512() *Keccak { return mustNew(512) }

func mustNew(bits int) *Keccak {
	k, err := New(bits, DefaultConfig())
	if err != nil {
		panic(err)
	}
	return k
}

// New returns a hasher for the given security level (224, 256, 384 or 512).
func New(bits int, cfg Config) (*Keccak, error) {
	rate, err := BitsToRate(bits)
	if err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	k := &Keccak{rate: rate, size: bits / 8}
	switch cfg.Strategy {
	case Adaptive:
		k.strategy = newAdaptive(rate, cfg)
	default:
		k.strategy = &direct{sponge: NewSponge(KeccakF{}, rate, keccakDelim)}
	}
	return k, nil
}

// Rate returns the sponge rate in bytes.
func (k *Keccak) Rate() int { return k.rate }

// Size returns the standard digest length in bytes.
func (k *Keccak) Size() int { return k.size }

// Update absorbs p.
func (k *Keccak) Update(p []byte) {
	k.mustLive()
	absorbedMeter.Mark(int64(len(p)))
	k.strategy.update(p)
}

// Finalize writes len(out) bytes of digest to out. Any length is allowed;
// Size() bytes gives the standard digest. The hasher is consumed even when an
// error is returned, which only happens if the accelerator rejects the call.
func (k *Keccak) Finalize(out []byte) error {
	k.mustLive()
	k.done = true
	return k.strategy.finalize(out)
}

// Sum finalizes and appends the standard digest to b.
func (k *Keccak) Sum(b []byte) ([]byte, error) {
	out := make([]byte, k.size)
	if err := k.Finalize(out); err != nil {
		return b, err
	}
	return append(b, out...), nil
}

// Clone returns an independent hasher with the same absorbed input.
func (k *Keccak) Clone() *Keccak {
	k.mustLive()
	c := *k
	c.strategy = k.strategy.clone()
	return &c
}

func (k *Keccak) mustLive() {
	if k.done {
		panic("keccak: hasher used after Finalize")
	}
}

// Sum224 computes the Keccak-224 digest of data.
func Sum224(data []byte) (out [28]byte) {
	sum(data, 224, out[:])
	return
}

// Sum256 computes the Keccak-256 digest of data.
func Sum256(data []byte) (out [32]byte) {
	sum(data, 256, out[:])
	return
}

// Sum384 computes the Keccak-384 digest of data.
func Sum384(data []byte) (out [48]byte) {
	sum(data, 384, out[:])
	return
}

// Sum512 computes the Keccak-512 digest of data.
func Sum512(data []byte) (out [64]byte) {
	sum(data, 512, out[:])
	return
}

// Keccak256 hashes the concatenation of data with Keccak-256.
func Keccak256(data ...[]byte) []byte {
	s := Sponge[KeccakF]{rate: width - 64, delim: keccakDelim}
	for _, b := range data {
		s.Update(b)
	}
	out := make([]byte, 32)
	s.Finalize(out)
	return out
}

func sum(data []byte, bits int, out []byte) {
	s := Sponge[KeccakF]{rate: width - 2*(bits/8), delim: keccakDelim}
	s.Update(data)
	s.Finalize(out)
}
