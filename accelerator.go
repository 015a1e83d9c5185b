package keccak

import (
	"hash"
	"sync"

	"github.com/pkg/errors"
	"golang.org/x/crypto/sha3"
)

// Accelerator is an external Keccak digest primitive, typically a host call
// that is far cheaper than running the permutation in the caller's
// environment. Implementations must produce exactly what a Sponge with the
// same rate and delimiter squeezes into a buffer of len(out) bytes.
type Accelerator interface {
	// Supports reports whether Digest can serve the given parameters.
	Supports(rate int, delim byte, outLen int) bool
	// Digest hashes the whole of data into out.
	Digest(data []byte, rate int, delim byte, out []byte) error
}

// ErrAcceleratorUnsupported is returned by Digest for parameters Supports rejects.
var ErrAcceleratorUnsupported = errors.New("keccak: accelerator does not support parameters")

// XCryptoAccelerator serves Keccak-256 and Keccak-512 digests from
// golang.org/x/crypto/sha3 using pooled hashers.
type XCryptoAccelerator struct{}

var (
	legacy256Pool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak256() }}
	legacy512Pool = sync.Pool{New: func() any { return sha3.NewLegacyKeccak512() }}
)

func (XCryptoAccelerator) pool(rate int, delim byte, outLen int) *sync.Pool {
	if delim != keccakDelim {
		return nil
	}
	switch {
	case rate == 136 && outLen == 32:
		return &legacy256Pool
	case rate == 72 && outLen == 64:
		return &legacy512Pool
	}
	return nil
}

// Supports accepts Keccak-256 and Keccak-512 at their standard digest sizes.
func (x XCryptoAccelerator) Supports(rate int, delim byte, outLen int) bool {
	return x.pool(rate, delim, outLen) != nil
}

// Digest hashes data with a pooled x/crypto Keccak hasher.
func (x XCryptoAccelerator) Digest(data []byte, rate int, delim byte, out []byte) error {
	pool := x.pool(rate, delim, len(out))
	if pool == nil {
		return errors.Wrapf(ErrAcceleratorUnsupported, "rate %d delim %#02x length %d", rate, delim, len(out))
	}
	h := pool.Get().(hash.Hash)
	defer pool.Put(h)

	h.Reset()
	h.Write(data)
	h.Sum(out[:0])
	return nil
}
