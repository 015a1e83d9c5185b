package keccak

import "fmt"

// Sponge is the absorb/pad/squeeze engine driving a 1600-bit permutation.
// A Sponge is single use: after Finalize it must not be touched again.
type Sponge[P Permutation] struct {
	a      [lanes]uint64
	perm   P
	offset int // next byte of the block to absorb into, always < rate
	rate   int
	delim  byte
	done   bool
}

// NewSponge returns a zeroed sponge exposing rate bytes per block and padding
// with the given domain separation byte. It panics unless 1 <= rate <= 200.
func NewSponge[P Permutation](perm P, rate int, delim byte) *Sponge[P] {
	if rate < 1 || rate > width {
		panic(fmt.Sprintf("keccak: invalid sponge rate %d", rate))
	}
	return &Sponge[P]{perm: perm, rate: rate, delim: delim}
}

// Rate returns the number of state bytes absorbed or squeezed per block.
func (s *Sponge[P]) Rate() int { return s.rate }

// Update absorbs p. The permutation runs each time a full block has been
// XORed in.
func (s *Sponge[P]) Update(p []byte) {
	s.mustLive()
	for len(p) > 0 {
		n := min(s.rate-s.offset, len(p))
		xorIn(&s.a, s.offset, p[:n])
		s.offset += n
		p = p[n:]
		if s.offset == s.rate {
			s.perm.Permute(&s.a)
			s.offset = 0
		}
	}
}

// Finalize applies the multi-rate padding and squeezes len(out) bytes into out.
// The sponge is consumed.
func (s *Sponge[P]) Finalize(out []byte) {
	s.mustLive()
	s.done = true

	xorByte(&s.a, s.offset, s.delim)
	xorByte(&s.a, s.rate-1, 0x80)
	s.perm.Permute(&s.a)

	for len(out) > 0 {
		n := min(s.rate, len(out))
		copyOut(&s.a, out[:n])
		out = out[n:]
		if len(out) > 0 {
			s.perm.Permute(&s.a)
		}
	}
}

// Clone returns an independent copy of a live sponge.
func (s *Sponge[P]) Clone() *Sponge[P] {
	s.mustLive()
	c := *s
	return &c
}

func (s *Sponge[P]) mustLive() {
	if s.done {
		panic("keccak: sponge used after Finalize")
	}
}

// xorIn XORs data into the state starting at byte offset off. Word-aligned
// runs are folded in eight bytes at a time.
func xorIn(a *[lanes]uint64, off int, data []byte) {
	i := 0
	for ; i < len(data) && (off+i)&7 != 0; i++ {
		xorByte(a, off+i, data[i])
	}
	for ; i+8 <= len(data); i += 8 {
		a[(off+i)>>3] ^= le64(data[i:])
	}
	for ; i < len(data); i++ {
		xorByte(a, off+i, data[i])
	}
}

func xorByte(a *[lanes]uint64, pos int, b byte) {
	a[pos>>3] ^= uint64(b) << (8 * uint(pos&7))
}

// copyOut writes the first len(out) state bytes to out.
func copyOut(a *[lanes]uint64, out []byte) {
	for i := range out {
		out[i] = byte(a[i>>3] >> (8 * uint(i&7)))
	}
}

// le64 reads a little-endian uint64 from at least 8 bytes.
func le64(b []byte) uint64 {
	_ = b[7]
	return uint64(b[0]) | uint64(b[1])<<8 | uint64(b[2])<<16 | uint64(b[3])<<24 |
		uint64(b[4])<<32 | uint64(b[5])<<40 | uint64(b[6])<<48 | uint64(b[7])<<56
}
