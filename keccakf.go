package keccak

import "math/bits"

const (
	// lanes is the number of 64-bit words in the Keccak-f[1600] state.
	lanes = 25
	// width is the permutation width in bytes.
	width = lanes * 8
	// rounds is the number of Keccak-f[1600] rounds.
	rounds = 24
)

// Permutation is a bijective transform over the 1600-bit Keccak state.
type Permutation interface {
	Permute(a *[lanes]uint64)
}

// KeccakF is the Keccak-f[1600] permutation.
type KeccakF struct{}

// Permute applies 24 rounds of Keccak-f[1600] to a in place.
func (KeccakF) Permute(a *[lanes]uint64) {
	keccakF1600(a)
}

// roundConstants are XORed into lane 0 by the ι step, one per round.
var roundConstants = [rounds]uint64{
	0x0000000000000001,
	0x0000000000008082,
	0x800000000000808A,
	0x8000000080008000,
	0x000000000000808B,
	0x0000000080000001,
	0x8000000080008081,
	0x8000000000008009,
	0x000000000000008A,
	0x0000000000000088,
	0x0000000080008009,
	0x000000008000000A,
	0x000000008000808B,
	0x800000000000008B,
	0x8000000000008089,
	0x8000000000008003,
	0x8000000000008002,
	0x8000000000000080,
	0x000000000000800A,
	0x800000008000000A,
	0x8000000080008081,
	0x8000000000008080,
	0x0000000080000001,
	0x8000000080008008,
}

// rhoOffsets holds the ρ rotation of lane x+5y.
var rhoOffsets = [lanes]int{
	0, 1, 62, 28, 27,
	36, 44, 6, 55, 20,
	3, 10, 43, 25, 39,
	41, 45, 15, 21, 8,
	18, 2, 61, 56, 14,
}

// piLane maps lane x+5y to its π destination y+5*((2x+3y) mod 5).
var piLane = [lanes]int{
	0, 10, 20, 5, 15,
	16, 1, 11, 21, 6,
	7, 17, 2, 12, 22,
	23, 8, 18, 3, 13,
	14, 24, 9, 19, 4,
}

func keccakF1600(a *[lanes]uint64) {
	var c [5]uint64
	var b [lanes]uint64
	for r := 0; r < rounds; r++ {
		// θ
		for x := 0; x < 5; x++ {
			c[x] = a[x] ^ a[x+5] ^ a[x+10] ^ a[x+15] ^ a[x+20]
		}
		for x := 0; x < 5; x++ {
			d := c[(x+4)%5] ^ bits.RotateLeft64(c[(x+1)%5], 1)
			for y := 0; y < lanes; y += 5 {
				a[y+x] ^= d
			}
		}

		// ρ and π
		for i := 0; i < lanes; i++ {
			b[piLane[i]] = bits.RotateLeft64(a[i], rhoOffsets[i])
		}

		// χ
		for y := 0; y < lanes; y += 5 {
			for x := 0; x < 5; x++ {
				a[y+x] = b[y+x] ^ (^b[y+(x+1)%5] & b[y+(x+2)%5])
			}
		}

		// ι
		a[0] ^= roundConstants[r]
	}
}
