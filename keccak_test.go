package keccak

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/sha3"
)

func mustHex(t testing.TB, s string) []byte {
	t.Helper()
	b, err := hex.DecodeString(s)
	require.NoError(t, err)
	return b
}

func TestSum256Empty(t *testing.T) {
	got := Sum256(nil)
	// Known Keccak-256 of empty string.
	want := mustHex(t, "c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	if !bytes.Equal(got[:], want) {
		t.Fatalf("Sum256(nil) = %x, want %x", got, want)
	}
}

func TestSum256Hello(t *testing.T) {
	got := Sum256([]byte("hello"))
	want := mustHex(t, "1c8aff950685c2ed4bc3174f3472287b56d9517b9c948127319a09a7a36deac8")
	if !bytes.Equal(got[:], want) {
		t.Fatalf("Sum256(hello) = %x, want %x", got, want)
	}
}

func TestEmptyVectors(t *testing.T) {
	s224 := Sum224(nil)
	require.Equal(t, mustHex(t, "f71837502ba8e10837bdd8d365adb85591895602fc552b48b7390abd"), s224[:])
	s384 := Sum384(nil)
	require.Equal(t, mustHex(t, "2c23146a63a29acf99e73b88f8c24eaa7dc60aa771780ccc006afbfa8fe2479b2dd2b21362337441ac12b515911957ff"), s384[:])
	s512 := Sum512(nil)
	require.Equal(t, mustHex(t, "0eab42de4c3ceb9235fc91acffe746b29c29a8c366b7c60e4e67c466f36a4304c00fa9caf9d87976ba469bcbe06713b435f091ef2769fb160cdab33d3670680e"), s512[:])
}

func TestSum512Hello(t *testing.T) {
	ref := sha3.NewLegacyKeccak512()
	ref.Write([]byte("hello"))
	want := ref.Sum(nil)

	got := Sum512([]byte("hello"))
	require.Equal(t, want, got[:])

	k := V512()
	k.Update([]byte("hel"))
	k.Update([]byte("lo"))
	out := make([]byte, k.Size())
	require.NoError(t, k.Finalize(out))
	require.Equal(t, want, out)
}

func TestVariants(t *testing.T) {
	for _, tt := range []struct {
		k    *Keccak
		rate int
		size int
	}{
		{V224(), 144, 28},
		{V256(), 136, 32},
		{V384(), 104, 48},
		{V512(), 72, 64},
	} {
		require.Equal(t, tt.rate, tt.k.Rate())
		require.Equal(t, tt.size, tt.k.Size())
	}
}

func TestNewRejectsBadConfig(t *testing.T) {
	_, err := New(255, DefaultConfig())
	require.ErrorIs(t, err, ErrUnsupportedBits)

	_, err = New(256, Config{Strategy: Adaptive})
	require.ErrorIs(t, err, ErrNoAccelerator)

	_, err = New(256, Config{Strategy: Strategy(7)})
	require.ErrorIs(t, err, ErrUnknownStrategy)
}

func TestKeccak256Concatenates(t *testing.T) {
	want := Sum256([]byte("hello world"))
	require.Equal(t, want[:], Keccak256([]byte("hello"), nil, []byte(" "), []byte("world")))
}

func TestSum256LargeData(t *testing.T) {
	// Test with data larger than one block (rate=136 bytes).
	data := make([]byte, 500)
	for i := range data {
		data[i] = byte(i)
	}
	got := Sum256(data)
	// Verify against streaming Keccak.
	h := V256()
	h.Update(data)
	want, err := h.Sum(nil)
	require.NoError(t, err)
	if !bytes.Equal(got[:], want) {
		t.Fatalf("Sum256 vs Keccak mismatch: %x vs %x", got, want)
	}
}

func TestHasherStreaming(t *testing.T) {
	data := []byte("hello world, this is a longer test string for streaming keccak")
	// All at once.
	want := Sum256(data)
	// Byte by byte.
	h := V256()
	for _, b := range data {
		h.Update([]byte{b})
	}
	var got [32]byte
	require.NoError(t, h.Finalize(got[:]))
	if got != want {
		t.Fatalf("streaming byte-by-byte: %x vs %x", got, want)
	}
}

func TestHasherMultiBlock(t *testing.T) {
	// Test with exactly 2 blocks + partial.
	rate := 136
	data := make([]byte, rate*2+50)
	for i := range data {
		data[i] = byte(i * 7)
	}
	want := Sum256(data)
	// Update in chunks of 37 (not aligned to rate).
	h := V256()
	for i := 0; i < len(data); i += 37 {
		end := min(i+37, len(data))
		h.Update(data[i:end])
	}
	var got [32]byte
	require.NoError(t, h.Finalize(got[:]))
	if got != want {
		t.Fatalf("multi-block streaming: %x vs %x", got, want)
	}
}

func TestClone(t *testing.T) {
	h := V256()
	h.Update([]byte("hello"))
	c := h.Clone()
	c.Update([]byte(" world"))

	a, err := h.Sum(nil)
	require.NoError(t, err)
	b, err := c.Sum(nil)
	require.NoError(t, err)

	hello, world := Sum256([]byte("hello")), Sum256([]byte("hello world"))
	require.Equal(t, hello[:], a)
	require.Equal(t, world[:], b)
}

func TestUseAfterFinalizePanics(t *testing.T) {
	h := V256()
	require.NoError(t, h.Finalize(make([]byte, 32)))
	require.Panics(t, func() { h.Update([]byte("x")) })
	require.Panics(t, func() { h.Finalize(make([]byte, 32)) })
	require.Panics(t, func() { h.Clone() })
}

func FuzzSum256(f *testing.F) {
	f.Add([]byte(nil))
	f.Add([]byte("hello"))
	f.Add([]byte("hello world, this is a longer test string for streaming keccak"))
	f.Add(make([]byte, 136))
	f.Add(make([]byte, 136+1))
	f.Add(make([]byte, 136*3+50))

	f.Fuzz(func(t *testing.T, data []byte) {
		// Reference: x/crypto NewLegacyKeccak256.
		ref := sha3.NewLegacyKeccak256()
		ref.Write(data)
		want := ref.Sum(nil)

		got := Sum256(data)
		if !bytes.Equal(got[:], want) {
			t.Fatalf("Sum256 mismatch for len=%d\ngot:  %x\nwant: %x", len(data), got, want)
		}

		// Streaming, byte by byte.
		h := V256()
		for _, b := range data {
			h.Update([]byte{b})
		}
		gotS := make([]byte, 32)
		if err := h.Finalize(gotS); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(gotS, want) {
			t.Fatalf("Keccak byte-by-byte mismatch for len=%d\ngot:  %x\nwant: %x", len(data), gotS, want)
		}

		// Adaptive with a threshold small enough to exercise both paths.
		a, err := New(256, Config{Strategy: Adaptive, Threshold: 64, Accelerator: XCryptoAccelerator{}})
		if err != nil {
			t.Fatal(err)
		}
		a.Update(data)
		gotA := make([]byte, 32)
		if err := a.Finalize(gotA); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(gotA, want) {
			t.Fatalf("adaptive mismatch for len=%d\ngot:  %x\nwant: %x", len(data), gotA, want)
		}
	})
}

func BenchmarkSum256_500K(b *testing.B) {
	data := make([]byte, 500*1024)
	b.SetBytes(int64(len(data)))
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		Sum256(data)
	}
}

// Comparison benchmarks against golang.org/x/crypto/sha3.
var benchSizes = []int{32, 128, 256, 1024, 4096, 500 * 1024}

func benchName(size int) string {
	switch {
	case size >= 1024:
		return fmt.Sprintf("%dK", size/1024)
	default:
		return fmt.Sprintf("%dB", size)
	}
}

func BenchmarkSponge(b *testing.B) {
	for _, size := range benchSizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i)
		}
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				Sum256(data)
			}
		})
	}
}

func BenchmarkXCrypto(b *testing.B) {
	for _, size := range benchSizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i)
		}
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			h := sha3.NewLegacyKeccak256()
			for i := 0; i < b.N; i++ {
				h.Reset()
				h.Write(data)
				h.Sum(nil)
			}
		})
	}
}

func BenchmarkAdaptive(b *testing.B) {
	for _, size := range benchSizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i)
		}
		b.Run(benchName(size), func(b *testing.B) {
			b.SetBytes(int64(size))
			b.ReportAllocs()
			out := make([]byte, 32)
			for i := 0; i < b.N; i++ {
				h, _ := New(256, Config{Strategy: Adaptive, Accelerator: XCryptoAccelerator{}})
				h.Update(data)
				h.Finalize(out)
			}
		})
	}
}
