package packet

import (
	"crypto/rand"
	"encoding/binary"
	mathrand "math/rand/v2"
)

// Source is a per-worker uniform 32-bit PRNG. Every builder invocation and
// the injection loop's destination selection draw from one of these; it is
// never shared between workers (§5: "the PRNG state is likewise
// per-worker").
type Source struct {
	rng *mathrand.Rand

	// hardware, when true, draws every Uint32 call from crypto/rand instead
	// of the seeded generator -- the Go-native stand-in for the optional
	// RDRAND source the original offers when __HAVE_RDRAND__ is compiled in.
	hardware bool
}

// NewSource creates a PRNG seeded from seed. Both turbo workers seed before
// the fork point and therefore inherit the same seed; this is an accepted
// statistical weakness carried over from the original (§5).
func NewSource(seed uint64) *Source {
	return &Source{rng: mathrand.New(mathrand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewHardwareSource creates a Source that draws from crypto/rand instead of
// the seeded generator, standing in for a hardware RNG (e.g. RDRAND) on
// platforms where the original is built with __HAVE_RDRAND__.
func NewHardwareSource() *Source {
	return &Source{hardware: true}
}

// Uint32 returns a uniformly distributed 32-bit value.
func (s *Source) Uint32() uint32 {
	if s.hardware {
		var buf [4]byte
		if _, err := rand.Read(buf[:]); err != nil {
			// crypto/rand failure on a sane platform is unrecoverable; fall
			// back rather than returning a zero value that would silently
			// defeat randomisation.
			return mathrand.Uint32()
		}
		return binary.BigEndian.Uint32(buf[:])
	}
	return uint32(s.rng.Uint64())
}

// Uint16 returns a uniformly distributed 16-bit value.
func (s *Source) Uint16() uint16 {
	return uint16(s.Uint32())
}

// Uint8 returns a uniformly distributed 8-bit value.
func (s *Source) Uint8() uint8 {
	return uint8(s.Uint32())
}

// IntN returns a uniform value in [0, n). Used for the CIDR host offset
// (RANDOM() % cidr_ptr->hostid in the original) and module rotation is NOT
// drawn from here -- rotation is a deterministic cursor, not randomised.
func (s *Source) IntN(n uint32) uint32 {
	if n == 0 {
		return 0
	}
	if s.hardware {
		return s.Uint32() % n
	}
	return s.rng.Uint32N(n)
}

// RandomMask returns a random but valid contiguous-leading-1s netmask,
// the NETMASK_RND variant: a uniformly chosen prefix length in [1,32]
// converted to its network-order mask.
func (s *Source) RandomMask() uint32 {
	bits := 1 + s.IntN(32)
	if bits == 32 {
		return 0xFFFFFFFF
	}
	return ^uint32(0) << (32 - bits)
}
