package packet_test

import (
	"testing"

	"github.com/t50io/t50/internal/packet"
)

func TestChecksumKnownVector(t *testing.T) {
	t.Parallel()

	// RFC 1071 §3 worked example: 0x0001 0xf203 0xf4f5 0xf6f7 sums to a
	// checksum of 0x220d.
	buf := []byte{0x00, 0x01, 0xf2, 0x03, 0xf4, 0xf5, 0xf6, 0xf7}
	if got := packet.Checksum(buf); got != 0x220d {
		t.Errorf("Checksum() = 0x%04x, want 0x220d", got)
	}
}

func TestChecksumOddLength(t *testing.T) {
	t.Parallel()

	even := packet.Checksum([]byte{0x00, 0x01, 0xf2, 0x03})
	odd := packet.Checksum([]byte{0x00, 0x01, 0xf2, 0x03, 0x00})
	if even != odd {
		t.Errorf("zero-padding an odd trailing byte changed the checksum: %04x != %04x", even, odd)
	}
}

func TestChecksumVerifiesToZero(t *testing.T) {
	t.Parallel()

	buf := []byte{0x45, 0x00, 0x00, 0x28, 0x1c, 0x46, 0x40, 0x00, 0x40, 0x06, 0x00, 0x00, 0xc0, 0xa8, 0x00, 0x01, 0xc0, 0xa8, 0x00, 0x02}
	sum := packet.Checksum(buf)
	buf[10] = byte(sum >> 8)
	buf[11] = byte(sum)

	if got := packet.Checksum(buf); got != 0 {
		t.Errorf("Checksum() over a buffer with its own checksum inserted = 0x%04x, want 0", got)
	}
}
