package packet_test

import (
	"testing"

	"github.com/t50io/t50/internal/packet"
)

func TestFixedOptionsResolveToTheirValue(t *testing.T) {
	t.Parallel()

	src := packet.NewSource(1)

	if got := packet.FixedU8(42).Resolve(src); got != 42 {
		t.Errorf("FixedU8(42).Resolve() = %d, want 42", got)
	}
	if got := packet.FixedU16(4242).Resolve(src); got != 4242 {
		t.Errorf("FixedU16(4242).Resolve() = %d, want 4242", got)
	}
	if got := packet.FixedU32(424242).Resolve(src); got != 424242 {
		t.Errorf("FixedU32(424242).Resolve() = %d, want 424242", got)
	}
}

func TestRandomMaskIsAlwaysContiguous(t *testing.T) {
	t.Parallel()

	src := packet.NewSource(7)
	for i := 0; i < 1000; i++ {
		mask := packet.RandomMask().Resolve(src)
		inverted := ^mask
		// A valid netmask's inverted form is all zeros, or a contiguous
		// run of low-order 1 bits: (inverted+1) must be a power of two.
		if inverted != 0 && (inverted+1)&inverted != 0 {
			t.Fatalf("Resolve() = %#032b is not a contiguous netmask", mask)
		}
	}
}

func TestFromFieldZeroMeansRandomize(t *testing.T) {
	t.Parallel()

	if opt := packet.U8FromField(0); !opt.Random {
		t.Error("U8FromField(0) should be Random")
	}
	if opt := packet.U8FromField(5); opt.Random || opt.Value != 5 {
		t.Error("U8FromField(5) should be Fixed(5)")
	}
	if opt := packet.U16FromField(0); !opt.Random {
		t.Error("U16FromField(0) should be Random")
	}
	if opt := packet.U32FromField(0); !opt.Random {
		t.Error("U32FromField(0) should be Random")
	}
}
