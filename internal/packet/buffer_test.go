package packet_test

import (
	"testing"

	"github.com/t50io/t50/internal/packet"
)

func TestBufferEnsureGrows(t *testing.T) {
	t.Parallel()

	b := packet.NewBuffer(16)
	if len(b.Bytes()) != 16 {
		t.Fatalf("NewBuffer(16) length = %d, want 16", len(b.Bytes()))
	}

	b.Ensure(256)
	if len(b.Bytes()) < 256 {
		t.Fatalf("Ensure(256) left length %d, want >= 256", len(b.Bytes()))
	}
}

func TestBufferEnsureNoopWhenLargeEnough(t *testing.T) {
	t.Parallel()

	b := packet.NewBuffer(512)
	b.Ensure(16)
	if len(b.Bytes()) != 512 {
		t.Errorf("Ensure(16) shrank the buffer to %d, want 512", len(b.Bytes()))
	}
}
