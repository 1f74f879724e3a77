package packet_test

import (
	"testing"

	"github.com/t50io/t50/internal/packet"
)

func TestModulesExcludesSentinel(t *testing.T) {
	t.Parallel()

	mods := packet.Modules()
	for _, m := range mods {
		if m.Build == nil {
			t.Fatalf("Modules() returned a module with a nil builder: %+v", m)
		}
		if m.Name == "" {
			t.Fatalf("Modules() returned the sentinel terminator")
		}
	}
}

func TestModuleByName(t *testing.T) {
	t.Parallel()

	mod, ok := packet.ModuleByName("tcp")
	if !ok {
		t.Fatal("ModuleByName(\"tcp\") not found")
	}
	if mod.Protocol != packet.ProtoTCP {
		t.Errorf("tcp module protocol = %d, want %d", mod.Protocol, packet.ProtoTCP)
	}

	if _, ok := packet.ModuleByName("not-a-protocol"); ok {
		t.Error("ModuleByName should fail for an unregistered name")
	}
}

func TestModuleAtRotatesInOrder(t *testing.T) {
	t.Parallel()

	n := packet.NumModules()
	for i := 0; i < 3*n; i++ {
		got := packet.ModuleAt(i)
		want := packet.ModuleAt(i % n)
		if got.Name != want.Name {
			t.Fatalf("ModuleAt(%d).Name = %q, want %q (rotation period %d)", i, got.Name, want.Name, n)
		}
	}
}
