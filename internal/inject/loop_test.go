package inject_test

import (
	"context"
	"sync"
	"testing"

	"github.com/t50io/t50/internal/inject"
	"github.com/t50io/t50/internal/packet"
)

// fakeSocket records every datagram handed to it instead of touching a
// real raw socket, so the loop's accounting can be exercised without root.
type fakeSocket struct {
	mu   sync.Mutex
	sent int
	fail bool
}

func (f *fakeSocket) SendTo(buf []byte, dst uint32) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errSendFailed
	}
	f.sent++
	return nil
}

func (f *fakeSocket) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sent
}

var errSendFailed = errSentinel("send failed")

type errSentinel string

func (e errSentinel) Error() string { return string(e) }

func tcpConfig() *packet.Config {
	return &packet.Config{
		IP: packet.IPConfig{
			DstAddr: 0xC0A80000,
			Bits:    24,
			SrcAddr: packet.RandomAddr(),
			TOS:     packet.FixedU8(0),
			TTL:     packet.FixedU8(64),
			ID:      packet.RandomU16(),
			FragOff: packet.FixedU16(0),
		},
		TCP: packet.TCPConfig{
			SrcPort: packet.RandomU16(),
			DstPort: packet.FixedU16(80),
		},
	}
}

func TestRunSingleWorkerThresholdAccounting(t *testing.T) {
	t.Parallel()

	cfg := tcpConfig()
	mod, ok := packet.ModuleByName("tcp")
	if !ok {
		t.Fatal("tcp module not registered")
	}
	cfg.IP.Protocol = mod.Protocol
	cfg.IP.ProtoName = 2 // index of "tcp" in the modules table

	sock := &fakeSocket{}
	opts := inject.Options{Threshold: 50}

	result, err := inject.Run(context.Background(), cfg, opts, sock, 1, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Sent != 50 {
		t.Errorf("Sent = %d, want 50", result.Sent)
	}
	if sock.count() != 50 {
		t.Errorf("socket received %d sends, want 50", sock.count())
	}
	if result.Turbo {
		t.Error("Turbo should be false: threshold 50 with Turbo option unset")
	}
}

func TestRunTurboSplitsThreshold(t *testing.T) {
	t.Parallel()

	cfg := tcpConfig()
	mod, _ := packet.ModuleByName("tcp")
	cfg.IP.Protocol = mod.Protocol
	cfg.IP.ProtoName = 2

	sock := &fakeSocket{}
	opts := inject.Options{Threshold: 101, Turbo: true}

	result, err := inject.Run(context.Background(), cfg, opts, sock, 1, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !result.Turbo {
		t.Fatal("expected turbo split for threshold 101 in single-protocol mode")
	}
	if result.ParentSent != 51 || result.ChildSent != 50 {
		t.Errorf("split = parent %d / child %d, want 51/50 (parent absorbs the odd packet)", result.ParentSent, result.ChildSent)
	}
	if result.Sent != 101 {
		t.Errorf("Sent = %d, want 101", result.Sent)
	}
}

func TestRunTurboIneligibleBelowThreshold(t *testing.T) {
	t.Parallel()

	cfg := tcpConfig()
	mod, _ := packet.ModuleByName("tcp")
	cfg.IP.Protocol = mod.Protocol
	cfg.IP.ProtoName = 2

	sock := &fakeSocket{}
	opts := inject.Options{Threshold: 1, Turbo: true}

	result, err := inject.Run(context.Background(), cfg, opts, sock, 1, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Turbo {
		t.Error("threshold 1 should not be turbo-eligible in single-protocol mode")
	}
	if result.Sent != 1 {
		t.Errorf("Sent = %d, want 1", result.Sent)
	}
}

func TestRunMixedModeRotatesModules(t *testing.T) {
	t.Parallel()

	cfg := tcpConfig()
	cfg.UDP = packet.UDPConfig{SrcPort: packet.RandomU16(), DstPort: packet.RandomU16()}
	cfg.ICMP = packet.ICMPConfig{}
	cfg.RIP = packet.RIPConfig{Family: packet.FixedU16(2)}
	cfg.IP.Protocol = packet.ProtoT50

	sock := &fakeSocket{}
	n := int32(packet.NumModules())
	opts := inject.Options{Threshold: n * 3}

	result, err := inject.Run(context.Background(), cfg, opts, sock, 1, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Sent != n*3 {
		t.Errorf("Sent = %d, want %d", result.Sent, n*3)
	}
}

func TestRunStopsOnSendError(t *testing.T) {
	t.Parallel()

	cfg := tcpConfig()
	mod, _ := packet.ModuleByName("tcp")
	cfg.IP.Protocol = mod.Protocol
	cfg.IP.ProtoName = 2

	sock := &fakeSocket{fail: true}
	opts := inject.Options{Threshold: 10}

	result, err := inject.Run(context.Background(), cfg, opts, sock, 1, nil)
	if err == nil {
		t.Fatal("expected an error from a failing socket")
	}
	if result.Sent != 0 {
		t.Errorf("Sent = %d, want 0 on immediate send failure", result.Sent)
	}
}

func TestRunFloodStopsOnCancel(t *testing.T) {
	t.Parallel()

	cfg := tcpConfig()
	mod, _ := packet.ModuleByName("tcp")
	cfg.IP.Protocol = mod.Protocol
	cfg.IP.ProtoName = 2

	sock := &fakeSocket{}
	opts := inject.Options{Flood: true}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := inject.Run(ctx, cfg, opts, sock, 1, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Sent != 0 {
		t.Errorf("Sent = %d, want 0: context was already cancelled", result.Sent)
	}
}
