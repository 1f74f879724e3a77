package cli_test

import (
	"errors"
	"testing"

	"github.com/spf13/cobra"

	"github.com/t50io/t50/internal/cli"
	"github.com/t50io/t50/internal/packet"
)

func buildAndRun(t *testing.T, args []string) (cli.Parsed, error) {
	t.Helper()

	var parsed cli.Parsed
	var captured error
	cmd := cli.BuildCommand(func(_ *cobra.Command, p cli.Parsed) error {
		parsed = p
		return nil
	})
	cmd.SetArgs(args)
	captured = cmd.Execute()
	return parsed, captured
}

func TestResolveRequiresDest(t *testing.T) {
	t.Parallel()

	_, err := buildAndRun(t, []string{"--protocol", "tcp"})
	if !errors.Is(err, cli.ErrMissingDest) {
		t.Errorf("error = %v, want ErrMissingDest", err)
	}
}

func TestResolveRejectsThresholdAndFlood(t *testing.T) {
	t.Parallel()

	_, err := buildAndRun(t, []string{"--dest", "192.0.2.0/24", "--flood", "--threshold", "500"})
	if !errors.Is(err, cli.ErrThresholdAndFlood) {
		t.Errorf("error = %v, want ErrThresholdAndFlood", err)
	}
}

func TestResolveRejectsNonPositiveThreshold(t *testing.T) {
	t.Parallel()

	_, err := buildAndRun(t, []string{"--dest", "192.0.2.0/24", "--threshold", "0"})
	if !errors.Is(err, cli.ErrNonPositiveThresh) {
		t.Errorf("error = %v, want ErrNonPositiveThresh", err)
	}
}

func TestResolveRejectsUnknownProtocol(t *testing.T) {
	t.Parallel()

	_, err := buildAndRun(t, []string{"--dest", "192.0.2.0/24", "--protocol", "not-a-protocol"})
	if !errors.Is(err, cli.ErrUnknownProtocol) {
		t.Errorf("error = %v, want ErrUnknownProtocol", err)
	}
}

func TestResolveRejectsInvalidDest(t *testing.T) {
	t.Parallel()

	_, err := buildAndRun(t, []string{"--dest", "not-an-address"})
	if !errors.Is(err, cli.ErrInvalidDest) {
		t.Errorf("error = %v, want ErrInvalidDest", err)
	}
}

func TestResolveValidConfig(t *testing.T) {
	t.Parallel()

	parsed, err := buildAndRun(t, []string{
		"--dest", "192.0.2.0/24",
		"--protocol", "tcp",
		"--threshold", "500",
		"--tcp-syn",
		"--tcp-dest-port", "443",
	})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if parsed.Config.IP.Bits != 24 {
		t.Errorf("Bits = %d, want 24", parsed.Config.IP.Bits)
	}
	if parsed.Config.IP.DstAddr != 0xC0000200 {
		t.Errorf("DstAddr = %#x, want %#x", parsed.Config.IP.DstAddr, 0xC0000200)
	}
	if parsed.Config.IP.Protocol != packet.ProtoTCP {
		t.Errorf("Protocol = %d, want %d", parsed.Config.IP.Protocol, packet.ProtoTCP)
	}
	if !parsed.Config.TCP.FlagSYN {
		t.Error("FlagSYN should be true")
	}
	if parsed.Config.TCP.DstPort.Random || parsed.Config.TCP.DstPort.Value != 443 {
		t.Errorf("DstPort = %+v, want Fixed(443)", parsed.Config.TCP.DstPort)
	}
	if parsed.Options.Threshold != 500 {
		t.Errorf("Threshold = %d, want 500", parsed.Options.Threshold)
	}
}

func TestResolveBareAddressIsSlash32(t *testing.T) {
	t.Parallel()

	parsed, err := buildAndRun(t, []string{"--dest", "192.0.2.1", "--protocol", "tcp"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if parsed.Config.IP.Bits != 32 {
		t.Errorf("Bits = %d, want 32 for a bare address", parsed.Config.IP.Bits)
	}
}

func TestResolveT50ModeSelectsRotation(t *testing.T) {
	t.Parallel()

	parsed, err := buildAndRun(t, []string{"--dest", "192.0.2.0/24", "--protocol", "T50"})
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if parsed.Config.IP.Protocol != packet.ProtoT50 {
		t.Errorf("Protocol = %d, want ProtoT50", parsed.Config.IP.Protocol)
	}
}
