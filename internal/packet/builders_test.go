package packet_test

import (
	"testing"

	"github.com/t50io/t50/internal/packet"
)

func baseConfig() *packet.Config {
	return &packet.Config{
		IP: packet.IPConfig{
			DstAddr:  0xC0A80002,
			SrcAddr:  packet.FixedAddr(0xC0A80001),
			Protocol: packet.ProtoTCP,
			TOS:      packet.FixedU8(0),
			TTL:      packet.FixedU8(64),
			ID:       packet.FixedU16(1),
			FragOff:  packet.FixedU16(0),
		},
	}
}

func TestBuildTCPSizeAndChecksum(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.TCP = packet.TCPConfig{
		SrcPort: packet.FixedU16(1234),
		DstPort: packet.FixedU16(80),
		Seq:     packet.FixedU32(1),
		Ack:     packet.FixedU32(0),
		Window:  packet.FixedU16(8192),
		FlagSYN: true,
	}

	buf := packet.NewBuffer(64)
	src := packet.NewSource(1)
	n := packet.BuildTCP(buf, cfg, src)

	wantSize := packet.IPHeaderLen + packet.TCPHeaderLen
	if n != wantSize {
		t.Fatalf("BuildTCP size = %d, want %d", n, wantSize)
	}

	data := buf.Bytes()
	tcpOff := packet.IPHeaderLen
	pseudoOff := n
	if got := packet.Checksum(data[tcpOff : pseudoOff+packet.PseudoHeaderLen]); got != 0 {
		t.Errorf("TCP checksum does not self-verify: Checksum() = %#04x, want 0", got)
	}

	// Bytes beyond n (the pseudo-header scratch space) are never part of
	// the transmitted datagram; the IP total-length field must match n.
	totalLen := uint16(data[2])<<8 | uint16(data[3])
	if int(totalLen) != n {
		t.Errorf("IP total length = %d, want %d", totalLen, n)
	}
}

func TestBuildUDPSizeAndChecksum(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.UDP = packet.UDPConfig{
		SrcPort: packet.FixedU16(1234),
		DstPort: packet.FixedU16(53),
		Payload: []byte("hello"),
	}

	buf := packet.NewBuffer(64)
	src := packet.NewSource(1)
	n := packet.BuildUDP(buf, cfg, src)

	wantSize := packet.IPHeaderLen + packet.UDPHeaderLen + len("hello")
	if n != wantSize {
		t.Fatalf("BuildUDP size = %d, want %d", n, wantSize)
	}

	data := buf.Bytes()
	udpOff := packet.IPHeaderLen
	pseudoOff := n
	if got := packet.Checksum(data[udpOff : pseudoOff+packet.PseudoHeaderLen]); got != 0 {
		t.Errorf("UDP checksum does not self-verify: Checksum() = %#04x, want 0", got)
	}
}

func TestBuildTCPBogusChecksumSkipsVerification(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.BogusChecksum = true
	cfg.TCP = packet.TCPConfig{
		SrcPort: packet.FixedU16(1234),
		DstPort: packet.FixedU16(80),
	}

	buf := packet.NewBuffer(64)
	src := packet.NewSource(1)
	n := packet.BuildTCP(buf, cfg, src)

	data := buf.Bytes()
	tcpOff := packet.IPHeaderLen
	pseudoOff := n
	// A bogus checksum is not guaranteed to self-verify; it would only do
	// so by chance. Exercising this path mainly proves BuildTCP doesn't
	// panic or corrupt the layout when BogusChecksum is set.
	_ = packet.Checksum(data[tcpOff : pseudoOff+packet.PseudoHeaderLen])

	totalLen := uint16(data[2])<<8 | uint16(data[3])
	if int(totalLen) != n {
		t.Errorf("IP total length = %d, want %d", totalLen, n)
	}
}

func TestBuildTCPWithGREGrowsLayout(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.GRE = packet.GREOptions{Encapsulated: true}
	cfg.TCP = packet.TCPConfig{
		SrcPort: packet.FixedU16(1234),
		DstPort: packet.FixedU16(80),
	}

	buf := packet.NewBuffer(64)
	src := packet.NewSource(1)
	n := packet.BuildTCP(buf, cfg, src)

	wantSize := packet.IPHeaderLen + packet.GREOptLen(cfg.GRE) + packet.IPHeaderLen + packet.TCPHeaderLen
	if n != wantSize {
		t.Fatalf("BuildTCP with GRE size = %d, want %d", n, wantSize)
	}

	data := buf.Bytes()
	outerProto := data[9]
	if outerProto != packet.ProtoGRE {
		t.Errorf("outer IP protocol = %d, want %d (GRE)", outerProto, packet.ProtoGRE)
	}
}

func TestModuleRotationMatchesBuilders(t *testing.T) {
	t.Parallel()

	cfg := baseConfig()
	cfg.UDP = packet.UDPConfig{SrcPort: packet.FixedU16(1), DstPort: packet.FixedU16(2)}
	cfg.ICMP = packet.ICMPConfig{}
	cfg.RIP = packet.RIPConfig{Family: packet.FixedU16(2)}

	buf := packet.NewBuffer(128)
	src := packet.NewSource(2)

	for i := 0; i < packet.NumModules(); i++ {
		mod := packet.ModuleAt(i)
		cfg.IP.Protocol = mod.Protocol
		n := mod.Build(buf, cfg, src)
		if n < packet.IPHeaderLen {
			t.Errorf("module %q produced %d bytes, smaller than a bare IP header", mod.Name, n)
		}
	}
}
