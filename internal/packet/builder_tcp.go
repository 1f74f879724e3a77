package packet

// TCPHeaderLen is the fixed TCP header size this injector emits -- no TCP
// options (RFC 793), data offset is always 5 x 32-bit words.
const TCPHeaderLen = 20

const tcpDataOffset = 5 << 4

// TCP flag bits within the 13th header byte (RFC 793).
const (
	tcpFlagFIN = 1 << 0
	tcpFlagSYN = 1 << 1
	tcpFlagRST = 1 << 2
	tcpFlagPSH = 1 << 3
	tcpFlagACK = 1 << 4
	tcpFlagURG = 1 << 5
	tcpFlagECE = 1 << 6
	tcpFlagCWR = 1 << 7
)

// BuildTCP emits a complete IPv4(+optional GRE)/TCP datagram (RFC 793).
func BuildTCP(buf *Buffer, cfg *Config, src *Source) int {
	payload := cfg.TCP.Payload
	tcpLen := TCPHeaderLen + len(payload)

	layout := PrepareLayout(buf, cfg, src, ProtoTCP, cfg.IP.DstAddr, tcpLen, PseudoHeaderLen)
	data := buf.Bytes()

	tcpOff := layout.L4Off

	var flags uint8
	if cfg.TCP.FlagFIN {
		flags |= tcpFlagFIN
	}
	if cfg.TCP.FlagSYN {
		flags |= tcpFlagSYN
	}
	if cfg.TCP.FlagRST {
		flags |= tcpFlagRST
	}
	if cfg.TCP.FlagPSH {
		flags |= tcpFlagPSH
	}
	if cfg.TCP.FlagACK {
		flags |= tcpFlagACK
	}
	if cfg.TCP.FlagURG {
		flags |= tcpFlagURG
	}
	if cfg.TCP.FlagECE {
		flags |= tcpFlagECE
	}
	if cfg.TCP.FlagCWR {
		flags |= tcpFlagCWR
	}

	c := NewCursor(data, tcpOff)
	c.PutU16(cfg.TCP.SrcPort.Resolve(src))
	c.PutU16(cfg.TCP.DstPort.Resolve(src))
	c.PutU32(cfg.TCP.Seq.Resolve(src))
	c.PutU32(cfg.TCP.Ack.Resolve(src))
	c.PutU8(tcpDataOffset)
	c.PutU8(flags)
	c.PutU16(cfg.TCP.Window.Resolve(src))
	c.PutU16(0) // checksum placeholder
	c.PutU16(cfg.TCP.Urgent.Resolve(src))
	c.PutBytes(payload)

	PseudoHeader{
		SrcAddr:  layout.EffSAddr,
		DstAddr:  layout.EffDAddr,
		Protocol: ProtoTCP,
		Length:   uint16(tcpLen),
	}.Put(data[layout.PseudoOff : layout.PseudoOff+PseudoHeaderLen])

	computed := Checksum(data[tcpOff : layout.PseudoOff+PseudoHeaderLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[tcpOff+16] = byte(csum >> 8)
	data[tcpOff+17] = byte(csum)

	layout.FinishGRE(buf)

	return layout.TotalSize
}
