package packet

// ICMPHeaderLen is the fixed ICMP header size (RFC 792): type, code,
// checksum, and a 4-byte "rest of header" that varies by type.
const ICMPHeaderLen = 8

const icmpTypeRedirect = 5

// BuildICMP emits a complete IPv4(+optional GRE)/ICMP datagram (RFC 792).
// ICMP has no pseudo-header: the checksum covers only the ICMP message
// itself.
func BuildICMP(buf *Buffer, cfg *Config, src *Source) int {
	icmpLen := ICMPHeaderLen

	layout := PrepareLayout(buf, cfg, src, ProtoICMP, cfg.IP.DstAddr, icmpLen, 0)
	data := buf.Bytes()

	icmpOff := layout.L4Off
	icmpType := cfg.ICMP.Type.Resolve(src)

	c := NewCursor(data, icmpOff)
	c.PutU8(icmpType)
	c.PutU8(cfg.ICMP.Code.Resolve(src))
	c.PutU16(0) // checksum placeholder

	if icmpType == icmpTypeRedirect {
		c.PutU32(cfg.ICMP.Gateway.Resolve(src))
	} else {
		c.PutU16(cfg.ICMP.Identifier.Resolve(src))
		c.PutU16(cfg.ICMP.Sequence.Resolve(src))
	}

	computed := Checksum(data[icmpOff : icmpOff+icmpLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[icmpOff+2] = byte(csum >> 8)
	data[icmpOff+3] = byte(csum)

	layout.FinishGRE(buf)

	return layout.TotalSize
}
