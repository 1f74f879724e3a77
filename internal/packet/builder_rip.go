package packet

// RIP runs over UDP port 520 in both directions (RFC 1058 §3.1).
const ripHeaderLen = 4  // command, version, routing-domain/must-be-zero
const ripEntryLen = 20  // family, tag, address, netmask, next hop, metric

// RIPv2 MD5 authentication (RFC 2082 §3.2): a leading marker RTE, the
// trailing marker, and the digest itself.
const (
	ripAuthPrefixLen  = 20 // 0xFFFF/0x0003 marker + length/keyid/authlen + seq + 2 reserved words
	ripAuthTrailerLen = 4  // 0xFFFF/0x0001 marker
	ripAuthDigestLen  = 16 // MD5 digest size
)

const (
	ripVersion1 = 1
	ripVersion2 = 2
)

// BuildRIPv1 emits a RIPv1 (RFC 1058) request/response over UDP/520. RIPv1
// has no routing-domain, route-tag, subnet-mask, or next-hop fields; those
// RTE words are zero per RFC 1058 §3.1, not randomised.
func BuildRIPv1(buf *Buffer, cfg *Config, src *Source) int {
	return buildRIP(buf, cfg, src, ripVersion1)
}

// BuildRIPv2 emits a RIPv2 (RFC 1388) request/response over UDP/520,
// optionally appending the RFC 2082 Keyed-MD5 authentication trailer. The
// digest is filled with random bytes rather than a real HMAC-MD5 -- this
// is an injector, not a RIP speaker, and has no key material to compute
// a real digest from.
func BuildRIPv2(buf *Buffer, cfg *Config, src *Source) int {
	return buildRIP(buf, cfg, src, ripVersion2)
}

func buildRIP(buf *Buffer, cfg *Config, src *Source, version uint8) int {
	ripLen := ripHeaderLen + ripEntryLen
	auth := version == ripVersion2 && cfg.RIP.Auth
	if auth {
		ripLen += ripAuthPrefixLen + ripAuthTrailerLen + ripAuthDigestLen
	}

	udpLen := UDPHeaderLen + ripLen

	layout := PrepareLayout(buf, cfg, src, ProtoUDP, cfg.IP.DstAddr, udpLen, PseudoHeaderLen)
	data := buf.Bytes()

	udpOff := layout.L4Off

	c := NewCursor(data, udpOff)
	c.PutU16(PortRIP)
	c.PutU16(PortRIP)
	c.PutU16(uint16(udpLen))
	c.PutU16(0) // UDP checksum placeholder

	c.PutU8(cfg.RIP.Command.Resolve(src))
	c.PutU8(version)

	if version == ripVersion2 {
		c.PutU16(cfg.RIP.Domain.Resolve(src))
	} else {
		c.PutU16(0) // must be zero, RFC 1058
	}

	if auth {
		c.PutU16(0xFFFF)
		c.PutU16(0x0003)
		c.PutU16(uint16(ripHeaderLen + ripAuthPrefixLen + ripEntryLen))
		c.PutU8(cfg.RIP.KeyID.Resolve(src))
		c.PutU8(ripAuthDigestLen)
		c.PutU32(cfg.RIP.Sequence.Resolve(src))
		c.PutU32(0) // reserved, must be zero
		c.PutU32(0) // reserved, must be zero
	}

	c.PutU16(cfg.RIP.Family.Resolve(src))
	if version == ripVersion2 {
		c.PutU16(cfg.RIP.Tag.Resolve(src))
	} else {
		c.PutU16(0)
	}
	c.PutU32(cfg.RIP.Address.Resolve(src))
	if version == ripVersion2 {
		c.PutU32(cfg.RIP.Netmask.Resolve(src))
		c.PutU32(cfg.RIP.NextHop.Resolve(src))
	} else {
		c.PutU32(0)
		c.PutU32(0)
	}
	c.PutU32(cfg.RIP.Metric.Resolve(src))

	if auth {
		c.PutU16(0xFFFF)
		c.PutU16(0x0001)
		c.PutRandom(src, ripAuthDigestLen)
	}

	PseudoHeader{
		SrcAddr:  layout.EffSAddr,
		DstAddr:  layout.EffDAddr,
		Protocol: ProtoUDP,
		Length:   uint16(udpLen),
	}.Put(data[layout.PseudoOff : layout.PseudoOff+PseudoHeaderLen])

	computed := Checksum(data[udpOff : layout.PseudoOff+PseudoHeaderLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[udpOff+6] = byte(csum >> 8)
	data[udpOff+7] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}
