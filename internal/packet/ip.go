package packet

// IPHeaderLen is the fixed IPv4 header size this injector emits -- no IP
// options.
const IPHeaderLen = 20

const (
	ipVersion4 = 4
	ipIHL      = 5 // 5 x 32-bit words, no options
)

// WriteIPv4 writes a complete IPv4 header at buf[off:off+IPHeaderLen],
// including its own checksum, and returns the source/destination addresses
// it used (host-order values) so the caller can build the transport
// pseudo-header (§4.6 step 2, RFC 791).
//
// dstAddr is always cfg.DstAddr as set by the injection loop for this
// iteration, a host-order value; the cursor writes it to the wire in
// network order. SrcAddr is resolved from cfg.SrcAddr: Random draws a
// fresh address.
func WriteIPv4(buf []byte, off int, totalLen uint16, protocol uint8, dstAddr uint32, cfg *IPConfig, src *Source) (saddr, daddr uint32) {
	saddr = cfg.SrcAddr.Resolve(src)
	daddr = dstAddr

	c := NewCursor(buf, off)

	c.PutU8(ipVersion4<<4 | ipIHL)
	c.PutU8(cfg.TOS.Resolve(src))
	c.PutU16(totalLen)
	c.PutU16(cfg.ID.Resolve(src))
	c.PutU16(cfg.FragOff.Resolve(src))
	c.PutU8(resolveTTL(cfg, src))
	c.PutU8(protocol)
	c.PutU16(0) // checksum placeholder
	c.PutU32(saddr)
	c.PutU32(daddr)

	csum := Checksum(buf[off : off+IPHeaderLen])
	buf[off+10] = byte(csum >> 8)
	buf[off+11] = byte(csum)

	return saddr, daddr
}

// resolveTTL resolves the TTL field like any other U8 option: Fixed or
// Random, as the CLI layer decided when it parsed --ttl.
func resolveTTL(cfg *IPConfig, src *Source) uint8 {
	return cfg.TTL.Resolve(src)
}
