package packet

// RSVP common header + one SESSION object + one RSVP_HOP object (RFC 2205
// §3.1, §A.1, §A.5). No pseudo-header: RSVP runs directly over IP
// (protocol 46) and checksums its own message.
const (
	rsvpCommonHeaderLen = 8
	rsvpObjectHeaderLen = 4
	rsvpSessionBodyLen  = 8
	rsvpHopBodyLen      = 8

	rsvpVersion = 1

	rsvpClassSession = 1
	rsvpClassHop     = 3
	rsvpCTypeIPv4    = 1
)

// BuildRSVP emits a complete IPv4(+optional GRE)/RSVP datagram.
func BuildRSVP(buf *Buffer, cfg *Config, src *Source) int {
	sessionLen := rsvpObjectHeaderLen + rsvpSessionBodyLen
	hopLen := rsvpObjectHeaderLen + rsvpHopBodyLen
	rsvpLen := rsvpCommonHeaderLen + sessionLen + hopLen

	layout := PrepareLayout(buf, cfg, src, ProtoRSVP, cfg.IP.DstAddr, rsvpLen, 0)
	data := buf.Bytes()

	off := layout.L4Off

	c := NewCursor(data, off)
	c.PutU8(rsvpVersion<<4 | cfg.RSVP.Flags.Resolve(src)&0x0F)
	c.PutU8(cfg.RSVP.MsgType.Resolve(src))
	c.PutU16(0) // checksum placeholder
	c.PutU8(cfg.RSVP.SendTTL.Resolve(src))
	c.PutU8(0) // reserved
	c.PutU16(uint16(rsvpLen))

	// SESSION object.
	c.PutU16(uint16(sessionLen))
	c.PutU8(rsvpClassSession)
	c.PutU8(rsvpCTypeIPv4)
	c.PutU32(cfg.RSVP.SessionDstAddr.Resolve(src))
	c.PutU8(cfg.RSVP.SessionProtoID.Resolve(src))
	c.PutU8(0) // flags
	c.PutU16(cfg.RSVP.SessionDstPort.Resolve(src))

	// RSVP_HOP object.
	c.PutU16(uint16(hopLen))
	c.PutU8(rsvpClassHop)
	c.PutU8(rsvpCTypeIPv4)
	c.PutU32(cfg.RSVP.HopAddr.Resolve(src))
	c.PutU32(cfg.RSVP.HopLIH.Resolve(src))

	computed := Checksum(data[off : off+rsvpLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[off+2] = byte(csum >> 8)
	data[off+3] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}
