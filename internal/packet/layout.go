package packet

// Layout is the resolved two-pass GRE layout (§4.5) shared by every
// builder: the outer IP header is always written; when GRE encapsulation
// is on, a GRE header and an inner IP header follow it and L4Off is past
// both, otherwise L4Off immediately follows the single outer header.
//
// TotalSize is the number of bytes actually transmitted -- it matches the
// IP total-length field(s) and is what a builder returns. PseudoOff is
// where scratch space (e.g. a pseudo-header) beyond TotalSize begins; the
// buffer is grown to cover it, but it is never counted in any IP tot_len
// field, so it never reaches the wire (§8 "Pseudo-header non-transmission").
//
// EffSAddr/EffDAddr are the "effective" IP header addresses a builder's
// pseudo-header and checksum math must use: the inner header's when
// encapsulated, the outer header's otherwise -- matching §4.5's "gre_ip is
// returned as absent; builders that consult it fall back to the outer IP
// header."
type Layout struct {
	TotalSize int
	PseudoOff int

	GREOff              int // -1 if not encapsulated
	GREChecksumFieldOff int // -1 if the checksum option is off or GRE is off

	L4Off int

	EffSAddr uint32
	EffDAddr uint32
}

// PrepareLayout runs the layout pass and fill pass for a builder emitting
// l4Len bytes of transport header + payload carrying transportProto,
// against cfg and dstAddr (the loop's per-iteration destination, in host
// order). scratchLen reserves additional buffer space past the
// transmitted datagram for a pseudo-header or other non-transmitted
// scratch data a builder needs while computing its checksum.
//
// It grows buf as needed, writes the outer IP header (and, if GRE is
// enabled, the GRE header and inner IP header), and returns everything a
// builder needs to finish writing the transport header at
// buf.Bytes()[layout.L4Off:].
func PrepareLayout(buf *Buffer, cfg *Config, src *Source, transportProto uint8, dstAddr uint32, l4Len, scratchLen int) Layout {
	greOptLen := GREOptLen(cfg.GRE)

	if !cfg.GRE.Encapsulated {
		total := IPHeaderLen + l4Len
		buf.Ensure(total + scratchLen)
		data := buf.Bytes()

		saddr, daddr := WriteIPv4(data, 0, uint16(total), transportProto, dstAddr, &cfg.IP, src)

		return Layout{
			TotalSize:           total,
			PseudoOff:           total,
			GREOff:              -1,
			GREChecksumFieldOff: -1,
			L4Off:               IPHeaderLen,
			EffSAddr:            saddr,
			EffDAddr:            daddr,
		}
	}

	greOff := IPHeaderLen
	innerOff := greOff + greOptLen
	l4Off := innerOff + IPHeaderLen
	total := l4Off + l4Len

	buf.Ensure(total + scratchLen)
	data := buf.Bytes()

	// Outer header: protocol GRE, total length covers everything transmitted.
	WriteIPv4(data, 0, uint16(total), ProtoGRE, dstAddr, &cfg.IP, src)

	checksumFieldOff := writeGREHeader(data, greOff, cfg.GRE, src)

	// Inner header: the real transport protocol, total length covers only
	// the inner IP header plus the transport header/payload that follows.
	innerTotal := IPHeaderLen + l4Len
	saddr, daddr := WriteIPv4(data, innerOff, uint16(innerTotal), transportProto, dstAddr, &cfg.IP, src)

	return Layout{
		TotalSize:           total,
		PseudoOff:           total,
		GREOff:              greOff,
		GREChecksumFieldOff: checksumFieldOff,
		L4Off:               l4Off,
		EffSAddr:            saddr,
		EffDAddr:            daddr,
	}
}

// FinishGRE fills in the GRE checksum option, if enabled, once the
// transport header/payload (and its own checksum) have been written. Every
// builder must call this last (§4.6 step 6); it is a no-op when GRE is
// disabled or the checksum option was not requested.
func (l Layout) FinishGRE(buf *Buffer) {
	if l.GREOff < 0 {
		return
	}
	GREChecksum(buf.Bytes(), l.GREOff, l.GREChecksumFieldOff, l.TotalSize)
}
