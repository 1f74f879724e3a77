package packet

// EIGRP packet header (Cisco, informally documented): version, opcode,
// checksum, flags, sequence, ack, virtual router ID, autonomous system
// number -- 20 bytes, followed by one or more TLVs.
const eigrpHeaderLen = 20

// eigrpParamTLVLen is the EIGRP Parameters TLV (type 0x0001): type(2) +
// length(2) + K1..K6(1 each) + hold time(2).
const eigrpParamTLVLen = 12
const eigrpTLVTypeParam = 0x0001
const eigrpVersion = 2

// BuildEIGRP emits a complete IPv4(+optional GRE)/EIGRP datagram, the
// header plus a single Parameters TLV carrying the configured K-values
// and hold time. No pseudo-header: EIGRP runs directly over IP (88).
func BuildEIGRP(buf *Buffer, cfg *Config, src *Source) int {
	eigrpLen := eigrpHeaderLen + eigrpParamTLVLen

	layout := PrepareLayout(buf, cfg, src, ProtoEIGRP, cfg.IP.DstAddr, eigrpLen, 0)
	data := buf.Bytes()

	off := layout.L4Off

	c := NewCursor(data, off)
	c.PutU8(eigrpVersion)
	c.PutU8(cfg.EIGRP.OpCode.Resolve(src))
	c.PutU16(0) // checksum placeholder
	c.PutU32(src.Uint32())            // flags
	c.PutU32(src.Uint32())            // sequence number
	c.PutU32(src.Uint32())            // ack number
	c.PutU16(0)                       // virtual router ID
	c.PutU16(cfg.EIGRP.ASNumber.Resolve(src))

	c.PutU16(eigrpTLVTypeParam)
	c.PutU16(eigrpParamTLVLen)
	for _, k := range cfg.EIGRP.KValues {
		c.PutU8(k.Resolve(src))
	}
	c.PutU16(cfg.EIGRP.HoldTime.Resolve(src))

	computed := Checksum(data[off : off+eigrpLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[off+2] = byte(csum >> 8)
	data[off+3] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}
