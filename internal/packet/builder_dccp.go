package packet

// DCCPHeaderLen is the extended-sequence-number DCCP generic header size
// (RFC 4340 §5.1, X=1): source/dest port, data offset, CCVal/CsCov,
// checksum, reserved/type/X, reserved, 48-bit sequence number.
const DCCPHeaderLen = 16

const dccpDataOffsetWords = DCCPHeaderLen / 4
const dccpExtendedSeqBit = 0x01

// BuildDCCP emits a complete IPv4(+optional GRE)/DCCP datagram (RFC 4340).
func BuildDCCP(buf *Buffer, cfg *Config, src *Source) int {
	dccpLen := DCCPHeaderLen

	layout := PrepareLayout(buf, cfg, src, ProtoDCCP, cfg.IP.DstAddr, dccpLen, PseudoHeaderLen)
	data := buf.Bytes()

	off := layout.L4Off

	c := NewCursor(data, off)
	c.PutU16(cfg.DCCP.SrcPort.Resolve(src))
	c.PutU16(cfg.DCCP.DstPort.Resolve(src))
	c.PutU8(dccpDataOffsetWords)
	c.PutU8(cfg.DCCP.CsCov.Resolve(src))
	c.PutU16(0) // checksum placeholder
	c.PutU8((cfg.DCCP.Type.Resolve(src)<<1)&0xFE | dccpExtendedSeqBit)
	c.PutU8(0) // reserved
	c.PutU16(cfg.DCCP.SeqHi.Resolve(src))
	c.PutU32(cfg.DCCP.SeqLo.Resolve(src))

	PseudoHeader{
		SrcAddr:  layout.EffSAddr,
		DstAddr:  layout.EffDAddr,
		Protocol: ProtoDCCP,
		Length:   uint16(dccpLen),
	}.Put(data[layout.PseudoOff : layout.PseudoOff+PseudoHeaderLen])

	computed := Checksum(data[off : layout.PseudoOff+PseudoHeaderLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[off+6] = byte(csum >> 8)
	data[off+7] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}
