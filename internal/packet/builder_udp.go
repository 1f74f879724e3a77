package packet

// UDPHeaderLen is the fixed UDP header size (RFC 768): source port, dest
// port, length, checksum, 2 bytes each.
const UDPHeaderLen = 8

// BuildUDP emits a complete IPv4(+optional GRE)/UDP datagram (RFC 768).
// Follows the shape in §4.6: layout, outer (and inner) IP header, UDP
// header, pseudo-header, checksum.
func BuildUDP(buf *Buffer, cfg *Config, src *Source) int {
	payload := cfg.UDP.Payload
	udpLen := UDPHeaderLen + len(payload)

	layout := PrepareLayout(buf, cfg, src, ProtoUDP, cfg.IP.DstAddr, udpLen, PseudoHeaderLen)
	data := buf.Bytes()

	udpOff := layout.L4Off

	c := NewCursor(data, udpOff)
	c.PutU16(cfg.UDP.SrcPort.Resolve(src))
	c.PutU16(cfg.UDP.DstPort.Resolve(src))
	c.PutU16(uint16(udpLen))
	c.PutU16(0) // checksum placeholder
	c.PutBytes(payload)

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
