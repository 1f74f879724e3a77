package packet

// BuildIP emits a bare IPv4(+optional GRE) datagram with no transport
// header at all -- the original's plain "IP" module, used to stress
// generic IP-layer handling rather than any specific upper protocol. The
// protocol field is always freshly randomised: there is nothing for a
// caller to pin it to in this mode.
func BuildIP(buf *Buffer, cfg *Config, src *Source) int {
	payload := cfg.IP.Payload
	protocol := src.Uint8()

	layout := PrepareLayout(buf, cfg, src, protocol, cfg.IP.DstAddr, len(payload), 0)
	data := buf.Bytes()

	copy(data[layout.L4Off:layout.L4Off+len(payload)], payload)

	layout.FinishGRE(buf)
	return layout.TotalSize
}
