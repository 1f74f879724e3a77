package packet

// EGPHeaderLen is the minimal Exterior Gateway Protocol header this
// injector emits (RFC 888 §3): version, type, code, status, checksum,
// autonomous system number, sequence number.
const EGPHeaderLen = 10

const egpVersion = 2

// BuildEGP emits a complete IPv4(+optional GRE)/EGP datagram. EGP runs
// directly over IP (protocol 8); no pseudo-header is involved.
func BuildEGP(buf *Buffer, cfg *Config, src *Source) int {
	egpLen := EGPHeaderLen

	layout := PrepareLayout(buf, cfg, src, ProtoEGP, cfg.IP.DstAddr, egpLen, 0)
	data := buf.Bytes()

	off := layout.L4Off
	c := NewCursor(data, off)
	c.PutU8(egpVersion)
	c.PutU8(cfg.EGP.Type.Resolve(src))
	c.PutU8(cfg.EGP.Code.Resolve(src))
	c.PutU8(cfg.EGP.Status.Resolve(src))
	c.PutU16(0) // checksum placeholder
	c.PutU16(cfg.EGP.AutonomousSys.Resolve(src))
	c.PutU16(cfg.EGP.SequenceNumber.Resolve(src))

	computed := Checksum(data[off : off+egpLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[off+4] = byte(csum >> 8)
	data[off+5] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}
