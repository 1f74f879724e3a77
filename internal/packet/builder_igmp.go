package packet

// IGMPv1HeaderLen is the IGMPv1 message size (RFC 1112): type, unused
// (legacy max-resp-time byte), checksum, group address.
const IGMPv1HeaderLen = 8

// igmpv3GroupRecordFixedLen is the fixed portion of an IGMPv3 Group Record
// (RFC 3376 §4.2): record type, aux data len, number of sources,
// multicast address.
const igmpv3GroupRecordFixedLen = 8

const igmpv3ReportHeaderLen = 8 // type/reserved, checksum, reserved, num records

const igmpTypeV3MembershipReport = 0x22
const igmpv3GroupRecordModeIsInclude = 1

// BuildIGMP emits IGMPv1 (RFC 1112) or IGMPv3 (RFC 3376) depending on
// cfg.IGMP.Version. IGMP has no pseudo-header.
func BuildIGMP(buf *Buffer, cfg *Config, src *Source) int {
	if cfg.IGMP.Version == 3 {
		return buildIGMPv3(buf, cfg, src)
	}
	return buildIGMPv1(buf, cfg, src)
}

func buildIGMPv1(buf *Buffer, cfg *Config, src *Source) int {
	igmpLen := IGMPv1HeaderLen

	layout := PrepareLayout(buf, cfg, src, ProtoIGMP, cfg.IP.DstAddr, igmpLen, 0)
	data := buf.Bytes()

	off := layout.L4Off
	c := NewCursor(data, off)
	c.PutU8(cfg.IGMP.Type.Resolve(src))
	c.PutU8(0) // unused in v1
	c.PutU16(0)
	c.PutU32(cfg.IGMP.GroupAddr.Resolve(src))

	computed := Checksum(data[off : off+igmpLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[off+2] = byte(csum >> 8)
	data[off+3] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}

func buildIGMPv3(buf *Buffer, cfg *Config, src *Source) int {
	numSources := int(cfg.IGMP.NumSources)
	igmpLen := igmpv3ReportHeaderLen + igmpv3GroupRecordFixedLen + numSources*4

	layout := PrepareLayout(buf, cfg, src, ProtoIGMP, cfg.IP.DstAddr, igmpLen, 0)
	data := buf.Bytes()

	off := layout.L4Off
	c := NewCursor(data, off)
	c.PutU8(igmpTypeV3MembershipReport)
	c.PutU8(0) // reserved
	c.PutU16(0) // checksum placeholder
	c.PutU16(0) // reserved
	c.PutU16(1) // one group record

	c.PutU8(igmpv3GroupRecordModeIsInclude)
	c.PutU8(0) // aux data len
	c.PutU16(uint16(numSources))
	c.PutU32(cfg.IGMP.GroupAddr.Resolve(src))

	base := cfg.IGMP.SourceAddrBase
	for i := 0; i < numSources; i++ {
		if base != 0 {
			c.PutU32(base + uint32(i))
		} else {
			c.PutU32(src.Uint32())
		}
	}

	computed := Checksum(data[off : off+igmpLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[off+2] = byte(csum >> 8)
	data[off+3] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}
