package packet

// OSPFv2 common header (RFC 2328 Appendix A.3.1): version, type, packet
// length, router ID, area ID, checksum, auth type, authentication.
const ospfHeaderLen = 24
const ospfVersion2 = 2

const (
	ospfTypeHello = 1
	ospfTypeDD    = 2
	ospfTypeLSR   = 3
	ospfTypeLSU   = 4
	ospfTypeLSAck = 5
)

const ospfHelloBodyLen = 20 // A.3.2, zero neighbors
const ospfDDBodyLen = 8     // A.3.3, zero LSA headers

const ospfLSAHeaderLen = 20 // A.4.1

// BuildOSPF emits one of the five OSPFv2 packet types (RFC 2328) selected
// by cfg.OSPF.Type: Hello, Database Description, Link State Request,
// Link State Update, or Link State Acknowledgment. Each LSR/LSU/LSAck
// instance carries a single representative entry with randomised content
// (§4.6: "every option toggle and every field either comes from
// configuration or is drawn freshly from the PRNG").
func BuildOSPF(buf *Buffer, cfg *Config, src *Source) int {
	pktType := cfg.OSPF.Type.Resolve(src)
	bodyLen := ospfBodyLen(pktType)
	ospfLen := ospfHeaderLen + bodyLen

	layout := PrepareLayout(buf, cfg, src, ProtoOSPF, cfg.IP.DstAddr, ospfLen, 0)
	data := buf.Bytes()

	off := layout.L4Off

	c := NewCursor(data, off)
	c.PutU8(ospfVersion2)
	c.PutU8(pktType)
	c.PutU16(uint16(ospfLen))
	c.PutU32(src.Uint32()) // router ID
	c.PutU32(cfg.OSPF.AreaID.Resolve(src))
	c.PutU16(0) // checksum placeholder
	c.PutU16(0) // AuType: none
	c.PutU32(0) // authentication (8 bytes, written as two words)
	c.PutU32(0)

	writeOSPFBody(c, cfg, src, pktType)

	computed := Checksum(data[off : off+ospfLen])
	csum := ResolveTransportChecksum(cfg, src, computed)
	data[off+12] = byte(csum >> 8)
	data[off+13] = byte(csum)

	layout.FinishGRE(buf)
	return layout.TotalSize
}

func ospfBodyLen(pktType uint8) int {
	switch pktType {
	case ospfTypeHello:
		return ospfHelloBodyLen
	case ospfTypeDD:
		return ospfDDBodyLen
	case ospfTypeLSR:
		return 12
	case ospfTypeLSU:
		return 4 + ospfLSAHeaderLen
	case ospfTypeLSAck:
		return ospfLSAHeaderLen
	default:
		return ospfHelloBodyLen
	}
}

func writeOSPFBody(c *Cursor, cfg *Config, src *Source, pktType uint8) {
	switch pktType {
	case ospfTypeHello:
		c.PutU32(cfg.OSPF.NetworkMask.Resolve(src))
		c.PutU16(cfg.OSPF.HelloInterval.Resolve(src))
		c.PutU8(cfg.OSPF.Options.Resolve(src))
		c.PutU8(cfg.OSPF.RtrPriority.Resolve(src))
		c.PutU32(cfg.OSPF.RouterDeadInterval.Resolve(src))
		c.PutU32(cfg.OSPF.DesignatedRouter.Resolve(src))
		c.PutU32(cfg.OSPF.BackupDesignatedRouter.Resolve(src))

	case ospfTypeDD:
		c.PutU16(cfg.OSPF.InterfaceMTU.Resolve(src))
		c.PutU8(cfg.OSPF.Options.Resolve(src))
		c.PutU8(cfg.OSPF.DDFlags.Resolve(src))
		c.PutU32(cfg.OSPF.DDSeqNumber.Resolve(src))

	case ospfTypeLSR:
		c.PutU32(uint32(cfg.OSPF.LSType.Resolve(src)))
		c.PutU32(cfg.OSPF.LSID.Resolve(src))
		c.PutU32(cfg.OSPF.AdvRouter.Resolve(src))

	case ospfTypeLSU:
		c.PutU32(1) // one LSA follows
		writeOSPFLSAHeader(c, cfg, src)

	case ospfTypeLSAck:
		writeOSPFLSAHeader(c, cfg, src)

	default:
		c.PutU32(cfg.OSPF.NetworkMask.Resolve(src))
		c.PutU16(cfg.OSPF.HelloInterval.Resolve(src))
		c.PutU8(cfg.OSPF.Options.Resolve(src))
		c.PutU8(cfg.OSPF.RtrPriority.Resolve(src))
		c.PutU32(cfg.OSPF.RouterDeadInterval.Resolve(src))
		c.PutU32(cfg.OSPF.DesignatedRouter.Resolve(src))
		c.PutU32(cfg.OSPF.BackupDesignatedRouter.Resolve(src))
	}
}

// writeOSPFLSAHeader writes a single LSA header (RFC 2328 A.4.1): LS age,
// options, LS type, link state ID, advertising router, LS sequence
// number, LS checksum, length. The checksum and length here describe the
// synthetic header-only LSA this injector emits, not a real LSA body.
func writeOSPFLSAHeader(c *Cursor, cfg *Config, src *Source) {
	c.PutU16(uint16(src.Uint32())) // LS age
	c.PutU8(cfg.OSPF.Options.Resolve(src))
	c.PutU8(cfg.OSPF.LSType.Resolve(src))
	c.PutU32(cfg.OSPF.LSID.Resolve(src))
	c.PutU32(cfg.OSPF.AdvRouter.Resolve(src))
	c.PutU32(cfg.OSPF.LSSeqNum.Resolve(src))
	c.PutU16(0) // LS checksum (not computed: header-only synthetic LSA)
	c.PutU16(ospfLSAHeaderLen)
}
