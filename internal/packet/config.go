package packet

// Config is the immutable-per-iteration bundle the CLI collaborator
// assembles and the injection loop re-reads every iteration (§3). Only the
// destination address and protocol selector are mutated by the loop itself
// (each iteration's randomised daddr and, in mixed mode, the rotating
// protocol); every other field is exactly as the CLI produced it.
type Config struct {
	IP  IPConfig
	GRE GREOptions

	// BogusChecksum, when set, replaces any transport checksum with a
	// random 16-bit value instead of a correctly computed one (§3).
	BogusChecksum bool

	TCP   TCPConfig
	UDP   UDPConfig
	ICMP  ICMPConfig
	IGMP  IGMPConfig
	EGP   EGPConfig
	RIP   RIPConfig
	DCCP  DCCPConfig
	RSVP  RSVPConfig
	IPSec IPSecConfig
	EIGRP EIGRPConfig
	OSPF  OSPFConfig
}

// IPConfig carries the targeting and IP-layer fields (§3).
type IPConfig struct {
	// DstAddr is the target address in host order; the loop overwrites
	// this every iteration with a CIDR-drawn host-order value, and the IP
	// header writer emits it in network order (§4.8).
	DstAddr uint32

	// Bits is the CIDR prefix length, 0..32.
	Bits uint8

	// SrcAddr: Random means "randomise per build" (§3).
	SrcAddr Addr

	// Protocol is either a real IANA number or ProtoT50 ("rotate").
	Protocol uint8

	// ProtoName indexes into the modules table when a single protocol is
	// selected (Protocol != ProtoT50).
	ProtoName int

	TOS     U8
	TTL     U8
	ID      U16
	FragOff U16

	// Payload is the body of the bare "IP" module's datagram -- there is
	// no transport header in this mode, just a protocol-agnostic payload.
	Payload []byte
}

// GREOptions controls GRE encapsulation (§3, §4.5).
type GREOptions struct {
	Encapsulated bool
	Sequence     bool
	Key          bool
	Checksum     bool

	// SequenceValue and KeyValue are the option payloads when enabled;
	// 0 requests randomisation like any other field.
	SequenceValue U32
	KeyValue      U32
}

// TCPConfig carries TCP-specific builder fields (§4.6, RFC 793).
type TCPConfig struct {
	SrcPort U16
	DstPort U16
	Seq     U32
	Ack     U32
	Window  U16
	Urgent  U16

	FlagFIN bool
	FlagSYN bool
	FlagRST bool
	FlagPSH bool
	FlagACK bool
	FlagURG bool
	FlagECE bool
	FlagCWR bool

	// Payload is application data carried verbatim after the header.
	Payload []byte
}

// UDPConfig carries UDP-specific builder fields (RFC 768).
type UDPConfig struct {
	SrcPort U16
	DstPort U16

	// Payload is application data carried verbatim after the header.
	Payload []byte
}

// ICMPConfig carries ICMP-specific builder fields (RFC 792).
type ICMPConfig struct {
	Type       U8
	Code       U8
	Identifier U16
	Sequence   U16
	Gateway    Addr
}

// IGMPConfig carries IGMPv1 (RFC 1112) and IGMPv3 (RFC 3376) builder
// fields. Version selects which wire format the builder emits.
type IGMPConfig struct {
	Version        int // 1 or 3
	Type           U8
	Code           U8
	MaxRespTime    U8
	GroupAddr      Addr
	NumSources     uint16
	SourceAddrBase uint32 // base address the v3 source list is derived from
}

// EGPConfig carries Exterior Gateway Protocol builder fields (RFC 827/888).
type EGPConfig struct {
	Type           U8
	Code           U8
	Status         U8
	AutonomousSys  U16
	SequenceNumber U16
}

// RIPConfig carries RIPv1 (RFC 1058) and RIPv2 (RFC 1388 + RFC 2082 auth)
// builder fields.
type RIPConfig struct {
	Command U8
	Domain  U16 // RIPv2 routing domain; unused by RIPv1
	Family  U16
	Tag     U16 // RIPv2 route tag; unused by RIPv1
	Address Addr
	Netmask Mask // RIPv2 only
	NextHop Addr // RIPv2 only
	Metric  U32

	Auth     bool // RIPv2 RFC 2082 MD5 auth trailer
	KeyID    U8
	Sequence U32
}

// DCCPConfig carries Datagram Congestion Control Protocol fields (RFC 4340).
type DCCPConfig struct {
	SrcPort U16
	DstPort U16
	Type    U8 // DCCP packet type (Request, Response, Data, ...)
	CsCov   U8
	SeqHi   U16
	SeqLo   U32
}

// RSVPConfig carries Resource ReSerVation Protocol fields (RFC 2205).
type RSVPConfig struct {
	MsgType  U8
	SendTTL  U8
	Flags    U8
	SessionDstAddr Addr
	SessionProtoID U8
	SessionDstPort U16
	HopAddr  Addr
	HopLIH   U32
}

// IPSecConfig carries AH (RFC 4302) and ESP (RFC 4303) fields. AH and ESP
// select which header the builder emits; both may be stacked (AH+ESP) per §2.
type IPSecConfig struct {
	AH  bool
	ESP bool

	AHSPI      U32
	AHSequence U32

	ESPSPI      U32
	ESPSequence U32
	ESPPadLen   uint8
}

// EIGRPConfig carries Enhanced Interior Gateway Routing Protocol fields.
type EIGRPConfig struct {
	OpCode     U8
	ASNumber   U16
	KValues    [6]U8
	HoldTime   U16
}

// OSPFConfig carries OSPFv2 (RFC 2328) builder fields. Type selects which
// packet the builder emits: Hello, DD, LSR, LSU, or LSAck.
type OSPFConfig struct {
	Type   U8 // 1=Hello 2=DD 3=LSR 4=LSU 5=LSAck
	AreaID Addr

	// Hello
	NetworkMask        Mask
	HelloInterval      U16
	Options            U8
	RtrPriority        U8
	RouterDeadInterval U32
	DesignatedRouter   Addr
	BackupDesignatedRouter Addr

	// DD
	InterfaceMTU U16
	DDSeqNumber  U32
	DDFlags      U8

	// LSR / LSU / LSAck: a single representative LSA/request entry is
	// emitted with randomised content, matching the original's "fire one
	// synthetic instance of the PDU" scope for an injector.
	LSType     U8
	LSID       Addr
	AdvRouter  Addr
	LSSeqNum   U32
}
