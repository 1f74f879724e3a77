package packet

// IANA IP protocol numbers used by the builders (§3, §4.7).
const (
	ProtoICMP = 1
	ProtoIGMP = 2
	ProtoTCP  = 6
	ProtoEGP  = 8
	ProtoUDP  = 17
	ProtoGRE  = 47
	ProtoESP  = 50
	ProtoAH   = 51
	ProtoRSVP = 46
	ProtoEIGRP = 88
	ProtoOSPF  = 89
	ProtoDCCP  = 33

	// ProtoT50 is the sentinel meaning "rotate through every registered
	// module" (mixed/T50 mode), never a real wire value (§3, §4.7).
	ProtoT50 = 0xFF
)

// IPPORT well-known ports the builders default to when the caller leaves
// the port field as the randomise sentinel is NOT applied here -- these are
// the protocol's conventional port, used as the zero-value default where
// the original hard-codes it (e.g. RIP 520).
const (
	PortRIP = 520
)
