// Package cli parses t50's command-line surface into a packet.Config and
// an inject.Options, the "external collaborator" the core consumes as a
// fully-populated bundle (§1, §6).
package cli

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/t50io/t50/internal/inject"
	"github.com/t50io/t50/internal/packet"
)

// Sentinel CLI validation errors (§7 "Configuration error").
var (
	ErrMissingDest       = errors.New("--dest is required")
	ErrInvalidDest       = errors.New("--dest is not a valid address or CIDR")
	ErrUnknownProtocol   = errors.New("--protocol names no registered module and is not T50")
	ErrThresholdAndFlood = errors.New("--threshold and --flood are mutually exclusive")
	ErrNonPositiveThresh = errors.New("--threshold must be a positive number of packets")
)

// Parsed bundles everything the injection loop needs: the resolved
// configuration, the loop's pacing options, and the optional metrics
// listen address (§6).
type Parsed struct {
	Config      packet.Config
	Options     inject.Options
	MetricsAddr string // empty disables the metrics HTTP server
}

// flagSet holds every raw CLI value before resolution into packet.Config
// types, grouped the way the per-protocol sections of the original CLI
// are grouped (§6 "per-protocol option groups").
type flagSet struct {
	dest      string
	threshold int32
	flood     bool
	turbo     bool
	protocol  string
	saddr     string
	tos       uint8
	ttl       uint8
	ipID      uint16
	fragOff   uint16
	bogusCsum bool
	metricsAddr string

	greEnabled bool
	greSeq     bool
	greKey     bool
	greSum     bool
	greSeqVal  uint32
	greKeyVal  uint32

	tcpSrcPort uint16
	tcpDstPort uint16
	tcpSeq     uint32
	tcpAck     uint32
	tcpWindow  uint16
	tcpUrgent  uint16
	tcpSyn     bool
	tcpAck_    bool
	tcpFin     bool
	tcpRst     bool
	tcpPsh     bool
	tcpUrg     bool
	tcpEce     bool
	tcpCwr     bool

	udpSrcPort uint16
	udpDstPort uint16

	icmpType   uint8
	icmpCode   uint8
	icmpID     uint16
	icmpSeq    uint16
	icmpGW     string

	igmpVersion    int
	igmpType       uint8
	igmpCode       uint8
	igmpGroup      string
	igmpNumSources uint16

	egpType   uint8
	egpCode   uint8
	egpStatus uint8
	egpAS     uint16
	egpSeq    uint16

	ripAuth  bool
	ripKeyID uint8

	dccpType  uint8
	dccpSrcPort uint16
	dccpDstPort uint16

	rsvpMsgType uint8

	ipsecAH  bool
	ipsecESP bool

	eigrpASNumber uint16

	ospfType uint8
	ospfArea string
}

// BuildCommand constructs the t50 root command. run is invoked once flags
// are parsed and validated into a Parsed bundle.
func BuildCommand(run func(*cobra.Command, Parsed) error) *cobra.Command {
	fs := &flagSet{}

	cmd := &cobra.Command{
		Use:   "t50",
		Short: "Mixed-protocol raw packet injector",
		Long: "t50 synthesises raw IP-layer datagrams for a selection of network protocols\n" +
			"and transmits them at high rate against an address range, either as a single\n" +
			"protocol or as a round-robin of every supported protocol (T50 mode).",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			parsed, err := resolve(fs)
			if err != nil {
				return err
			}
			return run(cmd, parsed)
		},
	}

	registerFlags(cmd, fs)
	return cmd
}

func registerFlags(cmd *cobra.Command, fs *flagSet) {
	f := cmd.Flags()

	f.StringVar(&fs.dest, "dest", "", "destination address or CIDR block, e.g. 192.0.2.0/24")
	f.Int32Var(&fs.threshold, "threshold", 1000, "number of datagrams to send before stopping")
	f.BoolVar(&fs.flood, "flood", false, "ignore --threshold and send until interrupted")
	f.BoolVar(&fs.turbo, "turbo", false, "enable the two-worker fan-out when eligible")
	f.StringVar(&fs.protocol, "protocol", "TCP", "protocol to send: one of the registered module names, or T50 to rotate all of them")
	f.BoolVar(&fs.bogusCsum, "bogus-csum", false, "replace every transport checksum with a random value")
	f.StringVar(&fs.metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on, e.g. :9100 (empty disables)")

	f.Uint8Var(&fs.tos, "tos", 0, "IP TOS byte (0 randomises)")
	f.Uint8Var(&fs.ttl, "ttl", 0, "IP TTL (0 randomises)")
	f.Uint16Var(&fs.ipID, "ip-id", 0, "IP identification field (0 randomises)")
	f.Uint16Var(&fs.fragOff, "frag-offset", 0, "IP fragment offset field (0 randomises)")
	f.StringVar(&fs.saddr, "saddr", "", "source address (empty randomises per packet)")

	f.BoolVar(&fs.greEnabled, "gre", false, "GRE-encapsulate the datagram (RFC 2784/2890)")
	f.BoolVar(&fs.greSeq, "gre-seq", false, "set the GRE sequence-number option")
	f.BoolVar(&fs.greKey, "gre-key", false, "set the GRE key option")
	f.BoolVar(&fs.greSum, "gre-sum", false, "set the GRE checksum option")
	f.Uint32Var(&fs.greSeqVal, "gre-seq-value", 0, "GRE sequence number (0 randomises)")
	f.Uint32Var(&fs.greKeyVal, "gre-key-value", 0, "GRE key (0 randomises)")

	f.Uint16Var(&fs.tcpSrcPort, "tcp-source-port", 0, "TCP source port (0 randomises)")
	f.Uint16Var(&fs.tcpDstPort, "tcp-dest-port", 0, "TCP destination port (0 randomises)")
	f.Uint32Var(&fs.tcpSeq, "tcp-sequence", 0, "TCP sequence number (0 randomises)")
	f.Uint32Var(&fs.tcpAck, "tcp-acknowledge", 0, "TCP acknowledgement number (0 randomises)")
	f.Uint16Var(&fs.tcpWindow, "tcp-window", 0, "TCP window (0 randomises)")
	f.Uint16Var(&fs.tcpUrgent, "tcp-urgent-pointer", 0, "TCP urgent pointer (0 randomises)")
	f.BoolVar(&fs.tcpSyn, "tcp-syn", false, "set the TCP SYN flag")
	f.BoolVar(&fs.tcpAck_, "tcp-ack", false, "set the TCP ACK flag")
	f.BoolVar(&fs.tcpFin, "tcp-fin", false, "set the TCP FIN flag")
	f.BoolVar(&fs.tcpRst, "tcp-rst", false, "set the TCP RST flag")
	f.BoolVar(&fs.tcpPsh, "tcp-psh", false, "set the TCP PSH flag")
	f.BoolVar(&fs.tcpUrg, "tcp-urg", false, "set the TCP URG flag")
	f.BoolVar(&fs.tcpEce, "tcp-ece", false, "set the TCP ECE flag")
	f.BoolVar(&fs.tcpCwr, "tcp-cwr", false, "set the TCP CWR flag")

	f.Uint16Var(&fs.udpSrcPort, "source-port", 0, "UDP source port (0 randomises)")
	f.Uint16Var(&fs.udpDstPort, "dest-port", 0, "UDP destination port (0 randomises)")

	f.Uint8Var(&fs.icmpType, "icmp-type", 0, "ICMP type (0 randomises)")
	f.Uint8Var(&fs.icmpCode, "icmp-code", 0, "ICMP code (0 randomises)")
	f.Uint16Var(&fs.icmpID, "icmp-id", 0, "ICMP identifier (0 randomises)")
	f.Uint16Var(&fs.icmpSeq, "icmp-sequence", 0, "ICMP sequence number (0 randomises)")
	f.StringVar(&fs.icmpGW, "icmp-gateway", "", "ICMP redirect gateway address (empty randomises)")

	f.IntVar(&fs.igmpVersion, "igmp-version", 3, "IGMP version to emit: 1 or 3")
	f.Uint8Var(&fs.igmpType, "igmp-type", 0, "IGMPv1 type (0 randomises); IGMPv3 always sends a membership report")
	f.Uint8Var(&fs.igmpCode, "igmp-code", 0, "IGMP code (not written by the IGMPv1 or IGMPv3 builder)")
	f.StringVar(&fs.igmpGroup, "igmp-group", "", "IGMP multicast group address (empty randomises)")
	f.Uint16Var(&fs.igmpNumSources, "igmp-num-sources", 0, "number of source addresses in an IGMPv3 group record")

	f.Uint8Var(&fs.egpType, "egp-type", 0, "EGP type (0 randomises)")
	f.Uint8Var(&fs.egpCode, "egp-code", 0, "EGP code (0 randomises)")
	f.Uint8Var(&fs.egpStatus, "egp-status", 0, "EGP status (0 randomises)")
	f.Uint16Var(&fs.egpAS, "egp-as", 0, "EGP autonomous system number (0 randomises)")
	f.Uint16Var(&fs.egpSeq, "egp-sequence", 0, "EGP sequence number (0 randomises)")

	f.BoolVar(&fs.ripAuth, "rip-auth", false, "append the RFC 2082 Keyed-MD5 authentication trailer (RIPv2 only)")
	f.Uint8Var(&fs.ripKeyID, "rip-key-id", 0, "RIPv2 authentication key ID (0 randomises)")

	f.Uint8Var(&fs.dccpType, "dccp-type", 0, "DCCP packet type (0 randomises)")
	f.Uint16Var(&fs.dccpSrcPort, "dccp-source-port", 0, "DCCP source port (0 randomises)")
	f.Uint16Var(&fs.dccpDstPort, "dccp-dest-port", 0, "DCCP destination port (0 randomises)")

	f.Uint8Var(&fs.rsvpMsgType, "rsvp-type", 0, "RSVP message type (0 randomises)")

	f.BoolVar(&fs.ipsecAH, "ipsec-ah", false, "emit an IPSec AH header (RFC 4302)")
	f.BoolVar(&fs.ipsecESP, "ipsec-esp", false, "emit an IPSec ESP header (RFC 4303)")

	f.Uint16Var(&fs.eigrpASNumber, "eigrp-as", 0, "EIGRP autonomous system number (0 randomises)")

	f.Uint8Var(&fs.ospfType, "ospf-type", 1, "OSPF packet type: 1=Hello 2=DD 3=LSR 4=LSU 5=LSAck")
	f.StringVar(&fs.ospfArea, "ospf-area", "0.0.0.0", "OSPF area ID")
}

// resolve validates the raw flag values and builds the Config/Options
// bundle the injection loop consumes (§7 "Configuration error").
func resolve(fs *flagSet) (Parsed, error) {
	if fs.dest == "" {
		return Parsed{}, ErrMissingDest
	}
	base, bits, err := parseCIDR(fs.dest)
	if err != nil {
		return Parsed{}, fmt.Errorf("%w: %w", ErrInvalidDest, err)
	}

	if fs.flood && fs.threshold != 1000 {
		// Explicit --threshold alongside --flood is almost certainly a
		// mistake; the two are mutually exclusive pacing modes (§3).
		return Parsed{}, ErrThresholdAndFlood
	}
	if !fs.flood && fs.threshold <= 0 {
		return Parsed{}, ErrNonPositiveThresh
	}

	protoName := strings.ToLower(fs.protocol)
	protocol := uint8(packet.ProtoT50)
	protoIndex := -1
	if protoName != "t50" {
		mod, ok := packet.ModuleByName(protoName)
		if !ok {
			return Parsed{}, fmt.Errorf("%w: %q", ErrUnknownProtocol, fs.protocol)
		}
		protocol = mod.Protocol
		for i, m := range packet.Modules() {
			if m.Name == mod.Name {
				protoIndex = i
				break
			}
		}
	}

	srcAddr, err := parseAddrOption(fs.saddr)
	if err != nil {
		return Parsed{}, fmt.Errorf("--saddr: %w", err)
	}
	icmpGateway, err := parseAddrOption(fs.icmpGW)
	if err != nil {
		return Parsed{}, fmt.Errorf("--icmp-gateway: %w", err)
	}
	ospfArea, err := parseAddrOption(fs.ospfArea)
	if err != nil {
		return Parsed{}, fmt.Errorf("--ospf-area: %w", err)
	}
	igmpGroup, err := parseAddrOption(fs.igmpGroup)
	if err != nil {
		return Parsed{}, fmt.Errorf("--igmp-group: %w", err)
	}

	cfg := packet.Config{
		IP: packet.IPConfig{
			DstAddr:   base,
			Bits:      bits,
			SrcAddr:   srcAddr,
			Protocol:  protocol,
			ProtoName: protoIndex,
			TOS:       packet.U8FromField(fs.tos),
			TTL:       packet.U8FromField(fs.ttl),
			ID:        packet.U16FromField(fs.ipID),
			FragOff:   packet.U16FromField(fs.fragOff),
		},
		GRE: packet.GREOptions{
			Encapsulated:  fs.greEnabled,
			Sequence:      fs.greSeq,
			Key:           fs.greKey,
			Checksum:      fs.greSum,
			SequenceValue: packet.U32FromField(fs.greSeqVal),
			KeyValue:      packet.U32FromField(fs.greKeyVal),
		},
		BogusChecksum: fs.bogusCsum,
		TCP: packet.TCPConfig{
			SrcPort: packet.U16FromField(fs.tcpSrcPort),
			DstPort: packet.U16FromField(fs.tcpDstPort),
			Seq:     packet.U32FromField(fs.tcpSeq),
			Ack:     packet.U32FromField(fs.tcpAck),
			Window:  packet.U16FromField(fs.tcpWindow),
			Urgent:  packet.U16FromField(fs.tcpUrgent),
			FlagSYN: fs.tcpSyn,
			FlagACK: fs.tcpAck_,
			FlagFIN: fs.tcpFin,
			FlagRST: fs.tcpRst,
			FlagPSH: fs.tcpPsh,
			FlagURG: fs.tcpUrg,
			FlagECE: fs.tcpEce,
			FlagCWR: fs.tcpCwr,
		},
		UDP: packet.UDPConfig{
			SrcPort: packet.U16FromField(fs.udpSrcPort),
			DstPort: packet.U16FromField(fs.udpDstPort),
		},
		ICMP: packet.ICMPConfig{
			Type:       packet.U8FromField(fs.icmpType),
			Code:       packet.U8FromField(fs.icmpCode),
			Identifier: packet.U16FromField(fs.icmpID),
			Sequence:   packet.U16FromField(fs.icmpSeq),
			Gateway:    icmpGateway,
		},
		IGMP: packet.IGMPConfig{
			Version:    fs.igmpVersion,
			Type:       packet.U8FromField(fs.igmpType),
			Code:       packet.U8FromField(fs.igmpCode),
			GroupAddr:  igmpGroup,
			NumSources: fs.igmpNumSources,
		},
		EGP: packet.EGPConfig{
			Type:           packet.U8FromField(fs.egpType),
			Code:           packet.U8FromField(fs.egpCode),
			Status:         packet.U8FromField(fs.egpStatus),
			AutonomousSys:  packet.U16FromField(fs.egpAS),
			SequenceNumber: packet.U16FromField(fs.egpSeq),
		},
		RIP: packet.RIPConfig{
			Command: packet.RandomU8(),
			Family:  packet.FixedU16(2), // AF_INET per RFC 1058 §3.1
			Address: packet.RandomAddr(),
			Netmask: packet.RandomMask(),
			NextHop: packet.RandomAddr(),
			Metric:  packet.RandomU32(),
			Auth:    fs.ripAuth,
			KeyID:   packet.U8FromField(fs.ripKeyID),
		},
		DCCP: packet.DCCPConfig{
			SrcPort: packet.U16FromField(fs.dccpSrcPort),
			DstPort: packet.U16FromField(fs.dccpDstPort),
			Type:    packet.U8FromField(fs.dccpType),
			CsCov:   packet.RandomU8(),
		},
		RSVP: packet.RSVPConfig{
			MsgType:        packet.U8FromField(fs.rsvpMsgType),
			SendTTL:        packet.RandomU8(),
			Flags:          packet.RandomU8(),
			SessionDstAddr: packet.RandomAddr(),
			SessionProtoID: packet.RandomU8(),
			SessionDstPort: packet.RandomU16(),
			HopAddr:        packet.RandomAddr(),
			HopLIH:         packet.RandomU32(),
		},
		IPSec: packet.IPSecConfig{
			AH:         fs.ipsecAH,
			ESP:        fs.ipsecESP,
			AHSPI:      packet.RandomU32(),
			AHSequence: packet.RandomU32(),
			ESPSPI:     packet.RandomU32(),
			ESPSequence: packet.RandomU32(),
		},
		EIGRP: packet.EIGRPConfig{
			OpCode:   packet.RandomU8(),
			ASNumber: packet.U16FromField(fs.eigrpASNumber),
			KValues:  [6]packet.U8{packet.RandomU8(), packet.RandomU8(), packet.RandomU8(), packet.RandomU8(), packet.RandomU8(), packet.RandomU8()},
			HoldTime: packet.RandomU16(),
		},
		OSPF: packet.OSPFConfig{
			Type:                   packet.FixedU8(fs.ospfType),
			AreaID:                 ospfArea,
			NetworkMask:            packet.RandomMask(),
			HelloInterval:          packet.RandomU16(),
			Options:                packet.RandomU8(),
			RtrPriority:            packet.RandomU8(),
			RouterDeadInterval:     packet.RandomU32(),
			DesignatedRouter:       packet.RandomAddr(),
			BackupDesignatedRouter: packet.RandomAddr(),
			InterfaceMTU:           packet.RandomU16(),
			DDSeqNumber:            packet.RandomU32(),
			DDFlags:                packet.RandomU8(),
			LSType:                 packet.RandomU8(),
			LSID:                   packet.RandomAddr(),
			AdvRouter:              packet.RandomAddr(),
			LSSeqNum:               packet.RandomU32(),
		},
	}

	opts := inject.Options{
		Threshold: fs.threshold,
		Flood:     fs.flood,
		Turbo:     fs.turbo,
	}

	return Parsed{Config: cfg, Options: opts, MetricsAddr: fs.metricsAddr}, nil
}

// parseCIDR accepts either a bare dotted-quad ("192.0.2.1", treated as
// /32) or a CIDR block ("192.0.2.0/24"), returning the base address in
// host order and the prefix length (§4.3).
func parseCIDR(s string) (uint32, uint8, error) {
	if !strings.Contains(s, "/") {
		addr, err := parseIPv4(s)
		if err != nil {
			return 0, 0, err
		}
		return addr, 32, nil
	}

	parts := strings.SplitN(s, "/", 2)
	addr, err := parseIPv4(parts[0])
	if err != nil {
		return 0, 0, err
	}
	bits, err := strconv.ParseUint(parts[1], 10, 8)
	if err != nil || bits > 32 {
		return 0, 0, fmt.Errorf("invalid CIDR prefix %q", parts[1])
	}
	return addr, uint8(bits), nil
}

// parseAddrOption resolves an address-typed flag using the "empty string
// requests randomisation" convention (the CLI-layer spelling of the
// caller-supplied-0 sentinel, §3).
func parseAddrOption(s string) (packet.Addr, error) {
	if s == "" {
		return packet.RandomAddr(), nil
	}
	addr, err := parseIPv4(s)
	if err != nil {
		return packet.Addr{}, err
	}
	return packet.FixedAddr(addr), nil
}

func parseIPv4(s string) (uint32, error) {
	ip := net.ParseIP(s)
	if ip == nil {
		return 0, fmt.Errorf("invalid address %q", s)
	}
	ip4 := ip.To4()
	if ip4 == nil {
		return 0, fmt.Errorf("%q is not an IPv4 address", s)
	}
	return uint32(ip4[0])<<24 | uint32(ip4[1])<<16 | uint32(ip4[2])<<8 | uint32(ip4[3]), nil
}
