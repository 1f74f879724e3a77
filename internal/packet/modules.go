package packet

// Module names one builder against the protocol it claims on the wire
// (§3 "Modules table"). T50 mode (Config.IP.Protocol == ProtoT50) walks
// this table in order instead of calling a single builder directly.
type Module struct {
	Name     string
	Protocol uint8
	Build    Builder
}

// modulesTable is the ordered, read-only-after-init registry every
// protocol name and rotation resolves against (§4.7). Order matters: it
// is the rotation order in mixed/T50 mode. Terminated by a sentinel entry
// whose Build is nil, per the original's NULL-terminated module array.
var modulesTable = []Module{
	{Name: "icmp", Protocol: ProtoICMP, Build: BuildICMP},
	{Name: "igmp", Protocol: ProtoIGMP, Build: BuildIGMP},
	{Name: "tcp", Protocol: ProtoTCP, Build: BuildTCP},
	{Name: "udp", Protocol: ProtoUDP, Build: BuildUDP},
	{Name: "ip", Protocol: ProtoT50, Build: BuildIP},
	{Name: "egp", Protocol: ProtoEGP, Build: BuildEGP},
	{Name: "rip", Protocol: ProtoUDP, Build: BuildRIPv1},
	{Name: "ripv2", Protocol: ProtoUDP, Build: BuildRIPv2},
	{Name: "dccp", Protocol: ProtoDCCP, Build: BuildDCCP},
	{Name: "rsvp", Protocol: ProtoRSVP, Build: BuildRSVP},
	{Name: "ipsec", Protocol: ProtoAH, Build: BuildIPSec},
	{Name: "eigrp", Protocol: ProtoEIGRP, Build: BuildEIGRP},
	{Name: "ospf", Protocol: ProtoOSPF, Build: BuildOSPF},
	{Name: "", Protocol: 0, Build: nil}, // sentinel terminator
}

// Modules returns the live modules table, excluding the sentinel
// terminator. Callers must not mutate the returned slice's underlying
// array; the table is shared and read-only after package init (§5).
func Modules() []Module {
	return modulesTable[:len(modulesTable)-1]
}

// ModuleByName looks up a module by its configured name (§6, the CLI's
// --protocol flag), returning ok=false if no such module is registered.
func ModuleByName(name string) (Module, bool) {
	for _, m := range Modules() {
		if m.Name == name {
			return m, true
		}
	}
	return Module{}, false
}

// ModuleAt returns the module at the given rotation index modulo the
// table length, used by T50 mode to cycle through every registered
// protocol in order (§4.7, §4.8).
func ModuleAt(index int) Module {
	mods := Modules()
	return mods[index%len(mods)]
}

// NumModules is the rotation period in mixed/T50 mode.
func NumModules() int {
	return len(Modules())
}
