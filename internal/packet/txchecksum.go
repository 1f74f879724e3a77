package packet

// ResolveTransportChecksum returns computed unless cfg.BogusChecksum is
// set, in which case it returns a random 16-bit value instead (§3
// "bogus_csum", §4.6 step 5). The builder never recomputes a "valid"
// checksum from the buffer afterwards (§8 "Bogus checksum").
func ResolveTransportChecksum(cfg *Config, src *Source, computed uint16) uint16 {
	if cfg.BogusChecksum {
		return src.Uint16()
	}
	return computed
}
