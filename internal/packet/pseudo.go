package packet

import "encoding/binary"

// PseudoHeaderLen is the on-the-wire-but-never-transmitted span a transport
// checksum is computed over in addition to the real header+payload (§3
// "Pseudo-header", §4.2).
const PseudoHeaderLen = 12

// PseudoHeader is {saddr, daddr, zero, protocol, length} in network byte
// order (§3). It is appended after the payload purely to feed Checksum;
// its bytes must land beyond the IP total-length field so they are never
// sent on the wire (§8 "Pseudo-header non-transmission").
type PseudoHeader struct {
	SrcAddr  uint32
	DstAddr  uint32
	Protocol uint8
	Length   uint16
}

// Put writes the pseudo-header into dst (which must be at least
// PseudoHeaderLen bytes) in network byte order.
func (p PseudoHeader) Put(dst []byte) {
	binary.BigEndian.PutUint32(dst[0:4], p.SrcAddr)
	binary.BigEndian.PutUint32(dst[4:8], p.DstAddr)
	dst[8] = 0
	dst[9] = p.Protocol
	binary.BigEndian.PutUint16(dst[10:12], p.Length)
}
