package packet

// protoNoNextHeader is IANA protocol 59, "No Next Header" (RFC 2460),
// used here as the innermost next-header value: this injector carries no
// real payload protocol under AH/ESP.
const protoNoNextHeader = 59

// AH (RFC 4302 §2): Next Header, Payload Len, Reserved, SPI, Sequence,
// then an Integrity Check Value. The original fills the ICV with random
// bytes rather than a real HMAC -- there is no key material to authenticate
// with in an injector -- so icvLen is an arbitrary fixed size.
const (
	ahFixedLen = 12
	ahICVLen   = 12
	ahHeaderLen = ahFixedLen + ahICVLen
)

// ESP (RFC 4303 §2): SPI, Sequence Number, Payload Data, Padding, Pad
// Length, Next Header, ICV. Padding is kept at zero length (payload is
// pre-sized to a 4-byte multiple) to keep the layout simple and bit-exact.
const (
	espFixedLen     = 8
	espPayloadLen   = 8
	espTrailerLen   = 2
	espICVLen       = 12
	espHeaderLen    = espFixedLen + espPayloadLen + espTrailerLen + espICVLen
)

// BuildIPSec emits AH, ESP, or AH-then-ESP depending on cfg.IPSec (§2
// "IPSec/AH+ESP"). No pseudo-header: AH/ESP run directly over IP.
func BuildIPSec(buf *Buffer, cfg *Config, src *Source) int {
	l4Len := 0
	if cfg.IPSec.AH {
		l4Len += ahHeaderLen
	}
	if cfg.IPSec.ESP {
		l4Len += espHeaderLen
	}
	if l4Len == 0 {
		// Neither toggle set: default to AH+ESP stacked, matching the
		// module's name in the modules table.
		l4Len = ahHeaderLen + espHeaderLen
	}

	writeAH := cfg.IPSec.AH || !cfg.IPSec.ESP
	writeESP := cfg.IPSec.ESP || !cfg.IPSec.AH

	outerProto := uint8(ProtoAH)
	if !writeAH {
		outerProto = ProtoESP
	}

	layout := PrepareLayout(buf, cfg, src, outerProto, cfg.IP.DstAddr, l4Len, 0)
	data := buf.Bytes()

	off := layout.L4Off

	c := NewCursor(data, off)

	if writeAH {
		nextHeader := uint8(protoNoNextHeader)
		if writeESP {
			nextHeader = ProtoESP
		}
		c.PutU8(nextHeader)
		c.PutU8((ahHeaderLen / 4) - 2)
		c.PutU16(0) // reserved
		c.PutU32(cfg.IPSec.AHSPI.Resolve(src))
		c.PutU32(cfg.IPSec.AHSequence.Resolve(src))
		c.PutRandom(src, ahICVLen)
	}

	if writeESP {
		c.PutU32(cfg.IPSec.ESPSPI.Resolve(src))
		c.PutU32(cfg.IPSec.ESPSequence.Resolve(src))
		c.PutRandom(src, espPayloadLen)
		c.PutU8(0) // pad length
		c.PutU8(protoNoNextHeader)
		c.PutRandom(src, espICVLen)
	}

	layout.FinishGRE(buf)
	return layout.TotalSize
}
