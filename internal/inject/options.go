package inject

// Options carries the pacing knobs the injection loop reads every
// iteration, separate from packet.Config because they govern the loop
// itself rather than any one datagram (§3 "Pacing").
type Options struct {
	// Threshold is the number of datagrams to emit when Flood is false.
	Threshold int32

	// Flood, when set, makes the loop ignore Threshold and run until the
	// context is cancelled.
	Flood bool

	// Turbo requests the two-worker fan-out when the threshold is large
	// enough to benefit (§4.9).
	Turbo bool
}
