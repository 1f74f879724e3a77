package inject

// sender is the subset of rawsock.Socket the injection loop depends on.
// Tests substitute a fake implementation so the loop's accounting and
// rotation logic can be exercised without a real raw socket, which
// requires root/CAP_NET_RAW.
type sender interface {
	SendTo(buf []byte, dst uint32) error
}
