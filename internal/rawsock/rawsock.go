//go:build linux

// Package rawsock wraps the IPv4 raw socket each worker sends datagrams
// through (§4.4). Every builder produces a complete IP header, so the
// socket is opened with IP_HDRINCL and the kernel is told to leave the
// header alone.
package rawsock

import (
	"fmt"
	"net"
	"sync"

	"golang.org/x/sys/unix"
)

// MinSendBuffer is the minimum SO_SNDBUF this package will request;
// small kernel defaults make sustained high packet rates unreliable
// under contention (§4.4, §5).
const MinSendBuffer = 64 * 1024

// Socket is a single IPv4 raw socket configured for header-included
// sends. SendTo and Close are serialised by a mutex, so one Socket is
// shared by both turbo workers of the injection loop (§5 "shared state").
type Socket struct {
	fd     int
	mu     sync.Mutex
	closed bool
}

// Open creates and configures one IPv4 raw socket: AF_INET/SOCK_RAW with
// IPPROTO_RAW, IP_HDRINCL set so the kernel transmits the header this
// package's caller already built, SO_BROADCAST so directed-broadcast
// destinations are not silently rejected, and SO_SNDBUF raised to at
// least MinSendBuffer (§4.4).
func Open() (*Socket, error) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_RAW, unix.IPPROTO_RAW)
	if err != nil {
		return nil, fmt.Errorf("open raw socket: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.IPPROTO_IP, unix.IP_HDRINCL, 1); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("set IP_HDRINCL: %w", err)
	}

	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_BROADCAST, 1); err != nil {
		_ = unix.Close(fd)
		return nil, fmt.Errorf("set SO_BROADCAST: %w", err)
	}

	if err := growSendBuffer(fd); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	return &Socket{fd: fd}, nil
}

// growSendBuffer raises SO_SNDBUF to MinSendBuffer if the kernel's
// current default is smaller, leaving a larger existing value alone.
func growSendBuffer(fd int) error {
	cur, err := unix.GetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SNDBUF)
	if err != nil {
		return fmt.Errorf("get SO_SNDBUF: %w", err)
	}
	if cur >= MinSendBuffer {
		return nil
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_SNDBUF, MinSendBuffer); err != nil {
		return fmt.Errorf("set SO_SNDBUF: %w", err)
	}
	return nil
}

// SendTo transmits buf verbatim to dst (host order IPv4 address); the
// kernel does not touch the header because IP_HDRINCL is set (§4.4).
func (s *Socket) SendTo(buf []byte, dst uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return unix.EBADF
	}

	addr := unix.SockaddrInet4{}
	addr.Addr = addrBytes(dst)

	if err := unix.Sendto(s.fd, buf, 0, &addr); err != nil {
		return fmt.Errorf("sendto %s: %w", net.IPv4(byte(dst>>24), byte(dst>>16), byte(dst>>8), byte(dst)), err)
	}
	return nil
}

// Close releases the underlying file descriptor. Close is idempotent.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true

	if err := unix.Close(s.fd); err != nil {
		return fmt.Errorf("close raw socket: %w", err)
	}
	return nil
}

func addrBytes(v uint32) [4]byte {
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}
