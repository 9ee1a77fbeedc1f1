/*
 * MIT License
 *
 * Copyright (c) 2025 Nicolas JUHEL
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 *
 */

package client

import (
	"errors"
	"net"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/netcore/neterr"
)

// rawSocket is a frame.Source/frame.Sink backed directly by a duplicated,
// O_NONBLOCK file descriptor rather than by net.Conn.Read/Write. Reading
// through net.Conn would block the calling goroutine in the Go runtime's
// netpoller until data arrives; the frame package instead needs Read to
// return immediately with neterr.ErrWouldBlock when nothing is ready, so
// netcore/reactor can multiplex many connections on one goroutine. Dialing
// a *net.TCPConn keeps Go's connect()/DNS machinery, then handing raw
// control of the fd to this type is how both this package and
// netcore/reactor get a socket they can drive non-blocking.
type rawSocket struct {
	fd         int
	localAddr  net.Addr
	remoteAddr net.Addr
}

// newRawSocket dups conn's fd, switches the dup to non-blocking mode, sets
// TCP_NODELAY if requested, and closes the original *net.TCPConn (its fd
// would otherwise leak once Go's netpoller stops tracking it).
func newRawSocket(conn *net.TCPConn, noDelay bool) (*rawSocket, error) {
	raw, err := conn.SyscallConn()
	if err != nil {
		return nil, err
	}

	var dupFd int
	var dupErr error
	ctrlErr := raw.Control(func(fd uintptr) {
		dupFd, dupErr = unix.Dup(int(fd))
	})
	if ctrlErr != nil {
		return nil, ctrlErr
	}
	if dupErr != nil {
		return nil, dupErr
	}

	if err = unix.SetNonblock(dupFd, true); err != nil {
		_ = unix.Close(dupFd)
		return nil, err
	}
	if noDelay {
		_ = unix.SetsockoptInt(dupFd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	}

	s := &rawSocket{
		fd:         dupFd,
		localAddr:  conn.LocalAddr(),
		remoteAddr: conn.RemoteAddr(),
	}
	_ = conn.Close()
	return s, nil
}

// newRawSocketFromFd wraps an fd that a non-blocking accept already
// returned in O_NONBLOCK mode (netcore/server's Accept4 call with
// SOCK_NONBLOCK), so unlike newRawSocket there is no dup or SetNonblock
// call to make here — only the optional TCP_NODELAY option.
func newRawSocketFromFd(fd int, local net.Addr, peer net.Addr, noDelay bool) *rawSocket {
	if noDelay {
		_ = unix.SetsockoptInt(fd, unix.IPPROTO_TCP, unix.TCP_NODELAY, 1)
	}
	return &rawSocket{fd: fd, localAddr: local, remoteAddr: peer}
}

func (s *rawSocket) Fd() int { return s.fd }

func (s *rawSocket) LocalAddr() net.Addr  { return s.localAddr }
func (s *rawSocket) RemoteAddr() net.Addr { return s.remoteAddr }

func (s *rawSocket) Read(p []byte) (int, error) {
	for {
		n, err := unix.Read(s.fd, p)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
			return 0, neterr.ErrWouldBlock
		default:
			return 0, err
		}
	}
}

func (s *rawSocket) Write(p []byte) (int, error) {
	for {
		n, err := unix.Write(s.fd, p)
		switch {
		case err == nil:
			return n, nil
		case errors.Is(err, unix.EINTR):
			continue
		case errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK):
			return 0, neterr.ErrWouldBlock
		default:
			return 0, err
		}
	}
}

// ShutdownBoth implements frame.BothDirectionShutdown.
func (s *rawSocket) ShutdownBoth() error {
	return unix.Shutdown(s.fd, unix.SHUT_RDWR)
}

func (s *rawSocket) Close() error {
	return unix.Close(s.fd)
}
