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

package server

import (
	"errors"
	"net"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/netcore/neterr"
)

// listenerSocket is the accept-side twin of netcore/client's rawSocket: a
// duplicated, O_NONBLOCK listening fd, driven directly with
// unix.Accept4(..., SOCK_NONBLOCK) so a Svc.AcceptNonblocking or
// Acceptor.AcceptRecver call never parks the calling goroutine waiting for
// a peer.
type listenerSocket struct {
	fd        int
	localAddr net.Addr
}

func newListenerSocket(ln *net.TCPListener) (*listenerSocket, error) {
	raw, err := ln.SyscallConn()
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

	local := ln.Addr()
	_ = ln.Close()
	return &listenerSocket{fd: dupFd, localAddr: local}, nil
}

// acceptNonblocking attempts exactly one accept. It returns
// neterr.ErrWouldBlock when no connection is currently pending.
func (l *listenerSocket) acceptNonblocking() (connFd int, peer net.Addr, err error) {
	connFd, sa, err := unix.Accept4(l.fd, unix.SOCK_NONBLOCK)
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EWOULDBLOCK) {
			return 0, nil, neterr.ErrWouldBlock
		}
		return 0, nil, err
	}
	return connFd, sockaddrToAddr(sa), nil
}

func (l *listenerSocket) Close() error {
	return unix.Close(l.fd)
}

func sockaddrToAddr(sa unix.Sockaddr) net.Addr {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return &net.TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	case *unix.SockaddrInet6:
		return &net.TCPAddr{IP: net.IP(a.Addr[:]), Port: a.Port}
	default:
		return nil
	}
}
