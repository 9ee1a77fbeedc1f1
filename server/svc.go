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

// Package server provides Svc: it binds a listener and fans accepted
// connections into a bounded RoundRobinPool, exposing
// pool-wide recv/send operations that scan connections in deterministic
// rotation instead of per-connection channels or goroutines.
package server

import (
	"fmt"
	"net"
	"time"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/client"
	"github.com/sabouaram/netcore/conid"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/message"
	"github.com/sabouaram/netcore/netconf"
	"github.com/sabouaram/netcore/neterr"
	"github.com/sabouaram/netcore/pool"
	"github.com/sabouaram/netcore/protocol"
	"github.com/sabouaram/netcore/storage"
	"github.com/sabouaram/netcore/timer"
)

// svcConn bundles one accepted connection with the admission-gate handle
// it holds; the pool keeps them paired so RemoveLastUsed always frees the
// gate slot at the same time it drops the connection.
type svcConn[SendT any, RecvT any] struct {
	clt     *client.Clt[SendT, RecvT]
	barrier *pool.ConnectionBarrier
}

// Svc is the acceptor side: one bound listener, a bounded pool of
// accepted connections, and the template Protocol each accepted
// connection clones from so a fresh connection never shares the
// template's connection-scoped state.
type Svc[SendT any, RecvT any] struct {
	ConId conid.ConId

	listener *listenerSocket
	gate     *pool.AcceptorConnectionGate
	conns    *pool.RoundRobinPool[*svcConn[SendT, RecvT]]

	framer       frame.Framer
	maxFrameSize int
	messenger    message.Messenger[SendT, RecvT]
	callback     callback.CallbackRecvSend[SendT, RecvT]
	protoSeed    protocol.Protocol[SendT, RecvT]

	name    string
	noDelay bool

	heartbeat         *timer.Timer
	heartbeatOverride time.Duration

	store storage.Storage
}

// Bind listens on addr and prepares a pool with room for maxConnections
// accepted connections. protoSeed, if non-nil, is cloned once per accepted
// connection via Protocol.Clone so each gets independent state.
func Bind[SendT any, RecvT any](
	addr string,
	maxConnections int,
	framer frame.Framer,
	maxFrameSize int,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	protoSeed protocol.Protocol[SendT, RecvT],
	name string,
	noDelay bool,
) (*Svc[SendT, RecvT], error) {
	tcpAddr, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		return nil, err
	}
	ln, err := net.ListenTCP("tcp", tcpAddr)
	if err != nil {
		return nil, err
	}

	sock, err := newListenerSocket(ln)
	if err != nil {
		return nil, err
	}

	return &Svc[SendT, RecvT]{
		ConId:        conid.NewAcceptor(name, sock.localAddr, nil),
		listener:     sock,
		gate:         pool.NewAcceptorConnectionGate(maxConnections),
		conns:        pool.New[*svcConn[SendT, RecvT]](maxConnections),
		framer:       framer,
		maxFrameSize: maxFrameSize,
		messenger:    messenger,
		callback:     cb,
		protoSeed:    protoSeed,
		name:         name,
		noDelay:      noDelay,
	}, nil
}

func (s *Svc[SendT, RecvT]) Len() int            { return s.conns.Len() }
func (s *Svc[SendT, RecvT]) MaxConnections() int { return s.conns.MaxCapacity() }

// UseHeartbeatTimer arms tm so every connection accepted from this point on
// registers its own heartbeat task on it (see Clt.StartHeartbeat). Call
// this once, right after Bind, before the first Accept.
func (s *Svc[SendT, RecvT]) UseHeartbeatTimer(tm *timer.Timer) {
	s.heartbeat = tm
}

// UseHeartbeatTimerWithOptions behaves like UseHeartbeatTimer, except
// opts.HeartbeatInterval, when non-zero, overrides the interval every
// subsequently-accepted connection's protocol reports.
func (s *Svc[SendT, RecvT]) UseHeartbeatTimerWithOptions(tm *timer.Timer, opts netconf.ServerOptions) {
	s.heartbeat = tm
	s.heartbeatOverride = opts.HeartbeatInterval.Time()
}

// UseStorage arms s so every connection accepted from this point on has
// its messages, raw, handed to store. Call this once, right after Bind,
// before the first Accept.
func (s *Svc[SendT, RecvT]) UseStorage(store storage.Storage) {
	s.store = store
}

func (s *Svc[SendT, RecvT]) cloneProtocol() protocol.Protocol[SendT, RecvT] {
	if s.protoSeed == nil {
		return nil
	}
	return s.protoSeed.Clone()
}

// AcceptNonblocking makes exactly one accept attempt.
// It refuses to even attempt accept() once the pool is at capacity, so a
// pending connection stays queued in the OS backlog for a later call
// instead of being accepted only to be dropped immediately.
func (s *Svc[SendT, RecvT]) AcceptNonblocking() (neterr.AcceptStatus, error) {
	if err := s.gate.Increment(); err != nil {
		return neterr.AcceptWouldBlock, nil
	}

	connFd, peer, err := s.listener.acceptNonblocking()
	if err != nil {
		s.gate.Decrement()
		if neterr.IsWouldBlock(err) {
			return neterr.AcceptWouldBlock, nil
		}
		return neterr.AcceptWouldBlock, err
	}

	barrier := s.gate.NewConnectionBarrier()
	id := conid.NewAcceptor(s.name, s.listener.localAddr, peer)

	clt, err := client.AdoptFd[SendT, RecvT](
		connFd, id, s.framer, s.maxFrameSize, s.messenger, s.callback, s.cloneProtocol(), s.noDelay,
	)
	if err != nil {
		barrier.Release()
		return neterr.AcceptWouldBlock, err
	}

	if err := s.conns.Add(&svcConn[SendT, RecvT]{clt: clt, barrier: barrier}); err != nil {
		barrier.Release()
		_ = clt.Close()
		return neterr.AcceptWouldBlock, err
	}

	if s.store != nil {
		clt.UseStorage(s.store)
	}

	if s.heartbeat != nil {
		if s.heartbeatOverride > 0 {
			clt.StartHeartbeatOverride(s.heartbeat, s.heartbeatOverride)
		} else {
			clt.StartHeartbeat(s.heartbeat)
		}
	}

	return neterr.AcceptAccepted, nil
}

// AcceptBusywaitTimeout spins on AcceptNonblocking until one connection is
// accepted or timeout elapses.
func (s *Svc[SendT, RecvT]) AcceptBusywaitTimeout(timeout time.Duration) (neterr.AcceptStatus, error) {
	deadline := time.Now().Add(timeout)
	for {
		status, err := s.AcceptNonblocking()
		if err != nil || status == neterr.AcceptAccepted {
			return status, err
		}
		if time.Now().After(deadline) {
			return neterr.AcceptWouldBlock, nil
		}
	}
}

// errNotConnected signals "the pool currently holds no connections",
// returned by both RecvBusywait and current-connection sends once the
// pool has drained.
func errNotConnected() error {
	return neterr.ErrorNotConnected.Error(fmt.Errorf("netcore: connection pool is empty"))
}

// removeCurrent evicts the connection RoundRobin/Current last pointed at:
// closes its socket and releases its admission-gate slot together so the
// two never drift out of sync.
func (s *Svc[SendT, RecvT]) removeCurrent() {
	removed := s.conns.RemoveLastUsed()
	_ = removed.clt.Close()
	removed.barrier.Release()
}

// RecvBusywait scans the pool in round-robin order,
// returning the first message any connection yields. A connection that
// errors or reports RecvClosed is evicted from the pool before the scan
// continues. It returns a NotConnected error once the pool is empty.
func (s *Svc[SendT, RecvT]) RecvBusywait() (RecvT, neterr.RecvStatus, error) {
	for {
		if s.conns.Len() == 0 {
			var zero RecvT
			return zero, neterr.RecvClosed, errNotConnected()
		}

		connPtr, ok := s.conns.RoundRobin()
		if !ok {
			var zero RecvT
			return zero, neterr.RecvClosed, errNotConnected()
		}

		msg, status, err := (*connPtr).clt.Recv()
		if err != nil || status == neterr.RecvClosed {
			s.removeCurrent()
			continue
		}
		if status == neterr.RecvCompleted {
			return msg, status, nil
		}
		// WouldBlock on this connection: the rotation already advanced,
		// so the next loop iteration tries the following connection.
	}
}

// SendCurrentBusywait sends msg on whichever connection RecvBusywait most
// recently pointed the rotation at (AcceptNonblocking does not move it), the natural
// "reply to whoever just spoke" pattern for a request/reply protocol.
func (s *Svc[SendT, RecvT]) SendCurrentBusywait(msg SendT) error {
	connPtr, ok := s.conns.Current()
	if !ok {
		return errNotConnected()
	}
	return (*connPtr).clt.Sender.SendBusywait(msg)
}

// Close tears down the listener and every pooled connection.
func (s *Svc[SendT, RecvT]) Close() error {
	for s.conns.Len() > 0 {
		if _, ok := s.conns.RoundRobin(); !ok {
			break
		}
		s.removeCurrent()
	}
	return s.listener.Close()
}
