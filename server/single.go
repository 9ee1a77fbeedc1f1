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
	"net"
	"time"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/client"
	"github.com/sabouaram/netcore/conid"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/message"
	"github.com/sabouaram/netcore/netconf"
	"github.com/sabouaram/netcore/neterr"
	"github.com/sabouaram/netcore/protocol"
	"github.com/sabouaram/netcore/storage"
	"github.com/sabouaram/netcore/timer"
)

// Acceptor is the lean counterpart to Svc: it owns a bound listener and
// nothing else, handing each accepted connection straight back to the
// caller instead of holding it in a RoundRobinPool. A netcore/reactor uses
// this directly, since its own slab is what tracks accepted connections;
// Svc stays the right choice for a single busywait-driven goroutine that
// wants the pool's round-robin scan built in.
type Acceptor[SendT any, RecvT any] struct {
	ConId conid.ConId

	listener *listenerSocket

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

// UseStorage arms a so every connection accepted from this point on has
// its messages, raw, handed to store. Call this once, right after
// BindAcceptor, before handing the acceptor to a reactor.
func (a *Acceptor[SendT, RecvT]) UseStorage(store storage.Storage) {
	a.store = store
}

// UseHeartbeatTimer arms tm so every connection accepted from this point on
// registers its own heartbeat task on it (see Clt.StartHeartbeat). Call
// this once, right after BindAcceptor, before handing the acceptor to a
// reactor.
func (a *Acceptor[SendT, RecvT]) UseHeartbeatTimer(tm *timer.Timer) {
	a.heartbeat = tm
}

// UseHeartbeatTimerWithOptions behaves like UseHeartbeatTimer, except
// opts.HeartbeatInterval, when non-zero, overrides the interval every
// subsequently-accepted connection's protocol reports.
func (a *Acceptor[SendT, RecvT]) UseHeartbeatTimerWithOptions(tm *timer.Timer, opts netconf.ServerOptions) {
	a.heartbeat = tm
	a.heartbeatOverride = opts.HeartbeatInterval.Time()
}

// BindAcceptor listens on addr without preparing any admission pool.
// protoSeed, if non-nil, is cloned once per accepted connection via
// Protocol.Clone so each gets independent state, the same contract Bind
// uses for Svc.
func BindAcceptor[SendT any, RecvT any](
	addr string,
	framer frame.Framer,
	maxFrameSize int,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	protoSeed protocol.Protocol[SendT, RecvT],
	name string,
	noDelay bool,
) (*Acceptor[SendT, RecvT], error) {
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

	return &Acceptor[SendT, RecvT]{
		ConId:        conid.NewAcceptor(name, sock.localAddr, nil),
		listener:     sock,
		framer:       framer,
		maxFrameSize: maxFrameSize,
		messenger:    messenger,
		callback:     cb,
		protoSeed:    protoSeed,
		name:         name,
		noDelay:      noDelay,
	}, nil
}

// Fd exposes the listening socket's descriptor for poller registration.
func (a *Acceptor[SendT, RecvT]) Fd() int {
	return a.listener.fd
}

func (a *Acceptor[SendT, RecvT]) LocalAddr() net.Addr {
	return a.listener.localAddr
}

func (a *Acceptor[SendT, RecvT]) cloneProtocol() protocol.Protocol[SendT, RecvT] {
	if a.protoSeed == nil {
		return nil
	}
	return a.protoSeed.Clone()
}

// AcceptRecver makes exactly one accept attempt and, on success, wires the
// new connection into a Clt ready to hand to a reactor's slab. It never
// blocks: neterr.AcceptWouldBlock with a nil error means no peer was
// pending.
func (a *Acceptor[SendT, RecvT]) AcceptRecver() (neterr.AcceptStatus, *client.Clt[SendT, RecvT], error) {
	connFd, peer, err := a.listener.acceptNonblocking()
	if err != nil {
		if neterr.IsWouldBlock(err) {
			return neterr.AcceptWouldBlock, nil, nil
		}
		return neterr.AcceptWouldBlock, nil, err
	}

	id := conid.NewAcceptor(a.name, a.listener.localAddr, peer)
	clt, err := client.AdoptFd[SendT, RecvT](
		connFd, id, a.framer, a.maxFrameSize, a.messenger, a.callback, a.cloneProtocol(), a.noDelay,
	)
	if err != nil {
		return neterr.AcceptWouldBlock, nil, err
	}

	if a.store != nil {
		clt.UseStorage(a.store)
	}

	if a.heartbeat != nil {
		if a.heartbeatOverride > 0 {
			clt.StartHeartbeatOverride(a.heartbeat, a.heartbeatOverride)
		} else {
			clt.StartHeartbeat(a.heartbeat)
		}
	}

	return neterr.AcceptAccepted, clt, nil
}

func (a *Acceptor[SendT, RecvT]) Close() error {
	return a.listener.Close()
}
