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

// Package client provides the initiator side of a
// connection (Clt), split into its CltRecver/CltSender halves, each
// wrapping a netcore/message pair with the callback and protocol hooks
// required around every recv/send.
package client

import (
	"fmt"
	"net"
	"time"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/conid"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/message"
	"github.com/sabouaram/netcore/neterr"
	"github.com/sabouaram/netcore/protocol"
	"github.com/sabouaram/netcore/storage"
)

// CltRecver is the read half of a Clt: every successfully deserialized
// message passes through the protocol's OnRecv hook and then the
// callback's OnRecv, in that order, so the protocol can observe a message
// (e.g. mark itself connected on a login reply) before user code sees it.
type CltRecver[SendT any, RecvT any] struct {
	ConId    conid.ConId
	msgRecv  *message.MessageRecver[SendT, RecvT]
	callback callback.CallbackRecv[RecvT]
	proto    protocol.ProtocolCore[SendT, RecvT]
}

// UseStorage arms r's underlying MessageRecver so every raw frame it reads
// is also handed to s before deserialization.
func (r *CltRecver[SendT, RecvT]) UseStorage(s storage.Storage) {
	r.msgRecv.UseStorage(s)
}

func (r *CltRecver[SendT, RecvT]) Recv() (RecvT, neterr.RecvStatus, error) {
	msg, status, err := r.msgRecv.Recv()
	if err != nil || status != neterr.RecvCompleted {
		return msg, status, err
	}
	if r.proto != nil {
		r.proto.OnRecv(r.ConId, &msg)
	}
	if r.callback != nil {
		r.callback.OnRecv(r.ConId, &msg)
	}
	return msg, status, nil
}

// RecvBusywaitTimeout spins on Recv, until a message
// arrives, an error occurs, or timeout elapses, in which case it returns
// ok=false. This is what drives a login handshake's reply wait.
func (r *CltRecver[SendT, RecvT]) RecvBusywaitTimeout(timeout time.Duration) (RecvT, bool, error) {
	deadline := time.Now().Add(timeout)
	for {
		msg, status, err := r.Recv()
		if err != nil {
			return msg, false, err
		}
		if status == neterr.RecvCompleted {
			return msg, true, nil
		}
		if time.Now().After(deadline) {
			var zero RecvT
			return zero, false, nil
		}
	}
}

// CltSender is the write half of a Clt. Every Send runs the protocol's
// OnSend hook before serialization, then OnWouldBlock/OnError/OnSent
// after, mirroring the order the callback is notified in.
type CltSender[SendT any, RecvT any] struct {
	ConId    conid.ConId
	msgSend  *message.MessageSender[SendT, RecvT]
	callback callback.CallbackSend[SendT]
	proto    protocol.ProtocolCore[SendT, RecvT]
}

// UseStorage arms s's underlying MessageSender so every raw frame it
// writes is also handed to store once the write completes.
func (s *CltSender[SendT, RecvT]) UseStorage(store storage.Storage) {
	s.msgSend.UseStorage(store)
}

func (s *CltSender[SendT, RecvT]) Send(msg SendT) (neterr.SendStatus, error) {
	if s.proto != nil {
		s.proto.OnSend(s.ConId, &msg)
	}
	if s.callback != nil {
		s.callback.OnSend(s.ConId, &msg)
	}

	status, err := s.msgSend.Send(msg)
	if err != nil {
		if s.proto != nil {
			s.proto.OnError(s.ConId, &msg, err)
		}
		if s.callback != nil {
			s.callback.OnFail(s.ConId, &msg, err)
		}
		return status, err
	}
	if status == neterr.SendWouldBlock {
		if s.proto != nil {
			s.proto.OnWouldBlock(s.ConId, &msg)
		}
		return status, nil
	}

	if s.proto != nil {
		s.proto.OnSent(s.ConId, &msg)
	}
	if s.callback != nil {
		s.callback.OnSent(s.ConId, &msg)
	}
	return status, nil
}

// SendBusywait spins on Send until it completes or fails. The handshaker
// and busywaitSender adapters below wrap it as protocol.Sender.Send, so a
// Protocol's OnConnect/SendReply/SendHeartBeat hooks can drive this
// CltSender.
func (s *CltSender[SendT, RecvT]) SendBusywait(msg SendT) error {
	for {
		status, err := s.Send(msg)
		if err != nil {
			return err
		}
		if status == neterr.SendCompleted {
			return nil
		}
	}
}

// Clt is a connected, split client: Recv/Send are driven by the caller
// (directly, busywait-style, or via netcore/reactor).
type Clt[SendT any, RecvT any] struct {
	ConId  conid.ConId
	Recver *CltRecver[SendT, RecvT]
	Sender *CltSender[SendT, RecvT]

	socket *rawSocket
	proto  protocol.Protocol[SendT, RecvT]
}

// UseStorage arms both halves of c so every message it recvs or sends is
// also handed, raw, to s. Optional: a Clt with no Storage armed runs
// exactly as it did before this existed.
func (c *Clt[SendT, RecvT]) UseStorage(s storage.Storage) {
	c.Recver.UseStorage(s)
	c.Sender.UseStorage(s)
}

// Recv reads one message and runs Protocol.SendReply immediately after,
// mirroring the original's restriction of send_reply to a combined
// recver/sender: CltRecver alone has no Sender to reply through, so the
// hook belongs on Clt instead.
func (c *Clt[SendT, RecvT]) Recv() (RecvT, neterr.RecvStatus, error) {
	msg, status, err := c.Recver.Recv()
	if err == nil && status == neterr.RecvCompleted && c.proto != nil {
		if replyErr := c.proto.SendReply(msg, busywaitSender[SendT, RecvT]{sender: c.Sender}); replyErr != nil {
			return msg, status, replyErr
		}
	}
	return msg, status, err
}

func (c *Clt[SendT, RecvT]) Send(msg SendT) (neterr.SendStatus, error) {
	return c.Sender.Send(msg)
}

// RecvBusywaitTimeout and handshakeSend back the handshaker adapter below,
// which wireClt wraps around the freshly built Clt and passes to
// Protocol.OnConnect; *Clt alone does not satisfy protocol.Handshaker.
func (c *Clt[SendT, RecvT]) RecvBusywaitTimeout(timeout time.Duration) (RecvT, bool, error) {
	return c.Recver.RecvBusywaitTimeout(timeout)
}

func (c *Clt[SendT, RecvT]) handshakeSend(msg SendT) error {
	return c.Sender.SendBusywait(msg)
}

func (c *Clt[SendT, RecvT]) Close() error {
	return c.socket.Close()
}

// Fd exposes the underlying file descriptor so a reactor can register
// this connection with a poller directly instead of driving it busywait.
func (c *Clt[SendT, RecvT]) Fd() int {
	return c.socket.Fd()
}

// OnEvent drains exactly one message for a poll-driven caller: the message
// itself reaches application code through the callback's OnRecv hook (Recv
// already runs that before returning), so OnEvent only reports whether the
// socket had something ready, nothing to read, or is done for good. A
// reactor calls this repeatedly while it reports Completed, since readiness
// from the poller is not guaranteed to refire for data already buffered.
func (c *Clt[SendT, RecvT]) OnEvent() (neterr.PollEventStatus, error) {
	_, status, err := c.Recv()
	if err != nil {
		return neterr.PollTerminate, err
	}
	switch status {
	case neterr.RecvCompleted:
		return neterr.PollCompleted, nil
	case neterr.RecvClosed:
		return neterr.PollTerminate, nil
	default:
		return neterr.PollWouldBlock, nil
	}
}

// handshaker adapts Clt to protocol.Handshaker[SendT, RecvT] without
// exposing a plain Send(SendT) error method on Clt itself (Send there
// returns a status, matching CltSender's contract instead).
type handshaker[SendT any, RecvT any] struct {
	clt *Clt[SendT, RecvT]
}

func (h handshaker[SendT, RecvT]) Send(msg SendT) error {
	return h.clt.handshakeSend(msg)
}

// busywaitSender adapts a CltSender to protocol.Sender[SendT] for the
// SendReply/SendHeartBeat hooks, the same way handshaker adapts a whole Clt
// for OnConnect.
type busywaitSender[SendT any, RecvT any] struct {
	sender *CltSender[SendT, RecvT]
}

func (b busywaitSender[SendT, RecvT]) Send(msg SendT) error {
	return b.sender.SendBusywait(msg)
}

func (h handshaker[SendT, RecvT]) RecvBusywaitTimeout(timeout time.Duration) (RecvT, bool, error) {
	return h.clt.RecvBusywaitTimeout(timeout)
}

// Connect dials addr, retrying every retryAfter until connectTimeout
// elapses, then wires the connection into a Clt and runs proto.OnConnect
// as a handshake before returning it. connectTimeout must exceed
// retryAfter or Connect returns immediately with an error instead of
// looping forever on a single attempt.
func Connect[SendT any, RecvT any](
	addr string,
	connectTimeout time.Duration,
	retryAfter time.Duration,
	name string,
	framer frame.Framer,
	maxFrameSize int,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	proto protocol.Protocol[SendT, RecvT],
	noDelay bool,
) (*Clt[SendT, RecvT], error) {
	if connectTimeout <= retryAfter {
		return nil, fmt.Errorf("netcore: connect timeout %s must exceed retry_after %s", connectTimeout, retryAfter)
	}

	id := conid.NewInitiator(name, nil, nil)
	deadline := time.Now().Add(connectTimeout)

	for {
		remaining := time.Until(deadline)
		if remaining <= 0 {
			break
		}

		dialTimeout := remaining
		if dialTimeout > retryAfter {
			dialTimeout = retryAfter
		}

		conn, err := net.DialTimeout("tcp", addr, dialTimeout)
		if err != nil {
			time.Sleep(retryAfter)
			continue
		}

		tcpConn, ok := conn.(*net.TCPConn)
		if !ok {
			_ = conn.Close()
			return nil, fmt.Errorf("netcore: %s did not yield a TCP connection", addr)
		}

		id = id.WithLocal(tcpConn.LocalAddr()).WithPeer(tcpConn.RemoteAddr())
		return fromConn(id, tcpConn, framer, maxFrameSize, messenger, cb, proto, noDelay)
	}

	return nil, neterr.ErrorTimedOut.Error(fmt.Errorf("netcore: %s %s connect timeout after %s", id, addr, connectTimeout))
}

func fromConn[SendT any, RecvT any](
	id conid.ConId,
	tcpConn *net.TCPConn,
	framer frame.Framer,
	maxFrameSize int,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	proto protocol.Protocol[SendT, RecvT],
	noDelay bool,
) (*Clt[SendT, RecvT], error) {
	socket, err := newRawSocket(tcpConn, noDelay)
	if err != nil {
		return nil, err
	}
	return wireClt(id, socket, framer, maxFrameSize, messenger, cb, proto)
}

// AdoptFd wires an already-accepted, already-non-blocking file descriptor
// (as handed back by an Accept4(..., SOCK_NONBLOCK) in netcore/server)
// into a Clt, running proto.OnConnect the same way Connect does for the
// initiator side. noDelay, if set, applies TCP_NODELAY to fd.
func AdoptFd[SendT any, RecvT any](
	fd int,
	id conid.ConId,
	framer frame.Framer,
	maxFrameSize int,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	proto protocol.Protocol[SendT, RecvT],
	noDelay bool,
) (*Clt[SendT, RecvT], error) {
	local, _ := id.Local()
	peer, _ := id.Peer()
	socket := newRawSocketFromFd(fd, local, peer, noDelay)
	return wireClt(id, socket, framer, maxFrameSize, messenger, cb, proto)
}

func wireClt[SendT any, RecvT any](
	id conid.ConId,
	socket *rawSocket,
	framer frame.Framer,
	maxFrameSize int,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	proto protocol.Protocol[SendT, RecvT],
) (*Clt[SendT, RecvT], error) {
	reader := frame.NewFrameReader(socket, framer, maxFrameSize)
	writer := frame.NewFrameWriter(socket)

	msgRecver := message.NewMessageRecver[SendT, RecvT](id, reader, messenger)
	msgSender := message.NewMessageSender[SendT, RecvT](id, writer, messenger)

	clt := &Clt[SendT, RecvT]{
		ConId:  id,
		socket: socket,
		proto:  proto,
		Recver: &CltRecver[SendT, RecvT]{ConId: id, msgRecv: msgRecver, callback: cb, proto: proto},
		Sender: &CltSender[SendT, RecvT]{ConId: id, msgSend: msgSender, callback: cb, proto: proto},
	}

	if proto != nil {
		if err := proto.OnConnect(handshaker[SendT, RecvT]{clt: clt}); err != nil {
			_ = socket.Close()
			return nil, err
		}
	}

	return clt, nil
}
