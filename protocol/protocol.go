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

// Package protocol provides the handshake/heartbeat/
// auto-reply contract a Clt or Svc connection drives around its
// MessageRecver/MessageSender pair, plus the connection-scoped state
// container every per-connection Protocol clone gets its own copy of.
package protocol

import (
	"time"

	"github.com/sabouaram/netcore/conid"
)

// Sender is the minimal surface ProtocolCore/Protocol hooks need from a
// CltSender to reply or heartbeat, without importing netcore/client (which
// imports this package) and creating a cycle.
type Sender[SendT any] interface {
	Send(msg SendT) error
}

// ProtocolCore is the required half. Every method has an
// empty default except IsConnected, whose zero value is deliberately
// useless: a protocol that never overrides it is not making a real
// liveness claim.
type ProtocolCore[SendT any, RecvT any] interface {
	// OnConnect runs synchronously right after the socket connects/accepts,
	// with con positioned to drive Send/RecvBusywaitTimeout for a
	// handshake. A returned error aborts the connect/accept.
	OnConnect(con Handshaker[SendT, RecvT]) error

	// IsConnected reports whether the implementer still considers the
	// connection logically alive (distinct from the socket being open).
	IsConnected() bool

	OnSend(who conid.ConId, msg *SendT)
	OnWouldBlock(who conid.ConId, msg *SendT)
	OnError(who conid.ConId, msg *SendT, err error)
	OnSent(who conid.ConId, msg *SendT)
	OnRecv(who conid.ConId, msg *RecvT)

	// OnDisconnect is consulted when a sender is about to close. A
	// returned ok=true asks the sender to attempt one best-effort send of
	// msg within timeout before the socket actually closes.
	OnDisconnect() (timeout time.Duration, msg SendT, ok bool)
}

// Handshaker is the minimal Clt-shaped surface OnConnect drives.
type Handshaker[SendT any, RecvT any] interface {
	Sender[SendT]
	RecvBusywaitTimeout(t time.Duration) (RecvT, bool, error)
}

// Protocol extends ProtocolCore with auto-reply and heartbeat hooks.
// Cloning a Protocol (Svc accepting a new connection) must yield fresh
// per-connection state — see State below for the container that makes
// this automatic.
type Protocol[SendT any, RecvT any] interface {
	ProtocolCore[SendT, RecvT]

	SendReply(msg RecvT, sender Sender[SendT]) error
	HeartBeatInterval() (time.Duration, bool)
	SendHeartBeat(sender Sender[SendT]) error

	// Clone returns a copy suitable for a brand new connection: any state
	// held in a State[T] field is deep-copied (see State.Clone), not
	// shared by reference.
	Clone() Protocol[SendT, RecvT]
}
