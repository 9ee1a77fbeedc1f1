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

package conid

import (
	"fmt"
	"net"

	uuid "github.com/hashicorp/go-uuid"
)

// NewInitiator builds a client-side identity. local is nil until the dial
// succeeds and the OS assigns an ephemeral port; peer is the resolved
// address being dialed. An empty name becomes "unknown".
func NewInitiator(name string, local net.Addr, peer net.Addr) ConId {
	return ConId{side: Initiator, name: orUnknown(name), local: local, peer: peer}
}

// NewAcceptor builds a server-side identity. local is the bound listener
// address (always known); peer is nil until a connection is accepted.
func NewAcceptor(name string, local net.Addr, peer net.Addr) ConId {
	return ConId{side: Acceptor, name: orUnknown(name), local: local, peer: peer}
}

func orUnknown(name string) string {
	if name != "" {
		return name
	}
	return "unknown"
}

// GenerateName produces a short, collision-resistant name for callers that
// want a distinct identity per anonymous connection (e.g. a pool fanning
// out many acceptor-side ConIds) instead of sharing "unknown" across all
// of them in logs and callback traces.
func GenerateName(prefix string) string {
	suffix, err := uuid.GenerateUUID()
	if err != nil || len(suffix) < 8 {
		return prefix
	}
	if prefix == "" {
		return suffix[:8]
	}
	return prefix + "-" + suffix[:8]
}

// Default returns the zero-value-equivalent identity used before a Clt has
// attempted its first connect: an Initiator named "unknown" with no
// resolved endpoints other than the dial target 0.0.0.0:0.
func Default() ConId {
	return NewInitiator("", nil, &net.TCPAddr{IP: net.IPv4zero, Port: 0})
}

func (c ConId) Name() string { return c.name }
func (c ConId) Side() Side   { return c.side }

// Local returns the local endpoint. For an Acceptor it is always resolved
// (ok is always true); for an Initiator it is unresolved until the dial
// completes.
func (c ConId) Local() (net.Addr, bool) {
	return c.local, c.local != nil
}

// Peer returns the peer endpoint. For an Initiator it is always resolved
// (ok is always true); for an Acceptor it is unresolved until accept
// completes.
func (c ConId) Peer() (net.Addr, bool) {
	return c.peer, c.peer != nil
}

// WithLocal resolves the local endpoint, returning an updated copy. Once
// both endpoints are set they are never mutated again; callers are
// expected to call this exactly once, right after connect/accept resolves
// the missing half.
func (c ConId) WithLocal(local net.Addr) ConId {
	c.local = local
	return c
}

// WithPeer resolves the peer endpoint, returning an updated copy.
func (c ConId) WithPeer(peer net.Addr) ConId {
	c.peer = peer
	return c
}

func (c ConId) String() string {
	localStr := "pending"
	if c.local != nil {
		localStr = c.local.String()
	}
	peerStr := "pending"
	if c.peer != nil {
		peerStr = c.peer.String()
	}

	switch c.side {
	case Initiator:
		return fmt.Sprintf("Initiator(%s@%s->%s)", c.name, localStr, peerStr)
	case Acceptor:
		return fmt.Sprintf("Acceptor(%s@%s<-%s)", c.name, localStr, peerStr)
	default:
		return fmt.Sprintf("ConId(%s)", c.name)
	}
}
