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
	"net"
	"testing"
)

func mustAddr(t *testing.T, addr string) net.Addr {
	t.Helper()
	a, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		t.Fatalf("unable to parse addr: %v", addr)
	}
	return a
}

func TestConIdInitiatorPendingLocal(t *testing.T) {
	c := NewInitiator("unittest", nil, mustAddr(t, "0.0.0.0:1"))

	if got, want := c.String(), "Initiator(unittest@pending->0.0.0.0:1)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if _, ok := c.Local(); ok {
		t.Fatalf("Local() ok = true before the dial resolves it")
	}
	if peer, ok := c.Peer(); !ok || peer.String() != "0.0.0.0:1" {
		t.Fatalf("Peer() = %v, %v, want 0.0.0.0:1, true", peer, ok)
	}
	if c.Side() != Initiator {
		t.Fatalf("Side() = %v, want Initiator", c.Side())
	}
}

func TestConIdAcceptorPendingPeer(t *testing.T) {
	c := NewAcceptor("unittest", mustAddr(t, "0.0.0.0:1"), nil)

	if got, want := c.String(), "Acceptor(unittest@0.0.0.0:1<-pending)"; got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if local, ok := c.Local(); !ok || local.String() != "0.0.0.0:1" {
		t.Fatalf("Local() = %v, %v, want 0.0.0.0:1, true", local, ok)
	}
	if _, ok := c.Peer(); ok {
		t.Fatalf("Peer() ok = true before accept resolves it")
	}
}

func TestConIdResolutionIsImmutableCopy(t *testing.T) {
	before := NewInitiator("unittest", nil, mustAddr(t, "0.0.0.0:1"))
	after := before.WithLocal(mustAddr(t, "127.0.0.1:5000"))

	if _, ok := before.Local(); ok {
		t.Fatalf("resolving a copy mutated the original")
	}
	if local, ok := after.Local(); !ok || local.String() != "127.0.0.1:5000" {
		t.Fatalf("WithLocal() did not resolve the copy: %v, %v", local, ok)
	}
}

func TestConIdUnnamedDefaultsToUnknown(t *testing.T) {
	c := NewInitiator("", nil, mustAddr(t, "0.0.0.0:1"))
	if c.Name() != "unknown" {
		t.Fatalf("Name() = %q, want %q", c.Name(), "unknown")
	}
}

func TestConIdGenerateNameIsDistinct(t *testing.T) {
	a := GenerateName("acceptor")
	b := GenerateName("acceptor")
	if a == b {
		t.Fatalf("GenerateName produced identical names: %q", a)
	}
}

func TestConIdDefault(t *testing.T) {
	c := Default()
	if c.Side() != Initiator {
		t.Fatalf("Default().Side() = %v, want Initiator", c.Side())
	}
	if peer, ok := c.Peer(); !ok || peer.String() != "0.0.0.0:0" {
		t.Fatalf("Default().Peer() = %v, %v, want 0.0.0.0:0, true", peer, ok)
	}
}
