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

// Package conid carries the stable connection identity: a value type used
// in logs and callback arguments, never mutated once both endpoints are
// resolved.
package conid

import "net"

// Side distinguishes which half of the ConId union a value holds.
type Side uint8

const (
	// Initiator is the client side: name, optional local (pre-connect),
	// resolved peer.
	Initiator Side = iota
	// Acceptor is the server side: name, resolved local, optional peer
	// (pre-accept).
	Acceptor
)

func (s Side) String() string {
	switch s {
	case Initiator:
		return "Initiator"
	case Acceptor:
		return "Acceptor"
	default:
		return "Unknown"
	}
}

// ConId is an immutable-after-resolution value type: copy it by value (its
// address fields are net.Addr interface values that are never mutated in
// place), so passing it around never shares mutable state. The
// With* methods return a new value rather than mutating in place; the only
// mutation the invariant allows is resolving an unset endpoint, and doing
// that via copy keeps the zero-allocation, lock-free contract.
type ConId struct {
	side  Side
	name  string
	local net.Addr
	peer  net.Addr
}

// Identity is the read side of ConId, implemented by ConId itself; kept
// separate so callback/protocol code can accept it without importing the
// concrete struct's constructors.
type Identity interface {
	Name() string
	Side() Side
	Local() (net.Addr, bool)
	Peer() (net.Addr, bool)
	String() string
}

var _ Identity = ConId{}
