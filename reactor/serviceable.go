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

// Package reactor multiplexes many non-blocking connections onto one
// goroutine with a single poll(2) call per wakeup, instead of a goroutine
// per connection. PollHandler is the dynamic variant: it mixes recvers and
// acceptors behind interfaces so one handler can service a heterogeneous
// slab. StaticPollHandler is the same service-loop algorithm specialised
// to exactly one *server.Acceptor and its accepted *client.Clt values, with
// no interface dispatch on the hot path.
package reactor

import "github.com/sabouaram/netcore/neterr"

// Serviceable is anything a PollHandler can register with the poller: just
// enough to build the interest set.
type Serviceable interface {
	Fd() int
}

// RecvServiceable is a registered connection. OnEvent is called once per
// readiness notification and again for every Completed it reports, since a
// single notification can correspond to more than one buffered frame.
type RecvServiceable interface {
	Serviceable
	OnEvent() (neterr.PollEventStatus, error)
}

// AcceptServiceable is a registered listener. AcceptRecver is called once
// per readiness notification and again for every Accepted it reports, the
// same drain-until-WouldBlock contract as RecvServiceable.OnEvent.
type AcceptServiceable interface {
	Serviceable
	AcceptRecver() (neterr.AcceptStatus, RecvServiceable, error)
}
