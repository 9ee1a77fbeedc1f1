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

// Package debug is a minimal demo protocol over plain strings: a
// SOUP-like login handshake ("LOGIN:<name>" / "ACCEPTED") on connect, and
// a periodic "HEARTBEAT" reply, shaped after soupbintcp4's
// login-then-heartbeat session model but collapsed to a single message
// type so it needs no code generation to exercise netcore/client end to
// end.
package debug

import (
	"errors"
	"time"

	"github.com/sabouaram/netcore/conid"
	"github.com/sabouaram/netcore/protocol"
)

const (
	loginPrefix  = "LOGIN:"
	accepted     = "ACCEPTED"
	heartbeatMsg = "HEARTBEAT"
)

// Protocol is the initiator- or acceptor-side handler for the debug
// session. Name identifies this side in its LOGIN frame; Interval governs
// SendHeartBeat/HeartBeatInterval.
type Protocol struct {
	protocol.Base[string, string]

	Name     string
	Interval time.Duration

	connected *protocol.State[bool]
}

func New(name string, heartbeatInterval time.Duration) *Protocol {
	return &Protocol{
		Name:      name,
		Interval:  heartbeatInterval,
		connected: protocol.NewState(false),
	}
}

// Clone yields a fresh per-connection instance: the session-scoped Name
// and Interval are copied as plain values, while connected, the
// connection-scoped liveness flag, is deep-cloned so the new connection
// does not inherit the template's state.
func (p *Protocol) Clone() protocol.Protocol[string, string] {
	return &Protocol{
		Name:      p.Name,
		Interval:  p.Interval,
		connected: p.connected.Clone(),
	}
}

func (p *Protocol) OnConnect(con protocol.Handshaker[string, string]) error {
	if err := con.Send(loginPrefix + p.Name); err != nil {
		return err
	}
	reply, ok, err := con.RecvBusywaitTimeout(5 * time.Second)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("debug protocol: login handshake timed out")
	}
	if reply != accepted {
		return errors.New("debug protocol: login rejected: " + reply)
	}
	p.connected.Set(true)
	return nil
}

func (p *Protocol) IsConnected() bool {
	return p.connected.Get()
}

func (p *Protocol) OnRecv(who conid.ConId, msg *string) {
	if len(*msg) > len(loginPrefix) && (*msg)[:len(loginPrefix)] == loginPrefix {
		p.connected.Set(true)
	}
}

// SendReply implements the acceptor side of the login handshake: every
// inbound LOGIN frame gets an ACCEPTED reply.
func (p *Protocol) SendReply(msg string, sender protocol.Sender[string]) error {
	if len(msg) > len(loginPrefix) && msg[:len(loginPrefix)] == loginPrefix {
		return sender.Send(accepted)
	}
	return nil
}

func (p *Protocol) HeartBeatInterval() (time.Duration, bool) {
	if p.Interval <= 0 {
		return 0, false
	}
	return p.Interval, true
}

func (p *Protocol) SendHeartBeat(sender protocol.Sender[string]) error {
	return sender.Send(heartbeatMsg)
}
