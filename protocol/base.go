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

package protocol

import (
	"time"

	"github.com/sabouaram/netcore/conid"
)

// Base supplies the same empty defaults the Rust trait's #[inline(always)]
// bodies do, so a concrete protocol can embed Base and override only the
// hooks it actually needs. IsConnected deliberately returns false: unlike
// the Rust default (which returns true with a logged warning), a netcore
// protocol that never overrides liveness should fail closed, not open.
type Base[SendT any, RecvT any] struct{}

func (Base[SendT, RecvT]) OnConnect(Handshaker[SendT, RecvT]) error { return nil }
func (Base[SendT, RecvT]) IsConnected() bool                       { return false }
func (Base[SendT, RecvT]) OnSend(conid.ConId, *SendT)               {}
func (Base[SendT, RecvT]) OnWouldBlock(conid.ConId, *SendT)         {}
func (Base[SendT, RecvT]) OnError(conid.ConId, *SendT, error)       {}
func (Base[SendT, RecvT]) OnSent(conid.ConId, *SendT)               {}
func (Base[SendT, RecvT]) OnRecv(conid.ConId, *RecvT)               {}

func (Base[SendT, RecvT]) OnDisconnect() (time.Duration, SendT, bool) {
	var zero SendT
	return 0, zero, false
}

func (Base[SendT, RecvT]) SendReply(RecvT, Sender[SendT]) error { return nil }
func (Base[SendT, RecvT]) HeartBeatInterval() (time.Duration, bool) {
	return 0, false
}
func (Base[SendT, RecvT]) SendHeartBeat(Sender[SendT]) error { return nil }
