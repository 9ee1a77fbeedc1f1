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

package callback

import (
	"fmt"
	"sync/atomic"

	"github.com/sabouaram/netcore/conid"
)

// Counter tallies send/sent/fail/recv events with relaxed atomics; safe to
// share between a CltRecver and CltSender running on different threads.
type Counter[SendT any, RecvT any] struct {
	send atomic.Uint64
	fail atomic.Uint64
	sent atomic.Uint64
	recv atomic.Uint64
}

func NewCounter[SendT any, RecvT any]() *Counter[SendT, RecvT] {
	return &Counter[SendT, RecvT]{}
}

func (c *Counter[SendT, RecvT]) SendCount() uint64 { return c.send.Load() }
func (c *Counter[SendT, RecvT]) FailCount() uint64 { return c.fail.Load() }
func (c *Counter[SendT, RecvT]) SentCount() uint64 { return c.sent.Load() }
func (c *Counter[SendT, RecvT]) RecvCount() uint64 { return c.recv.Load() }

func (c *Counter[SendT, RecvT]) OnRecv(conid.ConId, *RecvT)        { c.recv.Add(1) }
func (c *Counter[SendT, RecvT]) OnSend(conid.ConId, *SendT)        { c.send.Add(1) }
func (c *Counter[SendT, RecvT]) OnSent(conid.ConId, *SendT)        { c.sent.Add(1) }
func (c *Counter[SendT, RecvT]) OnFail(conid.ConId, *SendT, error) { c.fail.Add(1) }

func (c *Counter[SendT, RecvT]) String() string {
	return fmt.Sprintf(
		"CounterCallback<send: %d, fail: %d, sent: %d, recv: %d>",
		c.send.Load(), c.fail.Load(), c.sent.Load(), c.recv.Load(),
	)
}
