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

// Package callback provides the observer hooks a Clt/Svc
// drives on every recv/send, plus the stock implementations (devnull,
// counter, logger, chain, store, prometheus).
package callback

import "github.com/sabouaram/netcore/conid"

// CallbackRecv is notified of every successfully deserialized message.
type CallbackRecv[RecvT any] interface {
	OnRecv(id conid.ConId, msg *RecvT)
}

// CallbackSend is notified around every send attempt: before serialization
// (so it can observe or the protocol layer can mutate), and after either a
// successful send or a failure.
type CallbackSend[SendT any] interface {
	OnSend(id conid.ConId, msg *SendT)
	OnSent(id conid.ConId, msg *SendT)
	OnFail(id conid.ConId, msg *SendT, err error)
}

// CallbackRecvSend combines both halves; CltRecver/CltSender each hold a
// reference to the same shared instance, so implementations must be
// internally thread-safe.
type CallbackRecvSend[SendT any, RecvT any] interface {
	CallbackRecv[RecvT]
	CallbackSend[SendT]
}
