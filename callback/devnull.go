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

import "github.com/sabouaram/netcore/conid"

// DevNull discards every event. Useful as the default callback when a
// caller only cares about the protocol-level behavior, not observability.
type DevNull[SendT any, RecvT any] struct{}

func (DevNull[SendT, RecvT]) OnRecv(conid.ConId, *RecvT)        {}
func (DevNull[SendT, RecvT]) OnSend(conid.ConId, *SendT)        {}
func (DevNull[SendT, RecvT]) OnSent(conid.ConId, *SendT)        {}
func (DevNull[SendT, RecvT]) OnFail(conid.ConId, *SendT, error) {}

func (DevNull[SendT, RecvT]) String() string { return "DevNullCallback" }
