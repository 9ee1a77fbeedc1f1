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

	"github.com/sabouaram/netcore/conid"
)

// Chain fans every event out to an ordered list of callbacks, in order.
type Chain[SendT any, RecvT any] struct {
	chain []CallbackRecvSend[SendT, RecvT]
}

func NewChain[SendT any, RecvT any](chain ...CallbackRecvSend[SendT, RecvT]) *Chain[SendT, RecvT] {
	return &Chain[SendT, RecvT]{chain: chain}
}

func (c *Chain[SendT, RecvT]) OnRecv(id conid.ConId, msg *RecvT) {
	for _, cb := range c.chain {
		cb.OnRecv(id, msg)
	}
}

func (c *Chain[SendT, RecvT]) OnSend(id conid.ConId, msg *SendT) {
	for _, cb := range c.chain {
		cb.OnSend(id, msg)
	}
}

func (c *Chain[SendT, RecvT]) OnSent(id conid.ConId, msg *SendT) {
	for _, cb := range c.chain {
		cb.OnSent(id, msg)
	}
}

func (c *Chain[SendT, RecvT]) OnFail(id conid.ConId, msg *SendT, err error) {
	for _, cb := range c.chain {
		cb.OnFail(id, msg, err)
	}
}

func (c *Chain[SendT, RecvT]) String() string {
	return fmt.Sprintf("ChainCallback<%d>", len(c.chain))
}
