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

package pool

import (
	"fmt"
	"sync/atomic"
)

// AcceptorConnectionGate bounds how many accepted connections a Svc may
// hold open at once. Increment is a CAS loop and Decrement a single atomic
// add over an atomic counter rather than a mutex, since Acceptor goroutines call Increment
// far more often than anything calls Decrement.
type AcceptorConnectionGate struct {
	maxCount int64
	curCount *atomic.Int64
}

func NewAcceptorConnectionGate(maxCount int) *AcceptorConnectionGate {
	if maxCount < 1 {
		maxCount = 1
	}
	return &AcceptorConnectionGate{
		maxCount: int64(maxCount),
		curCount: &atomic.Int64{},
	}
}

func (g *AcceptorConnectionGate) MaxCount() int { return int(g.maxCount) }
func (g *AcceptorConnectionGate) CurCount() int { return int(g.curCount.Load()) }

// Increment admits one more connection, or refuses with an error if the
// gate is already at max capacity. It never blocks.
func (g *AcceptorConnectionGate) Increment() error {
	for {
		cur := g.curCount.Load()
		if cur >= g.maxCount {
			return fmt.Errorf("pool: AcceptorConnectionGate cur_count %d reached max %d", cur, g.maxCount)
		}
		if g.curCount.CompareAndSwap(cur, cur+1) {
			return nil
		}
	}
}

func (g *AcceptorConnectionGate) Decrement() {
	g.curCount.Add(-1)
}

// NewConnectionBarrier returns a handle whose first Release call frees
// the admission slot this gate granted. Go has no destructor to hook a
// decrement to automatically, so every acceptor goroutine must defer
// Release explicitly instead of relying on a value going out of scope.
func (g *AcceptorConnectionGate) NewConnectionBarrier() *ConnectionBarrier {
	return &ConnectionBarrier{curCount: g.curCount}
}

// ConnectionBarrier releases its gate slot exactly once no matter how
// many times Release is called, guarding against double-decrementing a
// cloned barrier.
type ConnectionBarrier struct {
	released atomic.Bool
	curCount *atomic.Int64
}

func (b *ConnectionBarrier) Release() {
	if b.released.CompareAndSwap(false, true) {
		b.curCount.Add(-1)
	}
}
