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

// Package pool provides a fixed-capacity slab of
// connections visited in deterministic round-robin order, plus the
// acceptor-side admission gate that bounds how many connections a Svc
// will hold open concurrently.
package pool

import (
	"fmt"
	"sync"

	"github.com/bits-and-blooms/bitset"
)

// RoundRobinPool is a fixed-capacity slab of elements visited in a fair,
// deterministic rotation. Unlike a Rust Slab (which keeps its own free
// list), occupancy here is tracked with a bitset.BitSet sized to the
// pool's capacity: set bits are occupied slots, clear bits are free ones.
type RoundRobinPool[T any] struct {
	mu sync.Mutex

	elements []T
	occupied *bitset.BitSet
	count    int

	keys     *cycleRange
	lastUsed int
}

// New creates a pool that holds at most maxCapacity elements. maxCapacity
// must be positive; callers that need a single-connection pool should
// pass 1.
func New[T any](maxCapacity int) *RoundRobinPool[T] {
	if maxCapacity < 1 {
		maxCapacity = 1
	}
	return &RoundRobinPool[T]{
		elements: make([]T, maxCapacity),
		occupied: bitset.New(uint(maxCapacity)),
		keys:     newCycleRange(maxCapacity),
	}
}

func (p *RoundRobinPool[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count
}

func (p *RoundRobinPool[T]) MaxCapacity() int {
	return len(p.elements)
}

func (p *RoundRobinPool[T]) IsEmpty() bool {
	return p.Len() == 0
}

func (p *RoundRobinPool[T]) HasCapacity() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.count < len(p.elements)
}

// Add inserts element into the first free slot, or returns an error
// naming the pool's current occupancy if it is already at max capacity.
func (p *RoundRobinPool[T]) Add(element T) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.count >= len(p.elements) {
		return fmt.Errorf("pool: RoundRobinPool at max capacity: %d, element %v dropped", p.count, element)
	}

	slot, ok := p.occupied.NextClear(0)
	if !ok || int(slot) >= len(p.elements) {
		return fmt.Errorf("pool: RoundRobinPool at max capacity: %d, element %v dropped", p.count, element)
	}

	p.elements[slot] = element
	p.occupied.Set(slot)
	p.count++
	return nil
}

// RoundRobin advances to the next occupied slot, wrapping past any free
// slots in between, and returns a pointer to its element. It returns
// false if the pool holds nothing.
func (p *RoundRobinPool[T]) RoundRobin() (*T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	for i := 0; i < len(p.elements); i++ {
		key := p.keys.next()
		if p.occupied.Test(uint(key)) {
			p.lastUsed = key
			return &p.elements[key], true
		}
	}
	return nil, false
}

// Current returns the element RoundRobin last handed out, without
// advancing the rotation.
func (p *RoundRobinPool[T]) Current() (*T, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	current := p.keys.peek()
	for i := 0; i < len(p.elements); i++ {
		if p.occupied.Test(uint(current)) {
			return &p.elements[current], true
		}
		if current < len(p.elements)-1 {
			current++
		} else {
			current = 0
		}
	}
	return nil, false
}

// RemoveLastUsed evicts the slot RoundRobin most recently returned. It
// panics if that slot is not occupied, the same way a slab's remove()
// panics on a vacant key: callers only call this right after a
// successful RoundRobin.
func (p *RoundRobinPool[T]) RemoveLastUsed() T {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.occupied.Test(uint(p.lastUsed)) {
		panic("pool: RemoveLastUsed called on a vacant slot")
	}

	var zero T
	element := p.elements[p.lastUsed]
	p.elements[p.lastUsed] = zero
	p.occupied.Clear(uint(p.lastUsed))
	p.count--
	return element
}

func (p *RoundRobinPool[T]) Clear() {
	p.mu.Lock()
	defer p.mu.Unlock()

	var zero T
	for i := range p.elements {
		p.elements[i] = zero
	}
	p.occupied.ClearAll()
	p.count = 0
}

func (p *RoundRobinPool[T]) String() string {
	p.mu.Lock()
	defer p.mu.Unlock()

	return fmt.Sprintf("RoundRobinPool<len: %d of cap: %d>", p.count, len(p.elements))
}
