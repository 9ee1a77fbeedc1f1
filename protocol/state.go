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

import "sync"

// State holds connection-scoped protocol state behind a mutex, because
// on_recv (driven from the recver side) and on_send/on_sent (driven from
// the sender side) may run concurrently on the same connection. Cloning a
// State deep-copies the held value instead of
// sharing the pointer, so a Protocol.Clone() for a freshly accepted
// connection starts from a clean slate rather than the template
// connection's leftover state.
type State[T any] struct {
	mu  sync.Mutex
	val T
}

func NewState[T any](initial T) *State[T] {
	return &State[T]{val: initial}
}

func (s *State[T]) Get() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.val
}

func (s *State[T]) Set(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = v
}

// With runs fn under the lock, for read-modify-write sequences that must
// not interleave with a concurrent Get/Set from the other half of the
// connection.
func (s *State[T]) With(fn func(cur T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.val = fn(s.val)
}

// Clone returns a new State seeded with this one's current value — a deep
// copy of the value, sharing no mutex or pointer with the original. Use
// this from a Protocol.Clone() implementation so each accepted connection
// gets independent state instead of aliasing the template's.
func (s *State[T]) Clone() *State[T] {
	return NewState(s.Get())
}
