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
	"strconv"
	"sync"
	"time"

	"github.com/sabouaram/netcore/conid"
)

// Direction tags an Entry as having been received or sent.
type Direction uint8

const (
	DirRecv Direction = iota
	DirSent
)

// Entry is one recorded message, canonicalized by the Store's caller at
// capture time (analogous to the Rust source's generic INTO conversion).
type Entry struct {
	ConId     conid.ConId
	Direction Direction
	At        time.Time
	Payload   any
}

// Store routes every recv/sent event into an in-memory, queryable history.
// It is the Go counterpart of the Rust source's StoreCallback + Storage
// trait, collapsed into one type since Go has no blanket `From` conversion
// to split the canonicalization step out generically.
type Store[SendT any, RecvT any] struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewStore[SendT any, RecvT any]() *Store[SendT, RecvT] {
	return &Store[SendT, RecvT]{}
}

func (s *Store[SendT, RecvT]) OnRecv(id conid.ConId, msg *RecvT) {
	s.append(id, DirRecv, msg)
}

func (s *Store[SendT, RecvT]) OnSent(id conid.ConId, msg *SendT) {
	s.append(id, DirSent, msg)
}

func (s *Store[SendT, RecvT]) OnSend(conid.ConId, *SendT)        {}
func (s *Store[SendT, RecvT]) OnFail(conid.ConId, *SendT, error) {}

func (s *Store[SendT, RecvT]) append(id conid.ConId, dir Direction, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, Entry{ConId: id, Direction: dir, At: time.Now(), Payload: payload})
}

// FindRecv returns every received entry recorded at or after since.
func (s *Store[SendT, RecvT]) FindRecv(since time.Time) []Entry {
	return s.find(DirRecv, since)
}

// FindSent returns every sent entry recorded at or after since.
func (s *Store[SendT, RecvT]) FindSent(since time.Time) []Entry {
	return s.find(DirSent, since)
}

func (s *Store[SendT, RecvT]) find(dir Direction, since time.Time) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Entry
	for _, e := range s.entries {
		if e.Direction == dir && !e.At.Before(since) {
			out = append(out, e)
		}
	}
	return out
}

func (s *Store[SendT, RecvT]) String() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return "StoreCallback<" + strconv.Itoa(len(s.entries)) + ">"
}
