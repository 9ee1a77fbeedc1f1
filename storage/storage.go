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

// Package storage is the durable-log collaborator a Clt or Svc may plug
// in alongside its callback.Callback: unlike the callback, which sees
// typed SendT/RecvT values, a Storage sees the already-framed wire bytes,
// so it can be swapped between protocols without being rewritten.
package storage

import "github.com/sabouaram/netcore/conid"

// Direction tags a recorded message as inbound or outbound, mirroring
// callback.Direction without importing it: a storage backend shouldn't
// need the callback package's in-memory Entry/Store machinery to know
// which way a message went.
type Direction uint8

const (
	DirRecv Direction = iota
	DirSent
)

func (d Direction) String() string {
	if d == DirSent {
		return "sent"
	}
	return "recv"
}

// Storage receives every message a connection handles, already
// serialized to bytes, and is free to persist it however it likes. A
// Storage is entirely optional: a Clt or Svc built without one simply
// never calls OnMessage.
type Storage interface {
	// OnMessage is called once per frame with its raw bytes: for DirRecv
	// after the frame is read and before it is deserialized, for DirSent
	// after the frame has been written in full. The caller discards the
	// error, so it never aborts the connection: storage is a side effect,
	// not a protocol participant.
	OnMessage(id conid.ConId, dir Direction, payload []byte) error

	// Close releases any resources the Storage holds open (file handles,
	// database handles). Safe to call once the owning Clt/Svc is done.
	Close() error
}
