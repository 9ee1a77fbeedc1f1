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

// Package wire provides a default netcore/message.Messenger for programs
// that don't want to hand-roll their own binary format: CBORMessenger
// encodes any Go value with fxamacker/cbor/v2, the role spec.md calls out
// as "the byte-level serde of concrete message types... an external
// collaborator".
package wire

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/sabouaram/netcore/message"
)

// CBORMessenger implements message.Messenger[T, T] by round-tripping T
// through CBOR. When maxSize is above zero, Serialize reports an error for
// a value whose encoding is longer than maxSize; frame.FrameWriter itself
// applies no size limit.
type CBORMessenger[T any] struct {
	maxSize int
}

// NewCBORMessenger builds a CBORMessenger that refuses to serialize a
// value whose encoded form exceeds maxSize bytes.
func NewCBORMessenger[T any](maxSize int) *CBORMessenger[T] {
	return &CBORMessenger[T]{maxSize: maxSize}
}

var _ message.Messenger[string, string] = (*CBORMessenger[string])(nil)

func (m *CBORMessenger[T]) Serialize(msg T) ([]byte, error) {
	raw, err := cbor.Marshal(msg)
	if err != nil {
		return nil, err
	}
	if m.maxSize > 0 && len(raw) > m.maxSize {
		return nil, fmt.Errorf("netcore/wire: encoded message is %d bytes, exceeds max %d", len(raw), m.maxSize)
	}
	return raw, nil
}

func (m *CBORMessenger[T]) Deserialize(frame []byte) (T, error) {
	var msg T
	err := cbor.Unmarshal(frame, &msg)
	return msg, err
}
