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

package wire

import (
	"fmt"
)

// Kind discriminates the envelope's payload, playing the role
// soupbintcp4's model files give their login/heartbeat/debug message
// structs: one tagged union instead of separate wire formats per kind.
type Kind uint8

const (
	KindLogin Kind = iota
	KindAccepted
	KindHeartbeat
	KindEcho
)

func (k Kind) String() string {
	switch k {
	case KindLogin:
		return "login"
	case KindAccepted:
		return "accepted"
	case KindHeartbeat:
		return "heartbeat"
	case KindEcho:
		return "echo"
	default:
		return "unknown"
	}
}

// Envelope is the tagged-union message a CBOREnvelopeMessenger
// serializes: Kind selects how Payload is interpreted, the same shape a
// session-scoped debug protocol richer than netcore/protocol/debug's
// plain strings would want to speak.
type Envelope struct {
	Kind    Kind   `cbor:"1,keyasint"`
	Payload string `cbor:"2,keyasint,omitempty"`
}

// CBOREnvelopeMessenger is a CBORMessenger specialized to Envelope, kept
// separate from the generic CBORMessenger[T] so callers who only need the
// tagged-union shape don't have to spell out the type parameter.
type CBOREnvelopeMessenger struct {
	inner *CBORMessenger[Envelope]
}

func NewCBOREnvelopeMessenger(maxSize int) *CBOREnvelopeMessenger {
	return &CBOREnvelopeMessenger{inner: NewCBORMessenger[Envelope](maxSize)}
}

func (m *CBOREnvelopeMessenger) Serialize(msg Envelope) ([]byte, error) {
	return m.inner.Serialize(msg)
}

func (m *CBOREnvelopeMessenger) Deserialize(frame []byte) (Envelope, error) {
	env, err := m.inner.Deserialize(frame)
	if err != nil {
		return Envelope{}, fmt.Errorf("netcore/wire: malformed envelope: %w", err)
	}
	return env, nil
}
