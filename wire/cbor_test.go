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

import "testing"

func TestCBORMessengerRoundTrip(t *testing.T) {
	m := NewCBORMessenger[string](1024)

	raw, err := m.Serialize("hello")
	if err != nil {
		t.Fatalf("Serialize() error = %v", err)
	}

	got, err := m.Deserialize(raw)
	if err != nil {
		t.Fatalf("Deserialize() error = %v", err)
	}
	if got != "hello" {
		t.Fatalf("Deserialize() = %q, want %q", got, "hello")
	}
}

func TestCBORMessengerRejectsOversized(t *testing.T) {
	m := NewCBORMessenger[string](4)

	if _, err := m.Serialize("this is far too long"); err == nil {
		t.Fatalf("Serialize() should have rejected a payload over maxSize")
	}
}

func TestCBOREnvelopeMessengerRoundTrip(t *testing.T) {
	m := NewCBOREnvelopeMessenger(1024)

	cases := []Envelope{
		{Kind: KindLogin, Payload: "alice"},
		{Kind: KindAccepted},
		{Kind: KindHeartbeat},
		{Kind: KindEcho, Payload: "ping"},
	}

	for _, env := range cases {
		raw, err := m.Serialize(env)
		if err != nil {
			t.Fatalf("Serialize(%v) error = %v", env, err)
		}
		got, err := m.Deserialize(raw)
		if err != nil {
			t.Fatalf("Deserialize() error = %v", err)
		}
		if got != env {
			t.Fatalf("round trip = %+v, want %+v", got, env)
		}
	}
}

func TestCBOREnvelopeMessengerRejectsGarbage(t *testing.T) {
	m := NewCBOREnvelopeMessenger(1024)
	if _, err := m.Deserialize([]byte{0xff, 0xff, 0xff}); err == nil {
		t.Fatalf("Deserialize() should have rejected malformed CBOR")
	}
}
