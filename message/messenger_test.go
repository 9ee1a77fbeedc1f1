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

package message

import (
	"errors"
	"net"
	"testing"

	"github.com/sabouaram/netcore/conid"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/neterr"
)

// lineMessenger treats every frame as a newline-free UTF-8 string, framed
// fixed-size for test simplicity.
type lineMessenger struct{ size int }

func (m lineMessenger) Serialize(msg string) ([]byte, error) {
	b := []byte(msg)
	if len(b) > m.size {
		return nil, errors.New("message too long")
	}
	out := make([]byte, m.size)
	copy(out, b)
	return out, nil
}

func (m lineMessenger) Deserialize(raw []byte) (string, error) {
	return string(raw), nil
}

type memSource struct {
	data []byte
}

func (s *memSource) Read(p []byte) (int, error) {
	if len(s.data) == 0 {
		return 0, nil
	}
	n := copy(p, s.data)
	s.data = s.data[n:]
	return n, nil
}

type memSink struct {
	out []byte
}

func (s *memSink) Write(p []byte) (int, error) {
	s.out = append(s.out, p...)
	return len(p), nil
}

func TestMessageSenderThenRecverRoundTrip(t *testing.T) {
	const size = 8
	msgr := lineMessenger{size: size}

	sink := &memSink{}
	id := conid.NewInitiator("test", nil, mustResolve(t, "127.0.0.1:1"))
	sender := NewMessageSender[string, string](id, frame.NewFrameWriter(sink), msgr)

	status, err := sender.Send("hello")
	if err != nil || status != neterr.SendCompleted {
		t.Fatalf("Send() = %v, %v, want Completed, nil", status, err)
	}

	src := &memSource{data: sink.out}
	recver := NewMessageRecver[string, string](id, frame.NewFrameReader(src, frame.FixedSizeFramer{Size: size}, 64), msgr)

	msg, status, err := recver.Recv()
	if err != nil || status != neterr.RecvCompleted {
		t.Fatalf("Recv() = %v, %v, want Completed, nil", status, err)
	}
	if got := trimPadding(msg); got != "hello" {
		t.Fatalf("Recv() = %q, want %q", got, "hello")
	}
}

func trimPadding(s string) string {
	for len(s) > 0 && s[len(s)-1] == 0 {
		s = s[:len(s)-1]
	}
	return s
}

func mustResolve(t *testing.T, addr string) net.Addr {
	t.Helper()
	a, err := net.ResolveTCPAddr("tcp", addr)
	if err != nil {
		t.Fatalf("ResolveTCPAddr(%q): %v", addr, err)
	}
	return a
}
