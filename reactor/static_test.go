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

package reactor

import (
	"testing"
	"time"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/client"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/server"
)

const testFrameSize = 8

type fixedStringMessenger struct{}

func (fixedStringMessenger) Serialize(msg string) ([]byte, error) {
	buf := make([]byte, testFrameSize)
	copy(buf, msg)
	return buf, nil
}

func (fixedStringMessenger) Deserialize(raw []byte) (string, error) {
	n := len(raw)
	for n > 0 && raw[n-1] == 0 {
		n--
	}
	return string(raw[:n]), nil
}

func waitForCount(t *testing.T, get func() uint64, want uint64, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if get() >= want {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("count = %d, want >= %d within %s", get(), want, timeout)
}

func TestStaticPollHandlerAcceptsAndDeliversOneMessage(t *testing.T) {
	cb := callback.NewCounter[string, string]()
	acc, err := server.BindAcceptor[string, string](
		"127.0.0.1:0", frame.FixedSizeFramer{Size: testFrameSize}, testFrameSize,
		fixedStringMessenger{}, cb, nil, "test-acceptor", true,
	)
	if err != nil {
		t.Fatalf("BindAcceptor: %v", err)
	}

	h := NewStatic[string, string](acc)
	h.Spawn()
	defer h.Stop()

	clt, err := client.Connect[string, string](
		acc.LocalAddr().String(), 2*time.Second, 10*time.Millisecond, "test-clt",
		frame.FixedSizeFramer{Size: testFrameSize}, testFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, true,
	)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer clt.Close()

	if err := clt.Sender.SendBusywait("ping"); err != nil {
		t.Fatalf("SendBusywait: %v", err)
	}

	waitForCount(t, cb.RecvCount, 1, 2*time.Second)

	deadline := time.Now().Add(time.Second)
	for h.Len() == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}
	if h.Len() != 1 {
		t.Fatalf("handler tracks %d connections, want 1", h.Len())
	}
}

func TestStaticPollHandlerDrainsMultipleBufferedMessagesInOnePass(t *testing.T) {
	cb := callback.NewCounter[string, string]()
	acc, err := server.BindAcceptor[string, string](
		"127.0.0.1:0", frame.FixedSizeFramer{Size: testFrameSize}, testFrameSize,
		fixedStringMessenger{}, cb, nil, "test-acceptor", true,
	)
	if err != nil {
		t.Fatalf("BindAcceptor: %v", err)
	}

	h := NewStatic[string, string](acc)
	h.Spawn()
	defer h.Stop()

	clt, err := client.Connect[string, string](
		acc.LocalAddr().String(), 2*time.Second, 10*time.Millisecond, "test-clt",
		frame.FixedSizeFramer{Size: testFrameSize}, testFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, true,
	)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer clt.Close()

	for _, msg := range []string{"one", "two", "three"} {
		if err := clt.Sender.SendBusywait(msg); err != nil {
			t.Fatalf("SendBusywait(%q): %v", msg, err)
		}
	}

	waitForCount(t, cb.RecvCount, 3, 2*time.Second)
}
