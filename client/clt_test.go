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

package client

import (
	"io"
	"net"
	"testing"
	"time"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/frame"
)

const fixedFrameSize = 8

type fixedStringMessenger struct{}

func (fixedStringMessenger) Serialize(msg string) ([]byte, error) {
	buf := make([]byte, fixedFrameSize)
	copy(buf, msg)
	return buf, nil
}

func (fixedStringMessenger) Deserialize(raw []byte) (string, error) {
	return trimNulls(raw), nil
}

func trimNulls(b []byte) string {
	n := len(b)
	for n > 0 && b[n-1] == 0 {
		n--
	}
	return string(b[:n])
}

// echoServer accepts exactly one connection and echoes every fixed-size
// frame it reads, using plain blocking net.Conn since the server side of
// this round trip is not under test.
func echoServer(t *testing.T, ln net.Listener) {
	t.Helper()
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		buf := make([]byte, fixedFrameSize)
		for {
			if _, err := io.ReadFull(conn, buf); err != nil {
				return
			}
			if _, err := conn.Write(buf); err != nil {
				return
			}
		}
	}()
}

func TestConnectSendRecvRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()
	echoServer(t, ln)

	cb := callback.NewCounter[string, string]()
	clt, err := Connect[string, string](
		ln.Addr().String(),
		2*time.Second,
		10*time.Millisecond,
		"test-clt",
		frame.FixedSizeFramer{Size: fixedFrameSize},
		fixedFrameSize,
		fixedStringMessenger{},
		cb,
		nil,
		true,
	)
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer clt.Close()

	if err := clt.Sender.SendBusywait("hello"); err != nil {
		t.Fatalf("SendBusywait: %v", err)
	}

	msg, ok, err := clt.RecvBusywaitTimeout(time.Second)
	if err != nil {
		t.Fatalf("RecvBusywaitTimeout: %v", err)
	}
	if !ok {
		t.Fatalf("expected a reply within timeout")
	}
	if msg != "hello" {
		t.Fatalf("msg = %q, want %q", msg, "hello")
	}

	if cb.SentCount() != 1 || cb.RecvCount() != 1 {
		t.Fatalf("counter sent=%d recv=%d, want 1,1", cb.SentCount(), cb.RecvCount())
	}
}

func TestConnectTimesOutWithNoListener(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	addr := ln.Addr().String()
	ln.Close() // nothing will accept on this address now

	_, err = Connect[string, string](
		addr,
		60*time.Millisecond,
		10*time.Millisecond,
		"test-clt",
		frame.FixedSizeFramer{Size: fixedFrameSize},
		fixedFrameSize,
		fixedStringMessenger{},
		callback.NewCounter[string, string](),
		nil,
		true,
	)
	if err == nil {
		t.Fatalf("expected a connect error")
	}
}

func TestConnectRejectsBadTimeoutOrdering(t *testing.T) {
	_, err := Connect[string, string](
		"127.0.0.1:1",
		10*time.Millisecond,
		20*time.Millisecond,
		"test-clt",
		frame.FixedSizeFramer{Size: fixedFrameSize},
		fixedFrameSize,
		fixedStringMessenger{},
		callback.NewCounter[string, string](),
		nil,
		true,
	)
	if err == nil {
		t.Fatalf("expected an error when connectTimeout <= retryAfter")
	}
}
