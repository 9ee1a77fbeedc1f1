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

package server

import (
	"testing"
	"time"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/client"
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
	n := len(raw)
	for n > 0 && raw[n-1] == 0 {
		n--
	}
	return string(raw[:n]), nil
}

func TestSvcAcceptsAndEchoesRoundTrip(t *testing.T) {
	svc, err := Bind[string, string](
		"127.0.0.1:0", 2, frame.FixedSizeFramer{Size: fixedFrameSize}, fixedFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, "test-svc", true,
	)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer svc.Close()

	addr := svc.listener.localAddr.String()

	done := make(chan error, 1)
	go func() {
		status, err := svc.AcceptBusywaitTimeout(2 * time.Second)
		if err != nil {
			done <- err
			return
		}
		if status.String() != "Accepted" {
			done <- errAcceptNotCompleted(status)
			return
		}
		done <- nil
	}()

	clt, err := client.Connect[string, string](
		addr, 2*time.Second, 10*time.Millisecond, "test-clt",
		frame.FixedSizeFramer{Size: fixedFrameSize}, fixedFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, true,
	)
	if err != nil {
		t.Fatalf("client.Connect: %v", err)
	}
	defer clt.Close()

	if err := <-done; err != nil {
		t.Fatalf("AcceptBusywaitTimeout: %v", err)
	}
	if svc.Len() != 1 {
		t.Fatalf("svc.Len() = %d, want 1", svc.Len())
	}

	if err := clt.Sender.SendBusywait("ping"); err != nil {
		t.Fatalf("client send: %v", err)
	}

	msg, status, err := svc.RecvBusywait()
	if err != nil {
		t.Fatalf("RecvBusywait: %v", err)
	}
	if status.String() != "Completed" || msg != "ping" {
		t.Fatalf("RecvBusywait = %q, %v, want ping, Completed", msg, status)
	}

	if err := svc.SendCurrentBusywait("pong"); err != nil {
		t.Fatalf("SendCurrentBusywait: %v", err)
	}

	reply, ok, err := clt.RecvBusywaitTimeout(time.Second)
	if err != nil {
		t.Fatalf("client recv: %v", err)
	}
	if !ok || reply != "pong" {
		t.Fatalf("reply = %q, %v, want pong, true", reply, ok)
	}
}

func TestSvcRecvBusywaitReportsNotConnectedWhenEmpty(t *testing.T) {
	svc, err := Bind[string, string](
		"127.0.0.1:0", 1, frame.FixedSizeFramer{Size: fixedFrameSize}, fixedFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, "test-svc", true,
	)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer svc.Close()

	_, _, err = svc.RecvBusywait()
	if err == nil {
		t.Fatalf("expected a NotConnected error on an empty pool")
	}
}

func TestSvcAcceptRefusesBeyondMaxConnections(t *testing.T) {
	svc, err := Bind[string, string](
		"127.0.0.1:0", 1, frame.FixedSizeFramer{Size: fixedFrameSize}, fixedFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, "test-svc", true,
	)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	defer svc.Close()
	addr := svc.listener.localAddr.String()

	clt1, err := client.Connect[string, string](
		addr, 2*time.Second, 10*time.Millisecond, "clt-1",
		frame.FixedSizeFramer{Size: fixedFrameSize}, fixedFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, true,
	)
	if err != nil {
		t.Fatalf("client.Connect #1: %v", err)
	}
	defer clt1.Close()
	if status, err := svc.AcceptBusywaitTimeout(2 * time.Second); err != nil || status.String() != "Accepted" {
		t.Fatalf("accept #1 = %v, %v", status, err)
	}

	clt2, err := client.Connect[string, string](
		addr, 200*time.Millisecond, 10*time.Millisecond, "clt-2",
		frame.FixedSizeFramer{Size: fixedFrameSize}, fixedFrameSize,
		fixedStringMessenger{}, callback.NewCounter[string, string](), nil, true,
	)
	// the TCP handshake itself can still succeed (backlog), but the
	// pool must refuse to admit a second connection.
	if err == nil {
		defer clt2.Close()
	}

	status, err := svc.AcceptBusywaitTimeout(150 * time.Millisecond)
	if err != nil {
		t.Fatalf("accept #2: %v", err)
	}
	if status.String() != "WouldBlock" {
		t.Fatalf("accept #2 status = %v, want WouldBlock (pool at capacity)", status)
	}
	if svc.Len() != 1 {
		t.Fatalf("svc.Len() = %d, want 1", svc.Len())
	}
}

type acceptStatusError string

func (e acceptStatusError) Error() string { return string(e) }

func errAcceptNotCompleted(status interface{ String() string }) error {
	return acceptStatusError("accept did not complete: " + status.String())
}
