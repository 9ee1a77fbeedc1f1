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
	"testing"
	"time"

	"github.com/sabouaram/netcore/conid"
)

func TestCounterTalliesEachEventKind(t *testing.T) {
	c := NewCounter[string, string]()
	id := conid.Default()
	msg := "hi"

	c.OnSend(id, &msg)
	c.OnSent(id, &msg)
	c.OnRecv(id, &msg)
	c.OnFail(id, &msg, nil)

	if c.SendCount() != 1 || c.SentCount() != 1 || c.RecvCount() != 1 || c.FailCount() != 1 {
		t.Fatalf("counts = send:%d sent:%d recv:%d fail:%d, want all 1",
			c.SendCount(), c.SentCount(), c.RecvCount(), c.FailCount())
	}
}

func TestChainFansOutToEveryMember(t *testing.T) {
	a := NewCounter[string, string]()
	b := NewCounter[string, string]()
	chain := NewChain[string, string](a, b)

	id := conid.Default()
	msg := "hi"
	chain.OnRecv(id, &msg)

	if a.RecvCount() != 1 || b.RecvCount() != 1 {
		t.Fatalf("chain did not reach every member: a=%d b=%d", a.RecvCount(), b.RecvCount())
	}
}

func TestStoreFindRecvAndSentAreIndependent(t *testing.T) {
	s := NewStore[string, string]()
	id := conid.Default()
	before := time.Now()
	recvMsg, sentMsg := "in", "out"

	s.OnRecv(id, &recvMsg)
	s.OnSent(id, &sentMsg)

	if got := s.FindRecv(before); len(got) != 1 || got[0].Payload.(*string) != &recvMsg {
		t.Fatalf("FindRecv returned %d entries, want the one recv entry", len(got))
	}
	if got := s.FindSent(before); len(got) != 1 {
		t.Fatalf("FindSent returned %d entries, want 1", len(got))
	}
}

func TestDevNullDiscardsEverything(t *testing.T) {
	var d DevNull[string, string]
	id := conid.Default()
	msg := "hi"
	d.OnRecv(id, &msg)
	d.OnSend(id, &msg)
	d.OnSent(id, &msg)
	d.OnFail(id, &msg, nil)
}
