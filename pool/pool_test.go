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

package pool

import "testing"

func TestRoundRobinPoolCyclesInInsertionOrder(t *testing.T) {
	p := New[string](3)

	if !p.IsEmpty() || p.Len() != 0 || !p.HasCapacity() {
		t.Fatalf("new pool should be empty with capacity")
	}

	must(t, p.Add("One"))
	must(t, p.Add("Two"))

	one, ok := p.RoundRobin()
	if !ok || *one != "One" {
		t.Fatalf("RoundRobin = %v, %v, want One, true", one, ok)
	}
	if cur, ok := p.Current(); !ok || *cur != "One" {
		t.Fatalf("Current = %v, %v, want One, true", cur, ok)
	}

	two, ok := p.RoundRobin()
	if !ok || *two != "Two" {
		t.Fatalf("RoundRobin = %v, %v, want Two, true", two, ok)
	}

	one, ok = p.RoundRobin()
	if !ok || *one != "One" {
		t.Fatalf("RoundRobin wrap = %v, %v, want One, true", one, ok)
	}
}

func TestRoundRobinPoolRemoveLastUsedSkipsFreedSlot(t *testing.T) {
	p := New[string](3)
	must(t, p.Add("One"))
	must(t, p.Add("Two"))

	if _, ok := p.RoundRobin(); !ok {
		t.Fatalf("expected One")
	}
	if _, ok := p.RoundRobin(); !ok {
		t.Fatalf("expected Two")
	}

	p.RemoveLastUsed()
	if p.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", p.Len())
	}

	one, ok := p.RoundRobin()
	if !ok || *one != "One" {
		t.Fatalf("RoundRobin after remove = %v, %v, want One, true", one, ok)
	}
	one, ok = p.RoundRobin()
	if !ok || *one != "One" {
		t.Fatalf("RoundRobin should keep returning the sole element, got %v, %v", one, ok)
	}
}

func TestRoundRobinPoolAddFailsAtCapacity(t *testing.T) {
	p := New[string](1)
	must(t, p.Add("One"))

	if p.HasCapacity() {
		t.Fatalf("pool at capacity should report HasCapacity() = false")
	}
	if err := p.Add("Two"); err == nil {
		t.Fatalf("Add() beyond capacity should fail")
	}
}

func TestAcceptorConnectionGateRefusesBeyondMax(t *testing.T) {
	g := NewAcceptorConnectionGate(2)

	must(t, g.Increment())
	must(t, g.Increment())

	if err := g.Increment(); err == nil {
		t.Fatalf("Increment() beyond max should fail")
	}
	if g.CurCount() != 2 {
		t.Fatalf("CurCount() = %d, want 2", g.CurCount())
	}

	g.Decrement()
	if g.CurCount() != 1 {
		t.Fatalf("CurCount() after Decrement() = %d, want 1", g.CurCount())
	}
}

func TestConnectionBarrierReleasesExactlyOnce(t *testing.T) {
	g := NewAcceptorConnectionGate(2)
	must(t, g.Increment())
	must(t, g.Increment())

	barrier := g.NewConnectionBarrier()
	barrier.Release()
	barrier.Release()

	if g.CurCount() != 1 {
		t.Fatalf("CurCount() = %d, want 1 (double release must not double-decrement)", g.CurCount())
	}
}

func must(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
