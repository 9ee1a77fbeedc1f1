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

package protocol

import "testing"

func TestStateCloneIsIndependent(t *testing.T) {
	s1 := NewState(1)
	s2 := s1.Clone()

	if s2.Get() != 1 {
		t.Fatalf("Clone() seed = %d, want 1", s2.Get())
	}

	s1.Set(2)
	if s1.Get() != 2 {
		t.Fatalf("s1.Get() = %d, want 2", s1.Get())
	}
	if s2.Get() != 1 {
		t.Fatalf("cloning should not alias state: s2.Get() = %d, want 1", s2.Get())
	}
}

func TestStateWithMutatesUnderLock(t *testing.T) {
	s := NewState(10)
	s.With(func(cur int) int { return cur + 5 })

	if s.Get() != 15 {
		t.Fatalf("With() result = %d, want 15", s.Get())
	}
}
