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

// cycleRange walks 0..n-1 forever, wrapping back to 0 after the last slot.
// peek() reports the index last handed out by next(), so RoundRobin and
// Current agree on position without the caller tracking it separately.
type cycleRange struct {
	start   int
	end     int
	current int
}

func newCycleRange(n int) *cycleRange {
	return &cycleRange{start: 0, end: n - 1, current: 0}
}

func (c *cycleRange) next() int {
	cur := c.current
	if c.current == c.end {
		c.current = c.start
	} else {
		c.current++
	}
	return cur
}

func (c *cycleRange) peek() int {
	if c.current == c.start {
		return c.end
	}
	return c.current - 1
}
