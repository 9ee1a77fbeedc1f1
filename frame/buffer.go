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

package frame

// recvBuffer is the growable tail-append buffer behind FrameReader. It
// preserves its filled bytes across WouldBlock: nothing is ever discarded
// except the exact prefix consumed as a complete frame.
type recvBuffer struct {
	buf []byte
	len int
}

func newRecvBuffer(maxFrameSize int) *recvBuffer {
	if maxFrameSize <= 0 {
		maxFrameSize = 4096
	}
	return &recvBuffer{buf: make([]byte, maxFrameSize)}
}

// filled returns the bytes read so far but not yet consumed as a frame.
func (b *recvBuffer) filled() []byte {
	return b.buf[:b.len]
}

// reserve grows the backing array, if needed, so at least extra more bytes
// can be appended after the current logical length.
func (b *recvBuffer) reserve(extra int) {
	need := b.len + extra
	if need <= len(b.buf) {
		return
	}
	grown := make([]byte, need)
	copy(grown, b.buf[:b.len])
	b.buf = grown
}

// tail returns the free capacity after the logical length, for a Read call
// to fill directly without an intermediate copy.
func (b *recvBuffer) tail() []byte {
	return b.buf[b.len:]
}

// appendRead records that n bytes were just written into tail() by Read.
func (b *recvBuffer) appendRead(n int) {
	b.len += n
}

// consume removes the first n bytes (a delivered frame) and shifts any
// remaining bytes down to the front.
func (b *recvBuffer) consume(n int) {
	remaining := b.len - n
	if remaining > 0 {
		copy(b.buf, b.buf[n:b.len])
	}
	b.len = remaining
}

func (b *recvBuffer) empty() bool {
	return b.len == 0
}
