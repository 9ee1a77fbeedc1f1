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

import (
	"testing"

	"github.com/sabouaram/netcore/neterr"
)

// chunkSource replays a fixed sequence of reads: each entry is delivered by
// one Read call, then nil/io.EOF-style fields control what happens next.
type chunkSource struct {
	chunks     [][]byte
	wouldBlock []bool // wouldBlock[i] true means emit ErrWouldBlock instead of chunks[i]
	idx        int
	shutdowns  int
}

func (s *chunkSource) Read(p []byte) (int, error) {
	if s.idx >= len(s.chunks) {
		return 0, nil // orderly EOF once the script runs out
	}
	if s.idx < len(s.wouldBlock) && s.wouldBlock[s.idx] {
		s.idx++
		return 0, neterr.ErrWouldBlock
	}
	n := copy(p, s.chunks[s.idx])
	s.idx++
	return n, nil
}

func (s *chunkSource) ShutdownBoth() error {
	s.shutdowns++
	return nil
}

func TestFrameReaderAssemblesSplitFrame(t *testing.T) {
	// The peer's 5-byte fixed frame arrives in two separate reads.
	src := &chunkSource{chunks: [][]byte{[]byte("12"), []byte("345")}}
	r := NewFrameReader(src, FixedSizeFramer{Size: 5}, 64)

	frame, status, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != neterr.RecvCompleted {
		t.Fatalf("status = %v, want Completed", status)
	}
	if string(frame) != "12345" {
		t.Fatalf("frame = %q, want %q", frame, "12345")
	}
}

func TestFrameReaderWouldBlockOnEmptyBuffer(t *testing.T) {
	src := &chunkSource{chunks: [][]byte{nil}, wouldBlock: []bool{true}}
	r := NewFrameReader(src, FixedSizeFramer{Size: 5}, 64)

	_, status, err := r.ReadFrame()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if status != neterr.RecvWouldBlock {
		t.Fatalf("status = %v, want WouldBlock", status)
	}
}

func TestFrameReaderPreservesResidualAcrossWouldBlock(t *testing.T) {
	// a WouldBlock after a partial read must not discard what was already
	// buffered; the next ReadFrame call sees it still there.
	src := &chunkSource{
		chunks:     [][]byte{[]byte("12"), nil, []byte("345")},
		wouldBlock: []bool{false, true, false},
	}
	r := NewFrameReader(src, FixedSizeFramer{Size: 5}, 64)

	_, status, err := r.ReadFrame()
	if err != nil || status != neterr.RecvWouldBlock {
		t.Fatalf("first ReadFrame = %v, %v, want (_, WouldBlock, nil)", status, err)
	}

	frame, status, err := r.ReadFrame()
	if err != nil || status != neterr.RecvCompleted || string(frame) != "12345" {
		t.Fatalf("second ReadFrame = %q, %v, %v, want (12345, Completed, nil)", frame, status, err)
	}
}

func TestFrameReaderResidualOnEOFIsAnError(t *testing.T) {
	src := &chunkSource{chunks: [][]byte{[]byte("12")}}
	r := NewFrameReader(src, FixedSizeFramer{Size: 5}, 64)

	_, _, err := r.ReadFrame()
	if err == nil {
		t.Fatalf("expected a ConnectionReset-kind error for residual-on-EOF")
	}
	if src.shutdowns != 1 {
		t.Fatalf("shutdowns = %d, want 1", src.shutdowns)
	}
}

func TestFrameReaderCleanEOFWithEmptyBuffer(t *testing.T) {
	src := &chunkSource{chunks: nil}
	r := NewFrameReader(src, FixedSizeFramer{Size: 5}, 64)

	frame, status, err := r.ReadFrame()
	if err != nil || status != neterr.RecvCompleted || frame != nil {
		t.Fatalf("clean EOF = %q, %v, %v, want (nil, Completed, nil)", frame, status, err)
	}
}

// chunkSink replays per-call (n, err) outcomes for Write, independent of p.
type chunkSink struct {
	writes    []int
	blockIdx  map[int]bool
	idx       int
	received  []byte
	shutdowns int
}

func (s *chunkSink) Write(p []byte) (int, error) {
	if s.blockIdx[s.idx] {
		s.idx++
		return 0, neterr.ErrWouldBlock
	}
	n := s.writes[s.idx]
	if n > len(p) {
		n = len(p)
	}
	s.received = append(s.received, p[:n]...)
	s.idx++
	return n, nil
}

func (s *chunkSink) ShutdownBoth() error {
	s.shutdowns++
	return nil
}

func TestFrameWriterCompletesWholeWriteImmediately(t *testing.T) {
	sink := &chunkSink{writes: []int{5}}
	w := NewFrameWriter(sink)

	status, err := w.WriteFrame([]byte("12345"))
	if err != nil || status != neterr.SendCompleted {
		t.Fatalf("status, err = %v, %v, want Completed, nil", status, err)
	}
	if string(sink.received) != "12345" {
		t.Fatalf("received = %q, want %q", sink.received, "12345")
	}
}

func TestFrameWriterWouldBlockBeforeAnyByte(t *testing.T) {
	sink := &chunkSink{writes: []int{0}, blockIdx: map[int]bool{0: true}}
	w := NewFrameWriter(sink)

	status, err := w.WriteFrame([]byte("12345"))
	if err != nil || status != neterr.SendWouldBlock {
		t.Fatalf("status, err = %v, %v, want WouldBlock, nil", status, err)
	}
}

func TestFrameWriterNeverReturnsWouldBlockMidFrame(t *testing.T) {
	// 2 bytes go out, then a WouldBlock, then the remaining 3 bytes: the
	// call must busy-loop through the WouldBlock and still return
	// Completed for the whole frame.
	sink := &chunkSink{
		writes:   []int{2, 0, 3},
		blockIdx: map[int]bool{1: true},
	}
	w := NewFrameWriter(sink)

	status, err := w.WriteFrame([]byte("12345"))
	if err != nil || status != neterr.SendCompleted {
		t.Fatalf("status, err = %v, %v, want Completed, nil", status, err)
	}
	if string(sink.received) != "12345" {
		t.Fatalf("received = %q, want %q", sink.received, "12345")
	}
}
