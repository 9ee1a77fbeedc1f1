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

// Package frame provides pure frame boundary detection
// (Framer) plus the non-blocking read/write loops that turn a byte stream
// socket into a sequence of complete frames (FrameReader/FrameWriter).
package frame

import "encoding/binary"

// Framer determines where one complete frame ends inside buf. Implementations
// must be pure: no I/O, no retained state between calls beyond what buf
// itself carries.
type Framer interface {
	// GetFrameLength returns the total byte length of the next complete
	// frame at the head of buf, and true, if determinable from the bytes
	// seen so far. Returns (0, false) when not enough bytes are available
	// yet to know the length.
	GetFrameLength(buf []byte) (int, bool)
}

// GetFrame calls f.GetFrameLength and, if it resolves to n and buf already
// holds at least n bytes, returns buf[:n] and true. The caller owns slicing
// the consumed prefix off of buf afterward.
func GetFrame(f Framer, buf []byte) ([]byte, bool) {
	n, ok := f.GetFrameLength(buf)
	if !ok {
		return nil, false
	}
	if len(buf) < n {
		return nil, false
	}
	return buf[:n], true
}

// FixedSizeFramer frames every message as exactly Size bytes.
type FixedSizeFramer struct {
	Size int
}

func (f FixedSizeFramer) GetFrameLength(buf []byte) (int, bool) {
	if len(buf) < f.Size {
		return 0, false
	}
	return f.Size, true
}

// PacketLengthU16Framer frames messages prefixed by a 16-bit length field.
// StartIdx is the byte offset of that field within the frame (allowing a
// fixed header before it); BigEndian selects the field's byte order;
// LengthIncludesHeader, when true, means the encoded length already counts
// the StartIdx header bytes and the 2-byte length field itself, so the
// total frame length equals the decoded value verbatim. When false, the
// decoded value is only the payload length and the header is added on top.
type PacketLengthU16Framer struct {
	StartIdx             int
	BigEndian            bool
	LengthIncludesHeader bool
}

const u16Len = 2

// PacketLen reads the raw 16-bit length field without consuming it, if
// enough bytes are present.
func (f PacketLengthU16Framer) PacketLen(buf []byte) (uint16, bool) {
	if len(buf) < f.StartIdx+u16Len {
		return 0, false
	}
	field := buf[f.StartIdx : f.StartIdx+u16Len]
	if f.BigEndian {
		return binary.BigEndian.Uint16(field), true
	}
	return binary.LittleEndian.Uint16(field), true
}

func (f PacketLengthU16Framer) GetFrameLength(buf []byte) (int, bool) {
	packetLen, ok := f.PacketLen(buf)
	if !ok {
		return 0, false
	}

	frameLen := int(packetLen)
	if !f.LengthIncludesHeader {
		frameLen += f.StartIdx + u16Len
	}

	if len(buf) < frameLen {
		return 0, false
	}
	return frameLen, true
}
