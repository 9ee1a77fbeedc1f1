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
	"encoding/hex"
	"strconv"

	"github.com/sabouaram/netcore/neterr"
)

// Source is the non-blocking read half a FrameReader drives. A conforming
// implementation returns (0, neterr.ErrWouldBlock) instead of parking when
// no bytes are currently available, and (0, nil) on an orderly peer close —
// exactly the contract netcore/client's raw-socket Source wraps around
// golang.org/x/sys/unix's non-blocking recv.
type Source interface {
	Read(p []byte) (int, error)
}

// BothDirectionShutdown is implemented by sources that can half-close both
// directions after an unrecoverable error.
type BothDirectionShutdown interface {
	ShutdownBoth() error
}

// FrameReader turns a non-blocking byte Source into a sequence of complete
// frames. It owns a growable receive buffer that survives across
// WouldBlock results untouched.
type FrameReader struct {
	Source       Source
	Framer       Framer
	MaxFrameSize int

	buf *recvBuffer
}

func NewFrameReader(source Source, framer Framer, maxFrameSize int) *FrameReader {
	return &FrameReader{
		Source:       source,
		Framer:       framer,
		MaxFrameSize: maxFrameSize,
		buf:          newRecvBuffer(maxFrameSize),
	}
}

// ReadFrame implements the algorithm. It returns:
//   - (frame, RecvCompleted, nil) when a complete frame was delivered
//   - (nil, RecvCompleted, nil) on an orderly EOF with no residual bytes
//   - (nil, RecvWouldBlock, nil) when no complete frame is available yet
//   - (nil, _, err) on a residual-on-EOF reset or any other read error
func (r *FrameReader) ReadFrame() ([]byte, neterr.RecvStatus, error) {
	for {
		if frame, ok := GetFrame(r.Framer, r.buf.filled()); ok {
			out := make([]byte, len(frame))
			copy(out, frame)
			r.buf.consume(len(frame))
			return out, neterr.RecvCompleted, nil
		}

		r.buf.reserve(r.MaxFrameSize)
		n, err := r.Source.Read(r.buf.tail())

		switch {
		case err != nil && neterr.IsWouldBlock(err):
			if r.buf.empty() {
				return nil, neterr.RecvWouldBlock, nil
			}
			if frame, ok := GetFrame(r.Framer, r.buf.filled()); ok {
				out := make([]byte, len(frame))
				copy(out, frame)
				r.buf.consume(len(frame))
				return out, neterr.RecvCompleted, nil
			}
			return nil, neterr.RecvWouldBlock, nil

		case err == nil && n == 0:
			if r.buf.empty() {
				return nil, neterr.RecvCompleted, nil
			}
			r.shutdownBoth()
			return nil, neterr.RecvCompleted, neterr.ErrorConnectionReset.Error(
				errResidualOnEOF(r.buf.filled()),
			)

		case err == nil && n > 0:
			r.buf.appendRead(n)
			continue

		default:
			// Anything else (ECONNRESET, use-of-closed-connection, a
			// genuine deadline timeout, ...) is propagated verbatim:
			// relabeling it would hide the real errors.Is/As target
			// from the caller.
			r.shutdownBoth()
			return nil, neterr.RecvCompleted, err
		}
	}
}

func (r *FrameReader) shutdownBoth() {
	if sd, ok := r.Source.(BothDirectionShutdown); ok {
		_ = sd.ShutdownBoth()
	}
}

// errResidualOnEOF formats the hexdump of bytes the peer left behind when it
// closed mid-frame, for the ConnectionReset diagnostic.
func errResidualOnEOF(residual []byte) error {
	return &residualOnEOFError{dump: hex.Dump(residual), n: len(residual)}
}

type residualOnEOFError struct {
	dump string
	n    int
}

func (e *residualOnEOFError) Error() string {
	return "peer closed with " + strconv.Itoa(e.n) + " residual byte(s) mid-frame:\n" + e.dump
}
