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
	"github.com/sabouaram/netcore/neterr"
)

// Sink is the non-blocking write half a FrameWriter drives, mirroring
// Source's WouldBlock contract.
type Sink interface {
	Write(p []byte) (int, error)
}

// FrameWriter writes whole frames to a non-blocking Sink.
// Partial writes busy-loop to completion inside a single WriteFrame call:
// WouldBlock is only ever returned at a frame boundary, never mid-frame,
// so the peer never observes a torn frame.
type FrameWriter struct {
	Sink Sink
}

func NewFrameWriter(sink Sink) *FrameWriter {
	return &FrameWriter{Sink: sink}
}

// WriteFrame implements the algorithm. It returns
// (SendCompleted, nil) once every byte of frame reached the Sink,
// (SendWouldBlock, nil) if the very first write attempt blocked before any
// byte was sent, or (_, err) on a reset or other unrecoverable error.
func (w *FrameWriter) WriteFrame(frame []byte) (neterr.SendStatus, error) {
	residual := frame
	wroteAny := false

	for {
		if len(residual) == 0 {
			return neterr.SendCompleted, nil
		}

		n, err := w.Sink.Write(residual)

		switch {
		case err != nil && neterr.IsWouldBlock(err):
			if !wroteAny {
				return neterr.SendWouldBlock, nil
			}
			// partial write already happened for this frame: keep
			// busy-looping.
			continue

		case err == nil && n == 0 && len(residual) > 0:
			w.shutdownBoth()
			return neterr.SendCompleted, neterr.ErrorConnectionReset.Error()

		case err == nil && n == len(residual):
			return neterr.SendCompleted, nil

		case err == nil && n > 0 && n < len(residual):
			residual = residual[n:]
			wroteAny = true
			continue

		default:
			// Propagated verbatim, same reasoning as FrameReader.ReadFrame's
			// default branch.
			w.shutdownBoth()
			return neterr.SendCompleted, err
		}
	}
}

func (w *FrameWriter) shutdownBoth() {
	if sd, ok := w.Sink.(BothDirectionShutdown); ok {
		_ = sd.ShutdownBoth()
	}
}
