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

// Package message provides the wire-codec boundary
// (Messenger) and the thin typed wrappers (MessageRecver/MessageSender)
// that sit directly on top of netcore/frame.
package message

import (
	"github.com/sabouaram/netcore/conid"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/neterr"
	"github.com/sabouaram/netcore/storage"
)

// Messenger is the wire codec boundary. SendT/RecvT are usually the same
// type for a symmetric protocol, but need not be. MaxSize is the frame cap
// Serialize must never exceed; unlike the Rust source's const-generic MAX,
// Go has no compile-time array bound to lean on, so implementations size
// their own scratch buffer to MaxSize and Serialize reports an error if the
// encoded message would overflow it.
type Messenger[SendT any, RecvT any] interface {
	Serialize(msg SendT) ([]byte, error)
	Deserialize(frame []byte) (RecvT, error)
}

// MessageRecver pairs FrameReader.ReadFrame with Messenger.Deserialize,
// carrying the owning ConId.
type MessageRecver[SendT any, RecvT any] struct {
	ConId     conid.ConId
	Reader    *frame.FrameReader
	Messenger Messenger[SendT, RecvT]
	Storage   storage.Storage
}

func NewMessageRecver[SendT any, RecvT any](
	id conid.ConId,
	reader *frame.FrameReader,
	messenger Messenger[SendT, RecvT],
) *MessageRecver[SendT, RecvT] {
	return &MessageRecver[SendT, RecvT]{ConId: id, Reader: reader, Messenger: messenger}
}

// UseStorage arms r so every successfully read frame is also handed to s,
// raw, before deserialization. Optional: a MessageRecver with no Storage
// simply skips the call.
func (r *MessageRecver[SendT, RecvT]) UseStorage(s storage.Storage) {
	r.Storage = s
}

// Source exposes the underlying OS socket so a reactor can register this
// recver directly.
func (r *MessageRecver[SendT, RecvT]) Source() frame.Source {
	return r.Reader.Source
}

// Recv reads one frame and deserializes it. A (zero, RecvClosed, nil)
// result means the peer closed cleanly, distinct from RecvCompleted so
// callers never mistake a closed connection for a zero-value message.
func (r *MessageRecver[SendT, RecvT]) Recv() (RecvT, neterr.RecvStatus, error) {
	var zero RecvT

	raw, status, err := r.Reader.ReadFrame()
	if err != nil {
		return zero, status, err
	}
	if status == neterr.RecvWouldBlock {
		return zero, status, nil
	}
	if raw == nil {
		return zero, neterr.RecvClosed, nil
	}
	if r.Storage != nil {
		_ = r.Storage.OnMessage(r.ConId, storage.DirRecv, raw)
	}

	msg, err := r.Messenger.Deserialize(raw)
	if err != nil {
		return zero, neterr.RecvCompleted, neterr.ErrorInvalidData.Error(err)
	}
	return msg, neterr.RecvCompleted, nil
}

// MessageSender pairs Messenger.Serialize with FrameWriter.WriteFrame.
type MessageSender[SendT any, RecvT any] struct {
	ConId     conid.ConId
	Writer    *frame.FrameWriter
	Messenger Messenger[SendT, RecvT]
	Storage   storage.Storage
}

func NewMessageSender[SendT any, RecvT any](
	id conid.ConId,
	writer *frame.FrameWriter,
	messenger Messenger[SendT, RecvT],
) *MessageSender[SendT, RecvT] {
	return &MessageSender[SendT, RecvT]{ConId: id, Writer: writer, Messenger: messenger}
}

// UseStorage arms s so every serialized message is also handed to store,
// raw, once WriteFrame accepts it.
func (s *MessageSender[SendT, RecvT]) UseStorage(store storage.Storage) {
	s.Storage = store
}

func (s *MessageSender[SendT, RecvT]) Source() frame.Sink {
	return s.Writer.Sink
}

func (s *MessageSender[SendT, RecvT]) Send(msg SendT) (neterr.SendStatus, error) {
	raw, err := s.Messenger.Serialize(msg)
	if err != nil {
		return neterr.SendCompleted, neterr.ErrorInvalidData.Error(err)
	}
	status, err := s.Writer.WriteFrame(raw)
	if err == nil && status == neterr.SendCompleted && s.Storage != nil {
		_ = s.Storage.OnMessage(s.ConId, storage.DirSent, raw)
	}
	return status, err
}
