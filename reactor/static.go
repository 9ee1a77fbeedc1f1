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

package reactor

import (
	"sync"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/netcore/client"
	"github.com/sabouaram/netcore/neterr"
	"github.com/sabouaram/netcore/server"
)

// StaticPollHandler runs the same service-loop algorithm as PollHandler
// but against exactly one concrete *server.Acceptor[SendT, RecvT] and its
// accepted *client.Clt[SendT, RecvT] values, with no interface indirection
// on the hot path: every dispatch is a direct method call on a known
// concrete type, at the cost of only ever servicing one listener's
// connections per handler.
type StaticPollHandler[SendT any, RecvT any] struct {
	mu       sync.Mutex
	acceptor *server.Acceptor[SendT, RecvT]
	conns    map[int]*client.Clt[SendT, RecvT]
	stopping bool
	stopCh   chan struct{}
}

// NewStatic binds the handler to acceptor. The listener is registered
// immediately; accepted connections join conns as AcceptRecver hands them
// back.
func NewStatic[SendT any, RecvT any](acceptor *server.Acceptor[SendT, RecvT]) *StaticPollHandler[SendT, RecvT] {
	return &StaticPollHandler[SendT, RecvT]{
		acceptor: acceptor,
		conns:    make(map[int]*client.Clt[SendT, RecvT]),
		stopCh:   make(chan struct{}),
	}
}

// Len reports how many accepted connections are currently registered
// (excluding the listener itself).
func (h *StaticPollHandler[SendT, RecvT]) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

func (h *StaticPollHandler[SendT, RecvT]) snapshot() []unix.PollFd {
	h.mu.Lock()
	defer h.mu.Unlock()
	fds := make([]unix.PollFd, 0, len(h.conns)+1)
	fds = append(fds, unix.PollFd{Fd: int32(h.acceptor.Fd()), Events: unix.POLLIN})
	for fd := range h.conns {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	return fds
}

func (h *StaticPollHandler[SendT, RecvT]) add(clt *client.Clt[SendT, RecvT]) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[clt.Fd()] = clt
}

func (h *StaticPollHandler[SendT, RecvT]) remove(fd int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if clt, ok := h.conns[fd]; ok {
		_ = clt.Close()
		delete(h.conns, fd)
	}
}

func (h *StaticPollHandler[SendT, RecvT]) lookup(fd int) (*client.Clt[SendT, RecvT], bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clt, ok := h.conns[fd]
	return clt, ok
}

// Service mirrors PollHandler.Service's cascade algorithm: poll once, then
// keep re-scanning the ready set while an iteration accepted a connection
// or drained a complete message, so an accept immediately followed by a
// readable frame on the same wakeup is handled in one pass.
func (h *StaticPollHandler[SendT, RecvT]) Service() error {
	fds := h.snapshot()

	n, err := poll(fds, servicePollTimeoutMillis)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	acceptorFd := int32(h.acceptor.Fd())

	atLeastOneCompleted := true
	for atLeastOneCompleted {
		atLeastOneCompleted = false
		for _, pfd := range fds {
			if pfd.Revents == 0 {
				continue
			}

			if pfd.Fd == acceptorFd {
				status, clt, aerr := h.acceptor.AcceptRecver()
				if aerr != nil {
					continue
				}
				if status == neterr.AcceptAccepted && clt != nil {
					h.add(clt)
					atLeastOneCompleted = true
				}
				continue
			}

			clt, ok := h.lookup(int(pfd.Fd))
			if !ok {
				continue
			}
			for {
				status, cerr := clt.OnEvent()
				if cerr != nil || status == neterr.PollTerminate {
					h.remove(int(pfd.Fd))
					break
				}
				if status == neterr.PollCompleted {
					atLeastOneCompleted = true
					continue
				}
				break
			}
		}
	}

	return nil
}

// Spawn runs Service in a loop on a dedicated goroutine until Stop.
func (h *StaticPollHandler[SendT, RecvT]) Spawn() {
	go func() {
		for {
			select {
			case <-h.stopCh:
				return
			default:
			}
			_ = h.Service()
		}
	}()
}

// Stop signals Spawn's goroutine to exit after its current Service call
// returns, then closes the listener and every accepted connection. It is
// safe to call more than once.
func (h *StaticPollHandler[SendT, RecvT]) Stop() {
	h.mu.Lock()
	if h.stopping {
		h.mu.Unlock()
		return
	}
	h.stopping = true
	h.mu.Unlock()
	close(h.stopCh)

	h.mu.Lock()
	defer h.mu.Unlock()
	_ = h.acceptor.Close()
	for fd, clt := range h.conns {
		_ = clt.Close()
		delete(h.conns, fd)
	}
}
