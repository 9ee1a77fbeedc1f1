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
	"time"

	"golang.org/x/sys/unix"

	"github.com/sabouaram/netcore/neterr"
)

// PollHandler mixes RecvServiceable and AcceptServiceable entries behind
// interfaces, keyed by file descriptor (poll(2) has no independent token
// concept the way an epoll/kqueue registration does, so the fd doubles as
// the slab key here). One handler's Spawn runs on a single dedicated
// goroutine; Add/Remove may be called from any goroutine while it runs.
type PollHandler struct {
	mu       sync.Mutex
	entries  map[int]any // RecvServiceable or AcceptServiceable
	stopping bool
	stopCh   chan struct{}
}

// New returns an empty handler. Register entries with AddRecver/AddAcceptor
// before calling Service or Spawn.
func New() *PollHandler {
	return &PollHandler{
		entries: make(map[int]any),
		stopCh:  make(chan struct{}),
	}
}

func (h *PollHandler) AddRecver(s RecvServiceable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[s.Fd()] = s
}

func (h *PollHandler) AddAcceptor(s AcceptServiceable) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.entries[s.Fd()] = s
}

func (h *PollHandler) Remove(fd int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.entries, fd)
}

// Len reports how many serviceables are currently registered.
func (h *PollHandler) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.entries)
}

func (h *PollHandler) snapshot() []unix.PollFd {
	h.mu.Lock()
	defer h.mu.Unlock()
	fds := make([]unix.PollFd, 0, len(h.entries))
	for fd := range h.entries {
		fds = append(fds, unix.PollFd{Fd: int32(fd), Events: unix.POLLIN})
	}
	return fds
}

func (h *PollHandler) get(fd int) (any, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	v, ok := h.entries[fd]
	return v, ok
}

// servicePollTimeoutMillis bounds each poll(2) call so Spawn's loop wakes
// up periodically to notice Stop even while no registered fd is ready.
const servicePollTimeoutMillis = 1000

// Service blocks until at least one registered fd is ready, then drains
// every ready entry: a RecvServiceable calls OnEvent repeatedly while it
// reports Completed (a single wakeup can carry more than one buffered
// frame), an AcceptServiceable calls AcceptRecver and folds any freshly
// accepted connection straight into the slab so it gets serviced in the
// same pass. It returns once a full pass over the ready set produced no
// further completions, or once servicePollTimeoutMillis elapses with
// nothing ready.
func (h *PollHandler) Service() error {
	fds := h.snapshot()
	if len(fds) == 0 {
		return nil
	}

	n, err := poll(fds, servicePollTimeoutMillis)
	if err != nil {
		return err
	}
	if n == 0 {
		return nil
	}

	atLeastOneCompleted := true
	for atLeastOneCompleted {
		atLeastOneCompleted = false
		for _, pfd := range fds {
			if pfd.Revents == 0 {
				continue
			}

			svc, ok := h.get(int(pfd.Fd))
			if !ok {
				continue
			}

			switch s := svc.(type) {
			case AcceptServiceable:
				status, recver, aerr := s.AcceptRecver()
				if aerr != nil {
					h.Remove(int(pfd.Fd))
					continue
				}
				if status == neterr.AcceptAccepted && recver != nil {
					h.AddRecver(recver)
					atLeastOneCompleted = true
				}

			case RecvServiceable:
				for {
					status, rerr := s.OnEvent()
					if rerr != nil || status == neterr.PollTerminate {
						h.Remove(int(pfd.Fd))
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
	}

	return nil
}

// Spawn runs Service in a loop on a dedicated goroutine until Stop is
// called. Errors from Service are ignored beyond removing the entry that
// caused them: a single bad connection or listener never brings down the
// whole handler.
func (h *PollHandler) Spawn() {
	go func() {
		idle := time.NewTicker(100 * time.Millisecond)
		defer idle.Stop()
		for {
			select {
			case <-h.stopCh:
				return
			default:
			}
			if h.Len() == 0 {
				select {
				case <-h.stopCh:
					return
				case <-idle.C:
				}
				continue
			}
			_ = h.Service()
		}
	}()
}

// Stop signals Spawn's goroutine to exit after its current Service call
// returns. It is safe to call more than once.
func (h *PollHandler) Stop() {
	h.mu.Lock()
	if h.stopping {
		h.mu.Unlock()
		return
	}
	h.stopping = true
	h.mu.Unlock()
	close(h.stopCh)
}
