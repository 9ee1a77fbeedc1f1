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
	"errors"

	"golang.org/x/sys/unix"
)

// poll blocks (no timeout when timeoutMillis < 0) until at least one fd in
// fds is readable, an error occurs, or timeoutMillis elapses. It reports
// EINTR as "nothing ready yet" rather than an error, since a handler
// running on its own dedicated goroutine has no reason to treat a signal
// interruption as fatal.
//
// unix.Poll is the one syscall used here on purpose: it is implemented on
// every platform golang.org/x/sys/unix targets (epoll_wait and kqueue both
// need separate, platform-specific event-struct layouts and registration
// calls), and the slab this package drains every wakeup is already small
// enough that rebuilding the interest set per call costs nothing a
// persistent epoll/kqueue registration would meaningfully save.
func poll(fds []unix.PollFd, timeoutMillis int) (int, error) {
	if len(fds) == 0 {
		return 0, nil
	}
	n, err := unix.Poll(fds, timeoutMillis)
	if err != nil {
		if errors.Is(err, unix.EINTR) {
			return 0, nil
		}
		return 0, err
	}
	return n, nil
}
