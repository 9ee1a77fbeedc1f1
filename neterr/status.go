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

package neterr

import (
	"errors"
	"fmt"
)

// ErrWouldBlock is the transient, always-recoverable-by-retry signal:
// every hot-path recv/send call can return it, so it is control flow,
// not a diagnostic.
var ErrWouldBlock = errors.New("netcore: would block")

// IsWouldBlock reports whether err is, or wraps, ErrWouldBlock.
func IsWouldBlock(err error) bool {
	return errors.Is(err, ErrWouldBlock)
}

// RecvStatus is the outcome of a single Recv call.
type RecvStatus int

const (
	// RecvCompleted means Msg holds a freshly deserialized message.
	RecvCompleted RecvStatus = iota
	RecvWouldBlock
	// RecvClosed means the peer closed the connection cleanly with no
	// residual bytes; Msg is the zero value and must not be mistaken for
	// an actually-received message.
	RecvClosed
)

func (s RecvStatus) String() string {
	switch s {
	case RecvCompleted:
		return "Completed"
	case RecvWouldBlock:
		return "WouldBlock"
	case RecvClosed:
		return "Closed"
	default:
		return fmt.Sprintf("RecvStatus(%d)", int(s))
	}
}

// SendStatus is the outcome of a single Send call.
type SendStatus int

const (
	SendCompleted SendStatus = iota
	SendWouldBlock
)

func (s SendStatus) String() string {
	switch s {
	case SendCompleted:
		return "Completed"
	case SendWouldBlock:
		return "WouldBlock"
	default:
		return fmt.Sprintf("SendStatus(%d)", int(s))
	}
}

// PollEventStatus is returned by a Serviceable's OnEvent.
type PollEventStatus int

const (
	PollCompleted PollEventStatus = iota
	PollWouldBlock
	PollTerminate
)

func (s PollEventStatus) String() string {
	switch s {
	case PollCompleted:
		return "Completed"
	case PollWouldBlock:
		return "WouldBlock"
	case PollTerminate:
		return "Terminate"
	default:
		return fmt.Sprintf("PollEventStatus(%d)", int(s))
	}
}

// AcceptStatus is returned by a non-blocking accept attempt.
type AcceptStatus int

const (
	AcceptWouldBlock AcceptStatus = iota
	AcceptAccepted
)

func (s AcceptStatus) String() string {
	switch s {
	case AcceptWouldBlock:
		return "WouldBlock"
	case AcceptAccepted:
		return "Accepted"
	default:
		return fmt.Sprintf("AcceptStatus(%d)", int(s))
	}
}

// TimerTaskStatus is returned by a scheduled task on each execution
//.
type TimerTaskStatus struct {
	kind     timerTaskKind
	interval int64 // nanoseconds, only meaningful for RetryAfter
}

type timerTaskKind int

const (
	taskCompleted timerTaskKind = iota
	taskTerminate
	taskRetryAfter
)

var (
	TaskCompleted = TimerTaskStatus{kind: taskCompleted}
	TaskTerminate = TimerTaskStatus{kind: taskTerminate}
)

// TaskRetryAfter reschedules the task's next execution to now + d instead of
// its usual interval, without otherwise changing the interval.
func TaskRetryAfter(nanos int64) TimerTaskStatus {
	return TimerTaskStatus{kind: taskRetryAfter, interval: nanos}
}

func (s TimerTaskStatus) IsCompleted() bool  { return s.kind == taskCompleted }
func (s TimerTaskStatus) IsTerminate() bool  { return s.kind == taskTerminate }
func (s TimerTaskStatus) IsRetryAfter() bool { return s.kind == taskRetryAfter }
func (s TimerTaskStatus) RetryAfterNanos() int64 { return s.interval }
