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

// Package timer schedules repeating work on a dedicated goroutine ordered by
// a min-heap over next-execution time, the way a heartbeat sender or a pool
// reaper needs to run on its own cadence without blocking whatever thread
// submitted it.
package timer

import (
	"container/heap"
	"fmt"
	"time"
)

// TaskStatus is what an Executable reports back after running once.
type TaskStatus int

const (
	// Completed reschedules the task at its regular interval.
	Completed TaskStatus = iota
	// Terminate drops the task; it never runs again.
	Terminate
	// RetryAfter reschedules the task at a one-off interval instead of its
	// regular one, without dropping it.
	RetryAfter
)

func (s TaskStatus) String() string {
	switch s {
	case Completed:
		return "Completed"
	case Terminate:
		return "Terminate"
	case RetryAfter:
		return "RetryAfter"
	default:
		return "Unknown"
	}
}

// Executable is the work a task performs each time it comes due. The
// returned duration is only consulted when status is RetryAfter; it sets a
// one-off reschedule interval instead of the task's regular one.
type Executable func() (TaskStatus, time.Duration)

// task holds one scheduled unit of work in the executor's heap. It is not
// exported: callers interact with the heap only through Timer.Schedule.
type task struct {
	name      string
	executeAt time.Time
	interval  time.Duration
	fn        Executable
}

func newTask(name string, interval time.Duration, fn Executable) *task {
	return &task{
		name:      name,
		executeAt: time.Now(),
		interval:  interval,
		fn:        fn,
	}
}

func (t *task) execute() (TaskStatus, time.Duration) {
	return t.fn()
}

func (t *task) reschedule() {
	t.executeAt = t.executeAt.Add(t.interval)
}

func (t *task) rescheduleWithInterval(d time.Duration) {
	t.executeAt = t.executeAt.Add(d)
}

func (t *task) String() string {
	return fmt.Sprintf("task{name: %s, executeAt: %s, interval: %s}", t.name, t.executeAt, t.interval)
}

// taskHeap is a min-heap over executeAt: the task due soonest pops first.
type taskHeap []*task

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool { return h[i].executeAt.Before(h[j].executeAt) }

func (h taskHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *taskHeap) Push(x any) {
	*h = append(*h, x.(*task))
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return t
}

var _ heap.Interface = (*taskHeap)(nil)
