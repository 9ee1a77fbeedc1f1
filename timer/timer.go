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

package timer

import (
	"container/heap"
	"time"

	"github.com/nabbar/golib/logger"
)

type operationKind int

const (
	opExecute operationKind = iota
	opStop
)

type operation struct {
	kind operationKind
	task *task
}

// Timer schedules repeating Executables on a dedicated goroutine. The
// goroutine sleeps until the soonest-due task instead of busy-polling: a
// Schedule or Stop call rendezvouses with it directly over opCh, the same
// way an unbuffered channel send wakes a receiver blocked in select.
type Timer struct {
	name   string
	log    logger.FuncLog
	opCh   chan operation
	doneCh chan struct{}
}

// New starts the executor goroutine for name and returns the handle used to
// schedule or stop it. log may be nil.
func New(name string, log logger.FuncLog) *Timer {
	t := &Timer{
		name:   name,
		log:    log,
		opCh:   make(chan operation),
		doneCh: make(chan struct{}),
	}
	e := &executor{timer: t}
	go e.run()
	return t
}

// Schedule adds a repeating task named name, first run immediately, then
// again every repeat until fn returns Terminate or Stop is called.
func (t *Timer) Schedule(name string, repeat time.Duration, fn Executable) {
	t.opCh <- operation{kind: opExecute, task: newTask(name, repeat, fn)}
}

// Stop drops every scheduled task and exits the executor goroutine. It
// blocks until the goroutine has actually exited.
func (t *Timer) Stop() {
	t.opCh <- operation{kind: opStop}
	<-t.doneCh
}

func (t *Timer) logf() logger.Logger {
	if t.log == nil {
		return nil
	}
	return t.log()
}

// executor owns the heap and runs on the goroutine New spawns; Timer itself
// is just the channel-based handle callers hold.
type executor struct {
	timer *Timer
	tasks taskHeap
}

func (e *executor) run() {
	defer close(e.timer.doneCh)

	for {
		if e.tasks.Len() == 0 {
			if e.park(nil) {
				return
			}
			continue
		}

		next := e.tasks[0]
		now := time.Now()
		if next.executeAt.After(now) {
			timeout := next.executeAt.Sub(now)
			if e.park(&timeout) {
				return
			}
			continue
		}

		due := heap.Pop(&e.tasks).(*task)
		status, retryAfter := due.execute()
		switch status {
		case Completed:
			due.reschedule()
			heap.Push(&e.tasks, due)
		case RetryAfter:
			due.rescheduleWithInterval(retryAfter)
			heap.Push(&e.tasks, due)
		case Terminate:
			if l := e.timer.logf(); l != nil {
				l.Info("netcore: task terminated", due.name)
			}
		}
	}
}

// park waits for either a schedule/stop operation or, if timeout is
// non-nil, its expiry. It reports whether Stop was received while parked.
func (e *executor) park(timeout *time.Duration) bool {
	var timerCh <-chan time.Time
	if timeout != nil {
		tm := time.NewTimer(*timeout)
		defer tm.Stop()
		timerCh = tm.C
	}

	select {
	case op := <-e.timer.opCh:
		if op.kind == opStop {
			e.tasks = nil
			return true
		}
		heap.Push(&e.tasks, op.task)
		return false
	case <-timerCh:
		return false
	}
}
