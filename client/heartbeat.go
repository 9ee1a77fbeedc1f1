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

package client

import (
	"time"

	"github.com/sabouaram/netcore/netconf"
	"github.com/sabouaram/netcore/timer"
)

// StartHeartbeat registers a repeating task on tm that calls
// Protocol.SendHeartBeat against this connection's sender, at the interval
// the protocol reports from HeartBeatInterval. It is a no-op if the
// protocol declares no heartbeat (HeartBeatInterval's second return is
// false) or c was built without a protocol at all.
func (c *Clt[SendT, RecvT]) StartHeartbeat(tm *timer.Timer) {
	c.startHeartbeat(tm, 0)
}

// StartHeartbeatWithOptions behaves like StartHeartbeat, except
// opts.HeartbeatInterval, when non-zero, overrides the interval the
// protocol itself reports, so a config file can tune heartbeat cadence
// per connection without touching the Protocol implementation.
func (c *Clt[SendT, RecvT]) StartHeartbeatWithOptions(tm *timer.Timer, opts netconf.ClientOptions) {
	c.startHeartbeat(tm, opts.HeartbeatInterval.Time())
}

// StartHeartbeatOverride behaves like StartHeartbeat, except override,
// when positive, replaces the interval the protocol itself reports. A
// server.Svc/Acceptor armed via UseHeartbeatTimerWithOptions calls this
// directly for each accepted connection instead of allocating a
// netconf.ClientOptions just to carry one duration.
func (c *Clt[SendT, RecvT]) StartHeartbeatOverride(tm *timer.Timer, override time.Duration) {
	c.startHeartbeat(tm, override)
}

func (c *Clt[SendT, RecvT]) startHeartbeat(tm *timer.Timer, override time.Duration) {
	if c.proto == nil {
		return
	}

	interval, enabled := c.proto.HeartBeatInterval()
	if override > 0 {
		interval, enabled = override, true
	}
	if !enabled {
		return
	}

	sender := busywaitSender[SendT, RecvT]{sender: c.Sender}
	tm.Schedule(c.ConId.String()+"-heartbeat", interval, func() (timer.TaskStatus, time.Duration) {
		if err := c.proto.SendHeartBeat(sender); err != nil {
			return timer.Terminate, 0
		}
		return timer.Completed, 0
	})
}
