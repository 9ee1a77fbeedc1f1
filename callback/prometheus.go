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

package callback

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/sabouaram/netcore/conid"
)

// Prometheus exposes send/sent/fail/recv counts as counter vectors labeled
// by connection name, for scraping via the usual client_golang HTTP
// exposition handler.
type Prometheus[SendT any, RecvT any] struct {
	send *prometheus.CounterVec
	fail *prometheus.CounterVec
	sent *prometheus.CounterVec
	recv *prometheus.CounterVec
}

// NewPrometheus registers its counter vectors against reg. Call once per
// process per (namespace, subsystem) pair.
func NewPrometheus[SendT any, RecvT any](reg prometheus.Registerer, namespace, subsystem string) *Prometheus[SendT, RecvT] {
	labels := []string{"con_name", "con_side"}
	p := &Prometheus[SendT, RecvT]{
		send: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "send_total",
			Help: "messages handed to the protocol layer for send",
		}, labels),
		fail: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "fail_total",
			Help: "send attempts that failed",
		}, labels),
		sent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "sent_total",
			Help: "messages confirmed delivered to the socket",
		}, labels),
		recv: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: subsystem, Name: "recv_total",
			Help: "messages deserialized from a peer",
		}, labels),
	}
	reg.MustRegister(p.send, p.fail, p.sent, p.recv)
	return p
}

func (p *Prometheus[SendT, RecvT]) OnRecv(id conid.ConId, _ *RecvT) {
	p.recv.WithLabelValues(id.Name(), id.Side().String()).Inc()
}

func (p *Prometheus[SendT, RecvT]) OnSend(id conid.ConId, _ *SendT) {
	p.send.WithLabelValues(id.Name(), id.Side().String()).Inc()
}

func (p *Prometheus[SendT, RecvT]) OnSent(id conid.ConId, _ *SendT) {
	p.sent.WithLabelValues(id.Name(), id.Side().String()).Inc()
}

func (p *Prometheus[SendT, RecvT]) OnFail(id conid.ConId, _ *SendT, _ error) {
	p.fail.WithLabelValues(id.Name(), id.Side().String()).Inc()
}
