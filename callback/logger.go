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
	"github.com/nabbar/golib/logger"

	"github.com/sabouaram/netcore/conid"
)

// Logger routes every event through a structured logger: recv/send/sent
// at Debug, fail at Error.
type Logger[SendT any, RecvT any] struct {
	log logger.FuncLog
}

func NewLogger[SendT any, RecvT any](log logger.FuncLog) *Logger[SendT, RecvT] {
	return &Logger[SendT, RecvT]{log: log}
}

func (l *Logger[SendT, RecvT]) OnRecv(id conid.ConId, msg *RecvT) {
	l.log().Debug("netcore: recv", msg, id.String())
}

func (l *Logger[SendT, RecvT]) OnSend(id conid.ConId, msg *SendT) {
	l.log().Debug("netcore: send", msg, id.String())
}

func (l *Logger[SendT, RecvT]) OnSent(id conid.ConId, msg *SendT) {
	l.log().Debug("netcore: sent", msg, id.String())
}

func (l *Logger[SendT, RecvT]) OnFail(id conid.ConId, msg *SendT, err error) {
	l.log().Error("netcore: send failed", msg, id.String(), err)
}
