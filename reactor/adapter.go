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
	"github.com/sabouaram/netcore/neterr"
	"github.com/sabouaram/netcore/server"
)

// *client.Clt[SendT, RecvT] already satisfies RecvServiceable (it has Fd
// and OnEvent), so only the acceptor side needs an adapter: AcceptRecver's
// declared return type must be the RecvServiceable interface for
// *server.Acceptor to satisfy AcceptServiceable, but server.Acceptor
// returns the concrete *client.Clt to avoid forcing that package to import
// reactor.
type acceptorAdapter[SendT any, RecvT any] struct {
	acc *server.Acceptor[SendT, RecvT]
}

// WrapAcceptor adapts a *server.Acceptor to AcceptServiceable for use with
// the dynamic PollHandler.
func WrapAcceptor[SendT any, RecvT any](acc *server.Acceptor[SendT, RecvT]) AcceptServiceable {
	return acceptorAdapter[SendT, RecvT]{acc: acc}
}

func (a acceptorAdapter[SendT, RecvT]) Fd() int {
	return a.acc.Fd()
}

func (a acceptorAdapter[SendT, RecvT]) AcceptRecver() (neterr.AcceptStatus, RecvServiceable, error) {
	status, clt, err := a.acc.AcceptRecver()
	if clt == nil {
		return status, nil, err
	}
	return status, clt, err
}
