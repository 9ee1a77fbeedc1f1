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
	liberr "github.com/nabbar/golib/errors"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/message"
	"github.com/sabouaram/netcore/netconf"
	"github.com/sabouaram/netcore/protocol"
)

// ConnectWithOptions validates opts and dials Address the same way Connect
// does, unpacking ConnectTimeout/RetryAfter/MaxFrameSize/TCPNoDelay from the
// config struct instead of five positional parameters. name is the local
// label recorded on the resulting ConId.
func ConnectWithOptions[SendT any, RecvT any](
	opts netconf.ClientOptions,
	name string,
	framer frame.Framer,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	proto protocol.Protocol[SendT, RecvT],
) (*Clt[SendT, RecvT], liberr.Error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	clt, dialErr := Connect[SendT, RecvT](
		opts.Address,
		opts.ConnectTimeout.Time(),
		opts.RetryAfter.Time(),
		name,
		framer,
		int(opts.MaxFrameSize),
		messenger,
		cb,
		proto,
		opts.TCPNoDelay,
	)
	if dialErr != nil {
		return nil, liberr.MakeIfError(dialErr)
	}
	return clt, nil
}
