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

package server

import (
	liberr "github.com/nabbar/golib/errors"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/message"
	"github.com/sabouaram/netcore/netconf"
	"github.com/sabouaram/netcore/protocol"
)

// BindWithOptions validates opts and binds a Svc the same way Bind does,
// unpacking Address/MaxConnections/MaxFrameSize/TCPNoDelay from the config
// struct instead of four positional parameters.
func BindWithOptions[SendT any, RecvT any](
	opts netconf.ServerOptions,
	framer frame.Framer,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	protoSeed protocol.Protocol[SendT, RecvT],
	name string,
) (*Svc[SendT, RecvT], liberr.Error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	svc, bindErr := Bind[SendT, RecvT](
		opts.Address,
		opts.MaxConnections,
		framer,
		int(opts.MaxFrameSize),
		messenger,
		cb,
		protoSeed,
		name,
		opts.TCPNoDelay,
	)
	if bindErr != nil {
		return nil, liberr.MakeIfError(bindErr)
	}
	return svc, nil
}

// BindAcceptorWithOptions validates opts and binds an Acceptor the same
// way BindAcceptor does. opts.MaxConnections is unused here since Acceptor
// has no admission pool of its own.
func BindAcceptorWithOptions[SendT any, RecvT any](
	opts netconf.ServerOptions,
	framer frame.Framer,
	messenger message.Messenger[SendT, RecvT],
	cb callback.CallbackRecvSend[SendT, RecvT],
	protoSeed protocol.Protocol[SendT, RecvT],
	name string,
) (*Acceptor[SendT, RecvT], liberr.Error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	acc, bindErr := BindAcceptor[SendT, RecvT](
		opts.Address,
		framer,
		int(opts.MaxFrameSize),
		messenger,
		cb,
		protoSeed,
		name,
		opts.TCPNoDelay,
	)
	if bindErr != nil {
		return nil, liberr.MakeIfError(bindErr)
	}
	return acc, nil
}
