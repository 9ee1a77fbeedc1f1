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

// Package neterr declares the failure kinds of the netcore runtime: a
// registered errors.CodeError range for diagnostics that bubble up to
// callbacks and logs, plus a handful of sentinel control-flow errors that
// callers are expected to test with errors.Is on the hot path.
package neterr

import (
	liberr "github.com/nabbar/golib/errors"
)

// minPkgNetCore reserves this package's own code range the way every
// other package in the teacher's errors.CodeError registry does, sitting
// just past the last range that registry assigns (liberr.MinPkgViper).
const minPkgNetCore liberr.CodeError = liberr.MinPkgViper + 100

const (
	ErrorTimedOut liberr.CodeError = iota + minPkgNetCore
	ErrorConnectionReset
	ErrorNotConnected
	ErrorBrokenPipe
	ErrorOutOfMemory
	ErrorInvalidData
	ErrorHandshake
	ErrorValidateConfig
)

var isCodeError = false

func IsCodeError() bool {
	return isCodeError
}

func init() {
	isCodeError = liberr.ExistInMapMessage(ErrorTimedOut)
	liberr.RegisterIdFctMessage(ErrorTimedOut, getMessage)
}

func getMessage(code liberr.CodeError) (message string) {
	switch code {
	case liberr.UNK_ERROR:
		return ""
	case ErrorTimedOut:
		return "connect/accept/recv/send exceeded its timeout"
	case ErrorConnectionReset:
		return "peer reset the connection: write returned 0 bytes or read returned 0 with a non-empty residual"
	case ErrorNotConnected:
		return "pool has zero live recvers/senders"
	case ErrorBrokenPipe:
		return "half removed because its twin half was removed"
	case ErrorOutOfMemory:
		return "acceptor gate at capacity, or a pool insertion exceeded capacity"
	case ErrorInvalidData:
		return "deserialization failure"
	case ErrorHandshake:
		return "protocol handshake failed"
	case ErrorValidateConfig:
		return "netconf option struct failed validation"
	default:
		return ""
	}
}
