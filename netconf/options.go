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

// Package netconf holds the connection and pool tunables a Clt or Svc is
// built from, decoded by viper from a config file and validated with
// go-playground/validator the way the teacher's own option structs are.
package netconf

import (
	"fmt"

	libval "github.com/go-playground/validator/v10"

	"github.com/nabbar/golib/duration"
	liberr "github.com/nabbar/golib/errors"
	"github.com/sabouaram/netcore/neterr"
)

// ClientOptions configures a Clt dialed with netcore/client.Connect.
type ClientOptions struct {
	// Address is the remote host:port to dial.
	Address string `json:"address" yaml:"address" toml:"address" mapstructure:"address" validate:"required,hostname_port"`

	// ConnectTimeout bounds how long Connect keeps retrying the dial; it must
	// exceed RetryAfter or Connect fails at once.
	ConnectTimeout duration.Duration `json:"connectTimeout,omitempty" yaml:"connectTimeout,omitempty" toml:"connectTimeout,omitempty" mapstructure:"connectTimeout,omitempty"`

	// RetryAfter is how long Connect sleeps after a failed dial attempt
	// before the next one; it also caps each single attempt's dial timeout.
	RetryAfter duration.Duration `json:"retryAfter,omitempty" yaml:"retryAfter,omitempty" toml:"retryAfter,omitempty" mapstructure:"retryAfter,omitempty"`

	// MaxFrameSize is how many bytes the connection's frame.FrameReader
	// reserves before each read. It is not a cap: a longer frame is still
	// read, with the buffer grown to hold it.
	MaxFrameSize ByteSize `json:"maxFrameSize,omitempty" yaml:"maxFrameSize,omitempty" toml:"maxFrameSize,omitempty" mapstructure:"maxFrameSize,omitempty" validate:"omitempty,min=1"`

	// TCPNoDelay disables Nagle's algorithm on the dialed socket.
	TCPNoDelay bool `json:"tcpNoDelay,omitempty" yaml:"tcpNoDelay,omitempty" toml:"tcpNoDelay,omitempty" mapstructure:"tcpNoDelay,omitempty"`

	// HeartbeatInterval overrides the interval a Protocol's own
	// HeartBeatInterval reports, when non-zero.
	HeartbeatInterval duration.Duration `json:"heartbeatInterval,omitempty" yaml:"heartbeatInterval,omitempty" toml:"heartbeatInterval,omitempty" mapstructure:"heartbeatInterval,omitempty"`
}

// ServerOptions configures a Svc/Acceptor bound with netcore/server.Bind or
// BindAcceptor.
type ServerOptions struct {
	// Address is the local host:port to listen on.
	Address string `json:"address" yaml:"address" toml:"address" mapstructure:"address" validate:"required,hostname_port"`

	// MaxConnections bounds the admission gate; Bind refuses to accept past
	// this many live connections.
	MaxConnections int `json:"maxConnections" yaml:"maxConnections" toml:"maxConnections" mapstructure:"maxConnections" validate:"required,min=1"`

	// MaxFrameSize is the per-read reservation of every accepted
	// connection's frame.FrameReader, as in ClientOptions.MaxFrameSize.
	MaxFrameSize ByteSize `json:"maxFrameSize,omitempty" yaml:"maxFrameSize,omitempty" toml:"maxFrameSize,omitempty" mapstructure:"maxFrameSize,omitempty" validate:"omitempty,min=1"`

	// TCPNoDelay disables Nagle's algorithm on every accepted socket.
	TCPNoDelay bool `json:"tcpNoDelay,omitempty" yaml:"tcpNoDelay,omitempty" toml:"tcpNoDelay,omitempty" mapstructure:"tcpNoDelay,omitempty"`

	// HeartbeatInterval overrides the interval a Protocol's own
	// HeartBeatInterval reports, when non-zero.
	HeartbeatInterval duration.Duration `json:"heartbeatInterval,omitempty" yaml:"heartbeatInterval,omitempty" toml:"heartbeatInterval,omitempty" mapstructure:"heartbeatInterval,omitempty"`
}

// DefaultClientOptions returns the values the gateway CLI's dial command
// falls back to when a config file omits a field.
func DefaultClientOptions() ClientOptions {
	return ClientOptions{
		ConnectTimeout:    duration.Seconds(5),
		RetryAfter:        duration.Seconds(1),
		MaxFrameSize:      4 * SizeMega,
		TCPNoDelay:        true,
		HeartbeatInterval: duration.Seconds(30),
	}
}

// DefaultServerOptions returns the values the gateway CLI's serve command
// falls back to when a config file omits a field.
func DefaultServerOptions() ServerOptions {
	return ServerOptions{
		MaxConnections:    1024,
		MaxFrameSize:      4 * SizeMega,
		TCPNoDelay:        true,
		HeartbeatInterval: duration.Seconds(30),
	}
}

func validateStruct(s interface{}) liberr.Error {
	e := neterr.ErrorValidateConfig.Error(nil)

	if err := libval.New().Struct(s); err != nil {
		if er, ok := err.(*libval.InvalidValidationError); ok {
			e.AddParent(er)
		}

		for _, er := range err.(libval.ValidationErrors) {
			//nolint #goerr113
			e.AddParent(fmt.Errorf("netconf field '%s' is not validated by constraint '%s'", er.Namespace(), er.ActualTag()))
		}
	}

	if !e.HasParent() {
		return nil
	}
	return e
}

func (o ClientOptions) Validate() liberr.Error {
	return validateStruct(o)
}

func (o ServerOptions) Validate() liberr.Error {
	return validateStruct(o)
}

func (o ClientOptions) Clone() ClientOptions {
	return o
}

func (o ServerOptions) Clone() ServerOptions {
	return o
}
