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

package main

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"

	"github.com/sabouaram/netcore/netconf"
)

// newViper builds a viper instance that reads file. When file is empty it
// returns a viper with nothing loaded and the callers keep the netconf
// default options, so "serve"/"dial" run against sane tunables without a
// config file at all.
func newViper(file string) (*viper.Viper, error) {
	v := viper.New()
	if file == "" {
		return v, nil
	}
	v.SetConfigFile(file)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("netcore-gateway: read config %q: %w", file, err)
	}
	return v, nil
}

// decodeHook lets viper's Unmarshal call UnmarshalText on any field
// implementing encoding.TextUnmarshaler (duration.Duration,
// netconf.ByteSize) instead of failing on their underlying int64 kind.
func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshalerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
}

func loadServerOptions(file string) (netconf.ServerOptions, error) {
	opts := netconf.DefaultServerOptions()

	v, err := newViper(file)
	if err != nil {
		return opts, err
	}
	if file != "" {
		if err = v.Unmarshal(&opts, decodeHook()); err != nil {
			return opts, fmt.Errorf("netcore-gateway: decode server config: %w", err)
		}
	}
	return opts, nil
}

func loadClientOptions(file string) (netconf.ClientOptions, error) {
	opts := netconf.DefaultClientOptions()

	v, err := newViper(file)
	if err != nil {
		return opts, err
	}
	if file != "" {
		if err = v.Unmarshal(&opts, decodeHook()); err != nil {
			return opts, fmt.Errorf("netcore-gateway: decode client config: %w", err)
		}
	}
	return opts, nil
}
