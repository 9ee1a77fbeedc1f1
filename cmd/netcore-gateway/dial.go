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
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	"github.com/nabbar/golib/logger"
	"github.com/spf13/cobra"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/client"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/protocol/debug"
	"github.com/sabouaram/netcore/timer"
	"github.com/sabouaram/netcore/wire"
)

func newDialCommand() *cobra.Command {
	var (
		name      string
		count     int
		sendEvery time.Duration
	)

	cmd := &cobra.Command{
		Use:   "dial",
		Short: "Dial a debug-protocol server and exchange heartbeat messages",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDial(cfgFile, name, count, sendEvery)
		},
	}
	cmd.Flags().StringVar(&name, "name", "gateway-client", "name recorded in this client's LOGIN frame")
	cmd.Flags().IntVar(&count, "count", 3, "number of receive polls (each up to --send-every long) before disconnecting")
	cmd.Flags().DurationVar(&sendEvery, "send-every", 2*time.Second, "how long to wait between polling for a reply")
	return cmd
}

func runDial(cfgFile, name string, count int, pollEvery time.Duration) error {
	opts, err := loadClientOptions(cfgFile)
	if err != nil {
		return err
	}

	out := colorable.NewColorableStdout()
	connLine := color.New(color.FgYellow)
	recvLine := color.New(color.FgCyan)

	log := logger.New(context.Background())
	lf := func() logger.Logger { return log }

	cb := callback.NewChain[string, string](
		callback.NewLogger[string, string](lf),
		callback.NewCounter[string, string](),
	)

	framer := frame.PacketLengthU16Framer{BigEndian: true}
	messenger := wire.NewCBORMessenger[string](int(opts.MaxFrameSize))
	proto := debug.New(name, opts.HeartbeatInterval.Time())

	clt, connErr := client.ConnectWithOptions[string, string](opts, name, framer, messenger, cb, proto)
	if connErr != nil {
		return fmt.Errorf("netcore-gateway: %w", connErr)
	}
	defer func() { _ = clt.Close() }()

	_, _ = connLine.Fprintf(out, "connected to %s as %q\n", opts.Address, name)

	hb := timer.New("gateway-client-heartbeat", lf)
	defer hb.Stop()
	clt.StartHeartbeatWithOptions(hb, opts)

	for i := 0; i < count; i++ {
		msg, ok, recvErr := clt.RecvBusywaitTimeout(pollEvery)
		if recvErr != nil {
			return fmt.Errorf("netcore-gateway: %w", recvErr)
		}
		if ok {
			_, _ = recvLine.Fprintf(out, "recv: %q\n", msg)
		}
	}

	_, _ = connLine.Fprintln(out, "disconnecting")
	return nil
}
