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
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	colorable "github.com/mattn/go-colorable"
	"github.com/nabbar/golib/logger"
	"github.com/spf13/cobra"

	"github.com/sabouaram/netcore/callback"
	"github.com/sabouaram/netcore/frame"
	"github.com/sabouaram/netcore/neterr"
	"github.com/sabouaram/netcore/protocol/debug"
	"github.com/sabouaram/netcore/server"
	"github.com/sabouaram/netcore/storage"
	"github.com/sabouaram/netcore/timer"
	"github.com/sabouaram/netcore/wire"
)

func newServeCommand() *cobra.Command {
	var storageDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a debug-protocol server and log every accepted connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cfgFile, storageDir)
		},
	}
	cmd.Flags().StringVar(&storageDir, "storage-dir", "", "nutsdb directory to persist every message to (devnull if empty)")
	return cmd
}

func runServe(cfgFile, storageDir string) error {
	opts, err := loadServerOptions(cfgFile)
	if err != nil {
		return err
	}

	out := colorable.NewColorableStdout()
	connLine := color.New(color.FgGreen)
	recvLine := color.New(color.FgCyan)

	log := logger.New(context.Background())
	lf := func() logger.Logger { return log }

	cb := callback.NewChain[string, string](
		callback.NewLogger[string, string](lf),
		callback.NewCounter[string, string](),
	)

	store, err := resolveStorage(storageDir)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	framer := frame.PacketLengthU16Framer{BigEndian: true}
	messenger := wire.NewCBORMessenger[string](int(opts.MaxFrameSize))
	proto := debug.New("gateway-server", opts.HeartbeatInterval.Time())

	svc, err := server.BindWithOptions[string, string](opts, framer, messenger, cb, proto, "gateway-server")
	if err != nil {
		return fmt.Errorf("netcore-gateway: %w", err)
	}
	defer func() { _ = svc.Close() }()

	svc.UseStorage(store)
	hb := timer.New("gateway-server-heartbeat", lf)
	defer hb.Stop()
	svc.UseHeartbeatTimerWithOptions(hb, opts)

	_, _ = connLine.Fprintf(out, "listening on %s (max %d connections)\n", opts.Address, opts.MaxConnections)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	for {
		select {
		case <-sigCh:
			_, _ = connLine.Fprintln(out, "shutting down")
			return nil
		default:
		}

		status, acceptErr := svc.AcceptBusywaitTimeout(50 * time.Millisecond)
		if acceptErr != nil {
			_, _ = recvLine.Fprintf(out, "accept error: %v\n", acceptErr)
		}
		if status == neterr.AcceptAccepted {
			_, _ = connLine.Fprintf(out, "connection accepted (%d/%d)\n", svc.Len(), svc.MaxConnections())
		}

		if svc.Len() == 0 {
			continue
		}

		msg, recvStatus, recvErr := svc.RecvBusywait()
		if recvErr != nil {
			continue
		}
		if recvStatus == neterr.RecvCompleted {
			_, _ = recvLine.Fprintf(out, "recv: %q\n", msg)
		}
	}
}

func resolveStorage(dir string) (storage.Storage, error) {
	if dir == "" {
		return storage.DevNull{}, nil
	}
	return storage.OpenNutsDB(dir)
}
