// Copyright 2026 The Strangemood Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
)

type serveFlags struct {
	flagset     *flag.FlagSet
	listen      string
	maxAttempts int
}

func newServeFlags(cfg Config) *serveFlags {
	f := &serveFlags{
		flagset: flag.NewFlagSet("serve", flag.ExitOnError),
	}
	f.flagset.StringVar(&f.listen, "listen", cfg.Listen, "address to listen on in address:port format")
	f.flagset.IntVar(
		&f.maxAttempts,
		"max-attempts",
		cfg.MaxAttempts,
		"times a conflicting purchase is settled again before giving up",
	)
	return f
}

func runServe(f *globalFlags, cfg Config) {
	serveFlags := newServeFlags(cfg)
	err := serveFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	s := newServer(f.logger, f.policy(), serveFlags.maxAttempts)
	httpServer := &http.Server{
		Addr:              serveFlags.listen,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()
	f.logger.Info("listening", "component", "http", "address", serveFlags.listen)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		exitOnError("server failed", err)
	}
}
