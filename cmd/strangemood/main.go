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
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/strangemood/strangemood/settlement"
)

type globalFlags struct {
	flagset         *flag.FlagSet
	logLevel        string
	rejectZeroPrice bool
	logger          *slog.Logger
}

func newGlobalFlags(cfg Config) *globalFlags {
	f := &globalFlags{
		flagset: flag.NewFlagSet(os.Args[0], flag.ExitOnError),
	}
	f.flagset.StringVar(
		&f.logLevel,
		"log-level",
		cfg.LogLevel,
		"log level (debug, info, warn, error)",
	)
	f.flagset.BoolVar(
		&f.rejectZeroPrice,
		"reject-zero-price",
		cfg.RejectZeroPrice,
		"reject purchases with a price of 0 instead of settling them to nothing",
	)
	return f
}

func (f *globalFlags) policy() settlement.Policy {
	return settlement.Policy{RejectZeroPrice: f.rejectZeroPrice}
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	f := newGlobalFlags(cfg)
	if err := f.flagset.Parse(os.Args[1:]); err != nil {
		fmt.Printf("failed to parse command args: %s\n", err)
		os.Exit(1)
	}
	f.logger, err = newLogger(f.logLevel)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		os.Exit(1)
	}
	slog.SetDefault(f.logger)

	if len(f.flagset.Args()) > 0 {
		switch f.flagset.Arg(0) {
		case "rate":
			runRate(f)
		case "charter":
			runCharter(f)
		case "settle":
			runSettle(f)
		case "serve":
			runServe(f, cfg)
		default:
			fmt.Printf("Unknown subcommand: %s\n", f.flagset.Arg(0))
			os.Exit(1)
		}
	} else {
		fmt.Printf("You must specify a subcommand (rate, charter, settle or serve)\n")
		os.Exit(1)
	}
}

func exitOnError(msg string, err error) {
	if err != nil {
		fmt.Printf("ERROR: %s: %s\n", msg, err)
		os.Exit(1)
	}
}
