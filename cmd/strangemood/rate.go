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
	"os"

	"github.com/strangemood/strangemood/ledger/common"
)

type rateFlags struct {
	flagset *flag.FlagSet
}

func newRateFlags() *rateFlags {
	f := &rateFlags{
		flagset: flag.NewFlagSet("rate", flag.ExitOnError),
	}
	return f
}

func runRate(f *globalFlags) {
	rateFlags := newRateFlags()
	err := rateFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	args := rateFlags.flagset.Args()
	if len(args) != 2 || args[0] != "parse" {
		fmt.Printf("usage: rate parse <literal>\n")
		os.Exit(1)
	}
	r, err := common.ParseRate(args[1])
	exitOnError("failed to parse rate", err)
	fmt.Print(describeRate(r))
}

func describeRate(r common.Rate) string {
	ret := fmt.Sprintf(
		"rate:     %s\namount:   %d\ndecimals: %d\npercent:  %s\n",
		r.String(),
		r.Amount(),
		r.Decimals(),
		r.Percent(),
	)
	if _, err := r.Split("rate"); err == nil {
		ret += "usable as a contribution rate\n"
	}
	if _, err := r.Expansion("rate"); err == nil {
		ret += "usable as an expansion rate\n"
	}
	return ret
}
