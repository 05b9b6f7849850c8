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
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
)

type settleFlags struct {
	flagset      *flag.FlagSet
	price        uint64
	expansion    string
	paymentSplit string
	voteSplit    string
}

func newSettleFlags() *settleFlags {
	f := &settleFlags{
		flagset: flag.NewFlagSet("settle", flag.ExitOnError),
	}
	f.flagset.Uint64Var(&f.price, "price", 0, "purchase price in payment units")
	f.flagset.StringVar(&f.expansion, "expansion", "1", "vote tokens minted per unit of treasury payment")
	f.flagset.StringVar(&f.paymentSplit, "payment-split", "0", "share of each payment sent to the treasury")
	f.flagset.StringVar(&f.voteSplit, "vote-split", "0", "share of minted vote tokens sent to the treasury")
	return f
}

func runSettle(f *globalFlags) {
	settleFlags := newSettleFlags()
	err := settleFlags.flagset.Parse(f.flagset.Args()[1:])
	if err != nil {
		fmt.Printf("failed to parse subcommand args: %s\n", err)
		os.Exit(1)
	}
	expansion, err := common.ParseRate(settleFlags.expansion)
	exitOnError("invalid -expansion", err)
	paymentSplit, err := common.ParseRate(settleFlags.paymentSplit)
	exitOnError("invalid -payment-split", err)
	voteSplit, err := common.ParseRate(settleFlags.voteSplit)
	exitOnError("invalid -vote-split", err)
	c, err := rateCharter(expansion, paymentSplit, voteSplit)
	exitOnError("invalid charter", err)
	d, err := f.policy().Settle(settleFlags.price, c)
	exitOnError("failed to settle", err)
	out, err := json.MarshalIndent(d, "", "  ")
	exitOnError("failed to encode distribution", err)
	fmt.Println(string(out))
}

// Placeholder accounts for charters that exist only to be settled against
var (
	rateCharterAuthority      = common.Address{0x01}
	rateCharterPaymentDeposit = common.Address{0x02}
	rateCharterVoteDeposit    = common.Address{0x03}
)

// rateCharter builds a charter carrying only the given rates
func rateCharter(expansion, paymentSplit, voteSplit common.Rate) (*charter.Charter, error) {
	return charter.New(charter.Params{
		Authority:               rateCharterAuthority,
		TreasuryPaymentDeposit:  rateCharterPaymentDeposit,
		TreasuryVoteDeposit:     rateCharterVoteDeposit,
		ExpansionRate:           expansion,
		PaymentContributionRate: paymentSplit,
		VoteContributionRate:    voteSplit,
	})
}
