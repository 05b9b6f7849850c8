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
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/strangemood/strangemood/cbor"
	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
)

type charterRateFlags struct {
	expansion    string
	paymentSplit string
	voteSplit    string
	uri          string
}

func (r *charterRateFlags) register(flagset *flag.FlagSet) {
	flagset.StringVar(&r.expansion, "expansion", "", "vote tokens minted per unit of treasury payment")
	flagset.StringVar(&r.paymentSplit, "payment-split", "", "share of each payment sent to the treasury")
	flagset.StringVar(&r.voteSplit, "vote-split", "", "share of minted vote tokens sent to the treasury")
	flagset.StringVar(&r.uri, "uri", "", "charter metadata URI")
}

type charterInitFlags struct {
	flagset        *flag.FlagSet
	authority      string
	paymentDeposit string
	voteDeposit    string
	rates          charterRateFlags
}

func newCharterInitFlags() *charterInitFlags {
	f := &charterInitFlags{
		flagset: flag.NewFlagSet("charter init", flag.ExitOnError),
	}
	f.flagset.StringVar(&f.authority, "authority", "", "base58 address allowed to update the charter")
	f.flagset.StringVar(&f.paymentDeposit, "payment-deposit", "", "base58 address of the treasury payment deposit")
	f.flagset.StringVar(&f.voteDeposit, "vote-deposit", "", "base58 address of the treasury vote deposit")
	f.rates.register(f.flagset)
	return f
}

type charterUpdateFlags struct {
	flagset *flag.FlagSet
	cbor    string
	signer  string
	rates   charterRateFlags
}

func newCharterUpdateFlags() *charterUpdateFlags {
	f := &charterUpdateFlags{
		flagset: flag.NewFlagSet("charter update", flag.ExitOnError),
	}
	f.flagset.StringVar(&f.cbor, "cbor", "", "hex encoded CBOR of the charter to update")
	f.flagset.StringVar(&f.signer, "signer", "", "base58 address signing the update")
	f.rates.register(f.flagset)
	return f
}

func runCharter(f *globalFlags) {
	args := f.flagset.Args()[1:]
	if len(args) < 1 {
		fmt.Printf("ERROR: you must specify a charter command (init or update)\n")
		os.Exit(1)
	}
	var c *charter.Charter
	switch args[0] {
	case "init":
		initFlags := newCharterInitFlags()
		if err := initFlags.flagset.Parse(args[1:]); err != nil {
			fmt.Printf("failed to parse subcommand args: %s\n", err)
			os.Exit(1)
		}
		c = charterInit(initFlags)
	case "update":
		updateFlags := newCharterUpdateFlags()
		if err := updateFlags.flagset.Parse(args[1:]); err != nil {
			fmt.Printf("failed to parse subcommand args: %s\n", err)
			os.Exit(1)
		}
		c = charterUpdate(updateFlags)
	default:
		fmt.Printf("Unknown charter command: %s\n", args[0])
		os.Exit(1)
	}
	f.logger.Debug("charter ready", "component", "cli", "charter", c.String())
	fmt.Print(describeCharter(c))
}

func charterInit(f *charterInitFlags) *charter.Charter {
	authority, err := common.NewAddressFromString(f.authority)
	exitOnError("invalid -authority", err)
	paymentDeposit, err := common.NewAddressFromString(f.paymentDeposit)
	exitOnError("invalid -payment-deposit", err)
	voteDeposit, err := common.NewAddressFromString(f.voteDeposit)
	exitOnError("invalid -vote-deposit", err)
	expansion, err := common.ParseRate(f.rates.expansion)
	exitOnError("invalid -expansion", err)
	paymentSplit, err := common.ParseRate(f.rates.paymentSplit)
	exitOnError("invalid -payment-split", err)
	voteSplit, err := common.ParseRate(f.rates.voteSplit)
	exitOnError("invalid -vote-split", err)
	c, err := charter.New(charter.Params{
		Authority:               authority,
		TreasuryPaymentDeposit:  paymentDeposit,
		TreasuryVoteDeposit:     voteDeposit,
		ExpansionRate:           expansion,
		PaymentContributionRate: paymentSplit,
		VoteContributionRate:    voteSplit,
		MetadataURI:             f.rates.uri,
	})
	exitOnError("failed to create charter", err)
	return c
}

func charterUpdate(f *charterUpdateFlags) *charter.Charter {
	cborData, err := hex.DecodeString(f.cbor)
	exitOnError("invalid -cbor", err)
	var c charter.Charter
	_, err = cbor.Decode(cborData, &c)
	exitOnError("failed to decode charter", err)
	signer, err := common.NewAddressFromString(f.signer)
	exitOnError("invalid -signer", err)
	update, err := f.rates.update(f.flagset)
	exitOnError("invalid update", err)
	next, err := c.Mutate(common.Signer(signer), update)
	exitOnError("failed to update charter", err)
	return next
}

// update builds a charter update from the flags that were set explicitly
func (r *charterRateFlags) update(flagset *flag.FlagSet) (charter.Update, error) {
	var update charter.Update
	var err error
	flagset.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		var rate common.Rate
		switch fl.Name {
		case "expansion":
			rate, err = common.ParseRate(r.expansion)
			update.ExpansionRate = &rate
		case "payment-split":
			rate, err = common.ParseRate(r.paymentSplit)
			update.PaymentContributionRate = &rate
		case "vote-split":
			rate, err = common.ParseRate(r.voteSplit)
			update.VoteContributionRate = &rate
		case "uri":
			uri := r.uri
			update.MetadataURI = &uri
		}
	})
	return update, err
}

func describeCharter(c *charter.Charter) string {
	cborData, err := cbor.Encode(c)
	exitOnError("failed to encode charter", err)
	hash, err := c.Hash()
	exitOnError("failed to hash charter", err)
	return fmt.Sprintf(
		"id:                        %s\nhash:                      %s\nauthority:                 %s\nexpansion rate:            %s\npayment contribution rate: %s (%s)\nvote contribution rate:    %s (%s)\ncbor:                      %s\n",
		c.Bech32ID(),
		hash.String(),
		c.Authority().String(),
		c.ExpansionRate().String(),
		c.PaymentContributionRate().String(),
		c.PaymentContributionRate().Percent(),
		c.VoteContributionRate().String(),
		c.VoteContributionRate().Percent(),
		hex.EncodeToString(cborData),
	)
}
