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

package test

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
)

// DecodeHexString is a helper function for tests that decodes hex strings. It doesn't return
// an error value, which makes it usable inline.
func DecodeHexString(hexData string) []byte {
	// Strip off any leading/trailing whitespace in hex string
	hexData = strings.TrimSpace(hexData)
	decoded, err := hex.DecodeString(hexData)
	if err != nil {
		panic(fmt.Sprintf("error decoding hex: %s", err))
	}
	return decoded
}

// Address returns a deterministic non-zero address derived from seed
func Address(seed byte) common.Address {
	var addr common.Address
	for i := range addr {
		addr[i] = seed
	}
	addr[0] = 0xa5
	return addr
}

// Rate parses a decimal literal, panicking on error
func Rate(literal string) common.Rate {
	r, err := common.ParseRate(literal)
	if err != nil {
		panic(fmt.Sprintf("error parsing rate: %s", err))
	}
	return r
}

// Well-known accounts used by NewCharter
var (
	CharterAuthority       = Address(1)
	TreasuryPaymentDeposit = Address(2)
	TreasuryVoteDeposit    = Address(3)
)

// NewCharter builds a charter with the test accounts and the given rate
// literals, panicking on error
func NewCharter(expansion, paymentContribution, voteContribution string) *charter.Charter {
	return NewCharterWithURI(
		expansion,
		paymentContribution,
		voteContribution,
		"https://strangemood.org",
	)
}

// NewCharterWithURI is like NewCharter with an explicit metadata URI
func NewCharterWithURI(expansion, paymentContribution, voteContribution, uri string) *charter.Charter {
	c, err := charter.New(charter.Params{
		Authority:               CharterAuthority,
		TreasuryPaymentDeposit:  TreasuryPaymentDeposit,
		TreasuryVoteDeposit:     TreasuryVoteDeposit,
		ExpansionRate:           Rate(expansion),
		PaymentContributionRate: Rate(paymentContribution),
		VoteContributionRate:    Rate(voteContribution),
		MetadataURI:             uri,
	})
	if err != nil {
		panic(fmt.Sprintf("error creating charter: %s", err))
	}
	return c
}
