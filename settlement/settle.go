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

package settlement

import (
	"fmt"

	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
)

// Policy holds the product decisions the settlement algorithm leaves open
type Policy struct {
	// RejectZeroPrice makes a zero price fail with common.ErrInvalidInput.
	// By default a zero price settles to an all-zero distribution.
	RejectZeroPrice bool
}

// DefaultPolicy accepts zero prices
var DefaultPolicy = Policy{}

// Settle divides price under c using DefaultPolicy
func Settle(price uint64, c *charter.Charter) (Distribution, error) {
	return DefaultPolicy.Settle(price, c)
}

// Settle divides price between seller and treasury, and the votes minted for
// the treasury's share between treasury and seller. It either returns a
// distribution that satisfies Validate or an error, never a partial result.
func (p Policy) Settle(price uint64, c *charter.Charter) (Distribution, error) {
	if err := c.Validate(); err != nil {
		return Distribution{}, err
	}
	if price == 0 && p.RejectZeroPrice {
		return Distribution{}, fmt.Errorf("%w: price must be greater than 0", common.ErrInvalidInput)
	}
	paymentToTreasury, err := c.PaymentContributionRate().Apply(price)
	if err != nil {
		return Distribution{}, fmt.Errorf("payment contribution: %w", err)
	}
	expandedVotes, err := c.ExpansionRate().Apply(paymentToTreasury)
	if err != nil {
		return Distribution{}, fmt.Errorf("vote expansion: %w", err)
	}
	votesToTreasury, err := c.VoteContributionRate().Apply(expandedVotes)
	if err != nil {
		return Distribution{}, fmt.Errorf("vote contribution: %w", err)
	}
	return Distribution{
		Price:                 price,
		PaymentToSeller:       price - paymentToTreasury,
		PaymentToTreasury:     paymentToTreasury,
		ExpandedVotes:         expandedVotes,
		VotesMintedToTreasury: votesToTreasury,
		VotesMintedToSeller:   expandedVotes - votesToTreasury,
	}, nil
}
