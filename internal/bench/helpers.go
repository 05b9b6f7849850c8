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

// Package bench provides benchmarks and allocation regression tests for
// settlement.
package bench

import (
	"fmt"

	"github.com/strangemood/strangemood/internal/test"
	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/listing"
	"github.com/strangemood/strangemood/settlement"
)

// CharterFixture is a named charter used across benchmarks
type CharterFixture struct {
	Name    string
	Charter *charter.Charter
}

// CharterFixtures returns charters ranging from coarse to maximum-precision rates
func CharterFixtures() []CharterFixture {
	return []CharterFixture{
		{Name: "coarse", Charter: test.NewCharter("30", "0.006", "0.2")},
		{Name: "typical", Charter: test.NewCharter("0.1", "0.3", "0.4")},
		{
			Name: "precise",
			Charter: test.NewCharter(
				"1.2345678901234567890",
				"0.9999999999999999999",
				"0.0000000000000000001",
			),
		},
	}
}

// BenchMemoryLedger returns a ledger holding the given charter and count
// listings priced at price, with a buyer funded for all of them. The mints
// are returned in creation order.
func BenchMemoryLedger(
	c *charter.Charter,
	count int,
	price uint64,
) (*settlement.MemoryLedger, []listing.Listing, error) {
	m := settlement.NewMemoryLedger()
	if err := m.CreateCharter(c); err != nil {
		return nil, nil, err
	}
	listings := make([]listing.Listing, 0, count)
	for i := range count {
		mint := test.Address(byte(i))
		mint[1] = byte(i >> 8)
		mint[2] = byte(i >> 16)
		l, err := listing.New(listing.Params{
			Mint:                 mint,
			Seller:               test.Address(0xf1),
			SellerPaymentDeposit: test.Address(0xf2),
			SellerVoteDeposit:    test.Address(0xf3),
			Charter:              c.ID(),
			Price:                price,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("listing %d: %w", i, err)
		}
		if err := m.CreateListing(l); err != nil {
			return nil, nil, err
		}
		listings = append(listings, *l)
	}
	if err := m.Fund(BenchBuyer, price*uint64(count)); err != nil {
		return nil, nil, err
	}
	return m, listings, nil
}

// BenchBuyer is the account funded by BenchMemoryLedger
var BenchBuyer = test.Address(0xb0)
