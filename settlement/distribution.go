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
	"math/big"

	"github.com/blinklabs-io/plutigo/data"

	"github.com/strangemood/strangemood/cbor"
	"github.com/strangemood/strangemood/ledger/common"
)

// Distribution is the result of settling one purchase. It is never persisted
// on its own; the host ledger applies it as part of a purchase transaction.
type Distribution struct {
	cbor.StructAsArray
	Price                 uint64 `json:"price"`
	PaymentToSeller       uint64 `json:"paymentToSeller"`
	PaymentToTreasury     uint64 `json:"paymentToTreasury"`
	ExpandedVotes         uint64 `json:"expandedVotes"`
	VotesMintedToTreasury uint64 `json:"votesMintedToTreasury"`
	VotesMintedToSeller   uint64 `json:"votesMintedToSeller"`
}

// Validate checks that no payment unit or vote was created or destroyed
func (d Distribution) Validate() error {
	if d.PaymentToTreasury > d.Price ||
		d.PaymentToSeller != d.Price-d.PaymentToTreasury {
		return fmt.Errorf(
			"%w: payment split %d + %d does not equal price %d",
			common.ErrInvalidInput,
			d.PaymentToSeller,
			d.PaymentToTreasury,
			d.Price,
		)
	}
	if d.VotesMintedToTreasury > d.ExpandedVotes ||
		d.VotesMintedToSeller != d.ExpandedVotes-d.VotesMintedToTreasury {
		return fmt.Errorf(
			"%w: vote split %d + %d does not equal expansion %d",
			common.ErrInvalidInput,
			d.VotesMintedToSeller,
			d.VotesMintedToTreasury,
			d.ExpandedVotes,
		)
	}
	return nil
}

func (d Distribution) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		0,
		data.NewInteger(new(big.Int).SetUint64(d.Price)),
		data.NewInteger(new(big.Int).SetUint64(d.PaymentToSeller)),
		data.NewInteger(new(big.Int).SetUint64(d.PaymentToTreasury)),
		data.NewInteger(new(big.Int).SetUint64(d.ExpandedVotes)),
		data.NewInteger(new(big.Int).SetUint64(d.VotesMintedToTreasury)),
		data.NewInteger(new(big.Int).SetUint64(d.VotesMintedToSeller)),
	)
}

func (d Distribution) String() string {
	return fmt.Sprintf(
		"price %d: seller %d, treasury %d; votes %d: treasury %d, seller %d",
		d.Price,
		d.PaymentToSeller,
		d.PaymentToTreasury,
		d.ExpandedVotes,
		d.VotesMintedToTreasury,
		d.VotesMintedToSeller,
	)
}
