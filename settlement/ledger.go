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
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
	"github.com/strangemood/strangemood/ledger/listing"
)

var (
	// ErrConflict is returned by Ledger.ExecutePurchase when the listing or
	// charter changed after it was loaded. The purchase must be settled again
	// against fresh state.
	ErrConflict = errors.New("ledger state changed since it was loaded")

	// ErrInsufficientFunds is returned when the buyer cannot pay the price
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned when a listing or charter does not exist
	ErrNotFound = errors.New("not found")
)

// CharterSnapshot is a charter as loaded from the ledger, with the version
// it had at that point
type CharterSnapshot struct {
	Charter *charter.Charter
	Version uint64
}

// ListingSnapshot is a listing as loaded from the ledger, with the version
// it had at that point
type ListingSnapshot struct {
	Listing *listing.Listing
	Version uint64
}

// PurchaseTx describes every effect of one purchase. The host ledger applies
// all of them or none:
//
//   - debit Distribution.Price from Buyer
//   - credit PaymentToSeller to SellerPaymentDeposit
//   - credit PaymentToTreasury to TreasuryPaymentDeposit
//   - mint VotesMintedToSeller to SellerVoteDeposit
//   - mint VotesMintedToTreasury to TreasuryVoteDeposit
//   - mint the listing's single token to Buyer and freeze it
//
// ListingVersion and CharterVersion are the versions the distribution was
// computed from; the ledger rejects the transaction with ErrConflict if
// either has moved on.
type PurchaseTx struct {
	ID                     uuid.UUID
	Buyer                  common.Address
	Mint                   common.Address
	Charter                common.Blake2b256
	SellerPaymentDeposit   common.Address
	SellerVoteDeposit      common.Address
	TreasuryPaymentDeposit common.Address
	TreasuryVoteDeposit    common.Address
	Distribution           Distribution
	ListingVersion         uint64
	CharterVersion         uint64
}

// Ledger is the host ledger a purchase is executed against
type Ledger interface {
	LoadListing(ctx context.Context, mint common.Address) (ListingSnapshot, error)
	LoadCharter(ctx context.Context, id common.Blake2b256) (CharterSnapshot, error)
	ExecutePurchase(ctx context.Context, tx PurchaseTx) error
}

// NewPurchaseTx assembles the transaction for buying l under c with d
func NewPurchaseTx(
	buyer common.Address,
	l ListingSnapshot,
	c CharterSnapshot,
	d Distribution,
) PurchaseTx {
	return PurchaseTx{
		ID:                     uuid.New(),
		Buyer:                  buyer,
		Mint:                   l.Listing.Mint,
		Charter:                c.Charter.ID(),
		SellerPaymentDeposit:   l.Listing.SellerPaymentDeposit,
		SellerVoteDeposit:      l.Listing.SellerVoteDeposit,
		TreasuryPaymentDeposit: c.Charter.TreasuryPaymentDeposit(),
		TreasuryVoteDeposit:    c.Charter.TreasuryVoteDeposit(),
		Distribution:           d,
		ListingVersion:         l.Version,
		CharterVersion:         c.Version,
	}
}
