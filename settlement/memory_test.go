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

package settlement_test

import (
	"context"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/strangemood/strangemood/internal/test"
	test_ledger "github.com/strangemood/strangemood/internal/test/ledger"
	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
	"github.com/strangemood/strangemood/ledger/listing"
	"github.com/strangemood/strangemood/settlement"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type memoryFixture struct {
	ledger  *settlement.MemoryLedger
	charter *charter.Charter
	listing *listing.Listing
}

func newMemoryFixture(t *testing.T, price uint64, funds uint64) memoryFixture {
	t.Helper()
	m := settlement.NewMemoryLedger()
	c := test.NewCharter("0.1", "0.3", "0.4")
	require.NoError(t, m.CreateCharter(c))
	l := newTestListing(t, c, price)
	require.NoError(t, m.CreateListing(l))
	require.NoError(t, m.Fund(testBuyer, funds))
	return memoryFixture{ledger: m, charter: c, listing: l}
}

func TestMemoryLedgerPurchase(t *testing.T) {
	f := newMemoryFixture(t, 1000, 1500)
	e := settlement.NewExecutor(f.ledger, settlement.WithLogger(testLogger))
	receipt, err := e.Purchase(context.Background(), f.listing.Mint, testBuyer)
	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Attempts)

	m := f.ledger
	assert.Equal(t, uint64(500), m.PaymentBalance(testBuyer))
	assert.Equal(t, uint64(700), m.PaymentBalance(f.listing.SellerPaymentDeposit))
	assert.Equal(t, uint64(300), m.PaymentBalance(test.TreasuryPaymentDeposit))
	assert.Equal(t, uint64(18), m.VoteBalance(f.listing.SellerVoteDeposit))
	assert.Equal(t, uint64(12), m.VoteBalance(test.TreasuryVoteDeposit))
	holding, ok := m.Holding(f.listing.Mint)
	require.True(t, ok)
	assert.Equal(t, settlement.Holding{Owner: testBuyer, Frozen: true}, holding)

	snapshot, err := m.LoadListing(context.Background(), f.listing.Mint)
	require.NoError(t, err)
	assert.False(t, snapshot.Listing.Available())
	assert.Equal(t, uint64(2), snapshot.Version)

	_, err = e.Purchase(context.Background(), f.listing.Mint, testBuyer)
	assert.ErrorIs(t, err, listing.ErrSoldOut)
	assert.Equal(t, uint64(500), m.PaymentBalance(testBuyer))
}

func TestMemoryLedgerInsufficientFunds(t *testing.T) {
	f := newMemoryFixture(t, 1000, 999)
	e := settlement.NewExecutor(f.ledger, settlement.WithLogger(testLogger))
	_, err := e.Purchase(context.Background(), f.listing.Mint, testBuyer)
	assert.ErrorIs(t, err, settlement.ErrInsufficientFunds)
	assert.Equal(t, uint64(999), f.ledger.PaymentBalance(testBuyer))
	assert.Zero(t, f.ledger.PaymentBalance(f.listing.SellerPaymentDeposit))
	assert.Zero(t, f.ledger.VoteBalance(test.TreasuryVoteDeposit))
	_, ok := f.ledger.Holding(f.listing.Mint)
	assert.False(t, ok)
}

func TestMemoryLedgerRejectsBadTransactions(t *testing.T) {
	testDefs := []struct {
		name        string
		modify      func(*settlement.PurchaseTx)
		expectedErr error
	}{
		{
			name:        "stale listing",
			modify:      func(tx *settlement.PurchaseTx) { tx.ListingVersion = 0 },
			expectedErr: settlement.ErrConflict,
		},
		{
			name:        "stale charter",
			modify:      func(tx *settlement.PurchaseTx) { tx.CharterVersion = 0 },
			expectedErr: settlement.ErrConflict,
		},
		{
			name: "distribution favouring the seller",
			modify: func(tx *settlement.PurchaseTx) {
				tx.Distribution.PaymentToSeller++
				tx.Distribution.PaymentToTreasury--
			},
			expectedErr: common.ErrInvalidInput,
		},
		{
			name: "unbalanced distribution",
			modify: func(tx *settlement.PurchaseTx) {
				tx.Distribution.VotesMintedToSeller++
			},
			expectedErr: common.ErrInvalidInput,
		},
		{
			name:        "redirected treasury",
			modify:      func(tx *settlement.PurchaseTx) { tx.TreasuryPaymentDeposit = test.Address(66) },
			expectedErr: common.ErrInvalidInput,
		},
		{
			name:        "redirected seller",
			modify:      func(tx *settlement.PurchaseTx) { tx.SellerVoteDeposit = test.Address(66) },
			expectedErr: common.ErrInvalidInput,
		},
		{
			name:        "unknown listing",
			modify:      func(tx *settlement.PurchaseTx) { tx.Mint = test.Address(66) },
			expectedErr: settlement.ErrNotFound,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			f := newMemoryFixture(t, 1000, 1000)
			ctx := context.Background()
			l, err := f.ledger.LoadListing(ctx, f.listing.Mint)
			require.NoError(t, err)
			c, err := f.ledger.LoadCharter(ctx, f.charter.ID())
			require.NoError(t, err)
			d, err := settlement.Settle(l.Listing.Price, c.Charter)
			require.NoError(t, err)
			tx := settlement.NewPurchaseTx(testBuyer, l, c, d)
			testDef.modify(&tx)
			err = f.ledger.ExecutePurchase(ctx, tx)
			assert.ErrorIs(t, err, testDef.expectedErr)
			assert.Equal(t, uint64(1000), f.ledger.PaymentBalance(testBuyer))
			_, ok := f.ledger.Holding(f.listing.Mint)
			assert.False(t, ok)
		})
	}
}

func TestMemoryLedgerReplay(t *testing.T) {
	f := newMemoryFixture(t, 0, 0)
	ctx := context.Background()
	l, err := f.ledger.LoadListing(ctx, f.listing.Mint)
	require.NoError(t, err)
	c, err := f.ledger.LoadCharter(ctx, f.charter.ID())
	require.NoError(t, err)
	tx := settlement.NewPurchaseTx(testBuyer, l, c, settlement.Distribution{})
	require.NoError(t, f.ledger.ExecutePurchase(ctx, tx))
	assert.ErrorIs(t, f.ledger.ExecutePurchase(ctx, tx), common.ErrInvalidInput)
}

func TestMemoryLedgerCharterUpdateDuringPurchase(t *testing.T) {
	f := newMemoryFixture(t, 1000, 1000)
	update := charter.Update{VoteContributionRate: ptr(test.Rate("0.9"))}
	updated := false
	// Execution loses a race with a charter update on the first attempt
	racing := &test_ledger.MockLedger{
		LoadListingFunc: f.ledger.LoadListing,
		LoadCharterFunc: f.ledger.LoadCharter,
		ExecutePurchaseFunc: func(ctx context.Context, tx settlement.PurchaseTx) error {
			if !updated {
				updated = true
				_, err := f.ledger.UpdateCharter(common.Signer(test.CharterAuthority), f.charter.ID(), update)
				require.NoError(t, err)
			}
			return f.ledger.ExecutePurchase(ctx, tx)
		},
	}
	e := settlement.NewExecutor(racing, settlement.WithLogger(testLogger))
	receipt, err := e.Purchase(context.Background(), f.listing.Mint, testBuyer)
	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Attempts)
	assert.Equal(t, uint64(27), receipt.Distribution.VotesMintedToTreasury)
	assert.Equal(t, uint64(3), receipt.Distribution.VotesMintedToSeller)
	assert.Equal(t, uint64(27), f.ledger.VoteBalance(test.TreasuryVoteDeposit))
	assert.Equal(t, uint64(3), f.ledger.VoteBalance(f.listing.SellerVoteDeposit))
}

func TestMemoryLedgerConcurrentBuyers(t *testing.T) {
	defer goleak.VerifyNone(t)
	f := newMemoryFixture(t, 1000, 0)
	buyers := make([]common.Address, 16)
	for i := range buyers {
		buyers[i] = test.Address(byte(100 + i))
		require.NoError(t, f.ledger.Fund(buyers[i], 1000))
	}
	e := settlement.NewExecutor(f.ledger, settlement.WithLogger(testLogger))
	errs := make([]error, len(buyers))
	var wg sync.WaitGroup
	for i, buyer := range buyers {
		wg.Add(1)
		go func(i int, buyer common.Address) {
			defer wg.Done()
			_, errs[i] = e.Purchase(context.Background(), f.listing.Mint, buyer)
		}(i, buyer)
	}
	wg.Wait()
	var winners int
	for _, err := range errs {
		if err == nil {
			winners++
			continue
		}
		assert.True(t, errors.Is(err, listing.ErrSoldOut), "unexpected error: %s", err)
	}
	assert.Equal(t, 1, winners)
	holding, ok := f.ledger.Holding(f.listing.Mint)
	require.True(t, ok)
	var spent int
	for _, buyer := range buyers {
		if f.ledger.PaymentBalance(buyer) == 0 {
			spent++
			assert.Equal(t, buyer, holding.Owner)
		}
	}
	assert.Equal(t, 1, spent)
	assert.Equal(t, uint64(700), f.ledger.PaymentBalance(f.listing.SellerPaymentDeposit))
}

func TestMemoryLedgerAdministration(t *testing.T) {
	f := newMemoryFixture(t, 1000, 0)
	m := f.ledger
	ctx := context.Background()

	assert.ErrorIs(t, m.CreateCharter(f.charter), common.ErrInvalidInput)
	assert.ErrorIs(t, m.CreateListing(f.listing), common.ErrInvalidInput)

	orphan := f.listing.Params()
	orphan.Mint = test.Address(50)
	orphan.Charter = common.Blake2b256Hash([]byte("missing"))
	ol, err := listing.New(orphan)
	require.NoError(t, err)
	assert.ErrorIs(t, m.CreateListing(ol), settlement.ErrNotFound)

	_, err = m.UpdateCharter(common.Signer(test.Address(9)), f.charter.ID(), charter.Update{})
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	c, err := m.LoadCharter(ctx, f.charter.ID())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), c.Version)

	assert.ErrorIs(t, m.SetPrice(common.Signer(test.CharterAuthority), f.listing.Mint, 5), common.ErrUnauthorized)
	require.NoError(t, m.SetPrice(common.Signer(f.listing.Seller), f.listing.Mint, 5))
	l, err := m.LoadListing(ctx, f.listing.Mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(5), l.Listing.Price)
	assert.Equal(t, uint64(2), l.Version)

	require.NoError(t, m.Fund(testBuyer, math.MaxUint64))
	assert.ErrorIs(t, m.Fund(testBuyer, 1), common.ErrArithmeticOverflow)
	assert.Equal(t, uint64(math.MaxUint64), m.PaymentBalance(testBuyer))
}

func TestMemoryLedgerListingIsolation(t *testing.T) {
	f := newMemoryFixture(t, 1000, 1000)
	ctx := context.Background()

	// Writes through the caller's copy are not seen by the ledger
	f.listing.Price = 1
	snapshot, err := f.ledger.LoadListing(ctx, f.listing.Mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), snapshot.Listing.Price)
	assert.Equal(t, uint64(1), snapshot.Version)

	// Nor are writes through a loaded snapshot
	snapshot.Listing.Price = 2
	snapshot.Listing.Supply = listing.MaxSupply
	again, err := f.ledger.LoadListing(ctx, f.listing.Mint)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), again.Listing.Price)
	assert.True(t, again.Listing.Available())
	assert.Equal(t, uint64(1), again.Version)

	// A purchase settles at the stored price
	e := settlement.NewExecutor(f.ledger, settlement.WithLogger(testLogger))
	receipt, err := e.Purchase(ctx, f.listing.Mint, testBuyer)
	require.NoError(t, err)
	assert.Equal(t, uint64(1000), receipt.Distribution.Price)
	assert.Zero(t, f.ledger.PaymentBalance(testBuyer))
}
