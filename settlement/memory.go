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
	"fmt"
	"math"
	"sync"

	"github.com/google/uuid"

	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
	"github.com/strangemood/strangemood/ledger/listing"
)

// Holding is the owner of a listing's minted token
type Holding struct {
	Owner  common.Address
	Frozen bool
}

type charterEntry struct {
	charter *charter.Charter
	version uint64
}

type listingEntry struct {
	listing *listing.Listing
	version uint64
}

// MemoryLedger is an in-process Ledger. All of a purchase's effects are
// applied under one lock, and every change to a listing or charter bumps its
// version so stale purchases are rejected with ErrConflict.
type MemoryLedger struct {
	mutex     sync.Mutex
	charters  map[common.Blake2b256]*charterEntry
	listings  map[common.Address]*listingEntry
	payments  map[common.Address]uint64
	votes     map[common.Address]uint64
	holdings  map[common.Address]Holding
	purchases map[uuid.UUID]struct{}
}

var _ Ledger = (*MemoryLedger)(nil)

func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		charters:  make(map[common.Blake2b256]*charterEntry),
		listings:  make(map[common.Address]*listingEntry),
		payments:  make(map[common.Address]uint64),
		votes:     make(map[common.Address]uint64),
		holdings:  make(map[common.Address]Holding),
		purchases: make(map[uuid.UUID]struct{}),
	}
}

// CreateCharter stores a new charter under its ID
func (m *MemoryLedger) CreateCharter(c *charter.Charter) error {
	if err := c.Validate(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	id := c.ID()
	if _, ok := m.charters[id]; ok {
		return fmt.Errorf("%w: charter %s already exists", common.ErrInvalidInput, c.Bech32ID())
	}
	m.charters[id] = &charterEntry{charter: c, version: 1}
	return nil
}

// UpdateCharter applies update to the stored charter on behalf of auth
func (m *MemoryLedger) UpdateCharter(
	auth common.Authorizer,
	id common.Blake2b256,
	update charter.Update,
) (*charter.Charter, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entry, ok := m.charters[id]
	if !ok {
		return nil, fmt.Errorf("charter %s: %w", id, ErrNotFound)
	}
	next, err := entry.charter.Mutate(auth, update)
	if err != nil {
		return nil, err
	}
	entry.charter = next
	entry.version++
	return next, nil
}

// CreateListing stores a copy of a new listing. Its charter must already exist.
func (m *MemoryLedger) CreateListing(l *listing.Listing) error {
	if err := l.Validate(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.charters[l.Charter]; !ok {
		return fmt.Errorf("charter %s: %w", l.Charter, ErrNotFound)
	}
	if _, ok := m.listings[l.Mint]; ok {
		return fmt.Errorf("%w: listing %s already exists", common.ErrInvalidInput, l.Mint)
	}
	m.listings[l.Mint] = &listingEntry{listing: l.Clone(), version: 1}
	return nil
}

// SetPrice changes a listing's price on behalf of auth
func (m *MemoryLedger) SetPrice(auth common.Authorizer, mint common.Address, price uint64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entry, ok := m.listings[mint]
	if !ok {
		return fmt.Errorf("listing %s: %w", mint, ErrNotFound)
	}
	next, err := entry.listing.WithPrice(auth, price)
	if err != nil {
		return err
	}
	entry.listing = next
	entry.version++
	return nil
}

// Fund credits amount payment units to account
func (m *MemoryLedger) Fund(account common.Address, amount uint64) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	balance, err := addBalance(m.payments[account], amount)
	if err != nil {
		return err
	}
	m.payments[account] = balance
	return nil
}

// PaymentBalance returns the payment units held by account
func (m *MemoryLedger) PaymentBalance(account common.Address) uint64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.payments[account]
}

// VoteBalance returns the vote tokens held by account
func (m *MemoryLedger) VoteBalance(account common.Address) uint64 {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.votes[account]
}

// Holding returns the owner of the token minted for a listing, if any
func (m *MemoryLedger) Holding(mint common.Address) (Holding, bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	h, ok := m.holdings[mint]
	return h, ok
}

func (m *MemoryLedger) LoadListing(ctx context.Context, mint common.Address) (ListingSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return ListingSnapshot{}, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entry, ok := m.listings[mint]
	if !ok {
		return ListingSnapshot{}, fmt.Errorf("listing %s: %w", mint, ErrNotFound)
	}
	return ListingSnapshot{Listing: entry.listing.Clone(), Version: entry.version}, nil
}

func (m *MemoryLedger) LoadCharter(ctx context.Context, id common.Blake2b256) (CharterSnapshot, error) {
	if err := ctx.Err(); err != nil {
		return CharterSnapshot{}, err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	entry, ok := m.charters[id]
	if !ok {
		return CharterSnapshot{}, fmt.Errorf("charter %s: %w", id, ErrNotFound)
	}
	return CharterSnapshot{Charter: entry.charter, Version: entry.version}, nil
}

// ExecutePurchase applies every effect of tx or none of them
func (m *MemoryLedger) ExecutePurchase(ctx context.Context, tx PurchaseTx) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := tx.Distribution.Validate(); err != nil {
		return err
	}
	m.mutex.Lock()
	defer m.mutex.Unlock()
	if _, ok := m.purchases[tx.ID]; ok {
		return fmt.Errorf("%w: purchase %s already executed", common.ErrInvalidInput, tx.ID)
	}
	l, ok := m.listings[tx.Mint]
	if !ok {
		return fmt.Errorf("listing %s: %w", tx.Mint, ErrNotFound)
	}
	c, ok := m.charters[tx.Charter]
	if !ok {
		return fmt.Errorf("charter %s: %w", tx.Charter, ErrNotFound)
	}
	if l.version != tx.ListingVersion {
		return fmt.Errorf("listing %s at version %d, purchase built on %d: %w",
			tx.Mint, l.version, tx.ListingVersion, ErrConflict)
	}
	if c.version != tx.CharterVersion {
		return fmt.Errorf("charter %s at version %d, purchase built on %d: %w",
			tx.Charter, c.version, tx.CharterVersion, ErrConflict)
	}
	if err := m.checkPurchase(tx, l.listing, c.charter); err != nil {
		return err
	}
	sold, err := l.listing.WithSold()
	if err != nil {
		return err
	}
	// Compute every new balance before writing any of them
	d := tx.Distribution
	buyerBalance := m.payments[tx.Buyer] - d.Price
	payments := map[common.Address]uint64{tx.Buyer: buyerBalance}
	votes := make(map[common.Address]uint64)
	credits := []struct {
		balances map[common.Address]uint64
		current  map[common.Address]uint64
		account  common.Address
		amount   uint64
	}{
		{payments, m.payments, tx.SellerPaymentDeposit, d.PaymentToSeller},
		{payments, m.payments, tx.TreasuryPaymentDeposit, d.PaymentToTreasury},
		{votes, m.votes, tx.SellerVoteDeposit, d.VotesMintedToSeller},
		{votes, m.votes, tx.TreasuryVoteDeposit, d.VotesMintedToTreasury},
	}
	for _, credit := range credits {
		current, ok := credit.balances[credit.account]
		if !ok {
			current = credit.current[credit.account]
		}
		next, err := addBalance(current, credit.amount)
		if err != nil {
			return err
		}
		credit.balances[credit.account] = next
	}
	for account, balance := range payments {
		m.payments[account] = balance
	}
	for account, balance := range votes {
		m.votes[account] = balance
	}
	m.holdings[tx.Mint] = Holding{Owner: tx.Buyer, Frozen: true}
	l.listing = sold
	l.version++
	m.purchases[tx.ID] = struct{}{}
	return nil
}

func (m *MemoryLedger) checkPurchase(tx PurchaseTx, l *listing.Listing, c *charter.Charter) error {
	if err := l.CheckAvailable(); err != nil {
		return err
	}
	switch {
	case tx.Buyer.IsZero():
		return fmt.Errorf("%w: buyer is not set", common.ErrInvalidInput)
	case tx.Distribution.Price != l.Price:
		return fmt.Errorf("%w: purchase price %d does not match listing price %d",
			common.ErrInvalidInput, tx.Distribution.Price, l.Price)
	case tx.SellerPaymentDeposit != l.SellerPaymentDeposit,
		tx.SellerVoteDeposit != l.SellerVoteDeposit:
		return fmt.Errorf("%w: seller deposits do not match listing %s", common.ErrInvalidInput, tx.Mint)
	case tx.TreasuryPaymentDeposit != c.TreasuryPaymentDeposit(),
		tx.TreasuryVoteDeposit != c.TreasuryVoteDeposit():
		return fmt.Errorf("%w: treasury deposits do not match charter %s", common.ErrInvalidInput, c.Bech32ID())
	}
	expected, err := Settle(l.Price, c)
	if err != nil {
		return err
	}
	if expected != tx.Distribution {
		return fmt.Errorf("%w: distribution does not match charter %s: got %s, want %s",
			common.ErrInvalidInput, c.Bech32ID(), tx.Distribution, expected)
	}
	if balance := m.payments[tx.Buyer]; balance < tx.Distribution.Price {
		return fmt.Errorf("buyer %s holds %d, price is %d: %w",
			tx.Buyer, balance, tx.Distribution.Price, ErrInsufficientFunds)
	}
	return nil
}

func addBalance(balance, amount uint64) (uint64, error) {
	if amount > math.MaxUint64-balance {
		return 0, common.OverflowError{Op: "balance credit"}
	}
	return balance + amount, nil
}
