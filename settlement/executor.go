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
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/strangemood/strangemood/ledger/common"
)

// DefaultMaxAttempts is the number of times a purchase is settled and
// submitted before a persistent conflict is returned to the caller
const DefaultMaxAttempts = 3

// Receipt records a purchase the ledger accepted
type Receipt struct {
	ID           uuid.UUID      `json:"id"`
	Mint         common.Address `json:"mint"`
	Buyer        common.Address `json:"buyer"`
	Distribution Distribution   `json:"distribution"`
	Attempts     int            `json:"attempts"`
}

// Executor settles purchases against a Ledger. Every attempt loads the
// listing and charter afresh and settles again, so a distribution computed
// from state that lost a race is never submitted twice.
type Executor struct {
	ledger      Ledger
	logger      *slog.Logger
	policy      Policy
	maxAttempts int
}

// NewExecutor returns an Executor for the given ledger
func NewExecutor(ledger Ledger, options ...ExecutorOptionFunc) *Executor {
	e := &Executor{
		ledger:      ledger,
		policy:      DefaultPolicy,
		maxAttempts: DefaultMaxAttempts,
	}
	for _, option := range options {
		option(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}
	if e.maxAttempts < 1 {
		e.maxAttempts = 1
	}
	return e
}

// Purchase buys the listing minted at mint for buyer. It returns an error
// wrapping ErrConflict if every attempt lost a race, and stops early when
// ctx is done.
func (e *Executor) Purchase(
	ctx context.Context,
	mint common.Address,
	buyer common.Address,
) (Receipt, error) {
	if buyer.IsZero() {
		return Receipt{}, fmt.Errorf("%w: buyer is not set", common.ErrInvalidInput)
	}
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return Receipt{}, err
		}
		tx, err := e.prepare(ctx, mint, buyer)
		if err != nil {
			return Receipt{}, err
		}
		err = e.ledger.ExecutePurchase(ctx, tx)
		if err == nil {
			e.logger.Info(
				"purchase executed",
				"component", "settlement",
				"purchase_id", tx.ID.String(),
				"mint", mint.String(),
				"price", tx.Distribution.Price,
				"attempt", attempt,
			)
			return Receipt{
				ID:           tx.ID,
				Mint:         mint,
				Buyer:        buyer,
				Distribution: tx.Distribution,
				Attempts:     attempt,
			}, nil
		}
		if !errors.Is(err, ErrConflict) {
			return Receipt{}, fmt.Errorf("execute purchase %s: %w", tx.ID, err)
		}
		e.logger.Debug(
			"purchase conflicted, settling again",
			"component", "settlement",
			"purchase_id", tx.ID.String(),
			"mint", mint.String(),
			"attempt", attempt,
		)
	}
	return Receipt{}, fmt.Errorf(
		"purchase of %s: gave up after %d attempts: %w",
		mint,
		e.maxAttempts,
		ErrConflict,
	)
}

func (e *Executor) prepare(
	ctx context.Context,
	mint common.Address,
	buyer common.Address,
) (PurchaseTx, error) {
	l, err := e.ledger.LoadListing(ctx, mint)
	if err != nil {
		return PurchaseTx{}, fmt.Errorf("load listing %s: %w", mint, err)
	}
	if err := l.Listing.CheckAvailable(); err != nil {
		return PurchaseTx{}, err
	}
	c, err := e.ledger.LoadCharter(ctx, l.Listing.Charter)
	if err != nil {
		return PurchaseTx{}, fmt.Errorf("load charter %s: %w", l.Listing.Charter, err)
	}
	if c.Charter.ID() != l.Listing.Charter {
		return PurchaseTx{}, fmt.Errorf(
			"%w: ledger returned charter %s for %s",
			common.ErrInvalidInput,
			c.Charter.ID(),
			l.Listing.Charter,
		)
	}
	d, err := e.policy.Settle(l.Listing.Price, c.Charter)
	if err != nil {
		return PurchaseTx{}, fmt.Errorf("settle %s: %w", mint, err)
	}
	return NewPurchaseTx(buyer, l, c, d), nil
}
