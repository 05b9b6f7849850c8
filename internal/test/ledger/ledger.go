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

package test_ledger

import (
	"context"
	"errors"
	"sync"

	"github.com/strangemood/strangemood/ledger/common"
	"github.com/strangemood/strangemood/settlement"
)

// Compile-time check that MockLedger implements settlement.Ledger
var _ settlement.Ledger = (*MockLedger)(nil)

// MockLedger is the canonical internal mock used by tests. Tests should
// construct &test_ledger.MockLedger{} and configure the func fields to
// control behavior. Unset funcs return an error indicating the mock is not
// configured. Submitted transactions are recorded in order.
type MockLedger struct {
	LoadListingFunc     func(context.Context, common.Address) (settlement.ListingSnapshot, error)
	LoadCharterFunc     func(context.Context, common.Blake2b256) (settlement.CharterSnapshot, error)
	ExecutePurchaseFunc func(context.Context, settlement.PurchaseTx) error

	mutex     sync.Mutex
	submitted []settlement.PurchaseTx
}

func (m *MockLedger) LoadListing(
	ctx context.Context,
	mint common.Address,
) (settlement.ListingSnapshot, error) {
	if m.LoadListingFunc != nil {
		return m.LoadListingFunc(ctx, mint)
	}
	return settlement.ListingSnapshot{}, errors.New("mock: LoadListing not configured")
}

func (m *MockLedger) LoadCharter(
	ctx context.Context,
	id common.Blake2b256,
) (settlement.CharterSnapshot, error) {
	if m.LoadCharterFunc != nil {
		return m.LoadCharterFunc(ctx, id)
	}
	return settlement.CharterSnapshot{}, errors.New("mock: LoadCharter not configured")
}

func (m *MockLedger) ExecutePurchase(ctx context.Context, tx settlement.PurchaseTx) error {
	m.mutex.Lock()
	m.submitted = append(m.submitted, tx)
	m.mutex.Unlock()
	if m.ExecutePurchaseFunc != nil {
		return m.ExecutePurchaseFunc(ctx, tx)
	}
	return errors.New("mock: ExecutePurchase not configured")
}

// Submitted returns the transactions passed to ExecutePurchase so far
func (m *MockLedger) Submitted() []settlement.PurchaseTx {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	ret := make([]settlement.PurchaseTx, len(m.submitted))
	copy(ret, m.submitted)
	return ret
}
