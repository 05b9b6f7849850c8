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

// Package listing models a single sellable good whose ownership token has a
// supply of at most one.
package listing

import (
	"errors"
	"fmt"

	"github.com/strangemood/strangemood/cbor"
	"github.com/strangemood/strangemood/ledger/common"
)

// MaxSupply is the number of ownership tokens a listing can ever mint
const MaxSupply = 1

// MaxURILength bounds the metadata URI stored on a listing
const MaxURILength = 128

// ErrSoldOut is returned when a listing has already minted its only token
var ErrSoldOut = errors.New("listing is sold out")

type Params struct {
	Mint                 common.Address
	Seller               common.Address
	SellerPaymentDeposit common.Address
	SellerVoteDeposit    common.Address
	Charter              common.Blake2b256
	Price                uint64
	URI                  string
}

// Listing is created once by a seller. Only the price changes afterwards,
// and only at the seller's request; Supply moves from 0 to MaxSupply when
// the listing is purchased.
type Listing struct {
	cbor.StructAsArray
	cbor.DecodeStoreCbor
	Mint                 common.Address
	Seller               common.Address
	SellerPaymentDeposit common.Address
	SellerVoteDeposit    common.Address
	Charter              common.Blake2b256
	Price                uint64
	URI                  string
	Supply               uint64
}

func New(p Params) (*Listing, error) {
	l := &Listing{
		Mint:                 p.Mint,
		Seller:               p.Seller,
		SellerPaymentDeposit: p.SellerPaymentDeposit,
		SellerVoteDeposit:    p.SellerVoteDeposit,
		Charter:              p.Charter,
		Price:                p.Price,
		URI:                  p.URI,
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Listing) Validate() error {
	switch {
	case l.Mint.IsZero():
		return fmt.Errorf("%w: listing mint is not set", common.ErrInvalidInput)
	case l.Seller.IsZero():
		return fmt.Errorf("%w: listing seller is not set", common.ErrInvalidInput)
	case l.SellerPaymentDeposit.IsZero():
		return fmt.Errorf("%w: seller payment deposit is not set", common.ErrInvalidInput)
	case l.SellerVoteDeposit.IsZero():
		return fmt.Errorf("%w: seller vote deposit is not set", common.ErrInvalidInput)
	case l.Charter.IsZero():
		return fmt.Errorf("%w: listing charter is not set", common.ErrInvalidInput)
	case len(l.URI) > MaxURILength:
		return fmt.Errorf(
			"%w: listing URI is %d bytes, limit is %d",
			common.ErrInvalidInput,
			len(l.URI),
			MaxURILength,
		)
	case l.Supply > MaxSupply:
		return fmt.Errorf(
			"%w: listing supply %d exceeds %d",
			common.ErrInvalidInput,
			l.Supply,
			MaxSupply,
		)
	}
	return nil
}

// Params returns the fields the listing was created with and its current price
func (l *Listing) Params() Params {
	return Params{
		Mint:                 l.Mint,
		Seller:               l.Seller,
		SellerPaymentDeposit: l.SellerPaymentDeposit,
		SellerVoteDeposit:    l.SellerVoteDeposit,
		Charter:              l.Charter,
		Price:                l.Price,
		URI:                  l.URI,
	}
}

// Available reports whether the listing's token can still be purchased
func (l *Listing) Available() bool {
	return l.Supply < MaxSupply
}

// CheckAvailable returns ErrSoldOut once the token has been minted
func (l *Listing) CheckAvailable() error {
	if !l.Available() {
		return fmt.Errorf("listing %s: %w", l.Mint.String(), ErrSoldOut)
	}
	return nil
}

// WithPrice returns a copy of the listing with a new price. Only the seller
// may change the price.
func (l *Listing) WithPrice(auth common.Authorizer, price uint64) (*Listing, error) {
	if err := common.Authorize(auth, l.Seller); err != nil {
		return nil, err
	}
	next := l.clone()
	next.Price = price
	return next, nil
}

// WithSold returns a copy of the listing with its token minted
func (l *Listing) WithSold() (*Listing, error) {
	if err := l.CheckAvailable(); err != nil {
		return nil, err
	}
	next := l.clone()
	next.Supply = MaxSupply
	return next, nil
}

// Clone returns an independent copy of the listing, including any CBOR it
// was decoded from
func (l *Listing) Clone() *Listing {
	next := l.clone()
	if cborData := l.Cbor(); len(cborData) > 0 {
		next.SetCbor(cborData)
	}
	return next
}

func (l *Listing) clone() *Listing {
	return &Listing{
		Mint:                 l.Mint,
		Seller:               l.Seller,
		SellerPaymentDeposit: l.SellerPaymentDeposit,
		SellerVoteDeposit:    l.SellerVoteDeposit,
		Charter:              l.Charter,
		Price:                l.Price,
		URI:                  l.URI,
		Supply:               l.Supply,
	}
}

func (l *Listing) UnmarshalCBOR(cborData []byte) error {
	if err := cbor.DecodeGeneric(cborData, l); err != nil {
		return err
	}
	if err := l.Validate(); err != nil {
		return err
	}
	l.SetCbor(cborData)
	return nil
}
