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

package charter

import (
	"fmt"

	"github.com/blinklabs-io/plutigo/data"

	"github.com/strangemood/strangemood/cbor"
	"github.com/strangemood/strangemood/ledger/common"
)

// IDPrefix is the bech32 prefix for charter IDs
const IDPrefix = "charter"

// MaxMetadataURILength bounds the metadata URI stored on a charter
const MaxMetadataURILength = 128

// Params holds the values a charter is created from
type Params struct {
	Authority               common.Address
	TreasuryPaymentDeposit  common.Address
	TreasuryVoteDeposit     common.Address
	ExpansionRate           common.Rate
	PaymentContributionRate common.Rate
	VoteContributionRate    common.Rate
	MetadataURI             string
}

// Charter is the economic policy of one treasury. It is consulted by every
// settlement and only changes through Mutate, which returns a new value.
type Charter struct {
	cbor.DecodeStoreCbor
	authority               common.Address
	treasuryPaymentDeposit  common.Address
	treasuryVoteDeposit     common.Address
	expansionRate           common.ExpansionRate
	paymentContributionRate common.SplitRate
	voteContributionRate    common.SplitRate
	metadataURI             string
}

// New validates p and returns the charter it describes
func New(p Params) (*Charter, error) {
	if p.Authority.IsZero() {
		return nil, fmt.Errorf("%w: charter authority is not set", common.ErrInvalidInput)
	}
	if p.TreasuryPaymentDeposit.IsZero() {
		return nil, fmt.Errorf("%w: treasury payment deposit is not set", common.ErrInvalidInput)
	}
	if p.TreasuryVoteDeposit.IsZero() {
		return nil, fmt.Errorf("%w: treasury vote deposit is not set", common.ErrInvalidInput)
	}
	c := &Charter{
		authority:              p.Authority,
		treasuryPaymentDeposit: p.TreasuryPaymentDeposit,
		treasuryVoteDeposit:    p.TreasuryVoteDeposit,
	}
	if err := c.setRates(&p.ExpansionRate, &p.PaymentContributionRate, &p.VoteContributionRate); err != nil {
		return nil, err
	}
	if err := c.setMetadataURI(p.MetadataURI); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Charter) setRates(expansion, payment, vote *common.Rate) error {
	if expansion != nil {
		r, err := expansion.Expansion("expansionRate")
		if err != nil {
			return err
		}
		c.expansionRate = r
	}
	if payment != nil {
		r, err := payment.Split("paymentContributionRate")
		if err != nil {
			return err
		}
		c.paymentContributionRate = r
	}
	if vote != nil {
		r, err := vote.Split("voteContributionRate")
		if err != nil {
			return err
		}
		c.voteContributionRate = r
	}
	return nil
}

func (c *Charter) setMetadataURI(uri string) error {
	if len(uri) > MaxMetadataURILength {
		return fmt.Errorf(
			"%w: metadata URI is %d bytes, limit is %d",
			common.ErrInvalidInput,
			len(uri),
			MaxMetadataURILength,
		)
	}
	c.metadataURI = uri
	return nil
}

func (c *Charter) Authority() common.Address {
	return c.authority
}

func (c *Charter) TreasuryPaymentDeposit() common.Address {
	return c.treasuryPaymentDeposit
}

func (c *Charter) TreasuryVoteDeposit() common.Address {
	return c.treasuryVoteDeposit
}

func (c *Charter) ExpansionRate() common.ExpansionRate {
	return c.expansionRate
}

func (c *Charter) PaymentContributionRate() common.SplitRate {
	return c.paymentContributionRate
}

func (c *Charter) VoteContributionRate() common.SplitRate {
	return c.voteContributionRate
}

func (c *Charter) MetadataURI() string {
	return c.metadataURI
}

// Params returns the values the charter would be recreated from
func (c *Charter) Params() Params {
	return Params{
		Authority:               c.authority,
		TreasuryPaymentDeposit:  c.treasuryPaymentDeposit,
		TreasuryVoteDeposit:     c.treasuryVoteDeposit,
		ExpansionRate:           c.expansionRate.Rate,
		PaymentContributionRate: c.paymentContributionRate.Rate,
		VoteContributionRate:    c.voteContributionRate.Rate,
		MetadataURI:             c.metadataURI,
	}
}

// Validate reports whether c could have been produced by New. The zero value
// of Charter is not valid.
func (c *Charter) Validate() error {
	if c == nil {
		return fmt.Errorf("%w: charter is nil", common.ErrInvalidInput)
	}
	_, err := New(c.Params())
	return err
}

// Equal compares charters by value; rates compare by their rational value
func (c *Charter) Equal(o *Charter) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.authority == o.authority &&
		c.treasuryPaymentDeposit == o.treasuryPaymentDeposit &&
		c.treasuryVoteDeposit == o.treasuryVoteDeposit &&
		c.expansionRate.Equal(o.expansionRate.Rate) &&
		c.paymentContributionRate.Equal(o.paymentContributionRate.Rate) &&
		c.voteContributionRate.Equal(o.voteContributionRate.Rate) &&
		c.metadataURI == o.metadataURI
}

// ID identifies the charter by the fields that never change, so it is stable
// across mutations. Listings refer to their charter by this ID.
func (c *Charter) ID() common.Blake2b256 {
	return IDFor(c.authority, c.treasuryPaymentDeposit, c.treasuryVoteDeposit)
}

// IDFor returns the ID of a charter with the given authority and deposits
func IDFor(authority, paymentDeposit, voteDeposit common.Address) common.Blake2b256 {
	buf := make([]byte, 0, 3*common.AddressSize)
	buf = append(buf, authority.Bytes()...)
	buf = append(buf, paymentDeposit.Bytes()...)
	buf = append(buf, voteDeposit.Bytes()...)
	return common.Blake2b256Hash(buf)
}

// Bech32ID returns the ID in its bech32 text form
func (c *Charter) Bech32ID() string {
	return c.ID().Bech32(IDPrefix)
}

// Hash returns the hash of the charter's CBOR encoding, which changes whenever
// any field changes. A decoded charter is hashed over its original bytes.
func (c *Charter) Hash() (common.Blake2b256, error) {
	cborData, err := c.MarshalCBOR()
	if err != nil {
		return common.Blake2b256{}, err
	}
	return common.Blake2b256Hash(cborData), nil
}

func (c *Charter) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		0,
		c.authority.ToPlutusData(),
		c.treasuryPaymentDeposit.ToPlutusData(),
		c.treasuryVoteDeposit.ToPlutusData(),
		c.expansionRate.ToPlutusData(),
		c.paymentContributionRate.ToPlutusData(),
		c.voteContributionRate.ToPlutusData(),
		data.NewByteString([]byte(c.metadataURI)),
	)
}

func (c *Charter) String() string {
	return fmt.Sprintf(
		"charter %s (expansion %s, payment contribution %s, vote contribution %s)",
		c.Bech32ID(),
		c.expansionRate.String(),
		c.paymentContributionRate.String(),
		c.voteContributionRate.String(),
	)
}
