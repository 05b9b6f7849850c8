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
	"encoding/json"

	"github.com/strangemood/strangemood/cbor"
	"github.com/strangemood/strangemood/ledger/common"
)

type charterWire struct {
	cbor.StructAsArray
	Authority               common.Address
	TreasuryPaymentDeposit  common.Address
	TreasuryVoteDeposit     common.Address
	ExpansionRate           common.Rate
	PaymentContributionRate common.Rate
	VoteContributionRate    common.Rate
	MetadataURI             string
}

func (c *Charter) MarshalCBOR() ([]byte, error) {
	if cborData := c.Cbor(); cborData != nil {
		return cborData, nil
	}
	p := c.Params()
	return cbor.Encode(&charterWire{
		Authority:               p.Authority,
		TreasuryPaymentDeposit:  p.TreasuryPaymentDeposit,
		TreasuryVoteDeposit:     p.TreasuryVoteDeposit,
		ExpansionRate:           p.ExpansionRate,
		PaymentContributionRate: p.PaymentContributionRate,
		VoteContributionRate:    p.VoteContributionRate,
		MetadataURI:             p.MetadataURI,
	})
}

// UnmarshalCBOR decodes and validates a charter, keeping the original bytes for Hash
func (c *Charter) UnmarshalCBOR(cborData []byte) error {
	var tmp charterWire
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	tmpCharter, err := New(Params{
		Authority:               tmp.Authority,
		TreasuryPaymentDeposit:  tmp.TreasuryPaymentDeposit,
		TreasuryVoteDeposit:     tmp.TreasuryVoteDeposit,
		ExpansionRate:           tmp.ExpansionRate,
		PaymentContributionRate: tmp.PaymentContributionRate,
		VoteContributionRate:    tmp.VoteContributionRate,
		MetadataURI:             tmp.MetadataURI,
	})
	if err != nil {
		return err
	}
	*c = *tmpCharter
	c.SetCbor(cborData)
	return nil
}

type charterJSON struct {
	ID                      string         `json:"id,omitempty"`
	Authority               common.Address `json:"authority"`
	TreasuryPaymentDeposit  common.Address `json:"treasuryPaymentDeposit"`
	TreasuryVoteDeposit     common.Address `json:"treasuryVoteDeposit"`
	ExpansionRate           common.Rate    `json:"expansionRate"`
	PaymentContributionRate common.Rate    `json:"paymentContributionRate"`
	VoteContributionRate    common.Rate    `json:"voteContributionRate"`
	MetadataURI             string         `json:"metadataURI"`
}

func (c *Charter) MarshalJSON() ([]byte, error) {
	p := c.Params()
	return json.Marshal(charterJSON{
		ID:                      c.Bech32ID(),
		Authority:               p.Authority,
		TreasuryPaymentDeposit:  p.TreasuryPaymentDeposit,
		TreasuryVoteDeposit:     p.TreasuryVoteDeposit,
		ExpansionRate:           p.ExpansionRate,
		PaymentContributionRate: p.PaymentContributionRate,
		VoteContributionRate:    p.VoteContributionRate,
		MetadataURI:             p.MetadataURI,
	})
}

// UnmarshalJSON decodes and validates a charter. The id field is derived and ignored.
func (c *Charter) UnmarshalJSON(jsonData []byte) error {
	var tmp charterJSON
	if err := json.Unmarshal(jsonData, &tmp); err != nil {
		return err
	}
	tmpCharter, err := New(Params{
		Authority:               tmp.Authority,
		TreasuryPaymentDeposit:  tmp.TreasuryPaymentDeposit,
		TreasuryVoteDeposit:     tmp.TreasuryVoteDeposit,
		ExpansionRate:           tmp.ExpansionRate,
		PaymentContributionRate: tmp.PaymentContributionRate,
		VoteContributionRate:    tmp.VoteContributionRate,
		MetadataURI:             tmp.MetadataURI,
	})
	if err != nil {
		return err
	}
	*c = *tmpCharter
	return nil
}
