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
	"github.com/strangemood/strangemood/ledger/common"
)

// Update lists the fields a charter mutation replaces. Nil fields are left
// unchanged. The authority and deposit accounts cannot be updated.
type Update struct {
	ExpansionRate           *common.Rate
	PaymentContributionRate *common.Rate
	VoteContributionRate    *common.Rate
	MetadataURI             *string
}

// IsEmpty reports whether the update changes nothing
func (u Update) IsEmpty() bool {
	return u.ExpansionRate == nil &&
		u.PaymentContributionRate == nil &&
		u.VoteContributionRate == nil &&
		u.MetadataURI == nil
}

// Mutate returns a copy of the charter with the fields in update replaced.
// It fails with common.ErrUnauthorized unless auth acts as the charter's
// authority, and with common.ErrInvalidRate under the same rules as New.
// The receiver is never modified.
func (c *Charter) Mutate(auth common.Authorizer, update Update) (*Charter, error) {
	if err := common.Authorize(auth, c.authority); err != nil {
		return nil, err
	}
	next := &Charter{
		authority:               c.authority,
		treasuryPaymentDeposit:  c.treasuryPaymentDeposit,
		treasuryVoteDeposit:     c.treasuryVoteDeposit,
		expansionRate:           c.expansionRate,
		paymentContributionRate: c.paymentContributionRate,
		voteContributionRate:    c.voteContributionRate,
		metadataURI:             c.metadataURI,
	}
	if err := next.setRates(
		update.ExpansionRate,
		update.PaymentContributionRate,
		update.VoteContributionRate,
	); err != nil {
		return nil, err
	}
	if update.MetadataURI != nil {
		if err := next.setMetadataURI(*update.MetadataURI); err != nil {
			return nil, err
		}
	}
	return next, nil
}
