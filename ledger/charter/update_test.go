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

package charter_test

import (
	"testing"

	"github.com/strangemood/strangemood/internal/test"
	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutateReplacesOnlyTargetedFields(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	expansion := common.MustNewRate(1, 1)
	mutated, err := c.Mutate(
		common.Signer(test.CharterAuthority),
		charter.Update{ExpansionRate: &expansion},
	)
	require.NoError(t, err)
	assert.True(t, mutated.ExpansionRate().Equal(expansion))
	assert.True(t, mutated.PaymentContributionRate().Equal(c.PaymentContributionRate().Rate))
	assert.True(t, mutated.VoteContributionRate().Equal(c.VoteContributionRate().Rate))
	assert.Equal(t, c.MetadataURI(), mutated.MetadataURI())
	assert.Equal(t, c.Authority(), mutated.Authority())
	assert.Equal(t, c.TreasuryPaymentDeposit(), mutated.TreasuryPaymentDeposit())
	assert.Equal(t, c.TreasuryVoteDeposit(), mutated.TreasuryVoteDeposit())
	// The original is untouched
	assert.Equal(t, uint64(30), c.ExpansionRate().Amount())
}

func TestMutateAllFields(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	expansion := common.MustNewRate(5, 0)
	payment := common.MustNewRate(3, 1)
	vote := common.MustNewRate(4, 1)
	uri := "ipns://charter"
	mutated, err := c.Mutate(
		common.GovernanceDecision{Governance: test.CharterAuthority},
		charter.Update{
			ExpansionRate:           &expansion,
			PaymentContributionRate: &payment,
			VoteContributionRate:    &vote,
			MetadataURI:             &uri,
		},
	)
	require.NoError(t, err)
	assert.True(t, mutated.Equal(test.NewCharterWithURI("5", "0.3", "0.4", uri)))
}

func TestMutateEmptyUpdate(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	assert.True(t, charter.Update{}.IsEmpty())
	mutated, err := c.Mutate(common.Signer(test.CharterAuthority), charter.Update{})
	require.NoError(t, err)
	assert.True(t, c.Equal(mutated))
	assert.NotSame(t, c, mutated)
}

func TestMutateUnauthorized(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	payment := common.MustNewRate(5, 1)
	update := charter.Update{PaymentContributionRate: &payment}
	authorizers := []common.Authorizer{
		nil,
		common.Signer(test.Address(9)),
		common.Signer(test.TreasuryPaymentDeposit),
		common.GovernanceDecision{Governance: test.Address(9)},
	}
	for _, auth := range authorizers {
		mutated, err := c.Mutate(auth, update)
		assert.Nil(t, mutated)
		assert.ErrorIs(t, err, common.ErrUnauthorized)
	}
	assert.True(t, c.PaymentContributionRate().Equal(common.MustNewRate(6, 3)))
}

func TestMutateInvalidRate(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	bad := common.MustNewRate(1, 0)
	mutated, err := c.Mutate(
		common.Signer(test.CharterAuthority),
		charter.Update{VoteContributionRate: &bad},
	)
	assert.Nil(t, mutated)
	assert.ErrorIs(t, err, common.ErrInvalidRate)
	assert.EqualError(t, err, "voteContributionRate must be in [0,1), got 1")

	zero := common.MustNewRate(0, 0)
	_, err = c.Mutate(
		common.Signer(test.CharterAuthority),
		charter.Update{ExpansionRate: &zero},
	)
	assert.ErrorIs(t, err, common.ErrInvalidRate)
}

func TestMutateUnauthorizedBeforeValidation(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	bad := common.MustNewRate(1, 0)
	_, err := c.Mutate(
		common.Signer(test.Address(9)),
		charter.Update{VoteContributionRate: &bad},
	)
	assert.ErrorIs(t, err, common.ErrUnauthorized)
	assert.NotErrorIs(t, err, common.ErrInvalidRate)
}
