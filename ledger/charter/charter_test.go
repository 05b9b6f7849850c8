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
	"encoding/json"
	"strings"
	"testing"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/strangemood/strangemood/cbor"
	"github.com/strangemood/strangemood/internal/test"
	"github.com/strangemood/strangemood/ledger/charter"
	"github.com/strangemood/strangemood/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testParams() charter.Params {
	return charter.Params{
		Authority:               test.CharterAuthority,
		TreasuryPaymentDeposit:  test.TreasuryPaymentDeposit,
		TreasuryVoteDeposit:     test.TreasuryVoteDeposit,
		ExpansionRate:           common.MustNewRate(30, 0),
		PaymentContributionRate: common.MustNewRate(6, 3),
		VoteContributionRate:    common.MustNewRate(2, 1),
		MetadataURI:             "https://strangemood.org",
	}
}

func TestNewCharter(t *testing.T) {
	c, err := charter.New(testParams())
	require.NoError(t, err)
	assert.Equal(t, test.CharterAuthority, c.Authority())
	assert.Equal(t, test.TreasuryPaymentDeposit, c.TreasuryPaymentDeposit())
	assert.Equal(t, test.TreasuryVoteDeposit, c.TreasuryVoteDeposit())
	assert.Equal(t, uint64(30), c.ExpansionRate().Amount())
	assert.Equal(t, uint8(0), c.ExpansionRate().Decimals())
	assert.Equal(t, uint64(6), c.PaymentContributionRate().Amount())
	assert.Equal(t, uint8(3), c.PaymentContributionRate().Decimals())
	assert.Equal(t, uint64(2), c.VoteContributionRate().Amount())
	assert.Equal(t, uint8(1), c.VoteContributionRate().Decimals())
	assert.Equal(t, "https://strangemood.org", c.MetadataURI())
	assert.NoError(t, c.Validate())
}

func TestNewCharterInvalid(t *testing.T) {
	testDefs := []struct {
		name    string
		modify  func(p *charter.Params)
		kind    error
		message string
	}{
		{
			name:    "payment contribution of one",
			modify:  func(p *charter.Params) { p.PaymentContributionRate = common.MustNewRate(1, 0) },
			kind:    common.ErrInvalidRate,
			message: "paymentContributionRate must be in [0,1), got 1",
		},
		{
			name:    "vote contribution above one",
			modify:  func(p *charter.Params) { p.VoteContributionRate = common.MustNewRate(125, 2) },
			kind:    common.ErrInvalidRate,
			message: "voteContributionRate must be in [0,1), got 1.25",
		},
		{
			name:    "zero expansion",
			modify:  func(p *charter.Params) { p.ExpansionRate = common.MustNewRate(0, 3) },
			kind:    common.ErrInvalidRate,
			message: "expansionRate must be greater than 0, got 0.000",
		},
		{
			name:   "missing authority",
			modify: func(p *charter.Params) { p.Authority = common.Address{} },
			kind:   common.ErrInvalidInput,
		},
		{
			name:   "missing payment deposit",
			modify: func(p *charter.Params) { p.TreasuryPaymentDeposit = common.Address{} },
			kind:   common.ErrInvalidInput,
		},
		{
			name:   "missing vote deposit",
			modify: func(p *charter.Params) { p.TreasuryVoteDeposit = common.Address{} },
			kind:   common.ErrInvalidInput,
		},
		{
			name:   "metadata URI too long",
			modify: func(p *charter.Params) { p.MetadataURI = "https://" + strings.Repeat("a", 121) },
			kind:   common.ErrInvalidInput,
		},
	}
	for _, testDef := range testDefs {
		t.Run(testDef.name, func(t *testing.T) {
			p := testParams()
			testDef.modify(&p)
			c, err := charter.New(p)
			assert.Nil(t, c)
			assert.ErrorIs(t, err, testDef.kind)
			if testDef.message != "" {
				assert.EqualError(t, err, testDef.message)
			}
		})
	}
}

func TestZeroCharterIsInvalid(t *testing.T) {
	var c charter.Charter
	assert.ErrorIs(t, c.Validate(), common.ErrInvalidInput)
	var nilCharter *charter.Charter
	assert.ErrorIs(t, nilCharter.Validate(), common.ErrInvalidInput)
}

func TestCharterIDStableAcrossMutation(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	newRate := common.MustNewRate(1, 2)
	mutated, err := c.Mutate(
		common.Signer(test.CharterAuthority),
		charter.Update{PaymentContributionRate: &newRate},
	)
	require.NoError(t, err)
	assert.Equal(t, c.ID(), mutated.ID())
	assert.Equal(
		t,
		charter.IDFor(test.CharterAuthority, test.TreasuryPaymentDeposit, test.TreasuryVoteDeposit),
		c.ID(),
	)
	assert.True(t, strings.HasPrefix(c.Bech32ID(), "charter1"))
	decoded, err := common.NewBlake2b256FromBech32(charter.IDPrefix, c.Bech32ID())
	require.NoError(t, err)
	assert.Equal(t, c.ID(), decoded)

	before, err := c.Hash()
	require.NoError(t, err)
	after, err := mutated.Hash()
	require.NoError(t, err)
	assert.NotEqual(t, before, after)
}

func TestCharterEqual(t *testing.T) {
	a := test.NewCharter("30", "0.006", "0.2")
	// Same values written with different decimals
	b := test.NewCharter("30.0", "0.0060", "0.20")
	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(test.NewCharter("30", "0.007", "0.2")))
	assert.False(t, a.Equal(nil))
}

func TestCharterCborRoundTrip(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	cborData, err := cbor.Encode(c)
	require.NoError(t, err)
	length, err := cbor.ListLength(cborData)
	require.NoError(t, err)
	assert.Equal(t, 7, length)

	var decoded charter.Charter
	_, err = cbor.Decode(cborData, &decoded)
	require.NoError(t, err)
	assert.True(t, c.Equal(&decoded))
	assert.Equal(t, cborData, decoded.Cbor())

	h1, err := c.Hash()
	require.NoError(t, err)
	h2, err := decoded.Hash()
	require.NoError(t, err)
	assert.Equal(t, h1, h2)
}

func TestCharterCborRejectsInvalidRates(t *testing.T) {
	type badCharter struct {
		cbor.StructAsArray
		Authority               common.Address
		TreasuryPaymentDeposit  common.Address
		TreasuryVoteDeposit     common.Address
		ExpansionRate           common.Rate
		PaymentContributionRate common.Rate
		VoteContributionRate    common.Rate
		MetadataURI             string
	}
	cborData, err := cbor.Encode(&badCharter{
		Authority:               test.CharterAuthority,
		TreasuryPaymentDeposit:  test.TreasuryPaymentDeposit,
		TreasuryVoteDeposit:     test.TreasuryVoteDeposit,
		ExpansionRate:           common.MustNewRate(30, 0),
		PaymentContributionRate: common.MustNewRate(15, 1),
		VoteContributionRate:    common.MustNewRate(2, 1),
	})
	require.NoError(t, err)
	var decoded charter.Charter
	_, err = cbor.Decode(cborData, &decoded)
	assert.ErrorIs(t, err, common.ErrInvalidRate)
}

func TestCharterJSON(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	jsonData, err := json.Marshal(c)
	require.NoError(t, err)
	var fields map[string]any
	require.NoError(t, json.Unmarshal(jsonData, &fields))
	assert.Equal(t, c.Bech32ID(), fields["id"])
	assert.Equal(t, "0.006", fields["paymentContributionRate"])
	assert.Equal(t, test.CharterAuthority.String(), fields["authority"])

	var decoded charter.Charter
	require.NoError(t, json.Unmarshal(jsonData, &decoded))
	assert.True(t, c.Equal(&decoded))

	bad := strings.Replace(string(jsonData), `"0.2"`, `"2"`, 1)
	err = json.Unmarshal([]byte(bad), &decoded)
	assert.ErrorIs(t, err, common.ErrInvalidRate)
}

func TestCharterToPlutusData(t *testing.T) {
	c := test.NewCharter("30", "0.006", "0.2")
	expected := data.NewConstr(
		0,
		data.NewByteString(test.CharterAuthority.Bytes()),
		data.NewByteString(test.TreasuryPaymentDeposit.Bytes()),
		data.NewByteString(test.TreasuryVoteDeposit.Bytes()),
		common.MustNewRate(30, 0).ToPlutusData(),
		common.MustNewRate(6, 3).ToPlutusData(),
		common.MustNewRate(2, 1).ToPlutusData(),
		data.NewByteString([]byte("https://strangemood.org")),
	)
	assert.Equal(t, expected, c.ToPlutusData())
}
