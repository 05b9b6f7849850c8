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

package common_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/strangemood/strangemood/cbor"
	"github.com/strangemood/strangemood/ledger/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressZeroValue(t *testing.T) {
	addr, err := common.NewAddressFromString("11111111111111111111111111111111")
	require.NoError(t, err)
	assert.True(t, addr.IsZero())
	assert.Equal(t, "11111111111111111111111111111111", addr.String())
}

func TestAddressStringRoundTrip(t *testing.T) {
	var raw [common.AddressSize]byte
	for i := range raw {
		raw[i] = byte(i + 1)
	}
	addr, err := common.NewAddress(raw[:])
	require.NoError(t, err)
	assert.False(t, addr.IsZero())
	parsed, err := common.NewAddressFromString(addr.String())
	require.NoError(t, err)
	assert.Equal(t, addr, parsed)
	assert.Equal(t, raw[:], parsed.Bytes())
}

func TestAddressInvalid(t *testing.T) {
	_, err := common.NewAddress([]byte{1, 2, 3})
	assert.ErrorContains(t, err, "expected 32 bytes, got 3")
	// '0' is not in the base58 alphabet
	_, err = common.NewAddressFromString("0OIl")
	assert.Error(t, err)
	// valid base58 but too short
	_, err = common.NewAddressFromString("2g")
	assert.Error(t, err)
}

func TestAddressEncoding(t *testing.T) {
	addr := common.Address{0xab}
	cborData, err := cbor.Encode(addr)
	require.NoError(t, err)
	assert.Equal(t, "5820ab"+hex.EncodeToString(make([]byte, 31)), hex.EncodeToString(cborData))
	var decoded common.Address
	_, err = cbor.Decode(cborData, &decoded)
	require.NoError(t, err)
	assert.Equal(t, addr, decoded)

	jsonData, err := json.Marshal(addr)
	require.NoError(t, err)
	var fromJSON common.Address
	require.NoError(t, json.Unmarshal(jsonData, &fromJSON))
	assert.Equal(t, addr, fromJSON)

	assert.Equal(t, data.NewByteString(addr.Bytes()), addr.ToPlutusData())
}
