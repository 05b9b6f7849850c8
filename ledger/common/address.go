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

package common

import (
	"encoding/json"
	"fmt"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/mr-tron/base58"

	"github.com/strangemood/strangemood/cbor"
)

const AddressSize = 32

// Address references an account on the host ledger: an authority, a deposit
// account or a token mint. The zero value means "unset".
type Address [AddressSize]byte

// NewAddress returns an Address from exactly AddressSize bytes
func NewAddress(addrBytes []byte) (Address, error) {
	var a Address
	if len(addrBytes) != AddressSize {
		return a, fmt.Errorf(
			"invalid address length: expected %d bytes, got %d",
			AddressSize,
			len(addrBytes),
		)
	}
	copy(a[:], addrBytes)
	return a, nil
}

// NewAddressFromString decodes a base58 address
func NewAddressFromString(addr string) (Address, error) {
	addrBytes, err := base58.Decode(addr)
	if err != nil {
		return Address{}, fmt.Errorf("decode address %q: %w", addr, err)
	}
	return NewAddress(addrBytes)
}

// MustAddress is like NewAddressFromString but panics on error
func MustAddress(addr string) Address {
	a, err := NewAddressFromString(addr)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) String() string {
	return base58.Encode(a[:])
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Address{}
}

func (a Address) ToPlutusData() data.PlutusData {
	return data.NewByteString(a[:])
}

func (a Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(a.String())
}

func (a *Address) UnmarshalJSON(jsonData []byte) error {
	var tmp string
	if err := json.Unmarshal(jsonData, &tmp); err != nil {
		return err
	}
	tmpAddr, err := NewAddressFromString(tmp)
	if err != nil {
		return err
	}
	*a = tmpAddr
	return nil
}

func (a Address) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(a[:])
}

func (a *Address) UnmarshalCBOR(cborData []byte) error {
	var tmp []byte
	if _, err := cbor.Decode(cborData, &tmp); err != nil {
		return err
	}
	tmpAddr, err := NewAddress(tmp)
	if err != nil {
		return err
	}
	*a = tmpAddr
	return nil
}
