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

// Authorizer is the capability presented when changing a record that is owned
// by an authority. How the capability was obtained (a signature checked by the
// host ledger, an executed governance proposal) is opaque here; only the
// authority it acts as is compared.
type Authorizer interface {
	EffectiveAuthority() Address
}

// Signer is an authority acting directly
type Signer Address

func (s Signer) EffectiveAuthority() Address {
	return Address(s)
}

// GovernanceDecision is an executed governance proposal acting with the
// authority of the governance account that owns the record
type GovernanceDecision struct {
	Governance Address
	Proposal   Blake2b256
}

func (g GovernanceDecision) EffectiveAuthority() Address {
	return g.Governance
}

// Authorize returns an UnauthorizedError unless auth acts as required
func Authorize(auth Authorizer, required Address) error {
	if auth == nil {
		return UnauthorizedError{Required: required}
	}
	got := auth.EffectiveAuthority()
	if got.IsZero() || got != required {
		return UnauthorizedError{Required: required, Got: got}
	}
	return nil
}
