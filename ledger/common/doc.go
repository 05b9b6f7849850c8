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

// Package common provides the value types shared by charters, listings and
// settlement.
//
// # Key Files by Purpose
//
//   - rate.go: Rate, the fixed-point amount / 10^decimals value, with exact
//     parsing, comparison and the 128-bit Apply used by settlement
//   - rate_kinds.go: SplitRate ([0, 1)) and ExpansionRate (> 0)
//   - address.go: Address, a 32-byte account reference with base58 text form
//   - hash.go: Blake2b256 hashes and their bech32 form
//   - errors.go: error kinds (ErrInvalidRate, ErrArithmeticOverflow,
//     ErrUnauthorized, ErrInvalidInput) and the typed errors that carry detail
//
// # Common Patterns
//
// Rates are validated at construction, so a SplitRate or ExpansionRate value
// obtained from this package is always in range:
//
//	payment, err := common.ParseSplitRate("0.006")
//	if err != nil {
//	    // errors.Is(err, common.ErrInvalidRate)
//	}
//	toTreasury, err := payment.Apply(price)
//
// Floating point never appears in rate arithmetic. Rate.Decimal and
// Rate.Percent exist for display only.
package common
