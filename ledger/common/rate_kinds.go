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

// SplitRate is a rate in [0, 1) used to divide an amount between two parties.
// The zero value is the valid rate 0.
type SplitRate struct {
	Rate
}

// ExpansionRate is a strictly positive multiplier with no upper bound
type ExpansionRate struct {
	Rate
}

// NewSplitRate returns amount / 10^decimals as a split rate
func NewSplitRate(amount uint64, decimals uint8) (SplitRate, error) {
	r, err := NewRate(amount, decimals)
	if err != nil {
		return SplitRate{}, err
	}
	return r.Split("split rate")
}

// NewExpansionRate returns amount / 10^decimals as an expansion rate
func NewExpansionRate(amount uint64, decimals uint8) (ExpansionRate, error) {
	r, err := NewRate(amount, decimals)
	if err != nil {
		return ExpansionRate{}, err
	}
	return r.Expansion("expansion rate")
}

// ParseSplitRate parses a decimal literal and checks it is a valid split rate
func ParseSplitRate(s string) (SplitRate, error) {
	r, err := ParseRate(s)
	if err != nil {
		return SplitRate{}, err
	}
	return r.Split("split rate")
}

// ParseExpansionRate parses a decimal literal and checks it is a valid expansion rate
func ParseExpansionRate(s string) (ExpansionRate, error) {
	r, err := ParseRate(s)
	if err != nil {
		return ExpansionRate{}, err
	}
	return r.Expansion("expansion rate")
}

// Split checks that r is in [0, 1). The field name is used in the error.
func (r Rate) Split(field string) (SplitRate, error) {
	if !r.LessThanOne() {
		return SplitRate{}, InvalidRateError{
			Field:    field,
			Amount:   r.amount,
			Decimals: r.decimals,
			Reason:   "in [0,1)",
		}
	}
	return SplitRate{Rate: r}, nil
}

// Expansion checks that r is greater than 0. The field name is used in the error.
func (r Rate) Expansion(field string) (ExpansionRate, error) {
	if r.IsZero() {
		return ExpansionRate{}, InvalidRateError{
			Field:    field,
			Amount:   r.amount,
			Decimals: r.decimals,
			Reason:   "greater than 0",
		}
	}
	return ExpansionRate{Rate: r}, nil
}

// Complement returns 1 - r with the same number of decimals. Applying a rate
// and its complement to the same quantity may lose one unit to flooring.
func (r SplitRate) Complement() Rate {
	return Rate{
		amount:   pow10[r.decimals] - r.amount,
		decimals: r.decimals,
	}
}

func (r *SplitRate) UnmarshalCBOR(data []byte) error {
	var tmp Rate
	if err := tmp.UnmarshalCBOR(data); err != nil {
		return err
	}
	tmpSplit, err := tmp.Split("split rate")
	if err != nil {
		return err
	}
	*r = tmpSplit
	return nil
}

func (r *SplitRate) UnmarshalJSON(data []byte) error {
	var tmp Rate
	if err := tmp.UnmarshalJSON(data); err != nil {
		return err
	}
	tmpSplit, err := tmp.Split("split rate")
	if err != nil {
		return err
	}
	*r = tmpSplit
	return nil
}

func (r *ExpansionRate) UnmarshalCBOR(data []byte) error {
	var tmp Rate
	if err := tmp.UnmarshalCBOR(data); err != nil {
		return err
	}
	tmpExpansion, err := tmp.Expansion("expansion rate")
	if err != nil {
		return err
	}
	*r = tmpExpansion
	return nil
}

func (r *ExpansionRate) UnmarshalJSON(data []byte) error {
	var tmp Rate
	if err := tmp.UnmarshalJSON(data); err != nil {
		return err
	}
	tmpExpansion, err := tmp.Expansion("expansion rate")
	if err != nil {
		return err
	}
	*r = tmpExpansion
	return nil
}
