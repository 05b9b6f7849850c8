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
	"fmt"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/blinklabs-io/plutigo/data"
	"github.com/gaze-network/uint128"
	"github.com/shopspring/decimal"

	"github.com/strangemood/strangemood/cbor"
)

// MaxRateDecimals is the largest exponent for which 10^decimals fits in a uint64
const MaxRateDecimals = 19

var pow10 = func() [MaxRateDecimals + 1]uint64 {
	var ret [MaxRateDecimals + 1]uint64
	ret[0] = 1
	for i := 1; i <= MaxRateDecimals; i++ {
		ret[i] = ret[i-1] * 10
	}
	return ret
}()

var rateLiteralRegexp = regexp.MustCompile(`^(\d+)(?:\.(\d+))?$`)

// Rate is the fixed-point value amount / 10^decimals.
//
// Rates are immutable. Two rates are equal when their values are equal, so
// (5, 1) and (50, 2) compare as the same rate.
type Rate struct {
	amount   uint64
	decimals uint8
}

// NewRate returns the rate amount / 10^decimals
func NewRate(amount uint64, decimals uint8) (Rate, error) {
	if decimals > MaxRateDecimals {
		return Rate{}, InvalidRateError{
			Field:    "rate",
			Amount:   amount,
			Decimals: decimals,
			Reason:   fmt.Sprintf("expressed with at most %d decimals", MaxRateDecimals),
		}
	}
	return Rate{amount: amount, decimals: decimals}, nil
}

// MustNewRate is like NewRate but panics on an invalid rate. It is intended for
// constants and tests.
func MustNewRate(amount uint64, decimals uint8) Rate {
	r, err := NewRate(amount, decimals)
	if err != nil {
		panic(err)
	}
	return r
}

// ParseRate parses an exact decimal literal such as "0.006" or "30".
//
// Only literals matching ^\d+(\.\d+)?$ are accepted. The result is the
// minimal (amount, decimals) pair: trailing fractional zeros are dropped.
func ParseRate(s string) (Rate, error) {
	matches := rateLiteralRegexp.FindStringSubmatch(s)
	if matches == nil {
		return Rate{}, RateParseError{Input: s, Reason: "not a decimal literal"}
	}
	frac := strings.TrimRight(matches[2], "0")
	if len(frac) > MaxRateDecimals {
		return Rate{}, RateParseError{
			Input:  s,
			Reason: fmt.Sprintf("more than %d decimal places", MaxRateDecimals),
		}
	}
	digits := strings.TrimLeft(matches[1]+frac, "0")
	if digits == "" {
		return Rate{}, nil
	}
	amount, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return Rate{}, RateParseError{Input: s, Reason: "amount does not fit in 64 bits"}
	}
	// #nosec G115
	return Rate{amount: amount, decimals: uint8(len(frac))}, nil
}

func (r Rate) Amount() uint64 {
	return r.amount
}

func (r Rate) Decimals() uint8 {
	return r.decimals
}

func (r Rate) IsZero() bool {
	return r.amount == 0
}

// LessThanOne reports whether the value of the rate is below 1
func (r Rate) LessThanOne() bool {
	return r.amount < pow10[r.decimals]
}

// Apply returns floor(quantity * r). The product is formed in 128 bits, so the
// only failure is a quotient that does not fit in 64 bits.
func (r Rate) Apply(quantity uint64) (uint64, error) {
	product := uint128.From64(quantity).Mul64(r.amount)
	quotient := product.Div64(pow10[r.decimals])
	if quotient.Hi != 0 {
		return 0, OverflowError{
			Op: fmt.Sprintf("%d x %s", quantity, r.String()),
		}
	}
	return quotient.Lo, nil
}

// Cmp compares the values of r and o and returns -1, 0 or +1
func (r Rate) Cmp(o Rate) int {
	left := uint128.From64(r.amount).Mul64(pow10[o.decimals])
	right := uint128.From64(o.amount).Mul64(pow10[r.decimals])
	return left.Cmp(right)
}

func (r Rate) Equal(o Rate) bool {
	return r.Cmp(o) == 0
}

// String returns the exact decimal literal for the rate, with as many
// fractional digits as the rate has decimals
func (r Rate) String() string {
	return formatDecimal(r.amount, r.decimals)
}

// Rat returns the exact value of the rate
func (r Rate) Rat() *big.Rat {
	return new(big.Rat).SetFrac(
		new(big.Int).SetUint64(r.amount),
		new(big.Int).SetUint64(pow10[r.decimals]),
	)
}

// Decimal returns the rate as an arbitrary-precision decimal for display
func (r Rate) Decimal() decimal.Decimal {
	return decimal.NewFromBigInt(
		new(big.Int).SetUint64(r.amount),
		-int32(r.decimals),
	)
}

// Percent returns the rate formatted as a percentage, e.g. "0.6%" for 0.006
func (r Rate) Percent() string {
	return r.Decimal().Shift(2).String() + "%"
}

// ToPlutusData returns the rate as Constr 0 [amount, decimals]
func (r Rate) ToPlutusData() data.PlutusData {
	return data.NewConstr(
		0,
		data.NewInteger(new(big.Int).SetUint64(r.amount)),
		data.NewInteger(big.NewInt(int64(r.decimals))),
	)
}

type rateWire struct {
	cbor.StructAsArray
	Amount   uint64
	Decimals uint8
}

func (r Rate) MarshalCBOR() ([]byte, error) {
	return cbor.Encode(&rateWire{Amount: r.amount, Decimals: r.decimals})
}

func (r *Rate) UnmarshalCBOR(data []byte) error {
	var tmp rateWire
	if _, err := cbor.Decode(data, &tmp); err != nil {
		return err
	}
	tmpRate, err := NewRate(tmp.Amount, tmp.Decimals)
	if err != nil {
		return err
	}
	*r = tmpRate
	return nil
}

func (r Rate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(r.String())), nil
}

// UnmarshalJSON accepts either a string or a bare JSON number. The number is
// parsed from its literal text, never through a float.
func (r *Rate) UnmarshalJSON(data []byte) error {
	literal := string(data)
	if strings.HasPrefix(literal, `"`) {
		unquoted, err := strconv.Unquote(literal)
		if err != nil {
			return RateParseError{Input: literal, Reason: "malformed string"}
		}
		literal = unquoted
	}
	tmpRate, err := ParseRate(literal)
	if err != nil {
		return err
	}
	*r = tmpRate
	return nil
}

func formatDecimal(amount uint64, decimals uint8) string {
	digits := strconv.FormatUint(amount, 10)
	if decimals == 0 {
		return digits
	}
	if pad := int(decimals) + 1 - len(digits); pad > 0 {
		digits = strings.Repeat("0", pad) + digits
	}
	point := len(digits) - int(decimals)
	return digits[:point] + "." + digits[point:]
}
