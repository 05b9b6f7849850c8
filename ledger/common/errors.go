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
	"errors"
	"fmt"
)

// Error kinds surfaced by rate construction, charter mutation and settlement.
// Use errors.Is to test for a kind; the concrete errors carry the detail.
var (
	ErrInvalidRate        = errors.New("invalid rate")
	ErrArithmeticOverflow = errors.New("arithmetic overflow")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidInput       = errors.New("invalid input")
)

// InvalidRateError indicates a rate outside the domain of the field it was supplied for
type InvalidRateError struct {
	Field    string
	Amount   uint64
	Decimals uint8
	Reason   string
}

func (e InvalidRateError) Error() string {
	return fmt.Sprintf(
		"%s must be %s, got %s",
		e.Field,
		e.Reason,
		formatDecimal(e.Amount, e.Decimals),
	)
}

func (InvalidRateError) Is(target error) bool {
	return target == ErrInvalidRate
}

// RateParseError indicates a rate literal that is not an exact decimal
type RateParseError struct {
	Input  string
	Reason string
}

func (e RateParseError) Error() string {
	return fmt.Sprintf("cannot parse rate %q: %s", e.Input, e.Reason)
}

func (RateParseError) Is(target error) bool {
	return target == ErrInvalidRate
}

// OverflowError indicates that a widened intermediate could not be narrowed back to 64 bits
type OverflowError struct {
	Op string
}

func (e OverflowError) Error() string {
	return "arithmetic overflow in " + e.Op
}

func (OverflowError) Is(target error) bool {
	return target == ErrArithmeticOverflow
}

// UnauthorizedError indicates an operation attempted without the required authority
type UnauthorizedError struct {
	Required Address
	Got      Address
}

func (e UnauthorizedError) Error() string {
	return fmt.Sprintf(
		"authority %s does not match required authority %s",
		e.Got.String(),
		e.Required.String(),
	)
}

func (UnauthorizedError) Is(target error) bool {
	return target == ErrUnauthorized
}
