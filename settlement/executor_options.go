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

package settlement

import (
	"log/slog"
)

// ExecutorOptionFunc is a type that represents functions that modify the Executor config
type ExecutorOptionFunc func(*Executor)

// WithLogger specifies the logger to use. If none is provided, slog.Default() is used
func WithLogger(logger *slog.Logger) ExecutorOptionFunc {
	return func(e *Executor) {
		e.logger = logger
	}
}

// WithPolicy specifies the settlement policy. The default accepts zero prices
func WithPolicy(policy Policy) ExecutorOptionFunc {
	return func(e *Executor) {
		e.policy = policy
	}
}

// WithMaxAttempts specifies how many times a conflicting purchase is settled
// and submitted. Values below 1 are treated as 1
func WithMaxAttempts(maxAttempts int) ExecutorOptionFunc {
	return func(e *Executor) {
		e.maxAttempts = maxAttempts
	}
}
