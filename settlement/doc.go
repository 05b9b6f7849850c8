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

// Package settlement computes how a purchase is divided between a seller and
// a treasury, and hands the result to the host ledger for execution.
//
// # Key Files by Purpose
//
//   - settle.go: Settle and Policy, the pure settlement algorithm
//   - distribution.go: Distribution, the per-purchase result
//   - ledger.go: Ledger, the host-ledger capability purchases are executed against
//   - executor.go: Executor, which settles against fresh state and retries on conflict
//   - memory.go: MemoryLedger, an in-process Ledger with atomic purchases
//
// # Settlement Order
//
// Each step floors, and the party computed second receives the remainder:
//
//	paymentToTreasury     = paymentContributionRate x price
//	paymentToSeller       = price - paymentToTreasury
//	expandedVotes         = expansionRate x paymentToTreasury
//	votesMintedToTreasury = voteContributionRate x expandedVotes
//	votesMintedToSeller   = expandedVotes - votesMintedToTreasury
//
// Settle never reads mutable state, so it is safe to call concurrently and to
// call again after a failed execution. A Distribution must never be reused
// across attempts: the charter may have changed in between.
package settlement
