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

// Package cbor provides the CBOR encoding used for charters, listings and
// settlement records.
//
// It wraps github.com/fxamacker/cbor/v2 with a deterministic encoding mode so
// that the bytes hashed into a charter ID are reproducible across processes.
//
// # Key Types
//
//   - StructAsArray: embed to encode struct fields as a CBOR array
//   - DecodeStoreCbor: embed to preserve the original bytes for hashing
//   - RawMessage: deferred decoding
//
// Types that keep their original bytes follow this pattern:
//
//	func (l *Listing) UnmarshalCBOR(data []byte) error {
//	    if err := cbor.DecodeGeneric(data, l); err != nil {
//	        return err
//	    }
//	    l.SetCbor(data)
//	    return nil
//	}
package cbor
