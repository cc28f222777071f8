// Copyright 2025 Poiesic Systems
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


// Package index defines the vector index collaborator contract.
//
// The ranking core treats the index as a black-box similarity-search service:
// it upserts embedded chunks and queries by embedding, and delegates storage
// format, indexing strategy, and durability entirely to the implementation.
//
// The index/chromem sub-package provides an embedded implementation backed by
// chromem-go, suitable both for production single-node use (persistent mode)
// and for tests (in-memory mode).
package index
