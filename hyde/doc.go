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

// Package hyde expands a job description query into hypothetical resume
// fragments before retrieval (Hypothetical Document Embeddings).
//
// Searching with the raw job description embeds employer-voice text against a
// candidate-voice corpus. Generating ideal resume bullets for the role first,
// then searching with those, closes that register gap. Expansion degrades
// rather than fails: a malformed model response falls back to line splitting,
// and an unavailable model falls back to deterministic keyword-derived
// fragments, so retrieval always has something to search with.
package hyde
