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


// Package chunker splits raw resume text into ordered, typed semantic chunks.
//
// Chunking runs as a pure-function pipeline:
//
//   - line classifier: matches section headers against a fixed, ordered set
//     of case-insensitive patterns (first match wins)
//   - block segmenter: splits experience and project sections into distinct
//     entries at runs of two or more blank lines
//   - metadata extractor: pulls a date range, a title guess, and recognized
//     keywords from each entry
//
// Section header lines stay in chunk content, so concatenating a document's
// chunks in index order reproduces the document modulo whitespace.
package chunker
