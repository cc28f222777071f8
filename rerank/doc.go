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

// Package rerank reorders retrieval candidates with a cross-encoder.
//
// The retriever's bi-encoder similarity is fast but coarse; a cross-encoder
// that reads the query and chunk together is slower and sharper. Hybrid
// scoring blends both signals after min-max normalizing each, so neither
// model's raw scale dominates. Reranking is a refinement, never a gate: if
// the scorer is unavailable the candidates pass through in retrieval order.
package rerank
