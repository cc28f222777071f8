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

// Package batch runs independent per-item pipelines under a bounded,
// resource-adaptive worker pool.
//
// Items are isolated: a panic, error, or timeout in one item is recorded in
// its BatchResult and never disturbs sibling tasks. Worker count adapts to
// live system load before each batch; under memory or CPU pressure the pool
// shrinks to a single worker. The per-item timeout discards a slow task's
// result but does not interrupt the task, which is acceptable because item
// work is idempotent.
package batch
