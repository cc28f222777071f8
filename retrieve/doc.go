// Package retrieve runs multi-pass similarity search over a chunk index and
// merges the passes into one deduplicated candidate list.
//
// A retrieval executes one direct pass with the raw query embedding plus, when
// expansion is enabled, one pass per hypothetical document. Chunks surfaced by
// several passes are corroborated: they keep their best score and earn a small
// frequency boost, and chunks found by the direct pass earn a direct boost.
// Scores stay within [0,1] and ordering is deterministic for identical inputs.
package retrieve
