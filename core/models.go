package core

import (
	"encoding/hex"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ChunkType classifies the resume section a chunk was cut from.
type ChunkType string

const (
	ChunkTypeSummary        ChunkType = "summary"
	ChunkTypeExperience     ChunkType = "experience"
	ChunkTypeProject        ChunkType = "project"
	ChunkTypeSkills         ChunkType = "skills"
	ChunkTypeEducation      ChunkType = "education"
	ChunkTypeCertifications ChunkType = "certifications"
	ChunkTypeAwards         ChunkType = "awards"
	// ChunkTypeUnknown marks text that precedes any recognized section header,
	// or a whole document in which no header was found.
	ChunkTypeUnknown ChunkType = "unknown"
)

// Fingerprint generates a deterministic hex identifier from text content using
// BLAKE2b hashing. Identical content always produces the same fingerprint,
// which keeps index upserts idempotent across re-ingestion.
func Fingerprint(text string) string {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}

// Chunk is a semantically bounded span of one source document.
type Chunk struct {
	ChunkID    string // unique within the source document
	SourceID   string // owning document
	Content    string // raw text of the span
	Type       ChunkType
	ChunkIndex int               // strictly increasing in order of appearance
	Metadata   map[string]string // date_range, title, keywords, ...
}

// ChunkID builds the canonical chunk identifier for a source and ordinal.
func ChunkID(sourceID string, index int) string {
	return fmt.Sprintf("%s_%d", sourceID, index)
}

// ExpansionStrategy selects the shape of generated hypothetical documents.
type ExpansionStrategy string

const (
	// StrategyBullets generates short past-tense achievement fragments.
	StrategyBullets ExpansionStrategy = "bullets"
	// StrategyExperiences generates whole work-experience records flattened to text.
	StrategyExperiences ExpansionStrategy = "experiences"
)

// HypotheticalDocument is a synthetic target-like text produced by query
// expansion. It lives only for the duration of one retrieval call.
type HypotheticalDocument struct {
	Text     string
	Strategy ExpansionStrategy
}

// RetrievalMethod names the search pass that surfaced a candidate.
// Values are "direct" or "hyde_i" where i is the hypothetical document index.
type RetrievalMethod string

// MethodDirect marks candidates surfaced by the raw query search.
const MethodDirect RetrievalMethod = "direct"

// MethodHyde builds the method tag for the i-th hypothetical document search.
func MethodHyde(i int) RetrievalMethod {
	return RetrievalMethod(fmt.Sprintf("hyde_%d", i))
}

// RetrievalCandidate is one merged similarity-search hit.
type RetrievalCandidate struct {
	ChunkID  string
	Content  string
	Metadata map[string]string
	// Score is the merged retrieval score in [0,1], boosts applied.
	Score float64
	// Method is the highest-scoring pass that surfaced this chunk.
	Method RetrievalMethod
	// Frequency counts the distinct search passes that surfaced this chunk.
	Frequency int
	// Direct records whether any contributing pass was the direct search.
	Direct bool
}

// RankedChunk extends a RetrievalCandidate with cross-encoder scoring.
type RankedChunk struct {
	RetrievalCandidate

	// RerankScore is the raw cross-encoder output, model-dependent range.
	RerankScore float64
	// NormalizedRetrievalScore is the min-max normalized retrieval score.
	NormalizedRetrievalScore float64
	// NormalizedRerankScore is the min-max normalized rerank score.
	NormalizedRerankScore float64
	// HybridScore is the weighted blend of the two normalized signals.
	HybridScore float64
}

// ItemStatus is the terminal state of one batch item.
type ItemStatus string

const (
	StatusPending ItemStatus = "pending"
	StatusSuccess ItemStatus = "success"
	StatusFailed  ItemStatus = "failed"
	StatusTimeout ItemStatus = "timeout"
)

// BatchStatus summarizes a whole batch run.
type BatchStatus string

const (
	// BatchSuccess means every item succeeded.
	BatchSuccess BatchStatus = "success"
	// BatchPartial means some items succeeded and some did not.
	BatchPartial BatchStatus = "partial"
	// BatchFailed means no item succeeded.
	BatchFailed BatchStatus = "failed"
)

// BatchItem is one independent unit of work submitted to the coordinator.
type BatchItem struct {
	// Ref identifies the item in results (a file path, a task name, ...).
	Ref string
	// Payload is the item-specific input consumed by the per-item function.
	Payload any
}

// BatchResult is the single terminal record produced for one BatchItem.
type BatchResult struct {
	Ref      string
	Status   ItemStatus
	Error    string // empty on success
	Output   any    // nil unless Status is StatusSuccess
	Duration time.Duration
}

// BatchSummary aggregates the results of one ProcessBatch call.
type BatchSummary struct {
	Status     BatchStatus
	Results    []BatchResult
	Total      int
	Successful int
	Failed     int
	TotalTime  time.Duration
	AvgPerItem time.Duration
}
