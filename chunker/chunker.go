package chunker

import (
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/poiesic/resumerank/core"
)

// Chunker splits raw resume text into ordered, typed, metadata-bearing
// semantic chunks. A Chunker is immutable after construction and safe for
// concurrent use.
type Chunker struct {
	patterns []sectionPattern
	logger   *slog.Logger
}

// Option configures a Chunker.
type Option func(*Chunker)

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Chunker) {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
	}
}

// New creates a new chunker with the fixed section pattern set.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		patterns: sectionPatterns(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chunk splits text into semantic chunks for the given source document.
// When sourceID is empty a random identifier is generated. Whitespace-only
// text yields no chunks; text with no recognized header becomes a single
// unknown chunk. Chunk IDs are "{source_id}_{index}" in emission order.
func (c *Chunker) Chunk(text, sourceID string) []core.Chunk {
	if sourceID == "" {
		sourceID = uuid.NewString()
	}
	if strings.TrimSpace(text) == "" {
		return nil
	}

	sections := splitSections(c.patterns, strings.Split(text, "\n"))

	var chunks []core.Chunk
	emit := func(content string, chunkType core.ChunkType, metadata map[string]string) {
		content = strings.TrimSpace(content)
		if content == "" {
			return
		}
		index := len(chunks)
		chunks = append(chunks, core.Chunk{
			ChunkID:    core.ChunkID(sourceID, index),
			SourceID:   sourceID,
			Content:    content,
			Type:       chunkType,
			ChunkIndex: index,
			Metadata:   metadata,
		})
	}

	for _, sec := range sections {
		switch sec.chunkType {
		case core.ChunkTypeExperience, core.ChunkTypeProject:
			blocks := splitBlocks(sec.body)
			if len(blocks) == 0 {
				// Header with an empty body still carries its line of text.
				emit(sec.header, sec.chunkType, nil)
				continue
			}
			for i, block := range blocks {
				content := block
				if i == 0 && sec.header != "" {
					content = sec.header + "\n" + block
				}
				emit(content, sec.chunkType, extractEntryMetadata(block))
			}
		default:
			content := strings.Join(sec.body, "\n")
			if sec.header != "" {
				content = sec.header + "\n" + content
			}
			emit(content, sec.chunkType, nil)
		}
	}

	c.logger.Debug("created semantic chunks", "sourceID", sourceID, "chunks", len(chunks))
	return chunks
}
