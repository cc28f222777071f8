package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/resumerank/core"
)

const sampleResume = `John Doe
john@example.com

SUMMARY
Senior backend engineer with a decade of distributed systems work.

EXPERIENCE
Senior Engineer at Acme Corp
Jan 2020 - Present
- Built backend microservices in Golang and Docker
- Led a team of 4 engineers


Backend Developer at Widgets Inc
2016 - 2019
- Developed Python microservices on AWS

SKILLS
Go, Python, Kafka, PostgreSQL, Docker, Kubernetes

EDUCATION
BSc Computer Science, State University, 2015`

func TestChunk(t *testing.T) {
	c := New()

	t.Run("splits sections and entries", func(t *testing.T) {
		text := "SUMMARY\nI am an engineer\n\nEXPERIENCE\nJob A\n- did X\n\n\nJob B\n- did Y"
		chunks := c.Chunk(text, "doc1")
		require.Len(t, chunks, 3)

		assert.Equal(t, core.ChunkTypeSummary, chunks[0].Type)
		assert.Equal(t, "SUMMARY\nI am an engineer", chunks[0].Content)

		assert.Equal(t, core.ChunkTypeExperience, chunks[1].Type)
		assert.Equal(t, "EXPERIENCE\nJob A\n- did X", chunks[1].Content)

		assert.Equal(t, core.ChunkTypeExperience, chunks[2].Type)
		assert.Equal(t, "Job B\n- did Y", chunks[2].Content)
	})

	t.Run("chunk IDs follow source and ordinal", func(t *testing.T) {
		chunks := c.Chunk("SUMMARY\nhello\n\nSKILLS\nGo", "resume-7")
		require.Len(t, chunks, 2)
		assert.Equal(t, "resume-7_0", chunks[0].ChunkID)
		assert.Equal(t, "resume-7_1", chunks[1].ChunkID)
		assert.Equal(t, 0, chunks[0].ChunkIndex)
		assert.Equal(t, 1, chunks[1].ChunkIndex)
		for _, ch := range chunks {
			assert.Equal(t, "resume-7", ch.SourceID)
		}
	})

	t.Run("empty source ID gets generated", func(t *testing.T) {
		chunks := c.Chunk("SUMMARY\nhello", "")
		require.Len(t, chunks, 1)
		assert.NotEmpty(t, chunks[0].SourceID)
		assert.Equal(t, chunks[0].SourceID+"_0", chunks[0].ChunkID)
	})

	t.Run("whitespace only text yields no chunks", func(t *testing.T) {
		assert.Empty(t, c.Chunk("", "doc1"))
		assert.Empty(t, c.Chunk("   \n\n\t  ", "doc1"))
	})

	t.Run("no header becomes one unknown chunk", func(t *testing.T) {
		chunks := c.Chunk("just some plain text\nwith no headers at all", "doc1")
		require.Len(t, chunks, 1)
		assert.Equal(t, core.ChunkTypeUnknown, chunks[0].Type)
		assert.Equal(t, "just some plain text\nwith no headers at all", chunks[0].Content)
	})

	t.Run("text before first header is an unknown chunk", func(t *testing.T) {
		chunks := c.Chunk("John Doe\njohn@example.com\n\nSUMMARY\nengineer", "doc1")
		require.Len(t, chunks, 2)
		assert.Equal(t, core.ChunkTypeUnknown, chunks[0].Type)
		assert.Equal(t, "John Doe\njohn@example.com", chunks[0].Content)
		assert.Equal(t, core.ChunkTypeSummary, chunks[1].Type)
	})

	t.Run("experience entries carry metadata", func(t *testing.T) {
		chunks := c.Chunk(sampleResume, "doc1")

		var experiences []core.Chunk
		for _, ch := range chunks {
			if ch.Type == core.ChunkTypeExperience {
				experiences = append(experiences, ch)
			}
		}
		require.Len(t, experiences, 2)

		assert.Equal(t, "Senior Engineer at Acme Corp", experiences[0].Metadata["title"])
		assert.Equal(t, "Jan 2020 - Present", experiences[0].Metadata["date_range"])
		assert.Contains(t, experiences[0].Metadata["keywords"], "golang")
		assert.Contains(t, experiences[0].Metadata["keywords"], "docker")

		assert.Equal(t, "Backend Developer at Widgets Inc", experiences[1].Metadata["title"])
		assert.Equal(t, "2016 - 2019", experiences[1].Metadata["date_range"])
		assert.Contains(t, experiences[1].Metadata["keywords"], "python")
		assert.Contains(t, experiences[1].Metadata["keywords"], "aws")
	})

	t.Run("header line stays in the first entry chunk", func(t *testing.T) {
		chunks := c.Chunk(sampleResume, "doc1")
		var first core.Chunk
		for _, ch := range chunks {
			if ch.Type == core.ChunkTypeExperience {
				first = ch
				break
			}
		}
		assert.True(t, strings.HasPrefix(first.Content, "EXPERIENCE\n"))
		// The header must not bleed into entry metadata.
		assert.Equal(t, "Senior Engineer at Acme Corp", first.Metadata["title"])
	})

	t.Run("indices strictly increase in document order", func(t *testing.T) {
		chunks := c.Chunk(sampleResume, "doc1")
		require.NotEmpty(t, chunks)
		for i, ch := range chunks {
			assert.Equal(t, i, ch.ChunkIndex)
		}
	})

	t.Run("content reconstructs the meaningful source text", func(t *testing.T) {
		chunks := c.Chunk(sampleResume, "doc1")

		var joined strings.Builder
		for _, ch := range chunks {
			joined.WriteString(ch.Content)
			joined.WriteString("\n")
		}

		for _, line := range strings.Split(sampleResume, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			assert.Contains(t, joined.String(), line)
		}
	})

	t.Run("deterministic across calls", func(t *testing.T) {
		a := c.Chunk(sampleResume, "doc1")
		b := c.Chunk(sampleResume, "doc1")
		require.Equal(t, len(a), len(b))
		for i := range a {
			assert.Equal(t, a[i], b[i])
		}
	})
}

func TestChunkSectionTypes(t *testing.T) {
	c := New()

	tests := []struct {
		name   string
		header string
		want   core.ChunkType
	}{
		{"summary", "Professional Summary", core.ChunkTypeSummary},
		{"objective", "OBJECTIVE", core.ChunkTypeSummary},
		{"experience", "Work Experience", core.ChunkTypeExperience},
		{"employment", "Employment History", core.ChunkTypeExperience},
		{"education", "EDUCATION", core.ChunkTypeEducation},
		{"skills", "Technical Skills", core.ChunkTypeSkills},
		{"projects", "Notable Projects", core.ChunkTypeProject},
		{"certifications", "Certifications", core.ChunkTypeCertifications},
		{"awards", "Awards", core.ChunkTypeAwards},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chunks := c.Chunk(tt.header+"\nsome body text", "doc1")
			require.Len(t, chunks, 1)
			assert.Equal(t, tt.want, chunks[0].Type)
		})
	}
}
