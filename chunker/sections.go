package chunker

import (
	"regexp"
	"strings"

	"github.com/poiesic/resumerank/core"
)

// sectionPattern binds a chunk type to the header pattern that opens it.
// Patterns are prefix-anchored; a header line may carry trailing decoration.
type sectionPattern struct {
	chunkType core.ChunkType
	pattern   *regexp.Regexp
}

// sectionPatterns is the fixed, ordered header pattern set.
// Order matters: the first matching pattern wins.
func sectionPatterns() []sectionPattern {
	return []sectionPattern{
		{core.ChunkTypeSummary, regexp.MustCompile(`(?i)^(professional\s+summary|summary|profile|objective|about\s+me)`)},
		{core.ChunkTypeExperience, regexp.MustCompile(`(?i)^(work\s+experience|professional\s+experience|experience|employment\s+history)`)},
		{core.ChunkTypeEducation, regexp.MustCompile(`(?i)^(education|academic\s+background|qualifications)`)},
		{core.ChunkTypeSkills, regexp.MustCompile(`(?i)^(skills|technical\s+skills|core\s+competencies|expertise)`)},
		{core.ChunkTypeProject, regexp.MustCompile(`(?i)^(projects|portfolio|notable\s+projects)`)},
		{core.ChunkTypeCertifications, regexp.MustCompile(`(?i)^(certifications|certificates|licenses)`)},
		{core.ChunkTypeAwards, regexp.MustCompile(`(?i)^(awards|honors|achievements)`)},
	}
}

// classifyLine reports the section a header line opens, or ChunkTypeUnknown
// if the line is not a header.
func classifyLine(patterns []sectionPattern, line string) (core.ChunkType, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return core.ChunkTypeUnknown, false
	}
	for _, sp := range patterns {
		if sp.pattern.MatchString(trimmed) {
			return sp.chunkType, true
		}
	}
	return core.ChunkTypeUnknown, false
}

// section is one header-delimited span of the document.
// The header line (when present) is kept so chunk contents reconstruct the
// source text.
type section struct {
	chunkType core.ChunkType
	header    string   // the matched header line, empty for a leading span
	body      []string // lines between this header and the next
}

// splitSections scans the document line by line into header-delimited spans.
// Text before the first header becomes an unknown section; a document with no
// headers at all is one unknown section.
func splitSections(patterns []sectionPattern, lines []string) []section {
	var sections []section
	current := section{chunkType: core.ChunkTypeUnknown}

	flush := func() {
		if current.header != "" || !blankLines(current.body) {
			sections = append(sections, current)
		}
	}

	for _, line := range lines {
		if chunkType, ok := classifyLine(patterns, line); ok {
			flush()
			current = section{chunkType: chunkType, header: line}
			continue
		}
		current.body = append(current.body, line)
	}
	flush()

	return sections
}

// blankLines reports whether every line is whitespace.
func blankLines(lines []string) bool {
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			return false
		}
	}
	return true
}
