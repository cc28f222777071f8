package chunker

import (
	"regexp"
	"strings"
)

// datePattern matches month/year tokens, bare years, and open-ended markers.
var datePattern = regexp.MustCompile(`(?i)(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+\d{4}|\d{4}|present|current`)

// techKeywords is the fixed recognition vocabulary for entry metadata.
// Matching is by substring on the lowercased entry text.
var techKeywords = []string{
	"python", "java", "javascript", "react", "node.js", "sql", "aws",
	"docker", "kubernetes", "git", "machine learning", "data analysis",
	"fastapi", "django", "flask", "mongodb", "postgresql", "redis",
	"typescript", "vue.js", "angular", "ci/cd", "jenkins", "terraform",
	"agile", "scrum", "rest api", "microservices", "cloud", "azure",
	"gcp", "testing", "pytorch", "tensorflow", "api", "backend",
	"frontend", "full stack", "devops", "linux", "bash", "golang",
}

// maxKeywords caps how many recognized keywords an entry records.
const maxKeywords = 10

// extractEntryMetadata pulls lightweight metadata from one entry block:
// a date range (first two date-like tokens), a title/company guess (first
// non-blank line), and up to maxKeywords recognized keywords.
func extractEntryMetadata(block string) map[string]string {
	metadata := make(map[string]string)

	if dateRange := extractDateRange(block); dateRange != "" {
		metadata["date_range"] = dateRange
	}

	if title := firstNonBlankLine(block); title != "" {
		metadata["title"] = title
	}

	if keywords := extractKeywords(block); len(keywords) > 0 {
		metadata["keywords"] = strings.Join(keywords, ", ")
	}

	return metadata
}

// extractDateRange joins the first two date-like tokens found in the text.
// A single token stands alone; no token yields the empty string.
func extractDateRange(text string) string {
	dates := datePattern.FindAllString(text, 2)
	switch len(dates) {
	case 0:
		return ""
	case 1:
		return dates[0]
	default:
		return dates[0] + " - " + dates[1]
	}
}

// firstNonBlankLine returns the trimmed first non-blank line of the text.
func firstNonBlankLine(text string) string {
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			return trimmed
		}
	}
	return ""
}

// extractKeywords scans the vocabulary against the lowercased text.
func extractKeywords(text string) []string {
	lower := strings.ToLower(text)

	var found []string
	for _, keyword := range techKeywords {
		if strings.Contains(lower, keyword) {
			found = append(found, keyword)
			if len(found) == maxKeywords {
				break
			}
		}
	}
	return found
}
