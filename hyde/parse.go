package hyde

import (
	"encoding/json"
	"regexp"
	"strings"
)

// experience is the shape the experiences prompt asks the model for.
type experience struct {
	Title   string   `json:"title"`
	Company string   `json:"company"`
	Bullets []string `json:"bullets"`
}

// bulletMarker strips leading list decoration from a response line.
var bulletMarker = regexp.MustCompile(`^[\d.\-*•]+\s*`)

// minBulletLength filters out headings and chatter in the line-split fallback.
const minBulletLength = 20

// parseBullets extracts resume bullets from a model response. It tries a
// strict JSON array first and falls back to splitting lines, stripping bullet
// markers and discarding short fragments. An empty result means neither
// interpretation found usable text.
func parseBullets(response string) []string {
	if region, ok := extractJSONArray(response); ok {
		var bullets []string
		if err := json.Unmarshal([]byte(region), &bullets); err == nil {
			var out []string
			for _, b := range bullets {
				if strings.TrimSpace(b) != "" {
					out = append(out, b)
				}
			}
			if len(out) > 0 {
				return out
			}
		}
	}

	var bullets []string
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		line = bulletMarker.ReplaceAllString(line, "")
		if len(line) >= minBulletLength {
			bullets = append(bullets, line)
		}
	}
	return bullets
}

// parseExperiences extracts structured experiences from a model response.
// There is no line-split fallback here; structured output either parses or
// the caller falls back wholesale.
func parseExperiences(response string) []experience {
	region, ok := extractJSONArray(response)
	if !ok {
		return nil
	}

	var experiences []experience
	if err := json.Unmarshal([]byte(region), &experiences); err != nil {
		return nil
	}

	var out []experience
	for _, exp := range experiences {
		if exp.Title != "" || exp.Company != "" || len(exp.Bullets) > 0 {
			out = append(out, exp)
		}
	}
	return out
}

// extractJSONArray returns the outermost bracketed region of the text, which
// tolerates prose or code fences around the array.
func extractJSONArray(text string) (string, bool) {
	start := strings.Index(text, "[")
	end := strings.LastIndex(text, "]")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// flattenExperience renders one structured experience as a resume-like text
// block suitable for embedding.
func flattenExperience(exp experience) string {
	var b strings.Builder
	b.WriteString(exp.Title)
	b.WriteString(" at ")
	b.WriteString(exp.Company)
	for _, bullet := range exp.Bullets {
		b.WriteString("\n• ")
		b.WriteString(bullet)
	}
	return b.String()
}
