package chunker

import "strings"

// splitBlocks segments section body lines into distinct entries.
// A run of two or more blank lines signals a boundary between entries
// (jobs, projects). A body with no such boundary stays as one block.
func splitBlocks(lines []string) []string {
	var blocks []string
	var current []string
	blankRun := 0

	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			blankRun++
			if len(current) > 0 {
				current = append(current, line)
			}
			continue
		}

		if blankRun >= 2 && len(current) > 0 {
			blocks = append(blocks, strings.Join(current, "\n"))
			current = []string{line}
		} else {
			current = append(current, line)
		}
		blankRun = 0
	}

	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, "\n"))
	}

	return blocks
}
