package common

import "strings"

// WrapString breaks s into lines of at most width characters, splitting
// at the last space before the limit when one exists. Existing newlines
// are kept, so multi-line text keeps its paragraph structure.
func WrapString(s string, width int) string {
	if width <= 0 {
		return s
	}

	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if len(line) <= width {
			lines = append(lines, line)
			continue
		}

		for len(line) > width {
			splitAt := width
			// Try to split at the last space before the specified width
			for i := width; i > 0; i-- {
				if line[i] == ' ' {
					splitAt = i
					break
				}
			}
			lines = append(lines, line[:splitAt])
			line = strings.TrimLeft(line[splitAt:], " ")
		}
		if len(line) > 0 {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
