package htmlmd

import (
	"regexp"
	"strings"
)

var (
	spaceRunRe   = regexp.MustCompile(` {2,}`)
	newlineRunRe = regexp.MustCompile(`\n{3,}`)
)

// normalize cleans converter output: trailing whitespace stripped per
// line, runs of spaces collapsed, list items tightened, and runs of
// blank lines reduced to a single one.
func normalize(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		line = strings.TrimRight(line, " \t")
		lines[i] = spaceRunRe.ReplaceAllString(line, " ")
	}
	lines = tightenLists(lines)

	s = strings.Join(lines, "\n")
	s = newlineRunRe.ReplaceAllString(s, "\n\n")
	return strings.Trim(s, "\n")
}

// tightenLists drops a blank line sitting between two list items, turning
// loose lists into tight ones.
func tightenLists(lines []string) []string {
	out := make([]string, 0, len(lines))
	for i, line := range lines {
		if line == "" && len(out) > 0 && i+1 < len(lines) &&
			isListItem(out[len(out)-1]) && isListItem(lines[i+1]) {
			continue
		}
		out = append(out, line)
	}
	return out
}

func isListItem(line string) bool {
	return strings.HasPrefix(strings.TrimLeft(line, " "), "- ")
}
