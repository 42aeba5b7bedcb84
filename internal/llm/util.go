package llm

import (
	"regexp"
	"strings"
)

var (
	leadingLabel = regexp.MustCompile(`(?i)^(rewritten |polished |professional )?summary\s*:\s*`)
	listMarker   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s+`)
	emphasis     = strings.NewReplacer("**", "", "__", "", "`", "")
)

// CleanText strips the wrappers models add around plain text: code fences, a leading
// "Summary:" label, emphasis markers and surrounding quotes. Inner whitespace is collapsed.
func CleanText(text string) string {
	text = stripFence(strings.TrimSpace(text))
	text = emphasis.Replace(text)
	text = leadingLabel.ReplaceAllString(strings.TrimSpace(text), "")
	text = strings.Join(strings.Fields(text), " ")
	return trimQuotes(text)
}

// CleanLines splits a multi-line answer into items, dropping list markers and blank lines.
func CleanLines(text string) []string {
	var out []string
	for _, line := range strings.Split(stripFence(strings.TrimSpace(text)), "\n") {
		line = listMarker.ReplaceAllString(line, "")
		line = trimQuotes(strings.Join(strings.Fields(emphasis.Replace(line)), " "))
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func stripFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if idx := strings.Index(text, "\n"); idx >= 0 {
		if first := text[:idx]; len(first) < 20 && !strings.Contains(first, " ") {
			text = text[idx+1:]
		}
	}
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

func trimQuotes(text string) string {
	for _, pair := range [][2]string{{`"`, `"`}, {"“", "”"}, {"'", "'"}} {
		if len(text) >= 2 && strings.HasPrefix(text, pair[0]) && strings.HasSuffix(text, pair[1]) {
			return strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(text, pair[0]), pair[1]))
		}
	}
	return text
}
