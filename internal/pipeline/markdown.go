package pipeline

import (
	"regexp"
	"strings"
)

// Patterns applied in order by CleanMarkdown. Code blocks and images go
// first so their inner text never leaks into later passes.
var markdownPasses = []struct {
	re   *regexp.Regexp
	repl string
}{
	{regexp.MustCompile("(?s)```.*?```"), ""},
	{regexp.MustCompile("`[^`]+`"), ""},
	{regexp.MustCompile(`!\[[^\]]*\]\([^\)]+\)`), ""},
	{regexp.MustCompile(`\[([^\]]+)\]\([^\)]+\)`), "$1"},
	{regexp.MustCompile(`\[\s*\]`), ""},
	{regexp.MustCompile(`[\[\]]`), ""},
	{regexp.MustCompile(`\{[^\}]*\}`), ""},
	{regexp.MustCompile(`[{}]`), ""},
	{regexp.MustCompile(`"{2,}`), `"`},
	{regexp.MustCompile(`!+`), ""},
	{regexp.MustCompile(`(?m)^#{1,6}\s+`), ""},
	{regexp.MustCompile(`\*\*([^\*]+)\*\*`), "$1"},
	{regexp.MustCompile(`__([^_]+)__`), "$1"},
	{regexp.MustCompile(`\*([^\*]+)\*`), "$1"},
	{regexp.MustCompile(`_([^_]+)_`), "$1"},
	{regexp.MustCompile(`\*+`), ""},
	{regexp.MustCompile(`(?m)^\s*[-*+]\s+`), ""},
	{regexp.MustCompile(`(?m)^\s*\d+\.\s+`), ""},
	{regexp.MustCompile(`(?m)^[-*_]{3,}$`), ""},
	{regexp.MustCompile(`<[^>]+>`), ""},
	{regexp.MustCompile(`(?m)^>\s*`), ""},
	{regexp.MustCompile(`>`), ""},
	{regexp.MustCompile("[~`]"), ""},
	{regexp.MustCompile(`\s+`), " "},
}

// CleanMarkdown strips markdown and HTML syntax from a README, collapses
// whitespace and truncates to maxChars at a word boundary. The result is
// the plain-text document fed to the classifier.
func CleanMarkdown(text string, maxChars int) string {
	if text == "" {
		return ""
	}
	for _, pass := range markdownPasses {
		text = pass.re.ReplaceAllString(text, pass.repl)
	}
	text = strings.TrimSpace(text)

	if maxChars > 0 && len(text) > maxChars {
		cut := text[:maxChars]
		if idx := strings.LastIndex(cut, " "); idx > 0 {
			cut = cut[:idx]
		}
		text = cut + "..."
	}
	return text
}
