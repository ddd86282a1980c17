package response

import (
	"strings"
)

// ThinkMarker closes a reasoning block some models emit before the answer
const ThinkMarker = "</think>"

// decorationCutset is trimmed from both ends of a title candidate
const decorationCutset = "–-•* "

// Parsed is the post-processed model text
type Parsed struct {
	Title string
	Body  string
}

// Parse normalizes raw model output and guesses the recommended title from its
// first line. The guess is best effort: a first line that is not "Title." shaped
// (e.g. "Sure! Here is..." or "Title: Subtitle") yields a wrong or truncated title.
func Parse(text string) Parsed {
	content := StripThinking(text)
	return Parsed{
		Title: ExtractTitle(content),
		Body:  content,
	}
}

// StripThinking trims the text and drops everything up to the last ThinkMarker
func StripThinking(text string) string {
	content := strings.TrimSpace(text)
	if idx := strings.LastIndex(content, ThinkMarker); idx != -1 {
		content = strings.TrimSpace(content[idx+len(ThinkMarker):])
	}
	return content
}

// ExtractTitle takes the first line up to its first period and strips decoration
func ExtractTitle(content string) string {
	line := FirstLine(content)
	if line == "" {
		return ""
	}
	head, _, _ := strings.Cut(line, ".")
	return StripDecoration(head)
}

// FirstLine returns the text before the first line break. A bare \r, vertical
// tab, form feed, file/group/record separators, NEL and the Unicode line and
// paragraph separators all count as breaks.
func FirstLine(content string) string {
	if idx := strings.IndexFunc(content, isLineBreak); idx != -1 {
		return content[:idx]
	}
	return content
}

func isLineBreak(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// StripDecoration removes dashes, bullets, asterisks and spaces from both ends
func StripDecoration(s string) string {
	return strings.Trim(s, decorationCutset)
}
