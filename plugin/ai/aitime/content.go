package aitime

import (
	"sort"
	"strings"
)

// ExtractContent removes every recorded token from original and returns the
// remainder with whitespace collapsed.
//
// Tokens are removed by their recorded span. A token whose span does not
// match the original is removed at its first occurrence instead, once.
// Nothing is removed that was not recorded.
func ExtractContent(original string, tokens []Token) string {
	type span struct{ start, end int }

	spans := make([]span, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Text == "" {
			continue
		}
		if tok.Start >= 0 && tok.End <= len(original) && tok.Start < tok.End && original[tok.Start:tok.End] == tok.Text {
			spans = append(spans, span{tok.Start, tok.End})
			continue
		}
		if i := strings.Index(original, tok.Text); i >= 0 {
			spans = append(spans, span{i, i + len(tok.Text)})
		}
	}
	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var b strings.Builder
	b.Grow(len(original))
	pos := 0
	for _, s := range spans {
		if s.end <= pos {
			continue
		}
		if s.start > pos {
			b.WriteString(original[pos:s.start])
		}
		pos = s.end
	}
	b.WriteString(original[pos:])

	return strings.Join(strings.Fields(b.String()), " ")
}

// maskTokens blanks the bytes covered by tokens so later matching cannot
// reuse them. Offsets into the result stay valid for the original.
func maskTokens(text string, tokens []Token) string {
	if len(tokens) == 0 {
		return text
	}
	buf := []byte(text)
	for _, tok := range tokens {
		if tok.Start < 0 || tok.End > len(buf) {
			continue
		}
		for i := tok.Start; i < tok.End; i++ {
			buf[i] = ' '
		}
	}
	return string(buf)
}

func overlapsAny(tok Token, tokens []Token) bool {
	for _, other := range tokens {
		if other.Start >= 0 && tok.Start < other.End && other.Start < tok.End {
			return true
		}
	}
	return false
}
