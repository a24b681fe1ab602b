package aitime

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractContent(t *testing.T) {
	tests := []struct {
		name     string
		original string
		tokens   []Token
		want     string
	}{
		{
			name:     "recorded spans",
			original: "明天下午三点开会",
			tokens: []Token{
				{Text: "明天", Start: 0, End: 6},
				{Text: "三点", Start: 12, End: 18},
				{Text: "下午", Start: 6, End: 12},
			},
			want: "开会",
		},
		{
			name:     "removes once",
			original: "明天明天开会",
			tokens:   []Token{{Text: "明天", Start: 0, End: 6}},
			want:     "明天开会",
		},
		{
			name:     "stale span falls back to first occurrence",
			original: "meet bob today",
			tokens:   []Token{{Text: "today", Start: 0, End: 5}},
			want:     "meet bob",
		},
		{
			name:     "unknown position",
			original: "lunch at noon tomorrow",
			tokens:   []Token{{Text: "tomorrow", Start: -1, End: -1}},
			want:     "lunch at noon",
		},
		{
			name:     "overlapping spans",
			original: "tonight at 8 dinner",
			tokens: []Token{
				{Text: "tonight", Start: 0, End: 7},
				{Text: "tonight at 8", Start: 0, End: 12},
			},
			want: "dinner",
		},
		{
			name:     "unmatched token leaves text alone",
			original: "打球",
			tokens:   []Token{{Text: "周六", Start: -1, End: -1}},
			want:     "打球",
		},
		{
			name:     "collapses whitespace",
			original: "  call   mom \t at 3pm  ",
			tokens:   []Token{{Text: "at 3pm", Start: 15, End: 21}},
			want:     "call mom",
		},
		{
			name:     "ideographic space",
			original: "明天　开会",
			tokens:   []Token{{Text: "明天", Start: 0, End: 6}},
			want:     "开会",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractContent(tt.original, tt.tokens))
		})
	}
}

func TestExtractContent_RoundTrip(t *testing.T) {
	parser := NewParser()
	dates := []string{"今天", "明天", "后天"}
	periods := []string{"", "上午", "下午", "晚上"}
	numerals := []string{"一", "三", "八", "十", "十一", "12"}
	contents := []string{"开会", "数学", "看医生", "写报告"}

	markerRunes := []rune("今明后天上下午晚点")

	for _, d := range dates {
		for _, p := range periods {
			for _, n := range numerals {
				for _, c := range contents {
					text := d + p + n + "点" + c
					got := parser.ParseAt(context.Background(), "  "+text+" ", monday)
					assert.Equal(t, c, got.Content, text)
					assert.Equal(t, SourcePrimary, got.Source, text)
					for _, r := range markerRunes {
						assert.NotContains(t, got.Content, string(r), text)
					}
				}
			}
		}
	}
}
