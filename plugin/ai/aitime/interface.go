// Package aitime parses natural-language time expressions written in Chinese,
// Japanese, Korean or English.
// This interface is consumed by the temporal service and the CLI.
package aitime

import (
	"context"
	"time"
)

// TimeParser defines the sentence parsing interface.
type TimeParser interface {
	// Parse resolves text against the current time.
	// Supports: "明天下午三点开会", "来週の月曜日9時", "내일 오후 세 시", "today 3pm meeting"
	Parse(ctx context.Context, text string) ParseResult

	// ParseAt resolves text against reference.
	// reference: reference time point, its location is kept in the result
	ParseAt(ctx context.Context, text string, reference time.Time) ParseResult
}

var _ TimeParser = (*Parser)(nil)
