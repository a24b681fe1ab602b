package temporal

import (
	"context"
	"time"

	"github.com/hrygo/lingotime/plugin/ai/aitime"
	"github.com/hrygo/lingotime/server/internal/observability"
	"github.com/hrygo/lingotime/store"
)

// Service parses sentences for the API and the CLI and keeps their audit trail.
type Service interface {
	// Parse resolves the date in a sentence. It only fails on invalid input;
	// a sentence without a date is a successful response without Date.
	Parse(ctx context.Context, req *ParseRequest) (*ParseResponse, error)

	// History lists the most recent audit rows, newest first.
	History(ctx context.Context, limit int) ([]*HistoryEntry, error)

	// Stats returns the parse counters since start.
	Stats() *observability.MetricsSnapshot
}

// Store is the interface for store operations needed by the temporal service.
type Store interface {
	CreateParseRecord(ctx context.Context, create *store.ParseRecord) (*store.ParseRecord, error)
	ListParseRecords(ctx context.Context, find *store.FindParseRecord) ([]*store.ParseRecord, error)
}

// ParseRequest is one sentence to parse.
type ParseRequest struct {
	Text string `json:"text"`
	// Timezone is an IANA name; empty means the service default.
	Timezone string `json:"timezone,omitempty"`
	// Reference is RFC 3339 or "YYYY-MM-DD[ HH:MM[:SS]]"; empty means now.
	Reference string `json:"reference,omitempty"`
}

// ParseResponse is the outcome of one parse.
type ParseResponse struct {
	Date      *time.Time      `json:"date,omitempty"`
	Content   string          `json:"content"`
	Language  aitime.Language `json:"language"`
	Source    aitime.Source   `json:"source"`
	Tokens    []aitime.Token  `json:"tokens,omitempty"`
	Reference time.Time       `json:"reference"`
	Timezone  string          `json:"timezone"`
	// RecordUID identifies the audit row, when one was written.
	RecordUID string `json:"record_uid,omitempty"`
}

// HistoryEntry is one audit row as shown to clients.
type HistoryEntry struct {
	UID       string     `json:"uid"`
	Text      string     `json:"text"`
	Language  string     `json:"language"`
	Source    string     `json:"source"`
	Content   string     `json:"content"`
	Date      *time.Time `json:"date,omitempty"`
	Reference time.Time  `json:"reference"`
	Timezone  string     `json:"timezone"`
	CreatedAt time.Time  `json:"created_at"`
}
