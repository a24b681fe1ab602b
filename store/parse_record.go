package store

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lithammer/shortuuid/v4"
)

// ParseRecord is the audit row written for each parsed sentence.
type ParseRecord struct {
	ID        int32
	UID       string
	CreatedTs int64

	Text     string
	Language string
	// Source is primary, fallback or none.
	Source  string
	Content string
	// ResolvedTs is nil when the sentence had no date.
	ResolvedTs  *int64
	ReferenceTs int64
	Timezone    string
}

// FindParseRecord is the find condition for parse records.
type FindParseRecord struct {
	ID       *int32
	UID      *string
	Source   *string
	Language *string

	Limit *int
}

// MaxListLimit caps the number of rows a single list call returns.
const MaxListLimit = 1000

// CreateParseRecord stores a parse record. A missing UID is generated.
func (s *Store) CreateParseRecord(ctx context.Context, create *ParseRecord) (*ParseRecord, error) {
	if strings.TrimSpace(create.Text) == "" {
		return nil, errors.New("parse record text is empty")
	}
	if create.UID == "" {
		create.UID = shortuuid.New()
	}
	if create.CreatedTs == 0 {
		create.CreatedTs = time.Now().Unix()
	}
	return s.driver.CreateParseRecord(ctx, create)
}

// ListParseRecords lists parse records, newest first.
func (s *Store) ListParseRecords(ctx context.Context, find *FindParseRecord) ([]*ParseRecord, error) {
	if find == nil {
		find = &FindParseRecord{}
	}
	if find.Limit != nil && (*find.Limit <= 0 || *find.Limit > MaxListLimit) {
		limit := MaxListLimit
		find.Limit = &limit
	}
	return s.driver.ListParseRecords(ctx, find)
}

// GetParseRecord returns the record with uid, or nil if there is none.
func (s *Store) GetParseRecord(ctx context.Context, uid string) (*ParseRecord, error) {
	limit := 1
	list, err := s.driver.ListParseRecords(ctx, &FindParseRecord{UID: &uid, Limit: &limit})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, nil
	}
	return list[0], nil
}
