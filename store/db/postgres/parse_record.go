package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/hrygo/lingotime/store"
)

func (d *DB) CreateParseRecord(ctx context.Context, create *store.ParseRecord) (*store.ParseRecord, error) {
	fields := []string{"uid", "text", "language", "source", "content", "resolved_ts", "reference_ts", "timezone"}
	args := []any{create.UID, create.Text, create.Language, create.Source, create.Content, create.ResolvedTs, create.ReferenceTs, create.Timezone}

	if create.CreatedTs != 0 {
		fields = append(fields, "created_ts")
		args = append(args, create.CreatedTs)
	}

	stmt := `INSERT INTO parse_record (` + strings.Join(fields, ", ") + `)
		VALUES (` + placeholders(len(args)) + `)
		RETURNING id, created_ts`

	if err := d.db.QueryRowContext(ctx, stmt, args...).Scan(&create.ID, &create.CreatedTs); err != nil {
		return nil, fmt.Errorf("failed to create parse record: %w", err)
	}
	return create, nil
}

func (d *DB) ListParseRecords(ctx context.Context, find *store.FindParseRecord) ([]*store.ParseRecord, error) {
	where, args := []string{"1 = 1"}, []any{}

	if v := find.ID; v != nil {
		where, args = append(where, "id = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.UID; v != nil {
		where, args = append(where, "uid = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Source; v != nil {
		where, args = append(where, "source = "+placeholder(len(args)+1)), append(args, *v)
	}
	if v := find.Language; v != nil {
		where, args = append(where, "language = "+placeholder(len(args)+1)), append(args, *v)
	}

	query := `
		SELECT id, uid, created_ts, text, language, source, content, resolved_ts, reference_ts, timezone
		FROM parse_record
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY id DESC`
	if find.Limit != nil {
		query = fmt.Sprintf("%s LIMIT %d", query, *find.Limit)
	}

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query parse records: %w", err)
	}
	defer rows.Close()

	list := make([]*store.ParseRecord, 0)
	for rows.Next() {
		var record store.ParseRecord
		var resolvedTs sql.NullInt64
		if err := rows.Scan(
			&record.ID,
			&record.UID,
			&record.CreatedTs,
			&record.Text,
			&record.Language,
			&record.Source,
			&record.Content,
			&resolvedTs,
			&record.ReferenceTs,
			&record.Timezone,
		); err != nil {
			return nil, fmt.Errorf("failed to scan parse record: %w", err)
		}
		if resolvedTs.Valid {
			record.ResolvedTs = &resolvedTs.Int64
		}
		list = append(list, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate parse records: %w", err)
	}
	return list, nil
}
