package temporal

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hrygo/lingotime/internal/profile"
	"github.com/hrygo/lingotime/plugin/ai/aitime"
	apierrors "github.com/hrygo/lingotime/server/internal/errors"
	"github.com/hrygo/lingotime/server/timezone"
	"github.com/hrygo/lingotime/store"
	"github.com/hrygo/lingotime/store/db"
)

// memoryStore keeps audit rows in a slice.
type memoryStore struct {
	mu      sync.Mutex
	records []*store.ParseRecord
	err     error
}

func (m *memoryStore) CreateParseRecord(_ context.Context, create *store.ParseRecord) (*store.ParseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	create.ID = int32(len(m.records) + 1)
	create.UID = "uid-" + string(rune('a'+len(m.records)))
	create.CreatedTs = 1704072600
	m.records = append(m.records, create)
	return create, nil
}

func (m *memoryStore) ListParseRecords(_ context.Context, find *store.FindParseRecord) ([]*store.ParseRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	var list []*store.ParseRecord
	for i := len(m.records) - 1; i >= 0; i-- {
		if find.Limit != nil && len(list) == *find.Limit {
			break
		}
		list = append(list, m.records[i])
	}
	return list, nil
}

var shanghai = timezone.MustParseTimezone("Asia/Shanghai")

func TestService_Parse(t *testing.T) {
	ctx := context.Background()
	st := &memoryStore{}
	svc := NewService(aitime.NewParser(), WithStore(st))

	resp, err := svc.Parse(ctx, &ParseRequest{
		Text:      "明天下午三点开会",
		Timezone:  "Asia/Shanghai",
		Reference: "2024-01-01 09:30",
	})
	require.NoError(t, err)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2024-01-02 15:00 +0800", resp.Date.Format("2006-01-02 15:04 -0700"))
	assert.Equal(t, "开会", resp.Content)
	assert.Equal(t, aitime.LanguageChinese, resp.Language)
	assert.Equal(t, aitime.SourcePrimary, resp.Source)
	assert.Equal(t, "Asia/Shanghai", resp.Timezone)
	assert.Equal(t, "uid-a", resp.RecordUID)
	assert.NotEmpty(t, resp.Tokens)

	require.Len(t, st.records, 1)
	rec := st.records[0]
	assert.Equal(t, "明天下午三点开会", rec.Text)
	assert.Equal(t, "zh", rec.Language)
	assert.Equal(t, "primary", rec.Source)
	require.NotNil(t, rec.ResolvedTs)
	assert.Equal(t, resp.Date.Unix(), *rec.ResolvedTs)
	assert.Equal(t, time.Date(2024, 1, 1, 9, 30, 0, 0, shanghai).Unix(), rec.ReferenceTs)
}

func TestService_ParseDefaults(t *testing.T) {
	tokyo := timezone.MustParseTimezone("Asia/Tokyo")
	clock := time.Date(2024, 1, 1, 0, 30, 0, 0, time.UTC)
	svc := NewService(aitime.NewParser(), WithDefaultLocation(tokyo), WithClock(func() time.Time { return clock }))

	resp, err := svc.Parse(context.Background(), &ParseRequest{Text: "明日の会議"})
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", resp.Timezone)
	assert.True(t, resp.Reference.Equal(clock))
	assert.Equal(t, tokyo, resp.Reference.Location())
	require.NotNil(t, resp.Date)
	// 09:30 on Jan 1 in Tokyo, so tomorrow is Jan 2.
	assert.Equal(t, "2024-01-02 00:00", resp.Date.Format("2006-01-02 15:04"))
	assert.Empty(t, resp.RecordUID)
}

func TestService_ParseNoDate(t *testing.T) {
	st := &memoryStore{}
	svc := NewService(aitime.NewParser(), WithStore(st))

	resp, err := svc.Parse(context.Background(), &ParseRequest{Text: "buy milk", Timezone: "UTC"})
	require.NoError(t, err)
	assert.Nil(t, resp.Date)
	assert.Equal(t, "buy milk", resp.Content)
	assert.Equal(t, aitime.SourceNone, resp.Source)

	require.Len(t, st.records, 1)
	assert.Nil(t, st.records[0].ResolvedTs)
	assert.Equal(t, "none", st.records[0].Source)
}

func TestService_ParseInvalid(t *testing.T) {
	svc := NewService(aitime.NewParser())

	tests := []struct {
		name string
		req  *ParseRequest
		code apierrors.ErrorCode
	}{
		{"empty", &ParseRequest{Text: ""}, apierrors.ErrCodeInvalidArgument},
		{"blank", &ParseRequest{Text: " \t "}, apierrors.ErrCodeInvalidArgument},
		{"too long", &ParseRequest{Text: strings.Repeat("好", MaxInputLength+1)}, apierrors.ErrCodeInvalidArgument},
		{"bad timezone", &ParseRequest{Text: "明天开会", Timezone: "Mars/Olympus"}, apierrors.ErrCodeInvalidTimezone},
		{"bad reference", &ParseRequest{Text: "明天开会", Reference: "yesterday-ish"}, apierrors.ErrCodeInvalidArgument},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := svc.Parse(context.Background(), tt.req)
			assert.Nil(t, resp)
			assert.True(t, apierrors.IsCode(err, tt.code), "got %v", err)
		})
	}

	assert.EqualValues(t, len(tests), svc.Stats().RequestFailed)
}

func TestService_ParseLongestInput(t *testing.T) {
	svc := NewService(aitime.NewParser())
	_, err := svc.Parse(context.Background(), &ParseRequest{Text: strings.Repeat("好", MaxInputLength)})
	assert.NoError(t, err)
}

func TestService_AuditFailureIsNotFatal(t *testing.T) {
	svc := NewService(aitime.NewParser(), WithStore(&memoryStore{err: errors.New("disk full")}))

	resp, err := svc.Parse(context.Background(), &ParseRequest{Text: "today 3pm meeting", Timezone: "UTC"})
	require.NoError(t, err)
	require.NotNil(t, resp.Date)
	assert.Empty(t, resp.RecordUID)
}

func TestService_History(t *testing.T) {
	ctx := context.Background()
	st := &memoryStore{}
	svc := NewService(aitime.NewParser(), WithStore(st))

	for _, text := range []string{"明天下午三点开会", "buy milk", "today 3pm meeting"} {
		_, err := svc.Parse(ctx, &ParseRequest{Text: text, Timezone: "Asia/Shanghai", Reference: "2024-01-01 09:30"})
		require.NoError(t, err)
	}

	entries, err := svc.History(ctx, 0)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "today 3pm meeting", entries[0].Text)
	assert.Equal(t, "2024-01-01 15:00", entries[0].Date.Format("2006-01-02 15:04"))
	assert.Equal(t, "Asia/Shanghai", entries[0].Date.Location().String())
	assert.Nil(t, entries[1].Date)
	assert.Equal(t, "2024-01-01 09:30", entries[2].Reference.Format("2006-01-02 15:04"))

	entries, err = svc.History(ctx, 2)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	_, err = svc.History(ctx, -1)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeInvalidArgument))
}

func TestService_HistoryWithoutStore(t *testing.T) {
	svc := NewService(aitime.NewParser())
	_, err := svc.History(context.Background(), 10)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeStoreUnavailable))
}

func TestService_HistoryStoreError(t *testing.T) {
	svc := NewService(aitime.NewParser(), WithStore(&memoryStore{err: errors.New("connection refused")}))
	_, err := svc.History(context.Background(), 10)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeStoreUnavailable))
}

func TestService_Stats(t *testing.T) {
	svc := NewService(aitime.NewParser())
	ctx := context.Background()

	_, _ = svc.Parse(ctx, &ParseRequest{Text: "明天开会"})
	_, _ = svc.Parse(ctx, &ParseRequest{Text: "buy milk"})
	_, _ = svc.Parse(ctx, &ParseRequest{Text: ""})

	s := svc.Stats()
	assert.EqualValues(t, 3, s.RequestTotal)
	assert.EqualValues(t, 1, s.RequestFailed)
	assert.EqualValues(t, 1, s.Sources["primary"].Count)
	assert.EqualValues(t, 1, s.Sources["none"].Count)
	assert.EqualValues(t, 1, s.Languages["zh"])
}

func TestNewServiceFromProfile(t *testing.T) {
	ctx := context.Background()
	p := &profile.Profile{
		Mode:              "dev",
		Driver:            "sqlite",
		DSN:               filepath.Join(t.TempDir(), "lingotime_dev.db"),
		Timezone:          "UTC",
		AuditEnabled:      true,
		FallbackDateparse: true,
	}
	driver, err := db.NewDBDriver(p)
	require.NoError(t, err)
	st := store.New(driver, p)
	t.Cleanup(func() { st.Close() })
	require.NoError(t, st.Migrate(ctx))

	svc, err := NewServiceFromProfile(p, st, nil)
	require.NoError(t, err)

	resp, err := svc.Parse(ctx, &ParseRequest{Text: "report due 2024-03-15", Reference: "2024-01-01 15:00"})
	require.NoError(t, err)
	require.NotNil(t, resp.Date)
	assert.Equal(t, "2024-03-15", resp.Date.Format("2006-01-02"))
	assert.Equal(t, "report due", resp.Content)
	assert.Equal(t, aitime.SourceFallback, resp.Source)
	assert.Equal(t, "UTC", resp.Timezone)
	assert.NotEmpty(t, resp.RecordUID)

	entries, err := svc.History(ctx, 5)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, resp.RecordUID, entries[0].UID)
	assert.Equal(t, "fallback", entries[0].Source)
}

func TestNewServiceFromProfile_AuditDisabled(t *testing.T) {
	svc, err := NewServiceFromProfile(&profile.Profile{Timezone: "UTC"}, nil, nil)
	require.NoError(t, err)

	resp, err := svc.Parse(context.Background(), &ParseRequest{Text: "report due 2024-03-15"})
	require.NoError(t, err)
	// Every library fallback is off.
	assert.Nil(t, resp.Date)
	_, err = svc.History(context.Background(), 1)
	assert.True(t, apierrors.IsCode(err, apierrors.ErrCodeStoreUnavailable))
}

func TestNewServiceFromProfile_BadTimezone(t *testing.T) {
	_, err := NewServiceFromProfile(&profile.Profile{Timezone: "Nowhere/City"}, nil, nil)
	assert.Error(t, err)
}
