package aitime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2024-01-01 is a Monday.
var monday = time.Date(2024, 1, 1, 9, 30, 0, 0, time.FixedZone("CST", 8*3600))

func TestResolveDate(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		lang      Language
		wantDate  string
		wantKind  DateKind
		wantToken string
	}{
		{"zh day after tomorrow", "后天开会", LanguageChinese, "2024-01-03", DateDayAfterTomorrow, "后天"},
		{"zh tomorrow", "明天开会", LanguageChinese, "2024-01-02", DateTomorrow, "明天"},
		{"zh today", "今天开会", LanguageChinese, "2024-01-01", DateToday, "今天"},
		{"zh next saturday", "下周六数学", LanguageChinese, "2024-01-13", DateNextWeekday, "下周六"},
		{"zh next sunday long form", "下个星期天", LanguageChinese, "2024-01-14", DateNextWeekday, "下个星期天"},
		{"zh next next tuesday", "下下周二考试", LanguageChinese, "2024-01-16", DateNextNextWeekday, "下下周二"},
		{"zh bare wednesday", "周三交报告", LanguageChinese, "2024-01-03", DateWeekday, "周三"},
		{"zh bare same weekday", "周一例会", LanguageChinese, "2024-01-08", DateWeekday, "周一"},
		{"zh tomorrow beats weekday", "明天或者下周六", LanguageChinese, "2024-01-02", DateTomorrow, "明天"},
		{"ja day after tomorrow", "明後日の会議", LanguageJapanese, "2024-01-03", DateDayAfterTomorrow, "明後日の"},
		{"ja next saturday", "来週の土曜日", LanguageJapanese, "2024-01-13", DateNextWeekday, "来週の土曜日"},
		{"ja next next tuesday", "再来週の火曜日", LanguageJapanese, "2024-01-16", DateNextNextWeekday, "再来週の火曜日"},
		{"ja bare friday", "金曜日に提出", LanguageJapanese, "2024-01-05", DateWeekday, "金曜日"},
		{"ko day after tomorrow", "모레 회의", LanguageKorean, "2024-01-03", DateDayAfterTomorrow, "모레"},
		{"ko tomorrow", "내일 회의", LanguageKorean, "2024-01-02", DateTomorrow, "내일"},
		{"ko next saturday", "다음 주 토요일", LanguageKorean, "2024-01-13", DateNextWeekday, "다음 주 토요일"},
		{"ko next next tuesday", "다다음 주 화요일", LanguageKorean, "2024-01-16", DateNextNextWeekday, "다다음 주 화요일"},
		{"ko bare wednesday", "수요일 회의", LanguageKorean, "2024-01-03", DateWeekday, "수요일"},
		{"en day after tomorrow", "the day after tomorrow", LanguageEnglish, "2024-01-03", DateDayAfterTomorrow, "the day after tomorrow"},
		{"en tomorrow", "lunch tomorrow", LanguageEnglish, "2024-01-02", DateTomorrow, "tomorrow"},
		{"en next saturday", "next Saturday", LanguageEnglish, "2024-01-13", DateNextWeekday, "next Saturday"},
		{"en next week on friday", "next week on fri", LanguageEnglish, "2024-01-12", DateNextWeekday, "next week on fri"},
		{"en next next tuesday", "next next tue", LanguageEnglish, "2024-01-16", DateNextNextWeekday, "next next tue"},
		{"en bare friday", "on Friday", LanguageEnglish, "2024-01-05", DateWeekday, "on Friday"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			anchor, err := ResolveDate(tt.input, tt.lang, monday)
			require.NoError(t, err)
			assert.Equal(t, tt.wantDate, anchor.Date.Format("2006-01-02"))
			assert.Equal(t, "00:00", anchor.Date.Format("15:04"))
			assert.Equal(t, tt.wantKind, anchor.Kind)
			require.Len(t, anchor.Tokens, 1)
			assert.Equal(t, tt.wantToken, anchor.Tokens[0].Text)
			assert.Equal(t, monday, anchor.Reference)
		})
	}
}

func TestResolveDate_NoMarker(t *testing.T) {
	anchor, err := ResolveDate("开会", LanguageChinese, monday)
	assert.ErrorIs(t, err, ErrNoDateMarker)
	assert.Equal(t, DateNone, anchor.Kind)
	assert.Equal(t, "2024-01-01 00:00", anchor.Date.Format("2006-01-02 15:04"))
	assert.Empty(t, anchor.Tokens)
}

func TestResolveDate_PastWeekday(t *testing.T) {
	tests := []struct {
		input string
		lang  Language
	}{
		{"last friday lunch", LanguageEnglish},
		{"上周五聚餐", LanguageChinese},
		{"上个星期五", LanguageChinese},
		{"先週の金曜日", LanguageJapanese},
		{"지난주 금요일", LanguageKorean},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			anchor, err := ResolveDate(tt.input, tt.lang, monday)
			assert.ErrorIs(t, err, ErrPastDate)
			assert.Empty(t, anchor.Tokens)
		})
	}

	anchor, err := ResolveDate("this friday lunch", LanguageEnglish, monday)
	require.NoError(t, err)
	assert.Equal(t, "2024-01-05", anchor.Date.Format("2006-01-02"))
}

func TestWeekdayDelta(t *testing.T) {
	tests := []struct {
		today, target, want int
	}{
		{0, 0, 7},
		{0, 5, 5},
		{5, 0, 2},
		{6, 6, 7},
		{6, 0, 1},
		{3, 2, 6},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WeekdayDelta(tt.today, tt.target), "today=%d target=%d", tt.today, tt.target)
	}
}

func TestNextWeekday_Distance(t *testing.T) {
	days := func(from, to time.Time) int {
		return int(to.Sub(startOfDay(from)).Hours() / 24)
	}

	start := time.Date(2024, 1, 1, 18, 45, 0, 0, time.UTC)
	for i := 0; i < 14; i++ {
		ref := start.AddDate(0, 0, i)
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			next := NextWeekday(ref, wd)
			assert.Equal(t, wd, next.Weekday())
			assert.GreaterOrEqual(t, days(ref, next), 8, "ref=%s target=%s", ref.Weekday(), wd)
			assert.LessOrEqual(t, days(ref, next), 14, "ref=%s target=%s", ref.Weekday(), wd)

			nextNext := NextNextWeekday(ref, wd)
			assert.Equal(t, wd, nextNext.Weekday())
			assert.GreaterOrEqual(t, days(ref, nextNext), 15)
			assert.LessOrEqual(t, days(ref, nextNext), 21)
		}
	}
}

func TestResolveDate_MatchesNextWeekday(t *testing.T) {
	names := map[time.Weekday]string{
		time.Monday: "一", time.Tuesday: "二", time.Wednesday: "三", time.Thursday: "四",
		time.Friday: "五", time.Saturday: "六", time.Sunday: "日",
	}
	for i := 0; i < 7; i++ {
		ref := monday.AddDate(0, 0, i)
		for wd, name := range names {
			anchor, err := ResolveDate("下周"+name, LanguageChinese, ref)
			require.NoError(t, err)
			assert.Equal(t, NextWeekday(ref, wd), anchor.Date)

			anchor, err = ResolveDate("下下周"+name, LanguageChinese, ref)
			require.NoError(t, err)
			assert.Equal(t, NextNextWeekday(ref, wd), anchor.Date)
		}
	}
}
