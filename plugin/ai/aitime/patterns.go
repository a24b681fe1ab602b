package aitime

import (
	"regexp"
	"strings"
)

// languagePatterns holds the marker and time expressions of one language.
// Weekday expressions capture the day in the "weekday" group; time
// expressions use the "hour", "minute", "minute1", "idiom" and "period" groups.
type languagePatterns struct {
	dayAfterTomorrow *regexp.Regexp
	tomorrow         *regexp.Regexp
	today            *regexp.Regexp

	nextNextWeekday *regexp.Regexp
	nextWeekday     *regexp.Regexp
	weekday         *regexp.Regexp
	weekdays        map[string]int // Monday=0 ... Sunday=6
	// pastWeekday matches the text right before a bare weekday that points
	// backwards ("last friday", "上周五"). Those are left to the fallback.
	pastWeekday *regexp.Regexp

	times []*regexp.Regexp
	// rejectNext lists what may not directly follow a time match ("一点点", "3時間").
	rejectNext []string
	// vagueOne lists what turns a following "一点" into "a little" (早一点).
	vagueOne []string
	// letterBoundary rejects time matches glued to a following letter ("3 amazing").
	letterBoundary bool

	amMarkers *regexp.Regexp
	pmMarkers *regexp.Regexp

	minuteIdioms map[string]int
}

// clockPattern matches 24-hour readings such as 15:30 in any language.
var clockPattern = regexp.MustCompile(`(?P<hour>[0-9０-９]{1,2})\s*[:：]\s*(?P<minute>[0-9０-９]{2})`)

const (
	zhNumerals = `零〇一二两兩三四五六七八九十`
	zhWeek     = `(?:周|週|星期|礼拜|禮拜)`
	zhWeekday  = `(?P<weekday>[一二三四五六日天])`

	jaNumerals = `〇零一二三四五六七八九十`
	jaWeekday  = `(?P<weekday>[月火水木金土日])曜日?の?`

	koSino    = `영공일이삼사오육칠팔구십`
	koNative  = `열두|열한|열|한|두|세|네|다섯|여섯|일곱|여덟|아홉`
	koWeekday = `(?P<weekday>[월화수목금토일])요일`

	enHourWords = `one|two|three|four|five|six|seven|eight|nine|ten|eleven|twelve`
	enWeekday   = `(?P<weekday>mon(?:day)?|tue(?:s(?:day)?)?|wed(?:nesday)?|thu(?:r(?:s(?:day)?)?)?|fri(?:day)?|sat(?:urday)?|sun(?:day)?)`
	enFullDay   = `(?P<weekday>monday|tuesday|wednesday|thursday|friday|saturday|sunday)`
)

var patternTables = map[Language]*languagePatterns{
	LanguageChinese: {
		dayAfterTomorrow: regexp.MustCompile(`后天|後天`),
		tomorrow:         regexp.MustCompile(`明天|明日|明儿|明兒`),
		today:            regexp.MustCompile(`今天|今日|今儿|今兒`),

		nextNextWeekday: regexp.MustCompile(`下下个?` + zhWeek + `的?` + zhWeek + `?` + zhWeekday),
		nextWeekday:     regexp.MustCompile(`下个?` + zhWeek + `的?` + zhWeek + `?` + zhWeekday),
		weekday:         regexp.MustCompile(`(?:这个?|這個?|本)?` + zhWeek + zhWeekday),
		pastWeekday:     regexp.MustCompile(`(?:上|上个|上個)\s*$`),
		weekdays: map[string]int{
			"一": 0, "二": 1, "三": 2, "四": 3, "五": 4, "六": 5, "日": 6, "天": 6,
		},

		times: []*regexp.Regexp{
			regexp.MustCompile(`(?P<hour>[0-9０-９]{1,2}|[` + zhNumerals + `]{1,3})\s*(?:点钟|點鐘|点|點|时|時)` +
				`(?:(?P<idiom>半|[一二两兩三]?刻)|(?P<minute>[0-9０-９]{1,2}|[` + zhNumerals + `]{2,3})分?|(?P<minute1>[` + zhNumerals + `])分)?`),
			clockPattern,
		},
		rejectNext: []string{"点", "點", "儿", "兒", "间", "間"},
		vagueOne:   []string{"早", "晚", "快", "慢", "差", "多", "少", "好", "有"},

		amMarkers: regexp.MustCompile(`上午|早上|早晨|清晨|凌晨|早间|早間`),
		pmMarkers: regexp.MustCompile(`下午|晚上|傍晚|夜里|夜裡|夜间|夜間|晚间|晚間|今晚|中午`),

		minuteIdioms: map[string]int{
			"半": 30, "刻": 15, "一刻": 15, "两刻": 30, "兩刻": 30, "二刻": 30, "三刻": 45,
		},
	},
	LanguageJapanese: {
		dayAfterTomorrow: regexp.MustCompile(`(?:明後日|あさって)の?`),
		tomorrow:         regexp.MustCompile(`(?:明日|あした|あす)の?`),
		today:            regexp.MustCompile(`(?:今日|きょう)の?`),

		nextNextWeekday: regexp.MustCompile(`再来週の?\s*` + jaWeekday),
		nextWeekday:     regexp.MustCompile(`来週の?\s*` + jaWeekday),
		weekday:         regexp.MustCompile(`(?:今週の?\s*)?` + jaWeekday),
		pastWeekday:     regexp.MustCompile(`(?:先週|先々週|前週)の?\s*$`),
		weekdays: map[string]int{
			"月": 0, "火": 1, "水": 2, "木": 3, "金": 4, "土": 5, "日": 6,
		},

		times: []*regexp.Regexp{
			regexp.MustCompile(`(?P<hour>[0-9０-９]{1,2}|[` + jaNumerals + `]{1,3})\s*時` +
				`(?:(?P<idiom>半)|(?P<minute>[0-9０-９]{1,2}|[` + jaNumerals + `]{1,3})\s*分)?(?:\s*に)?`),
			clockPattern,
		},
		rejectNext: []string{"間"},

		amMarkers: regexp.MustCompile(`今朝|午前|早朝|明け方|朝`),
		pmMarkers: regexp.MustCompile(`今夜|今晩|午後|夕方|夜|晩`),

		minuteIdioms: map[string]int{"半": 30},
	},
	LanguageKorean: {
		dayAfterTomorrow: regexp.MustCompile(`내일모레|모레`),
		tomorrow:         regexp.MustCompile(`내일`),
		today:            regexp.MustCompile(`오늘`),

		nextNextWeekday: regexp.MustCompile(`다다음\s*주\s*` + koWeekday),
		nextWeekday:     regexp.MustCompile(`(?:다음|담)\s*주\s*` + koWeekday),
		weekday:         regexp.MustCompile(`(?:이번\s*주\s*)?` + koWeekday),
		pastWeekday:     regexp.MustCompile(`(?:지난|저번)\s*(?:주\s*)?$`),
		weekdays: map[string]int{
			"월": 0, "화": 1, "수": 2, "목": 3, "금": 4, "토": 5, "일": 6,
		},

		times: []*regexp.Regexp{
			regexp.MustCompile(`(?P<hour>[0-9０-９]{1,2}|` + koNative + `|[` + koSino + `]{1,3})\s*시` +
				`(?:\s*(?:(?P<idiom>반)|(?P<minute>[0-9０-９]{1,2}|[` + koSino + `]{1,3})\s*분))?(?:에)?`),
			clockPattern,
		},
		rejectNext: []string{"간"},

		amMarkers: regexp.MustCompile(`오전|아침|새벽`),
		pmMarkers: regexp.MustCompile(`오후|저녁|밤|낮`),

		minuteIdioms: map[string]int{"반": 30},
	},
	LanguageEnglish: {
		dayAfterTomorrow: regexp.MustCompile(`(?i)\b(?:the\s+)?day\s+after\s+tomorrow\b`),
		tomorrow:         regexp.MustCompile(`(?i)\b(?:tomorrow|tmrw|tmr)\b`),
		today:            regexp.MustCompile(`(?i)\b(?:today|tonight)\b`),

		nextNextWeekday: regexp.MustCompile(`(?i)\b(?:next\s+next|(?:the\s+)?week\s+after\s+next(?:\s+on)?)\s+` + enWeekday + `\b`),
		nextWeekday:     regexp.MustCompile(`(?i)\bnext\s+(?:week\s+(?:on\s+)?)?` + enWeekday + `\b`),
		weekday:         regexp.MustCompile(`(?i)\b(?:(?:this|on)\s+)?` + enFullDay + `\b`),
		pastWeekday:     regexp.MustCompile(`(?i)\b(?:last|previous|past)\s+$`),
		weekdays: map[string]int{
			"mon": 0, "tue": 1, "wed": 2, "thu": 3, "fri": 4, "sat": 5, "sun": 6,
		},

		times: []*regexp.Regexp{
			regexp.MustCompile(`(?i)\b(?:at\s+)?(?P<hour>\d{1,2}|` + enHourWords + `)(?:[:.](?P<minute>[0-5]\d))?\s*(?P<period>a\.m\.|p\.m\.|am|pm|o'clock)`),
			regexp.MustCompile(`(?i)\b(?:at\s+)?(?P<hour>\d{1,2}):(?P<minute>[0-5]\d)\b`),
			regexp.MustCompile(`(?i)\bat\s+(?P<hour>\d{1,2})\b`),
		},
		letterBoundary: true,

		amMarkers: regexp.MustCompile(`(?i)\b(?:in\s+the\s+)?morning\b`),
		pmMarkers: regexp.MustCompile(`(?i)\b(?:(?:in\s+the\s+)?(?:afternoon|evening)|(?:at\s+)?night|tonight)\b`),
	},
}

func patternsFor(lang Language) *languagePatterns {
	if p, ok := patternTables[lang]; ok {
		return p
	}
	return patternTables[LanguageEnglish]
}

// weekdayNumber maps a captured weekday token to Monday=0 ... Sunday=6.
func (p *languagePatterns) weekdayNumber(token string) (int, bool) {
	token = strings.ToLower(token)
	if v, ok := p.weekdays[token]; ok {
		return v, true
	}
	// English names are keyed by their three-letter prefix.
	if len(token) >= 3 {
		v, ok := p.weekdays[token[:3]]
		return v, ok
	}
	return 0, false
}

// group returns the text captured by the named group, or "".
func group(re *regexp.Regexp, text string, loc []int, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || 2*i+1 >= len(loc) || loc[2*i] < 0 {
		return ""
	}
	return text[loc[2*i]:loc[2*i+1]]
}
