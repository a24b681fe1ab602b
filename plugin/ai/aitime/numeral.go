package aitime

import (
	"strconv"
	"strings"

	"golang.org/x/text/width"
)

// NumeralTable maps the numeral words of one language to their values.
// Composite numbers are written <tens><marker><ones>, e.g. 二十三 or 열두.
type NumeralTable struct {
	Digits      map[string]int
	TensMarkers []string
}

func (t NumeralTable) lookup(token string) (int, bool) {
	v, ok := t.Digits[token]
	return v, ok
}

var numeralTables = map[Language]NumeralTable{
	LanguageChinese: {
		Digits: map[string]int{
			"零": 0, "〇": 0,
			"一": 1, "二": 2, "两": 2, "兩": 2, "三": 3, "四": 4, "五": 5,
			"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
		},
		TensMarkers: []string{"十"},
	},
	LanguageJapanese: {
		Digits: map[string]int{
			"零": 0, "〇": 0,
			"一": 1, "二": 2, "三": 3, "四": 4, "五": 5,
			"六": 6, "七": 7, "八": 8, "九": 9, "十": 10,
		},
		TensMarkers: []string{"十"},
	},
	LanguageKorean: {
		Digits: map[string]int{
			// Sino-Korean, used for minutes and 24-hour readings.
			"영": 0, "공": 0,
			"일": 1, "이": 2, "삼": 3, "사": 4, "오": 5,
			"육": 6, "칠": 7, "팔": 8, "구": 9, "십": 10,
			// Native Korean, used for hours.
			"한": 1, "하나": 1, "두": 2, "둘": 2, "세": 3, "셋": 3, "네": 4, "넷": 4,
			"다섯": 5, "여섯": 6, "일곱": 7, "여덟": 8, "아홉": 9, "열": 10,
		},
		TensMarkers: []string{"십", "열"},
	},
	LanguageEnglish: {
		Digits: map[string]int{
			"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
			"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
			"eleven": 11, "twelve": 12,
		},
	},
}

// ResolveNumeral converts a numeral token to its value. Arabic digits are
// accepted in every language, including their fullwidth forms.
func ResolveNumeral(token string, lang Language) (int, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, invalidNumeral(token, lang, "empty token")
	}

	if folded := width.Narrow.String(token); isASCIIDigits(folded) {
		n, err := strconv.Atoi(folded)
		if err != nil {
			return 0, invalidNumeral(token, lang, "value out of range")
		}
		return n, nil
	}

	table, ok := numeralTables[lang]
	if !ok {
		return 0, invalidNumeral(token, lang, "unsupported language")
	}

	if v, ok := table.lookup(strings.ToLower(token)); ok {
		return v, nil
	}

	for _, marker := range table.TensMarkers {
		idx := strings.Index(token, marker)
		if idx < 0 {
			continue
		}
		tensRaw, onesRaw := token[:idx], token[idx+len(marker):]

		tens := 1
		if tensRaw != "" {
			v, ok := table.lookup(tensRaw)
			if !ok || v < 1 || v > 9 {
				return 0, invalidNumeral(token, lang, "malformed tens part")
			}
			tens = v
		}

		ones := 0
		if onesRaw != "" {
			v, ok := table.lookup(onesRaw)
			if !ok || v > 9 {
				return 0, invalidNumeral(token, lang, "malformed ones part")
			}
			ones = v
		}
		return tens*10 + ones, nil
	}

	return 0, invalidNumeral(token, lang, "not a numeral")
}

func isASCIIDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
