package aitime

import "unicode"

// Language identifies the language a sentence is parsed in.
type Language string

const (
	LanguageEnglish  Language = "en"
	LanguageChinese  Language = "zh"
	LanguageJapanese Language = "ja"
	LanguageKorean   Language = "ko"
)

// Languages lists every supported language.
var Languages = []Language{LanguageChinese, LanguageJapanese, LanguageKorean, LanguageEnglish}

func (l Language) String() string {
	return string(l)
}

// DetectLanguage classifies text by the scripts it contains.
//
// Kana only occur in Japanese, so they are checked before ideographs, which
// Japanese shares with Chinese. Hangul selects Korean. Anything else is English.
func DetectLanguage(text string) Language {
	var hasHan, hasKana, hasHangul bool
	for _, r := range text {
		switch {
		case unicode.In(r, unicode.Hiragana, unicode.Katakana):
			hasKana = true
		case unicode.Is(unicode.Han, r):
			hasHan = true
		case unicode.Is(unicode.Hangul, r):
			hasHangul = true
		}
	}

	switch {
	case hasKana:
		return LanguageJapanese
	case hasHan && hasHangul:
		// Hanja inside Korean text.
		return LanguageKorean
	case hasHan:
		return LanguageChinese
	case hasHangul:
		return LanguageKorean
	default:
		return LanguageEnglish
	}
}
