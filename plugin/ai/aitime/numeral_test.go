package aitime

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveNumeral(t *testing.T) {
	tests := []struct {
		token string
		lang  Language
		want  int
	}{
		{"8", LanguageChinese, 8},
		{"１５", LanguageChinese, 15},
		{"零", LanguageChinese, 0},
		{"两", LanguageChinese, 2},
		{"十", LanguageChinese, 10},
		{"十二", LanguageChinese, 12},
		{"二十", LanguageChinese, 20},
		{"二十三", LanguageChinese, 23},
		{"九", LanguageJapanese, 9},
		{"十一", LanguageJapanese, 11},
		{"세", LanguageKorean, 3},
		{"열", LanguageKorean, 10},
		{"열두", LanguageKorean, 12},
		{"다섯", LanguageKorean, 5},
		{"삼십", LanguageKorean, 30},
		{"이십삼", LanguageKorean, 23},
		{"Twelve", LanguageEnglish, 12},
		{"seven", LanguageEnglish, 7},
		{"07", LanguageEnglish, 7},
	}

	for _, tt := range tests {
		t.Run(string(tt.lang)+"/"+tt.token, func(t *testing.T) {
			got, err := ResolveNumeral(tt.token, tt.lang)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveNumeral_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		token string
		lang  Language
	}{
		{"empty", "", LanguageChinese},
		{"blank", "  ", LanguageChinese},
		{"latin in chinese", "X", LanguageChinese},
		{"double marker", "十十", LanguageChinese},
		{"unknown ones", "三十百", LanguageChinese},
		{"unknown tens", "百十", LanguageJapanese},
		{"unknown english", "eleventy", LanguageEnglish},
		{"unsupported language", "三", Language("fr")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveNumeral(tt.token, tt.lang)
			require.Error(t, err)
			assert.Zero(t, got)
			assert.ErrorIs(t, err, ErrInvalidNumeral)

			var numErr *NumeralError
			require.True(t, errors.As(err, &numErr))
			assert.Equal(t, tt.lang, numErr.Language)
		})
	}
}
