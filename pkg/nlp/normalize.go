package nlp

import (
	"regexp"
	"strings"
)

var reSpaces = regexp.MustCompile(`\s+`)

// Normalize приводит извлечённый текст документа к канонической форме
// для сравнения: нижний регистр, пробельные последовательности схлопываются
// в один пробел, края обрезаются. Пунктуация сохраняется — по ней матчатся
// навыки вида "ci/cd" и "c++".
// Никогда не падает; пустой вход даёт пустую строку.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = reSpaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
