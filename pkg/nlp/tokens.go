package nlp

import (
	"regexp"
	"strings"
)

// reToken выделяет токены: буквы/цифры плюс символы, значимые для названий
// технологий ("c++", "c#", ".net", "ci-cd").
var reToken = regexp.MustCompile(`[a-z0-9+#.\-]+`)

// reWord — «слово» для подсчёта длины резюме: только буквенно-цифровые последовательности.
var reWord = regexp.MustCompile(`[\p{L}\p{N}]+`)

// stopwords — общеупотребимые английские слова, исключаемые из взвешивания.
var stopwords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`
		a an and are as at be been but by for from has have if in into is it its
		of on or our s such t that the their there these they this to was we were
		will with you your not no than then so very can could should would may
		might must do does did done more most other some all any each which who
		whom what when where how also about over under between both because while
	`) {
		stopwords[w] = struct{}{}
	}
}

// IsStopword reports whether a token carries no salience on its own.
func IsStopword(tok string) bool {
	_, ok := stopwords[tok]
	return ok
}

// Tokens разбивает нормализованный текст на токены в порядке появления.
// Висячие точки и дефисы обрезаются, чтобы "sql." и "sql" считались одним термином.
func Tokens(normalized string) []string {
	raw := reToken.FindAllString(normalized, -1)
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.Trim(t, ".-")
		if t == "" {
			continue
		}
		out = append(out, t)
	}
	return out
}

// WordCount считает буквенно-цифровые слова в тексте (для оценки длины резюме).
func WordCount(text string) int {
	return len(reWord.FindAllString(strings.ToLower(text), -1))
}
