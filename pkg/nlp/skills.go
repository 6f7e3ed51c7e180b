package nlp

import "strings"

// ParseSkills разбирает список навыков из свободного текста с разделителем
// запятой в упорядоченное множество: термы обрезаются, приводятся к нижнему
// регистру, пустые и повторяющиеся отбрасываются. Порядок первого вхождения
// сохраняется — он же порядок в отчётах о недостающих навыках.
func ParseSkills(csv string) []string {
	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	seen := make(map[string]struct{}, len(parts))
	for _, p := range parts {
		s := strings.ToLower(strings.TrimSpace(p))
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NormalizeSkills применяет ParseSkills к уже разобранному списку —
// защита от пустых и дублирующихся строк на границе API.
func NormalizeSkills(skills []string) []string {
	return ParseSkills(strings.Join(skills, ","))
}
