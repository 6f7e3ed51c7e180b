package match

import "strings"

// HardResult — покрытие списков навыков вакансии текстом резюме.
// Инвариант: matched ∪ missing = исходный список, каждый навык
// классифицирован ровно один раз.
type HardResult struct {
	Score            float64 // [0,1]
	MatchedRequired  []string
	MissingRequired  []string
	MatchedPreferred []string
	MissingPreferred []string
}

// MatchSkills проверяет вхождение каждого навыка в текст резюме как
// подстроки без учёта регистра. Без стемминга и границ слов — подстрочное
// вхождение и есть контракт.
//
// Скор: доля найденных required-навыков. Если required пуст, покрытие
// считается по preferred — осознанная политика замещения, а не упущение.
// Если пусты оба списка, скор равен нулю.
func MatchSkills(required, preferred []string, resumeText string) HardResult {
	hay := strings.ToLower(resumeText)

	res := HardResult{
		MatchedRequired:  []string{},
		MissingRequired:  []string{},
		MatchedPreferred: []string{},
		MissingPreferred: []string{},
	}
	for _, s := range required {
		if s == "" {
			continue
		}
		if strings.Contains(hay, strings.ToLower(s)) {
			res.MatchedRequired = append(res.MatchedRequired, s)
		} else {
			res.MissingRequired = append(res.MissingRequired, s)
		}
	}
	for _, s := range preferred {
		if s == "" {
			continue
		}
		if strings.Contains(hay, strings.ToLower(s)) {
			res.MatchedPreferred = append(res.MatchedPreferred, s)
		} else {
			res.MissingPreferred = append(res.MissingPreferred, s)
		}
	}

	switch {
	case len(res.MatchedRequired)+len(res.MissingRequired) > 0:
		res.Score = float64(len(res.MatchedRequired)) / float64(len(res.MatchedRequired)+len(res.MissingRequired))
	case len(res.MatchedPreferred)+len(res.MissingPreferred) > 0:
		res.Score = float64(len(res.MatchedPreferred)) / float64(len(res.MatchedPreferred)+len(res.MissingPreferred))
	default:
		res.Score = 0
	}
	return res
}
