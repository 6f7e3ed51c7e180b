package match

import (
	"fmt"
	"strings"
)

// Пороговые значения советов по длине резюме, в словах.
const (
	minResumeWords = 200
	maxResumeWords = 1400
)

// maxExampleBullets — сколько недостающих навыков превращаем в примеры буллетов.
const maxExampleBullets = 5

// FeedbackInput — всё, что нужно генератору обратной связи.
// Генерация детерминирована: одинаковый вход — одинаковые строки,
// никаких внешних вызовов.
type FeedbackInput struct {
	Combined         float64 // [0,100]
	SoftScore        float64 // [0,1]
	MissingRequired  []string
	MissingPreferred []string
	WordCount        int
	// WithExamples включает режим примерных буллетов по недостающим навыкам.
	WithExamples bool
}

// Feedback собирает упорядоченный список советов: заголовок по полосе
// скора, недостающие навыки, как их добавить, уместность длины и,
// опционально, примеры формулировок.
func Feedback(in FeedbackInput) []string {
	lines := make([]string, 0, 6)

	switch {
	case in.Combined >= 85:
		lines = append(lines, "Excellent match: the resume aligns very well with this job description.")
	case in.Combined >= 65:
		lines = append(lines, "Good match, with room to improve: highlight measurable achievements and the missing skills below.")
	case in.Combined >= 45:
		lines = append(lines, "Fair match: focus on adding the missing skills and tailor the summary and skills sections.")
	default:
		lines = append(lines, "Low match: tailor the resume to this job and add the missing skills with concrete achievements.")
	}

	missing := make([]string, 0, len(in.MissingRequired)+len(in.MissingPreferred))
	missing = append(missing, in.MissingRequired...)
	missing = append(missing, in.MissingPreferred...)
	switch {
	case len(in.MissingRequired) > 0 && len(in.MissingPreferred) > 0:
		lines = append(lines, fmt.Sprintf("Missing must-have skills: %s. Missing nice-to-have skills: %s.",
			strings.Join(in.MissingRequired, ", "), strings.Join(in.MissingPreferred, ", ")))
	case len(in.MissingRequired) > 0:
		lines = append(lines, "Missing must-have skills: "+strings.Join(in.MissingRequired, ", ")+".")
	case len(in.MissingPreferred) > 0:
		lines = append(lines, "Missing nice-to-have skills: "+strings.Join(in.MissingPreferred, ", ")+".")
	default:
		lines = append(lines, "All listed skills are present in the resume.")
	}
	if len(missing) > 0 {
		lines = append(lines, "How to fix: add these skills to a prominent skills section and back each with one or two bullet points showing where you applied it, with metrics where possible.")
	}

	lines = append(lines, fmt.Sprintf("Semantic similarity with the job description: %.1f%%.", in.SoftScore*100))

	switch {
	case in.WordCount < minResumeWords:
		lines = append(lines, "The resume may be too short: add more concrete bullets and metrics.")
	case in.WordCount > maxResumeWords:
		lines = append(lines, "The resume may be too long: trim less relevant experience and aim for clarity.")
	default:
		lines = append(lines, "Resume length looks fine.")
	}

	if in.WithExamples && len(missing) > 0 {
		n := len(missing)
		if n > maxExampleBullets {
			n = maxExampleBullets
		}
		for _, s := range missing[:n] {
			lines = append(lines, fmt.Sprintf("Example bullet: \"Implemented %s to achieve an X%% improvement in Y\" (quantify if possible).", s))
		}
	}

	return lines
}
