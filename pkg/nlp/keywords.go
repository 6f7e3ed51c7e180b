package nlp

import (
	"math"
	"regexp"
	"sort"
	"strings"
)

var reSegment = regexp.MustCompile(`[.!?;]+`)

type scoredTerm struct {
	term   string
	weight float64
	first  int // позиция первого вхождения, для стабильного порядка при равных весах
}

// Keywords возвращает до topN наиболее значимых терминов документа
// (униграммы и биграммы), по убыванию значимости.
//
// Значимость — tf-idf, где «корпус» для idf составляют предложения самого
// документа: термин, встречающийся во всех предложениях, получает меньший
// вес, чем сконцентрированный в одном. Стоп-слова отбрасываются.
// Если статистику посчитать нельзя (одно предложение, вырожденный текст),
// используется запасной вариант — ранжирование по сырой частоте токенов.
func Keywords(text string, topN int) []string {
	if topN <= 0 {
		return nil
	}
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	segments := splitSegments(normalized)
	if len(segments) < 2 {
		return frequencyFallback(normalized, topN)
	}

	docTokens := Tokens(normalized)
	terms := candidateTerms(docTokens)
	if len(terms) == 0 {
		return frequencyFallback(normalized, topN)
	}

	// df: в скольких сегментах термин встречается.
	df := make(map[string]int, len(terms))
	for _, seg := range segments {
		hay := " " + strings.Join(Tokens(seg), " ") + " "
		for term := range terms {
			if strings.Contains(hay, " "+term+" ") {
				df[term]++
			}
		}
	}

	n := float64(len(segments))
	scored := make([]scoredTerm, 0, len(terms))
	for term, stat := range terms {
		idf := math.Log((1+n)/(1+float64(df[term]))) + 1
		scored = append(scored, scoredTerm{
			term:   term,
			weight: float64(stat.count) * idf,
			first:  stat.first,
		})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].weight != scored[j].weight {
			return scored[i].weight > scored[j].weight
		}
		return scored[i].first < scored[j].first
	})

	out := make([]string, 0, topN)
	for _, s := range scored {
		if len(out) == topN {
			break
		}
		out = append(out, s.term)
	}
	return out
}

type termStat struct {
	count int
	first int
}

// candidateTerms собирает униграммы и биграммы с частотами и позицией
// первого вхождения. Стоп-слова и односимвольные токены не участвуют.
func candidateTerms(tokens []string) map[string]termStat {
	terms := make(map[string]termStat)
	bump := func(term string, pos int) {
		st, ok := terms[term]
		if !ok {
			st = termStat{first: pos}
		}
		st.count++
		terms[term] = st
	}
	for i, tok := range tokens {
		if IsStopword(tok) || len(tok) < 2 {
			continue
		}
		bump(tok, i)
		if i+1 < len(tokens) {
			next := tokens[i+1]
			if !IsStopword(next) && len(next) >= 2 {
				bump(tok+" "+next, i)
			}
		}
	}
	return terms
}

func splitSegments(normalized string) []string {
	parts := reSegment.Split(normalized, -1)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// frequencyFallback ранжирует токены по сырой частоте, без стоп-слов и idf.
func frequencyFallback(normalized string, topN int) []string {
	tokens := Tokens(normalized)
	if len(tokens) == 0 {
		return nil
	}
	counts := make(map[string]termStat, len(tokens))
	for i, tok := range tokens {
		st, ok := counts[tok]
		if !ok {
			st = termStat{first: i}
		}
		st.count++
		counts[tok] = st
	}
	scored := make([]scoredTerm, 0, len(counts))
	for tok, st := range counts {
		scored = append(scored, scoredTerm{term: tok, weight: float64(st.count), first: st.first})
	}
	sort.Slice(scored, func(i, j int) bool {
		if scored[i].weight != scored[j].weight {
			return scored[i].weight > scored[j].weight
		}
		return scored[i].first < scored[j].first
	})
	out := make([]string, 0, topN)
	for _, s := range scored {
		if len(out) == topN {
			break
		}
		out = append(out, s.term)
	}
	return out
}
