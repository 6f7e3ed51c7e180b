package nlp

import (
	"errors"
	"math"
)

// ErrZeroVector возвращается, когда хотя бы один из текстов не дал
// ни одного значимого терма и косинус не определён.
var ErrZeroVector = errors.New("nlp: zero tf-idf vector")

// TFIDFCosine считает косинусную близость двух текстов по разреженным
// tf-idf векторам. Корпус для idf — сами эти два документа.
// Симметрична по построению. Диапазон [0,1].
func TFIDFCosine(a, b string) (float64, error) {
	va := termCounts(Normalize(a))
	vb := termCounts(Normalize(b))
	if len(va) == 0 || len(vb) == 0 {
		return 0, ErrZeroVector
	}

	// idf по двухдокументному корпусу: sklearn-вариант ln((1+n)/(1+df))+1,
	// чтобы общие термины не занулялись полностью.
	const n = 2.0
	idf := func(term string) float64 {
		df := 0.0
		if _, ok := va[term]; ok {
			df++
		}
		if _, ok := vb[term]; ok {
			df++
		}
		return math.Log((1+n)/(1+df)) + 1
	}

	var dot, na, nb float64
	for term, ca := range va {
		w := idf(term)
		wa := float64(ca) * w
		na += wa * wa
		if cb, ok := vb[term]; ok {
			dot += wa * float64(cb) * w
		}
	}
	for term, cb := range vb {
		wb := float64(cb) * idf(term)
		nb += wb * wb
	}
	if na == 0 || nb == 0 {
		return 0, ErrZeroVector
	}
	sim := dot / (math.Sqrt(na) * math.Sqrt(nb))
	if sim < 0 {
		sim = 0
	}
	if sim > 1 {
		sim = 1
	}
	return sim, nil
}

func termCounts(normalized string) map[string]int {
	counts := make(map[string]int)
	for _, tok := range Tokens(normalized) {
		if IsStopword(tok) || len(tok) < 2 {
			continue
		}
		counts[tok]++
	}
	return counts
}
