package match

import "math"

// Band — нижняя граница диапазона комбинированного скора и его вердикт.
// Границы включительны снизу.
type Band struct {
	Min     float64
	Verdict string
}

// Policy — политика взвешивания hard/soft сигналов и таблица вердиктов.
// HardWeight + SoftWeight = 1.
type Policy struct {
	Name       string
	HardWeight float64
	SoftWeight float64
	Bands      []Band // по убыванию Min; последний элемент — Min 0
}

// Два исторически сложившихся варианта скоринга, намеренно оба:
// balanced — 60/40 с трёхуровневым вердиктом, semantic — 30/70
// с четырёхуровневой шкалой.
var (
	PolicyBalanced = Policy{
		Name:       "balanced",
		HardWeight: 0.6,
		SoftWeight: 0.4,
		Bands: []Band{
			{Min: 70, Verdict: "High"},
			{Min: 40, Verdict: "Medium"},
			{Min: 0, Verdict: "Low"},
		},
	}
	PolicySemantic = Policy{
		Name:       "semantic",
		HardWeight: 0.3,
		SoftWeight: 0.7,
		Bands: []Band{
			{Min: 85, Verdict: "Excellent"},
			{Min: 65, Verdict: "Good"},
			{Min: 45, Verdict: "Fair"},
			{Min: 0, Verdict: "Low"},
		},
	}
)

// PolicyByName возвращает именованный пресет.
func PolicyByName(name string) (Policy, bool) {
	switch name {
	case PolicyBalanced.Name:
		return PolicyBalanced, true
	case PolicySemantic.Name:
		return PolicySemantic, true
	default:
		return Policy{}, false
	}
}

// Combine смешивает hard и soft скоры ([0,1]) по весам политики и
// возвращает процент [0,100], округлённый до двух знаков.
// Чистая функция.
func Combine(hard, soft float64, p Policy) float64 {
	total := hard*p.HardWeight + soft*p.SoftWeight
	return round2(total * 100)
}

// VerdictFor находит вердикт для комбинированного скора: первая полоса,
// нижняя граница которой не превышает скор. Полосы покрывают [0,100]
// целиком и не пересекаются.
func (p Policy) VerdictFor(combined float64) string {
	for _, b := range p.Bands {
		if combined >= b.Min {
			return b.Verdict
		}
	}
	// пустая таблица — не бывает у пресетов, но не паникуем
	return "Low"
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
