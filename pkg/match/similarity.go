package match

import (
	"context"
	"errors"
	"math"

	"go.uber.org/zap"

	"github.com/suvarna009/resume-matcher/pkg/embedding"
	"github.com/suvarna009/resume-matcher/pkg/nlp"
)

// Strategy — один способ посчитать схожесть двух текстов.
// Возвращает значение в [0,1] либо ошибку; решений «вернуть ноль вместо
// ошибки» стратегия не принимает — это дело цепочки.
type Strategy interface {
	Name() string
	Score(ctx context.Context, a, b string) (float64, error)
}

// SimResult — типизированный исход вычисления схожести. Strategy
// хранит имя сработавшего яруса: "none" означает, что все ярусы отказали
// и ноль — значение по умолчанию, а не результат расчёта.
type SimResult struct {
	Score    float64
	Strategy string
}

// StrategyNone — маркер полного отказа цепочки.
const StrategyNone = "none"

// Chain пробует стратегии в фиксированном порядке и никогда не
// возвращает ошибку: полный отказ деградирует в нулевой скор.
type Chain struct {
	strategies []Strategy
	log        *zap.Logger
}

// NewChain собирает цепочку из ненулевых стратегий.
func NewChain(log *zap.Logger, strategies ...Strategy) *Chain {
	if log == nil {
		log = zap.NewNop()
	}
	out := make([]Strategy, 0, len(strategies))
	for _, s := range strategies {
		if s != nil {
			out = append(out, s)
		}
	}
	return &Chain{strategies: out, log: log}
}

// Score возвращает схожесть a и b по первой сработавшей стратегии.
func (c *Chain) Score(ctx context.Context, a, b string) SimResult {
	for _, s := range c.strategies {
		score, err := s.Score(ctx, a, b)
		if err != nil {
			c.log.Warn("similarity strategy failed, trying next",
				zap.String("strategy", s.Name()),
				zap.Error(err),
			)
			continue
		}
		return SimResult{Score: clamp01(score), Strategy: s.Name()}
	}
	return SimResult{Score: 0, Strategy: StrategyNone}
}

// EmbeddingStrategy — основной ярус: косинус векторов от sentence-энкодера.
type EmbeddingStrategy struct {
	encoder embedding.Encoder
}

func NewEmbeddingStrategy(enc embedding.Encoder) *EmbeddingStrategy {
	return &EmbeddingStrategy{encoder: enc}
}

func (s *EmbeddingStrategy) Name() string { return "embedding" }

func (s *EmbeddingStrategy) Score(ctx context.Context, a, b string) (float64, error) {
	if s.encoder == nil {
		return 0, errors.New("encoder is not configured")
	}
	if a == "" || b == "" {
		return 0, errors.New("empty text")
	}
	vecs, err := s.encoder.Embed(ctx, []string{a, b})
	if err != nil {
		return 0, err
	}
	if len(vecs) != 2 {
		return 0, errors.New("encoder returned wrong number of vectors")
	}
	return cosine32(vecs[0], vecs[1])
}

// LexicalStrategy — запасной ярус: косинус разреженных tf-idf векторов.
type LexicalStrategy struct{}

func (LexicalStrategy) Name() string { return "lexical" }

func (LexicalStrategy) Score(_ context.Context, a, b string) (float64, error) {
	return nlp.TFIDFCosine(a, b)
}

func cosine32(a, b []float32) (float64, error) {
	if len(a) == 0 || len(b) == 0 || len(a) != len(b) {
		return 0, errors.New("bad vector dimensions")
	}
	var dot, na, nb float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0, errors.New("zero vector")
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb)), nil
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
