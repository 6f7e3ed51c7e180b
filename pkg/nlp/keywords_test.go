package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeywordsEmptyInput(t *testing.T) {
	assert.Empty(t, Keywords("", 10))
	assert.Empty(t, Keywords("   ", 10))
	assert.Empty(t, Keywords("some text", 0))
}

func TestKeywordsLimitsToTopN(t *testing.T) {
	text := "python developer. sql databases. kubernetes clusters. terraform modules. grafana dashboards."
	kws := Keywords(text, 3)
	assert.Len(t, kws, 3)
}

func TestKeywordsExcludesStopwords(t *testing.T) {
	text := "the team builds services. the services run in the cloud. the cloud hosts the services."
	kws := Keywords(text, 10)
	require.NotEmpty(t, kws)
	for _, kw := range kws {
		for _, tok := range Tokens(kw) {
			assert.False(t, IsStopword(tok), "stopword %q leaked into keywords", tok)
		}
	}
	assert.Contains(t, kws, "services")
}

func TestKeywordsPrefersConcentratedTerms(t *testing.T) {
	// "go" размазан по всем сегментам, "terraform" сконцентрирован:
	// при равной частоте terraform должен весить больше за счёт idf.
	text := "go services. go pipelines. go tooling. terraform terraform terraform modules."
	kws := Keywords(text, 2)
	require.NotEmpty(t, kws)
	assert.Equal(t, "terraform", kws[0])
}

func TestKeywordsFallbackSingleSegment(t *testing.T) {
	// одно предложение — статистики для idf нет, работает частотный fallback
	kws := Keywords("python python sql", 2)
	assert.Equal(t, []string{"python", "sql"}, kws)
}

func TestKeywordsIncludesBigrams(t *testing.T) {
	text := "machine learning models. machine learning pipelines. machine learning infra."
	kws := Keywords(text, 10)
	assert.Contains(t, kws, "machine learning")
}

func TestTFIDFCosine(t *testing.T) {
	a := "python developer with sql experience"
	b := "looking for python and sql skills"

	sab, err := TFIDFCosine(a, b)
	require.NoError(t, err)
	sba, err := TFIDFCosine(b, a)
	require.NoError(t, err)
	assert.InDelta(t, sab, sba, 1e-9, "cosine must be symmetric")
	assert.GreaterOrEqual(t, sab, 0.0)
	assert.LessOrEqual(t, sab, 1.0)

	same, err := TFIDFCosine(a, a)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, same, 1e-9)

	unrelated, err := TFIDFCosine("python sql databases", "gardening flowers roses")
	require.NoError(t, err)
	assert.InDelta(t, 0.0, unrelated, 1e-9)
}

func TestTFIDFCosineZeroVectors(t *testing.T) {
	_, err := TFIDFCosine("", "")
	assert.ErrorIs(t, err, ErrZeroVector)

	_, err = TFIDFCosine("python sql", "")
	assert.ErrorIs(t, err, ErrZeroVector)

	// только стоп-слова — значимых термов нет
	_, err = TFIDFCosine("the and of", "python sql")
	assert.ErrorIs(t, err, ErrZeroVector)
}
