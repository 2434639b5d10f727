package matching_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/despensa-api/internal/domain/matching"
)

func TestTrigramScorer_Identicos(t *testing.T) {
	s := matching.TrigramScorer{}
	assert.InDelta(t, 1.0, s.Score("leite integral", "leite integral"), 1e-9)
	assert.InDelta(t, 0.0, s.Score("", "leite"), 1e-9)
	assert.InDelta(t, 0.0, s.Score("arroz", "feijao"), 1e-9)
}

func TestTrigramScorer_Simetrico(t *testing.T) {
	s := matching.TrigramScorer{}
	pairs := [][2]string{
		{"leite integral", "leite desnatado"},
		{"arroz", "arroz integral"},
		{"cafe", "cafe torrado moido"},
	}
	for _, p := range pairs {
		assert.InDelta(t, s.Score(p[0], p[1]), s.Score(p[1], p[0]), 1e-9)
	}
}

// Valor de referencia: similarity('word','two words') de pg_trgm es 0.363636.
func TestTrigramScorer_ValorPgTrgm(t *testing.T) {
	assert.InDelta(t, 0.363636, matching.TrigramScorer{}.Score("word", "two words"), 1e-5)
}

func TestTrigramScorer_Monotono(t *testing.T) {
	s := matching.TrigramScorer{}
	query := "leite integral"
	divergentes := []string{
		"leite integral",
		"leite integra",
		"leite integ",
		"leite int",
		"leite",
		"lei",
		"queijo",
	}
	prev := 2.0
	for _, c := range divergentes {
		score := s.Score(query, c)
		assert.LessOrEqual(t, score, prev, "candidato %q", c)
		prev = score
	}
}

func TestTokenOverlapScorer(t *testing.T) {
	s := matching.TokenOverlapScorer{}
	assert.InDelta(t, 1.0, s.Score("leite integral", "leite integral"), 1e-9)
	assert.InDelta(t, 0.5, s.Score("leite integral", "leite desnatado"), 1e-9)
	assert.InDelta(t, 1.0, s.Score("arroz", "arroz parboilizado"), 1e-9)
	assert.InDelta(t, 0.0, s.Score("", "arroz"), 1e-9)
	assert.InDelta(t, 0.0, s.Score("feijao", "arroz"), 1e-9)
}

func TestTokenOverlapScorer_Monotono(t *testing.T) {
	s := matching.TokenOverlapScorer{}
	query := "leite condensado integral"
	divergentes := []string{
		"leite condensado integral",
		"leite condensado",
		"leite",
		"queijo",
	}
	prev := 2.0
	for _, c := range divergentes {
		score := s.Score(query, c)
		assert.LessOrEqual(t, score, prev, "candidato %q", c)
		prev = score
	}
}

func TestJaroWinklerScorer(t *testing.T) {
	s := matching.JaroWinklerScorer{}

	assert.InDelta(t, 1.0, s.Score("leite integral", "leite integral"), 1e-9)
	assert.Greater(t, s.Score("leite integral", "leite integra"), 0.9)
	assert.Less(t, s.Score("arroz", "leite"), matching.MinCandidateScore)
	assert.Zero(t, s.Score("", "leite"))
}
