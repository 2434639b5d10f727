// Package matching puntúa la similitud entre nombres normalizados del catálogo
// y decide si una consulta debe reutilizar un candidato o crear un producto nuevo.
package matching

import (
	"strings"
	"unicode"

	"github.com/antzucaro/matchr"
)

// Scorer puntúa una consulta normalizada contra el nombre normalizado de un candidato.
// El resultado está en [0,1]; 1 significa idénticos.
type Scorer interface {
	Score(query, candidate string) float64
}

var (
	_ Scorer = TrigramScorer{}
	_ Scorer = TokenOverlapScorer{}
	_ Scorer = JaroWinklerScorer{}
)

// TrigramScorer reproduce similarity() de pg_trgm: cada palabra se rellena con dos espacios
// delante y uno detrás, se extraen sus trigramas y se calcula |A∩B| / |A∪B|. Es simétrico.
type TrigramScorer struct{}

// Score implementa Scorer.
func (TrigramScorer) Score(query, candidate string) float64 {
	a := trigrams(query)
	b := trigrams(candidate)
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	common := 0
	for g := range a {
		if _, ok := b[g]; ok {
			common++
		}
	}
	return float64(common) / float64(len(a)+len(b)-common)
}

func trigrams(s string) map[string]struct{} {
	words := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	set := make(map[string]struct{})
	for _, w := range words {
		padded := []rune("  " + w + " ")
		for i := 0; i+3 <= len(padded); i++ {
			set[string(padded[i:i+3])] = struct{}{}
		}
	}
	return set
}

// TokenOverlapScorer puntuador de respaldo cuando el motor no ofrece trigramas:
// fracción de tokens de la consulta que aparecen como subcadena del candidato.
type TokenOverlapScorer struct{}

// Score implementa Scorer.
func (TokenOverlapScorer) Score(query, candidate string) float64 {
	tokens := strings.Fields(query)
	if len(tokens) == 0 {
		return 0
	}
	hits := 0
	for _, tok := range tokens {
		if strings.Contains(candidate, tok) {
			hits++
		}
	}
	return float64(hits) / float64(len(tokens))
}

// JaroWinklerScorer similitud Jaro-Winkler sobre el nombre completo. Favorece prefijos
// comunes, útil cuando la transcripción corta o deforma el final de la palabra.
type JaroWinklerScorer struct{}

// Score implementa Scorer.
func (JaroWinklerScorer) Score(query, candidate string) float64 {
	if query == "" || candidate == "" {
		return 0
	}
	return matchr.JaroWinkler(query, candidate, false)
}
