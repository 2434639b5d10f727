package catalog

import (
	"context"

	"github.com/jhoicas/despensa-api/internal/domain/matching"
)

// Modos de búsqueda de candidatos reportados en /health.
const (
	ModeTrigram  = "trigram"
	ModeFallback = "fallback"
)

// CandidateSource puntúa el catálogo contra un nombre normalizado. Hay dos implementaciones,
// elegidas al arrancar según las capacidades del motor: similarity() de pg_trgm en la base
// de datos o ScanSource con un matching.Scorer en proceso.
// Las implementaciones devuelven candidatos ya filtrados y ordenados con matching.Rank.
type CandidateSource interface {
	Candidates(ctx context.Context, normalized string, limit int) ([]matching.Candidate, error)
	Mode() string
}
