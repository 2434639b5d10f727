package catalog

import (
	"context"
	"fmt"

	"github.com/jhoicas/despensa-api/internal/domain/matching"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
)

var _ CandidateSource = (*ScanSource)(nil)

// ScanSource recorre el catálogo completo y lo puntúa en proceso.
// Se usa cuando la base de datos no tiene la extensión pg_trgm.
type ScanSource struct {
	repo   repository.GenericProductRepository
	scorer matching.Scorer
}

// NewScanSource construye la fuente. scorer nil usa matching.TokenOverlapScorer.
func NewScanSource(repo repository.GenericProductRepository, scorer matching.Scorer) *ScanSource {
	if scorer == nil {
		scorer = matching.TokenOverlapScorer{}
	}
	return &ScanSource{repo: repo, scorer: scorer}
}

// Candidates implementa CandidateSource.
func (s *ScanSource) Candidates(ctx context.Context, normalized string, limit int) ([]matching.Candidate, error) {
	products, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar catálogo: %w", err)
	}
	scored := make([]matching.Candidate, 0, len(products))
	for _, p := range products {
		scored = append(scored, matching.Candidate{
			ID:             p.ID,
			Seq:            p.Seq,
			Name:           p.Name,
			NormalizedName: p.NormalizedName,
			Category:       p.Category,
			ImageURL:       p.ImageURL,
			Score:          s.scorer.Score(normalized, p.NormalizedName),
		})
	}
	return matching.Rank(scored, limit), nil
}

// Mode implementa CandidateSource.
func (s *ScanSource) Mode() string { return ModeFallback }
