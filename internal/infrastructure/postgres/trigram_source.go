package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/despensa-api/internal/application/catalog"
	"github.com/jhoicas/despensa-api/internal/domain/matching"
)

var _ catalog.CandidateSource = (*TrigramSource)(nil)

// TrigramSource rankea el catálogo con similarity() de pg_trgm dentro de la BD.
type TrigramSource struct {
	q Querier
}

// NewTrigramSource construye la fuente. Usar solo si ProbeTrigram devolvió true.
func NewTrigramSource(q Querier) *TrigramSource {
	return &TrigramSource{q: q}
}

// Candidates implementa catalog.CandidateSource.
func (s *TrigramSource) Candidates(ctx context.Context, normalized string, limit int) ([]matching.Candidate, error) {
	if limit <= 0 {
		limit = matching.DefaultLimit
	}
	query := `
		SELECT id, seq, name, normalized_name, category, image_url,
		       similarity(normalized_name, $1)::float8 AS score
		FROM generic_products
		WHERE similarity(normalized_name, $1) >= $2
		ORDER BY score DESC, seq ASC
		LIMIT $3`
	rows, err := s.q.Query(ctx, query, normalized, matching.MinCandidateScore, limit)
	if err != nil {
		return nil, fmt.Errorf("trigram candidates: %w", err)
	}
	defer rows.Close()
	var cands []matching.Candidate
	for rows.Next() {
		var c matching.Candidate
		if err := rows.Scan(&c.ID, &c.Seq, &c.Name, &c.NormalizedName, &c.Category, &c.ImageURL, &c.Score); err != nil {
			return nil, fmt.Errorf("scan trigram candidate: %w", err)
		}
		cands = append(cands, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	// Rank reaplica umbral y desempate para que ambas fuentes ordenen igual.
	return matching.Rank(cands, limit), nil
}

// Mode implementa catalog.CandidateSource.
func (s *TrigramSource) Mode() string { return catalog.ModeTrigram }
