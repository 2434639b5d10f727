package matching

import "sort"

// Umbrales del emparejamiento. AcceptScore es estrictamente mayor que MinCandidateScore:
// una consulta puede listar candidatos de baja confianza y aun así sugerir crear uno nuevo.
const (
	MinCandidateScore = 0.20
	AcceptScore       = 0.35
	DefaultLimit      = 5
)

// Action acción sugerida al usuario para un ítem extraído.
type Action string

const (
	ActionSelectCandidate Action = "select_candidate"
	ActionCreateNew       Action = "create_new"
)

// Candidate entrada del catálogo puntuada contra una consulta.
type Candidate struct {
	ID             string
	Seq            int64
	Name           string
	NormalizedName string
	Category       *string
	ImageURL       *string
	Score          float64
}

// Rank descarta candidatos bajo MinCandidateScore, ordena por puntuación descendente
// (empate: orden de inserción) y recorta a limit. limit <= 0 usa DefaultLimit.
func Rank(candidates []Candidate, limit int) []Candidate {
	if limit <= 0 {
		limit = DefaultLimit
	}
	kept := make([]Candidate, 0, len(candidates))
	for _, c := range candidates {
		if c.Score >= MinCandidateScore {
			kept = append(kept, c)
		}
	}
	sort.SliceStable(kept, func(i, j int) bool {
		if kept[i].Score != kept[j].Score {
			return kept[i].Score > kept[j].Score
		}
		return kept[i].Seq < kept[j].Seq
	})
	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// SuggestAction: create_new si no hay candidatos o el mejor queda bajo AcceptScore.
func SuggestAction(candidates []Candidate) Action {
	if len(candidates) == 0 {
		return ActionCreateNew
	}
	top := candidates[0].Score
	for _, c := range candidates[1:] {
		if c.Score > top {
			top = c.Score
		}
	}
	if top < AcceptScore {
		return ActionCreateNew
	}
	return ActionSelectCandidate
}
