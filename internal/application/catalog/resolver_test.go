package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/despensa-api/internal/application/catalog"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"github.com/jhoicas/despensa-api/internal/domain/matching"
	"github.com/jhoicas/despensa-api/internal/infrastructure/memory"
)

func newResolver(t *testing.T, scorer matching.Scorer, seed ...*entity.GenericProduct) (*catalog.Resolver, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	store.Products().Seed(seed...)
	repo := store.Products()
	return catalog.NewResolver(repo, catalog.NewScanSource(repo, scorer)), store
}

func product(id, name, normalized string) *entity.GenericProduct {
	return &entity.GenericProduct{ID: id, Name: name, NormalizedName: normalized}
}

func TestResolveOrCreate_PorNombreNormalizado(t *testing.T) {
	r, store := newResolver(t, nil, product("p1", "Leite Integral", "leite integral"))

	got, created, err := r.ResolveOrCreate(context.Background(), "leite   INTEGRAL!!", "", true)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "p1", got.ID)

	n, _, _, _ := store.Counts()
	assert.Equal(t, 1, n)
}

func TestResolveOrCreate_HintTienePrioridad(t *testing.T) {
	r, _ := newResolver(t, nil, product("p1", "Arroz", "arroz"))

	got, created, err := r.ResolveOrCreate(context.Background(), "Arroz tipo 1 da marca X", "arroz", false)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "p1", got.ID)
}

func TestResolveOrCreate_PorNombreExacto(t *testing.T) {
	// Normalizado distinto (entrada antigua) pero mismo nombre para mostrar.
	r, _ := newResolver(t, nil, product("p1", "Café", "cafe torrado"))

	got, created, err := r.ResolveOrCreate(context.Background(), "Café", "", false)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "p1", got.ID)
}

func TestResolveOrCreate_DesempataPorOrdenDeInsercion(t *testing.T) {
	r, _ := newResolver(t, nil,
		product("viejo", "Feijão", "feijao"),
		product("nuevo", "feijão", "feijao"),
	)
	got, _, err := r.ResolveOrCreate(context.Background(), "feijão", "", false)
	require.NoError(t, err)
	assert.Equal(t, "viejo", got.ID)
}

func TestResolveOrCreate_CreaSiFalta(t *testing.T) {
	r, store := newResolver(t, nil)

	got, created, err := r.ResolveOrCreate(context.Background(), "  Pão de Queijo ", "", true)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Pão de Queijo", got.Name)
	assert.Equal(t, "pao queijo", got.NormalizedName)
	assert.NotEmpty(t, got.ID)

	again, created, err := r.ResolveOrCreate(context.Background(), "pão  de queijo", "", true)
	require.NoError(t, err)
	assert.False(t, created, "no se crean dos entradas con el mismo nombre normalizado")
	assert.Equal(t, got.ID, again.ID)

	n, _, _, _ := store.Counts()
	assert.Equal(t, 1, n)
}

func TestResolveOrCreate_SinCrearDevuelveNotFound(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, _, err := r.ResolveOrCreate(context.Background(), "Azeite", "", false)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestResolveOrCreate_SoloStopwordsUsaFormaPlegada(t *testing.T) {
	r, _ := newResolver(t, nil)
	got, created, err := r.ResolveOrCreate(context.Background(), "Da", "", true)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "da", got.NormalizedName)
}

func TestResolveOrCreate_NombreVacio(t *testing.T) {
	r, _ := newResolver(t, nil)
	_, _, err := r.ResolveOrCreate(context.Background(), "  ", "", true)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFindCandidates_Trigram(t *testing.T) {
	r, _ := newResolver(t, matching.TrigramScorer{},
		product("p1", "Leite Integral", "leite integral"),
		product("p2", "Leite Desnatado", "leite desnatado"),
		product("p3", "Arroz", "arroz"),
	)
	got, err := r.FindCandidates(context.Background(), "Leite integral", "", 5)
	require.NoError(t, err)
	require.NotEmpty(t, got)
	assert.Equal(t, "p1", got[0].ID)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	for _, c := range got {
		assert.NotEqual(t, "p3", c.ID, "arroz no supera el umbral")
		assert.GreaterOrEqual(t, c.Score, matching.MinCandidateScore)
	}
	assert.Equal(t, matching.ActionSelectCandidate, matching.SuggestAction(got))
}

func TestFindCandidates_Fallback(t *testing.T) {
	r, _ := newResolver(t, nil,
		product("p1", "Leite Integral", "leite integral"),
		product("p2", "Leite Desnatado", "leite desnatado"),
		product("p3", "Arroz", "arroz"),
	)
	got, err := r.FindCandidates(context.Background(), "leite integral", "", 5)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
	assert.InDelta(t, 0.5, got[1].Score, 1e-9)
	assert.Equal(t, catalog.ModeFallback, r.Mode())
}

func TestFindCandidates_ConsultaVacia(t *testing.T) {
	r, _ := newResolver(t, nil, product("p1", "Leite", "leite"))
	got, err := r.FindCandidates(context.Background(), "de", "", 5)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Equal(t, matching.ActionCreateNew, matching.SuggestAction(got))
}

func TestFindCandidates_RespetaLimite(t *testing.T) {
	var seed []*entity.GenericProduct
	for _, n := range []string{"queijo minas", "queijo prato", "queijo ralado", "queijo coalho", "queijo brie", "queijo gouda"} {
		seed = append(seed, product(n, n, n))
	}
	r, _ := newResolver(t, nil, seed...)
	got, err := r.FindCandidates(context.Background(), "queijo", "", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "queijo minas", got[0].ID, "empates por orden de inserción")
}

func TestFindCandidates_CandidatosDeBajaConfianza(t *testing.T) {
	r, _ := newResolver(t, nil, product("p1", "Molho de tomate", "molho tomate"))
	got, err := r.FindCandidates(context.Background(), "molho shoyu pimenta extra", "", 5)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.InDelta(t, 0.25, got[0].Score, 1e-9)
	assert.Equal(t, matching.ActionCreateNew, matching.SuggestAction(got))
}
