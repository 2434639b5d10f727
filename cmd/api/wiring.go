package main

import (
	"context"
	"fmt"

	"github.com/jhoicas/despensa-api/internal/application/catalog"
	"github.com/jhoicas/despensa-api/internal/application/inventory"
	"github.com/jhoicas/despensa-api/internal/application/ports"
	"github.com/jhoicas/despensa-api/internal/domain/matching"
	"github.com/jhoicas/despensa-api/internal/domain/repository"
	infraai "github.com/jhoicas/despensa-api/internal/infrastructure/ai"
	"github.com/jhoicas/despensa-api/internal/infrastructure/memory"
	"github.com/jhoicas/despensa-api/internal/infrastructure/postgres"
	"github.com/jhoicas/despensa-api/pkg/config"
	"github.com/jhoicas/despensa-api/pkg/logger"
)

// storage repositorios de lectura, runner transaccional y fuente de candidatos ya elegidos.
type storage struct {
	products  repository.GenericProductRepository
	items     repository.StockItemRepository
	movements repository.StockMovementRepository
	txRunner  inventory.TxRunner
	source    catalog.CandidateSource
	close     func()
}

func fallbackScorer(name string) matching.Scorer {
	switch name {
	case config.ScorerTrigram:
		return matching.TrigramScorer{}
	case config.ScorerJaroWinkler:
		return matching.JaroWinklerScorer{}
	}
	return matching.TokenOverlapScorer{}
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*storage, error) {
	if cfg.Storage == config.StorageMemory {
		store := memory.NewStore()
		products := store.Products()
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return &storage{
			products:  products,
			items:     store.Items(),
			movements: store.Movements(),
			txRunner:  memory.NewTxRunner(store),
			source:    catalog.NewScanSource(products, fallbackScorer(cfg.Match.FallbackScorer)),
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if err := postgres.Migrate(ctx, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrar esquema: %w", err)
	}
	// pg_trgm requiere permisos de creación de extensiones; sin ellos se usa el scorer en proceso.
	if err := postgres.EnableTrigram(ctx, pool); err != nil {
		log.Warn().Err(err).Msg("pg_trgm no disponible")
	}

	products := postgres.NewGenericProductRepository(pool)
	var source catalog.CandidateSource = postgres.NewTrigramSource(pool)
	ok, err := postgres.ProbeTrigram(ctx, pool)
	if err != nil {
		log.Warn().Err(err).Msg("sondeo de similarity()")
	}
	if !ok {
		source = catalog.NewScanSource(products, fallbackScorer(cfg.Match.FallbackScorer))
	}
	return &storage{
		products:  products,
		items:     postgres.NewStockItemRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		txRunner:  postgres.NewTxRunner(pool),
		source:    source,
		close:     pool.Close,
	}, nil
}

// buildAI elige el extractor según AI_PROVIDER. Sin la clave del proveedor el extractor queda nil
// y /voice/parse-text responde UPSTREAM; la transcripción solo existe con clave de OpenAI.
func buildAI(cfg config.AIConfig, log *logger.Logger) (ports.Extractor, ports.Transcriber, error) {
	var transcriber ports.Transcriber
	if cfg.OpenAIKey != "" {
		tr, err := infraai.NewOpenAITranscriber(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.TranscribeModel)
		if err != nil {
			return nil, nil, err
		}
		transcriber = tr
	} else {
		log.Warn().Msg("OPENAI_API_KEY vacío: transcripción deshabilitada")
	}

	switch cfg.Provider {
	case config.ProviderAnthropic:
		if cfg.AnthropicKey == "" {
			log.Warn().Msg("ANTHROPIC_API_KEY vacío: extracción deshabilitada")
			return nil, transcriber, nil
		}
		return infraai.NewAnthropicExtractor(cfg.AnthropicKey, cfg.AnthropicModel), transcriber, nil
	default:
		if cfg.OpenAIKey == "" {
			log.Warn().Msg("OPENAI_API_KEY vacío: extracción deshabilitada")
			return nil, transcriber, nil
		}
		ext, err := infraai.NewOpenAIExtractor(cfg.OpenAIKey, cfg.OpenAIBaseURL, cfg.ExtractModel)
		if err != nil {
			return nil, nil, err
		}
		return ext, transcriber, nil
	}
}
