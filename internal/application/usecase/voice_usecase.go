package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/despensa-api/internal/application/catalog"
	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/ports"
	"github.com/jhoicas/despensa-api/internal/domain"
	"github.com/jhoicas/despensa-api/internal/domain/inventory"
	"github.com/jhoicas/despensa-api/internal/domain/matching"
)

const (
	defaultAITimeout      = 30 * time.Second
	defaultMatchWorkers   = 4
	warnMissingProduct    = "produto não identificado"
	warnConfidenceClamped = "confiança fora do intervalo"
)

// VoiceConfig parámetros del pipeline de voz.
type VoiceConfig struct {
	AITimeout        time.Duration
	MatchConcurrency int
	CandidateLimit   int
}

// VoiceUseCase orquesta transcripción, extracción y emparejamiento contra el catálogo.
// Cada llamada a un proveedor externo corre con AITimeout.
type VoiceUseCase struct {
	extractor   ports.Extractor
	transcriber ports.Transcriber
	resolver    *catalog.Resolver
	validate    *validator.Validate
	cfg         VoiceConfig
	log         zerolog.Logger
}

// NewVoiceUseCase construye el caso de uso. transcriber puede ser nil (endpoint deshabilitado).
func NewVoiceUseCase(extractor ports.Extractor, transcriber ports.Transcriber, resolver *catalog.Resolver, cfg VoiceConfig, log zerolog.Logger) *VoiceUseCase {
	if cfg.AITimeout <= 0 {
		cfg.AITimeout = defaultAITimeout
	}
	if cfg.MatchConcurrency <= 0 {
		cfg.MatchConcurrency = defaultMatchWorkers
	}
	if cfg.CandidateLimit <= 0 {
		cfg.CandidateLimit = matching.DefaultLimit
	}
	return &VoiceUseCase{
		extractor:   extractor,
		transcriber: transcriber,
		resolver:    resolver,
		validate:    validator.New(),
		cfg:         cfg,
		log:         log,
	}
}

// ParseText envía el texto al extractor y devuelve los ítems con los campos derivados
// completados: product_normalized si falta, quantity_base/unit_base/expiry_date nulos.
func (uc *VoiceUseCase) ParseText(ctx context.Context, req dto.ParseTextRequest) ([]dto.RawExtraction, error) {
	req.Text = strings.TrimSpace(req.Text)
	if err := uc.validate.Struct(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if uc.extractor == nil {
		return nil, fmt.Errorf("%w: extractor no configurado", domain.ErrUpstream)
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.AITimeout)
	defer cancel()

	items, err := uc.extractor.Extract(ctx, req.Text)
	if err != nil {
		uc.log.Warn().Err(err).Int("text_len", len(req.Text)).Msg("extracción fallida")
		return nil, fmt.Errorf("extracción: %w", err)
	}

	out := make([]dto.RawExtraction, 0, len(items))
	for _, it := range items {
		out = append(out, finishExtraction(it, req.Text))
	}
	uc.log.Info().Int("items", len(out)).Msg("texto extraído")
	return out, nil
}

func finishExtraction(it dto.RawExtraction, text string) dto.RawExtraction {
	it.ProductName = strings.TrimSpace(it.ProductName)
	if strings.TrimSpace(it.SourceText) == "" {
		it.SourceText = text
	}
	if it.Warnings == nil {
		it.Warnings = []string{}
	}
	if it.ProductName == "" {
		it.Warnings = append(it.Warnings, warnMissingProduct)
	}
	if it.ProductNormalized == nil || strings.TrimSpace(*it.ProductNormalized) == "" {
		norm := inventory.NormalizeProductName(it.ProductName)
		it.ProductNormalized = &norm
	}
	if it.Confidence != nil && (*it.Confidence < 0 || *it.Confidence > 1) {
		c := min(max(*it.Confidence, 0), 1)
		it.Confidence = &c
		it.Warnings = append(it.Warnings, warnConfidenceClamped)
	}
	it.QuantityBase = nil
	it.UnitBase = nil
	it.ExpiryDate = nil
	return it
}

// MatchItems busca candidatos del catálogo para cada ítem, en paralelo y acotado por
// MatchConcurrency. El resultado conserva el orden de la entrada.
func (uc *VoiceUseCase) MatchItems(ctx context.Context, items []dto.RawExtraction) ([]dto.MatchItemResponse, error) {
	for i := range items {
		if err := uc.validate.Struct(items[i]); err != nil {
			return nil, fmt.Errorf("%w: ítem %d: %v", domain.ErrInvalidInput, i, err)
		}
	}

	out := make([]dto.MatchItemResponse, len(items))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.cfg.MatchConcurrency)
	for i := range items {
		g.Go(func() error {
			res, err := uc.matchOne(gctx, items[i])
			if err != nil {
				return fmt.Errorf("ítem %d: %w", i, err)
			}
			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (uc *VoiceUseCase) matchOne(ctx context.Context, it dto.RawExtraction) (dto.MatchItemResponse, error) {
	hint := ""
	if it.ProductNormalized != nil {
		hint = *it.ProductNormalized
	}
	src := hint
	if strings.TrimSpace(src) == "" {
		src = it.ProductName
	}

	cands, err := uc.resolver.FindCandidates(ctx, it.ProductName, hint, uc.cfg.CandidateLimit)
	if err != nil {
		return dto.MatchItemResponse{}, err
	}
	res := dto.MatchItemResponse{
		SourceText:        it.SourceText,
		ProductName:       it.ProductName,
		ProductNormalized: inventory.NormalizeProductName(src),
		Candidates:        make([]dto.CandidateDTO, 0, len(cands)),
		SuggestedAction:   string(matching.SuggestAction(cands)),
	}
	for _, c := range cands {
		res.Candidates = append(res.Candidates, dto.CandidateDTO{
			ID:         c.ID,
			Name:       c.Name,
			Normalized: nonEmpty(c.NormalizedName),
			Category:   c.Category,
			ImageURL:   c.ImageURL,
			Score:      c.Score,
		})
	}
	return res, nil
}

// Transcribe convierte audio en texto. Los tipos de contenido que no son audio/* se
// rechazan antes de tocar el proveedor. language "auto" o vacío delega la detección.
func (uc *VoiceUseCase) Transcribe(ctx context.Context, audio io.Reader, filename, contentType, language string) (*dto.TranscribeResponse, error) {
	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "audio/") {
		return nil, fmt.Errorf("%w: envie um arquivo de áudio", domain.ErrInvalidInput)
	}
	if uc.transcriber == nil {
		return nil, fmt.Errorf("%w: transcriptor no configurado", domain.ErrUpstream)
	}
	lang := strings.TrimSpace(language)
	if strings.EqualFold(lang, "auto") {
		lang = ""
	}

	ctx, cancel := context.WithTimeout(ctx, uc.cfg.AITimeout)
	defer cancel()

	text, err := uc.transcriber.Transcribe(ctx, audio, filename, contentType, lang)
	if err != nil {
		uc.log.Warn().Err(err).Str("content_type", contentType).Msg("transcripción fallida")
		return nil, fmt.Errorf("transcripción: %w", err)
	}
	return &dto.TranscribeResponse{Text: strings.TrimSpace(text)}, nil
}

// CandidateMode modo activo de la fuente de candidatos (trigram | fallback).
func (uc *VoiceUseCase) CandidateMode() string {
	return uc.resolver.Mode()
}

func nonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
