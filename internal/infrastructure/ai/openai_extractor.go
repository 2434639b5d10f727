// Package ai contiene los adaptadores hacia los proveedores de modelos (extracción y transcripción).
package ai

import (
	"context"
	"errors"
	"fmt"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/param"
	"github.com/openai/openai-go/shared"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/application/ports"
	"github.com/jhoicas/despensa-api/internal/domain"
)

var _ ports.Extractor = (*OpenAIExtractor)(nil)

// OpenAIExtractor adaptador de ports.Extractor sobre Chat Completions.
type OpenAIExtractor struct {
	client oai.Client
	model  string
}

// newOpenAIClient arma el cliente con la clave y, si viene, una URL base alternativa
// (proxies compatibles o servidores de prueba).
func newOpenAIClient(apiKey, baseURL string) oai.Client {
	opts := []option.RequestOption{option.WithAPIKey(apiKey), option.WithMaxRetries(0)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return oai.NewClient(opts...)
}

// NewOpenAIExtractor construye el adaptador. model suele ser "gpt-4o-mini".
func NewOpenAIExtractor(apiKey, baseURL, model string) (*OpenAIExtractor, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}
	if model == "" {
		return nil, fmt.Errorf("AI: modelo de extracción vacío")
	}
	return &OpenAIExtractor{client: newOpenAIClient(apiKey, baseURL), model: model}, nil
}

// Extract envía el texto al modelo y parsea el array JSON de la respuesta.
func (e *OpenAIExtractor) Extract(ctx context.Context, text string) ([]dto.RawExtraction, error) {
	params := oai.ChatCompletionNewParams{
		Model: shared.ChatModel(e.model),
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(extractionSystemPrompt),
			oai.UserMessage(extractionUserPrompt(text)),
		},
		Temperature: param.NewOpt(0.0),
	}

	resp, err := e.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return nil, upstreamError(ctx, "chat completion", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: el modelo devolvió respuesta vacía", domain.ErrUpstream)
	}
	return parseExtractions(resp.Choices[0].Message.Content)
}

// upstreamError conserva los errores de contexto (timeout/cancelación) y envuelve el resto en ErrUpstream.
func upstreamError(ctx context.Context, op string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("AI: %s: %w", op, ctxErr)
	}
	var apiErr *oai.Error
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %s: HTTP %d", domain.ErrUpstream, op, apiErr.StatusCode)
	}
	return fmt.Errorf("%w: %s: %v", domain.ErrUpstream, op, err)
}
