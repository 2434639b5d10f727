package ai

import (
	"context"
	"fmt"
	"io"

	oai "github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/param"

	"github.com/jhoicas/despensa-api/internal/application/ports"
)

var _ ports.Transcriber = (*OpenAITranscriber)(nil)

// OpenAITranscriber adaptador de ports.Transcriber sobre /audio/transcriptions.
type OpenAITranscriber struct {
	client oai.Client
	model  string
}

// NewOpenAITranscriber construye el adaptador. model suele ser "whisper-1".
func NewOpenAITranscriber(apiKey, baseURL, model string) (*OpenAITranscriber, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("AI: OPENAI_API_KEY no configurado")
	}
	if model == "" {
		model = string(oai.AudioModelWhisper1)
	}
	return &OpenAITranscriber{client: newOpenAIClient(apiKey, baseURL), model: model}, nil
}

// Transcribe sube el audio tal cual; language vacío deja la detección al proveedor.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, audio io.Reader, filename, contentType, language string) (string, error) {
	if filename == "" {
		filename = "audio"
	}
	params := oai.AudioTranscriptionNewParams{
		File:  oai.File(audio, filename, contentType),
		Model: oai.AudioModel(t.model),
	}
	if language != "" {
		params.Language = param.NewOpt(language)
	}

	res, err := t.client.Audio.Transcriptions.New(ctx, params)
	if err != nil {
		return "", upstreamError(ctx, "transcripción", err)
	}
	return res.Text, nil
}
