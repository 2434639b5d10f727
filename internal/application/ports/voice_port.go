package ports

import (
	"context"
	"io"

	"github.com/jhoicas/despensa-api/internal/application/dto"
)

// Extractor puerto de salida hacia el modelo de lenguaje que convierte texto libre
// en ítems estructurados. Cualquier adaptador (OpenAI, Anthropic, mock) lo implementa.
// El contexto debe llevar un timeout para evitar bloqueos en llamadas externas.
type Extractor interface {
	Extract(ctx context.Context, text string) ([]dto.RawExtraction, error)
}

// Transcriber puerto de salida hacia el servicio de voz a texto.
// language vacío significa detección automática.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, filename, contentType, language string) (string, error)
}
