package ai

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/jhoicas/despensa-api/internal/application/dto"
	"github.com/jhoicas/despensa-api/internal/domain"
)

// jsonArrayRe captura desde el primer '[' hasta el último ']' aunque el modelo añada texto.
var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// extractJSONArray extrae el primer array JSON de un texto libre.
// Estrategia en dos pasos:
//  1. Eliminar bloques de código markdown (```json … ``` o ``` … ```).
//  2. Usar regex para capturar el bloque [ … ].
func extractJSONArray(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "[") {
		return text
	}
	return strings.TrimSpace(jsonArrayRe.FindString(text))
}

// itemsEnvelope algunos modelos envuelven el array en un objeto.
type itemsEnvelope struct {
	Items []dto.RawExtraction `json:"items"`
}

// parseExtractions convierte la respuesta del modelo en ítems. Cualquier salida que no
// sea un array JSON válido es un error de dependencia externa (domain.ErrUpstream).
func parseExtractions(raw string) ([]dto.RawExtraction, error) {
	clean := extractJSONArray(raw)
	if clean == "" {
		var env itemsEnvelope
		if err := json.Unmarshal([]byte(strings.TrimSpace(raw)), &env); err == nil && env.Items != nil {
			return env.Items, nil
		}
		return nil, fmt.Errorf("%w: no se encontró un array JSON en la respuesta del modelo", domain.ErrUpstream)
	}
	var items []dto.RawExtraction
	if err := json.Unmarshal([]byte(clean), &items); err != nil {
		return nil, fmt.Errorf("%w: parsear JSON de extracción: %v", domain.ErrUpstream, err)
	}
	if items == nil {
		items = []dto.RawExtraction{}
	}
	return items, nil
}
