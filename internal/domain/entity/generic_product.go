package entity

import "time"

// GenericProduct representa una entrada del catálogo global compartido por todos los usuarios
// (p. ej. "leite integral"). NormalizedName nunca está vacío si Name no lo está.
// Seq refleja el orden de inserción y desempata rankings y búsquedas exactas.
type GenericProduct struct {
	ID             string
	Seq            int64
	Name           string
	NormalizedName string
	Category       *string
	ImageURL       *string
	CreatedAt      time.Time
}
