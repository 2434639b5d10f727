package dto

// ParseTextRequest body de POST /voice/parse-text.
type ParseTextRequest struct {
	Text string `json:"text" validate:"required,max=4000"`
}

// RawExtraction ítem estructurado devuelto por el modelo de extracción.
// QuantityBase, UnitBase y ExpiryDate quedan nulos: se completan más adelante en el flujo.
type RawExtraction struct {
	SourceText        string   `json:"source_text"`
	ProductName       string   `json:"product_name" validate:"max=180"`
	ProductNormalized *string  `json:"product_normalized"`
	Quantity          *float64 `json:"quantity"`
	UnitInput         *string  `json:"unit_input"`
	QuantityBase      *float64 `json:"quantity_base"`
	UnitBase          *string  `json:"unit_base"`
	ExpiryText        *string  `json:"expiry_text"`
	ExpiryDate        *string  `json:"expiry_date"`
	Location          *string  `json:"location"`
	Confidence        *float64 `json:"confidence" validate:"omitempty,gte=0,lte=1"`
	Warnings          []string `json:"warnings"`
}

// TranscribeResponse salida de POST /voice/transcribe.
type TranscribeResponse struct {
	Text string `json:"text"`
}
