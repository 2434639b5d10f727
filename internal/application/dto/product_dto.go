package dto

// CandidateDTO entrada del catálogo sugerida para un ítem extraído.
type CandidateDTO struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Normalized *string `json:"normalized,omitempty"`
	Category   *string `json:"category,omitempty"`
	ImageURL   *string `json:"image_url,omitempty"`
	Score      float64 `json:"score"`
}

// MatchItemResponse resultado de emparejar un RawExtraction contra el catálogo.
type MatchItemResponse struct {
	SourceText        string         `json:"source_text"`
	ProductName       string         `json:"product_name"`
	ProductNormalized string         `json:"product_normalized"`
	Candidates        []CandidateDTO `json:"candidates"`
	SuggestedAction   string         `json:"suggested_action"` // select_candidate | create_new
}
