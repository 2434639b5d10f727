package ai

// extractionSystemPrompt define el rol del modelo y el formato exacto de salida.
// quantity_base, unit_base y expiry_date los completa el backend, no el modelo.
const extractionSystemPrompt = `Você extrai itens de despensa de frases faladas em português.
Devolva ÚNICAMENTE um array JSON (sem markdown, sem texto fora do JSON). Cada elemento tem exatamente:
{
  "source_text": "<trecho da frase que originou o item>",
  "product_name": "<nome do produto como o usuário diria>",
  "product_normalized": "<nome em minúsculas, sem acentos nem artigos> ou null",
  "quantity": <número ou null>,
  "unit_input": "<unidade como foi dita: 'litros', 'kg', 'pacote'...> ou null",
  "quantity_base": null,
  "unit_base": null,
  "expiry_text": "<validade em DD/MM ou DD/MM/AAAA> ou null",
  "expiry_date": null,
  "location": "<onde será guardado: armário, geladeira, freezer...> ou null",
  "confidence": <número entre 0.0 e 1.0>,
  "warnings": ["<dúvidas sobre o item>"]
}

Regras:
- Um elemento por produto mencionado. Frase sem produtos: devolva [].
- Validade relativa ("vence em 3 dias") vira null em expiry_text e uma observação em warnings.
- Não invente quantidades: se não foi dita, use null.`

func extractionUserPrompt(text string) string {
	return "Frase: " + text
}
