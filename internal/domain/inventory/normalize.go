package inventory

import (
	"strings"
	"unicode"

	"github.com/jhoicas/despensa-api/internal/domain/entity"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stopwords artículos, preposiciones y conjunciones que no distinguen productos.
// "com" y "sem" se conservan: "leite sem lactose" es otro producto.
var stopwords = map[string]struct{}{
	"a": {}, "o": {}, "as": {}, "os": {}, "um": {}, "uma": {}, "uns": {}, "umas": {},
	"de": {}, "da": {}, "do": {}, "das": {}, "dos": {},
	"em": {}, "na": {}, "no": {}, "nas": {}, "nos": {},
	"ao": {}, "aos": {}, "para": {}, "pra": {}, "pro": {}, "por": {}, "pelo": {}, "pela": {},
	"e": {}, "ou": {},
}

// unitAliases mapea palabras y abreviaturas (ya plegadas) a la unidad canónica.
var unitAliases = map[string]entity.Unit{
	"un": entity.UnitEach, "und": entity.UnitEach, "unid": entity.UnitEach, "u": entity.UnitEach,
	"unidade": entity.UnitEach, "unidades": entity.UnitEach, "pc": entity.UnitEach, "pcs": entity.UnitEach,
	"peca": entity.UnitEach, "pecas": entity.UnitEach,
	"g": entity.UnitGram, "gr": entity.UnitGram, "grs": entity.UnitGram, "grama": entity.UnitGram, "gramas": entity.UnitGram,
	"kg": entity.UnitKilogram, "kgs": entity.UnitKilogram, "kilo": entity.UnitKilogram, "kilos": entity.UnitKilogram,
	"quilo": entity.UnitKilogram, "quilos": entity.UnitKilogram, "quilograma": entity.UnitKilogram, "quilogramas": entity.UnitKilogram,
	"ml": entity.UnitMilliliter, "mililitro": entity.UnitMilliliter, "mililitros": entity.UnitMilliliter,
	"l": entity.UnitLiter, "lt": entity.UnitLiter, "lts": entity.UnitLiter, "litro": entity.UnitLiter, "litros": entity.UnitLiter,
}

// StripDiacritics elimina tildes y demás marcas combinantes ("Armário" -> "Armario").
func StripDiacritics(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

// foldTokens pasa a minúsculas, quita tildes y separa por cualquier racha no alfanumérica.
func foldTokens(s string) []string {
	folded := strings.ToLower(StripDiacritics(s))
	return strings.FieldsFunc(folded, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// FoldText versión plegada de s sin filtrar stopwords.
func FoldText(s string) string {
	return strings.Join(foldTokens(s), " ")
}

// NormalizeProductName produce la clave de catálogo de un nombre libre:
// minúsculas, sin tildes, sin puntuación, sin stopwords y con espacios colapsados.
// Una entrada vacía (o solo stopwords) devuelve "" y debe tratarse como "sin producto".
func NormalizeProductName(raw string) string {
	tokens := foldTokens(raw)
	kept := tokens[:0]
	for _, tok := range tokens {
		if _, stop := stopwords[tok]; stop {
			continue
		}
		kept = append(kept, tok)
	}
	return strings.Join(kept, " ")
}

// NormalizeUnit es total: cualquier texto no reconocido (o vacío) es UN.
func NormalizeUnit(raw string) entity.Unit {
	key := strings.ReplaceAll(FoldText(raw), " ", "")
	if u, ok := unitAliases[key]; ok {
		return u
	}
	return entity.UnitEach
}

// NormalizeLocation lleva una ubicación libre a su forma canónica. "" significa sin ubicación.
// Lo que no cae en Armário, Geladeira o Freezer se devuelve capitalizado.
func NormalizeLocation(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return ""
	}
	folded := StripDiacritics(s)
	switch {
	case strings.HasPrefix(folded, "arm"):
		return entity.LocationCupboard
	case strings.Contains(folded, "gelad"):
		return entity.LocationFridge
	case strings.Contains(folded, "freez"):
		return entity.LocationFreezer
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}
