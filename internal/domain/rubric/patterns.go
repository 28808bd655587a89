package rubric

import "regexp"

// Patrones de atributos descriptivos. Se testean por pertenencia contra los
// tokens significativos del título (los límites \b de regexp no funcionan
// con caracteres turcos, así que se ancla token a token).
var (
	colorTokens = regexp.MustCompile(`^(siyah|beyaz|kırmızı|mavi|yeşil|sarı|gri|lacivert|pembe|mor|turuncu|kahverengi|bej|krem|antrasit|altın|gümüş|şeffaf)$`)

	materialTokens = regexp.MustCompile(`^(metal|ahşap|plastik|cam|çelik|paslanmaz|silikon|pamuk|deri|bambu|seramik|akrilik|polyester|keten)$`)

	usageTokens = regexp.MustCompile(`^(mutfak|banyo|ofis|araba|araç|bahçe|balkon|yatak|oda|salon|çocuk|bebek|okul|kamp|seyahat)$`)
)

// Marcadores de cantidad y medida sobre el título completo.
var (
	quantityPattern  = regexp.MustCompile(`(?i)\d+\s*(adet|paket|set|lü|li|lu|lı|parça)`)
	dimensionPattern = regexp.MustCompile(`(?i)\d+\s*(cm|mm|mt|ml|lt|gr|kg|litre|metre)`)
)

// Higiene de formato.
var (
	specialCharPattern    = regexp.MustCompile(`[!@#$%^&*{}|<>~]`)
	uppercaseRunPattern   = regexp.MustCompile(`[A-ZÇĞİÖŞÜ]{6,}`)
	punctuationRunPattern = regexp.MustCompile(`[!?.,;:]{2,}`)
)

// Patrones de códigos internos (SKU / barkod) que no deben filtrarse al título.
var internalCodePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b[A-Z]{2,4}-?\d{3,}\b`), // SKU tipo "TY-10432" o "STK8812"
	regexp.MustCompile(`\b\d{8,14}\b`),           // barkod EAN/UPC
}

func hasInternalCode(title string) bool {
	for _, p := range internalCodePatterns {
		if p.MatchString(title) {
			return true
		}
	}
	return false
}

func stripInternalCodes(title string) string {
	out := title
	for _, p := range internalCodePatterns {
		out = p.ReplaceAllString(out, "")
	}
	return out
}
