package rubric

import (
	"fmt"
	"regexp"
	"strings"
)

// Severity clasifica un hallazgo del rubric.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue es un problema detectado en el título.
type Issue struct {
	Severity Severity
	Text     string
}

// RuleResult es la contribución de una regla al score total.
type RuleResult struct {
	Score  int
	Max    int
	Issues []Issue
	Tips   []string
}

// Context agrupa todo lo que una regla puede inspeccionar. Se construye una
// vez por evaluación y las reglas no lo mutan.
type Context struct {
	Title        string
	Brand        string
	CategoryName string

	Tokens     []string // tokens crudos
	Meaningful []string // minúsculas, sin stop words ni numéricos
	Duplicates []string
	Popular    []Keyword

	Config Config
}

// Rule es una regla independiente del rubric: nombre, y una evaluación que
// devuelve su score con su máximo propio. El scorer las suma genéricamente,
// así el desglose es auditable regla a regla.
type Rule struct {
	Name     string
	Evaluate func(*Context) RuleResult
}

// defaultRules devuelve la tabla de reglas del rubric. Los máximos suman 100.
func defaultRules() []Rule {
	return []Rule{
		{Name: "length", Evaluate: evalLength},
		{Name: "diversity", Evaluate: evalDiversity},
		{Name: "keywords", Evaluate: evalKeywordCoverage},
		{Name: "attributes", Evaluate: evalAttributes},
		{Name: "quantity", Evaluate: evalQuantity},
		{Name: "formatting", Evaluate: evalFormatting},
		{Name: "duplicates", Evaluate: evalDuplicates},
		{Name: "codes", Evaluate: evalInternalCodes},
		{Name: "brand", Evaluate: evalBrand},
	}
}

// evalLength: crédito completo dentro de la ventana ideal de caracteres,
// parcial fuera, cero bajo el mínimo absoluto.
func evalLength(ctx *Context) RuleResult {
	const max = 15
	length := len([]rune(ctx.Title))
	cfg := ctx.Config

	switch {
	case length < cfg.MinLength:
		return RuleResult{Score: 0, Max: max, Issues: []Issue{{
			Severity: SeverityWarning,
			Text:     fmt.Sprintf("title is too short (%d chars, minimum %d recommended)", length, cfg.IdealMinLength),
		}}}
	case length < cfg.IdealMinLength:
		return RuleResult{Score: max / 2, Max: max, Issues: []Issue{{
			Severity: SeverityWarning,
			Text:     fmt.Sprintf("title is short (%d chars, %d-%d is the ideal window)", length, cfg.IdealMinLength, cfg.IdealMaxLength),
		}}}
	case length > cfg.IdealMaxLength:
		return RuleResult{Score: max / 2, Max: max, Issues: []Issue{{
			Severity: SeverityWarning,
			Text:     fmt.Sprintf("title is too long (%d chars, max %d recommended)", length, cfg.IdealMaxLength),
		}}}
	default:
		return RuleResult{Score: max, Max: max}
	}
}

// evalDiversity: umbrales escalonados sobre los tokens significativos distintos.
func evalDiversity(ctx *Context) RuleResult {
	const max = 15
	unique := make(map[string]bool, len(ctx.Meaningful))
	for _, t := range ctx.Meaningful {
		unique[t] = true
	}

	switch {
	case len(unique) >= 8:
		return RuleResult{Score: max, Max: max}
	case len(unique) >= 5:
		return RuleResult{Score: 10, Max: max}
	default:
		return RuleResult{Score: 0, Max: max, Tips: []string{"add more descriptive words to the title"}}
	}
}

// evalKeywordCoverage: proporcional a cuántas de las top-10 keywords del
// corpus aparecen en el título.
func evalKeywordCoverage(ctx *Context) RuleResult {
	const max = 20
	if len(ctx.Popular) == 0 {
		// Sin corpus no hay señal: ni premio ni castigo.
		return RuleResult{Score: 0, Max: 0}
	}

	limit := len(ctx.Popular)
	if limit > 10 {
		limit = 10
	}
	matched := 0
	for _, k := range ctx.Popular[:limit] {
		if k.InTitle {
			matched++
		}
	}

	score := int(float64(matched)/float64(limit)*float64(max) + 0.5)
	result := RuleResult{Score: score, Max: max}
	if score < max/2 {
		result.Tips = append(result.Tips, "include more of the keywords competitors rank with")
	}
	return result
}

// evalAttributes: presencia de atributos descriptivos (color, material,
// contexto de uso). Cada uno presente suma un incremento fijo.
func evalAttributes(ctx *Context) RuleResult {
	const perAttribute = 4
	result := RuleResult{Max: perAttribute * 3}

	checks := []struct {
		pattern *regexp.Regexp
		tip     string
	}{
		{colorTokens, `add a color ("Siyah", "Beyaz"...)`},
		{materialTokens, `add the material ("Metal", "Ahşap"...)`},
		{usageTokens, `add the usage context ("Mutfak", "Banyo"...)`},
	}
	for _, check := range checks {
		if anyTokenMatches(check.pattern, ctx.Meaningful) {
			result.Score += perAttribute
		} else {
			result.Tips = append(result.Tips, check.tip)
		}
	}
	return result
}

func anyTokenMatches(pattern *regexp.Regexp, tokens []string) bool {
	for _, t := range tokens {
		if pattern.MatchString(t) {
			return true
		}
	}
	return false
}

// evalQuantity: marcador de cantidad más marcador de medida. Completo con
// ambos, parcial con uno.
func evalQuantity(ctx *Context) RuleResult {
	const max = 10
	hasQuantity := quantityPattern.MatchString(ctx.Title)
	hasDimension := dimensionPattern.MatchString(ctx.Title)

	switch {
	case hasQuantity && hasDimension:
		return RuleResult{Score: max, Max: max}
	case hasQuantity || hasDimension:
		return RuleResult{Score: max / 2, Max: max, Tips: []string{
			`add both quantity and size markers (e.g. "3 Adet", "25 cm")`,
		}}
	default:
		return RuleResult{Score: 0, Max: max, Tips: []string{
			`add quantity/size information (e.g. "3 Adet", "250ml")`,
		}}
	}
}

// evalFormatting: arranca en el máximo y descuenta por violación, suelo cero.
func evalFormatting(ctx *Context) RuleResult {
	const max = 10
	score := max
	var issues []Issue

	if specialCharPattern.MatchString(ctx.Title) {
		score -= 4
		issues = append(issues, Issue{Severity: SeverityError, Text: "title contains forbidden special characters"})
	}
	if uppercaseRunPattern.MatchString(ctx.Title) {
		score -= 3
		issues = append(issues, Issue{Severity: SeverityWarning, Text: "title contains long uppercase runs"})
	}
	if punctuationRunPattern.MatchString(ctx.Title) {
		score -= 3
		issues = append(issues, Issue{Severity: SeverityWarning, Text: "title contains repeated punctuation"})
	}
	if score < 0 {
		score = 0
	}
	return RuleResult{Score: score, Max: max, Issues: issues}
}

// evalDuplicates: todo o nada. Cualquier token significativo repetido anula
// el crédito y se reporta como diagnóstico.
func evalDuplicates(ctx *Context) RuleResult {
	const max = 10
	if len(ctx.Duplicates) == 0 {
		return RuleResult{Score: max, Max: max}
	}
	return RuleResult{Score: 0, Max: max, Issues: []Issue{{
		Severity: SeverityWarning,
		Text:     "repeated words: " + strings.Join(ctx.Duplicates, ", "),
	}}}
}

// evalInternalCodes: crédito pequeño retenido si un SKU o barkod interno se
// filtró literal al título.
func evalInternalCodes(ctx *Context) RuleResult {
	const max = 3
	if hasInternalCode(ctx.Title) {
		return RuleResult{Score: 0, Max: max, Issues: []Issue{{
			Severity: SeverityWarning,
			Text:     "title leaks an internal SKU or barcode",
		}}}
	}
	return RuleResult{Score: max, Max: max}
}

// evalBrand: la marca en el título suma; si falta, tip accionable.
func evalBrand(ctx *Context) RuleResult {
	const max = 5
	if ctx.Brand == "" {
		return RuleResult{Score: 0, Max: 0}
	}
	if strings.Contains(lower(ctx.Title), lower(ctx.Brand)) {
		return RuleResult{Score: max, Max: max}
	}
	return RuleResult{Score: 0, Max: max, Tips: []string{
		fmt.Sprintf("add the brand name (%q) to the title", ctx.Brand),
	}}
}
