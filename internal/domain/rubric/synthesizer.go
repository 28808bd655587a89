package rubric

import "strings"

// Synthesize propone un título sustituto de forma determinista, sin ningún
// colaborador generativo:
//
//  1. quita la marca si el título la repite (el marketplace la añade solo),
//  2. colapsa tokens duplicados conservando la primera aparición,
//  3. elimina códigos internos (SKU / barkod),
//  4. añade hasta MaxAppendedKeywords keywords faltantes de alto uso,
//  5. trunca en límite de palabra si supera la ventana ideal, nunca a mitad
//     de palabra.
//
// Aplicado a su propia salida con el mismo corpus es idempotente: no
// introduce violaciones nuevas.
func (s *Scorer) Synthesize(title, brand string, missing []Keyword, duplicates []string) string {
	working := strings.TrimSpace(title)

	if brand != "" {
		working = stripBrand(working, brand)
	}

	if len(duplicates) > 0 {
		working = collapseDuplicates(working)
	}

	working = collapseSpaces(stripInternalCodes(working))

	appended := 0
	lowerWorking := lower(working)
	for _, k := range missing {
		if appended >= s.cfg.MaxAppendedKeywords {
			break
		}
		if k.UsagePercent < s.cfg.AppendUsagePercent {
			continue
		}
		if strings.Contains(lowerWorking, k.Word) {
			continue
		}
		working += " " + titleCase(k.Word)
		lowerWorking += " " + k.Word
		appended++
	}

	return truncateAtWord(working, s.cfg.IdealMaxLength)
}

// stripBrand quita la primera aparición de la marca como palabra completa.
func stripBrand(title, brand string) string {
	fields := strings.Fields(title)
	lb := lower(brand)
	for i, f := range fields {
		if lower(f) == lb {
			return strings.Join(append(fields[:i:i], fields[i+1:]...), " ")
		}
	}
	return title
}

// collapseDuplicates conserva la primera aparición de cada token
// significativo y descarta las repeticiones posteriores.
func collapseDuplicates(title string) string {
	fields := strings.Fields(title)
	seen := make(map[string]bool, len(fields))
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		key := lower(f)
		if _, stop := stopWords[key]; !stop && !numericPattern.MatchString(key) {
			if seen[key] {
				continue
			}
			seen[key] = true
		}
		out = append(out, f)
	}
	return strings.Join(out, " ")
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// truncateAtWord corta en el último espacio antes de maxLen (en runas).
func truncateAtWord(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	cut := string(runes[:maxLen])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
