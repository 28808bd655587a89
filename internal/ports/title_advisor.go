package ports

import (
	"context"

	"github.com/alejandrodnm/sellerbot/internal/domain/rubric"
)

// TitleAdvisor es un colaborador generativo opcional para sugerir títulos.
// El motor nunca depende de él: el título sugerido determinista del rubric se
// calcula siempre, y este colaborador solo añade una alternativa.
type TitleAdvisor interface {
	// SuggestTitle propone un título alternativo a partir del scoring.
	// Devuelve cadena vacía sin error cuando no tiene nada mejor que ofrecer.
	SuggestTitle(ctx context.Context, title, brand, categoryName string, score rubric.Result) (string, error)
}
