package ports

import "context"

// CostStore persiste los costes de producto introducidos por el vendedor.
// El marketplace no expone el coste, así que es el único dato local.
type CostStore interface {
	// SetCost guarda el coste de un barcode. Un coste <= 0 elimina la
	// entrada: el producto vuelve a "coste desconocido".
	SetCost(ctx context.Context, barcode string, cost float64) error

	// GetCost devuelve el coste registrado. El booleano indica si existe.
	GetCost(ctx context.Context, barcode string) (float64, bool, error)

	// AllCosts devuelve todos los costes registrados indexados por barcode.
	AllCosts(ctx context.Context) (map[string]float64, error)
}
