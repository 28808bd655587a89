package domain

// MarginBand asocia un coste máximo con el margen objetivo de esa banda.
type MarginBand struct {
	MaxCost float64
	Margin  float64 // fracción, ej. 0.38
}

// MarginTable es la tabla de margen ideal por banda de coste. Los productos
// baratos reciben un margen objetivo mayor: los fees fijos por venta dominan
// en precios bajos. Constante de negocio, configurable.
type MarginTable struct {
	bands    []MarginBand
	fallback float64
	neutral  float64
}

// NewMarginTable construye la tabla con las bandas dadas (ordenadas por
// MaxCost ascendente), el margen por defecto para costes mayores, y el
// margen neutro para costes desconocidos.
func NewMarginTable(bands []MarginBand, fallback, neutral float64) MarginTable {
	out := make([]MarginBand, len(bands))
	copy(out, bands)
	return MarginTable{bands: out, fallback: fallback, neutral: neutral}
}

// DefaultMarginTable devuelve la tabla heredada de la operación real.
func DefaultMarginTable() MarginTable {
	return NewMarginTable([]MarginBand{
		{MaxCost: 25, Margin: 0.50},
		{MaxCost: 50, Margin: 0.38},
		{MaxCost: 100, Margin: 0.30},
		{MaxCost: 200, Margin: 0.25},
		{MaxCost: 400, Margin: 0.22},
	}, 0.18, 0.30)
}

// IdealMargin devuelve el margen objetivo para un coste dado.
// Un coste <= 0 usa el margen neutro configurado.
func (m MarginTable) IdealMargin(cost float64) float64 {
	if cost <= 0 {
		return m.neutral
	}
	for _, b := range m.bands {
		if cost <= b.MaxCost {
			return b.Margin
		}
	}
	return m.fallback
}
