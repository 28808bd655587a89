package domain

// Product es un listing del vendedor en el marketplace.
// CostPrice es nullable: nil significa "coste desconocido", que no es lo
// mismo que un coste cero (un producto con coste base genuinamente gratis).
type Product struct {
	Barcode          string
	StockCode        string
	Title            string
	Brand            string
	CategoryName     string
	SalePrice        float64
	ListPrice        float64
	CostPrice        *float64
	CommissionRate   float64 // porcentaje en [0,100]
	CommissionSource string  // "order" | "category" | "default"
}

// HasCost devuelve true si el vendedor ha introducido un coste.
func (p Product) HasCost() bool {
	return p.CostPrice != nil
}

// Cost devuelve el coste introducido, o 0 si es desconocido.
func (p Product) Cost() float64 {
	if p.CostPrice == nil {
		return 0
	}
	return *p.CostPrice
}

// CostOf es un helper para construir el campo nullable desde un literal.
func CostOf(v float64) *float64 {
	return &v
}

// CompetitorListing es un listing competidor de la misma categoría.
// Invariante de descuento: ListPrice >= SalePrice. Un listing con
// SalePrice <= 0 se excluye de todas las estadísticas.
type CompetitorListing struct {
	Title     string
	Brand     string
	SalePrice float64
	ListPrice float64
}

// HasDiscount devuelve true si el competidor está actualmente rebajado.
func (c CompetitorListing) HasDiscount() bool {
	return c.ListPrice > c.SalePrice
}

// DiscountPercent devuelve el % de descuento sobre el precio de lista.
func (c CompetitorListing) DiscountPercent() float64 {
	if !c.HasDiscount() || c.ListPrice <= 0 {
		return 0
	}
	return (c.ListPrice - c.SalePrice) / c.ListPrice * 100
}

// OrderLine es una línea de pedido del historial de ventas.
type OrderLine struct {
	Barcode     string
	ProductName string
	Amount      float64 // precio efectivo de venta
	Price       float64 // precio de lista en el momento del pedido
	Commission  float64 // % de comisión aplicado en la venta
	Quantity    int
	Status      string
}

// SalePrice devuelve el precio efectivo de la línea (Amount, o Price como fallback).
func (l OrderLine) SalePrice() float64 {
	if l.Amount > 0 {
		return l.Amount
	}
	return l.Price
}

// Order es un pedido con sus líneas.
type Order struct {
	OrderNumber string
	OrderDate   int64 // epoch millis, como lo entrega el marketplace
	Lines       []OrderLine
}
