package catalog

// file.go — CatalogProvider sobre fixtures JSON.
//
// El cliente HTTP real del marketplace queda fuera: este adapter lee snapshots
// exportados (mismo shape que la API de productos y pedidos) y permite
// trabajar con el catálogo completo sin red.

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// FileCatalog implementa ports.CatalogProvider leyendo archivos JSON.
type FileCatalog struct {
	productsPath string
	ordersPath   string
}

// NewFileCatalog crea un catálogo sobre los archivos dados.
func NewFileCatalog(productsPath, ordersPath string) *FileCatalog {
	return &FileCatalog{productsPath: productsPath, ordersPath: ordersPath}
}

type productJSON struct {
	Barcode      string  `json:"barcode"`
	StockCode    string  `json:"stockCode"`
	Title        string  `json:"title"`
	Brand        string  `json:"brand"`
	CategoryName string  `json:"categoryName"`
	SalePrice    float64 `json:"salePrice"`
	ListPrice    float64 `json:"listPrice"`
}

type orderJSON struct {
	OrderNumber string          `json:"orderNumber"`
	OrderDate   int64           `json:"orderDate"`
	Lines       []orderLineJSON `json:"lines"`
}

type orderLineJSON struct {
	Barcode        string  `json:"barcode"`
	ProductName    string  `json:"productName"`
	Amount         float64 `json:"amount"`
	Price          float64 `json:"price"`
	CommissionRate float64 `json:"commissionRate"`
	Quantity       int     `json:"quantity"`
	Status         string  `json:"status"`
}

// FetchProducts devuelve todos los productos del snapshot.
func (c *FileCatalog) FetchProducts(_ context.Context) ([]domain.Product, error) {
	var raw []productJSON
	if err := readJSON(c.productsPath, &raw); err != nil {
		return nil, fmt.Errorf("catalog.FetchProducts: %w", err)
	}

	products := make([]domain.Product, 0, len(raw))
	for _, p := range raw {
		products = append(products, domain.Product{
			Barcode:      p.Barcode,
			StockCode:    p.StockCode,
			Title:        p.Title,
			Brand:        p.Brand,
			CategoryName: p.CategoryName,
			SalePrice:    p.SalePrice,
			ListPrice:    p.ListPrice,
		})
	}
	return products, nil
}

// FetchOrders devuelve los pedidos del snapshot dentro del rango dado.
func (c *FileCatalog) FetchOrders(_ context.Context, fromMillis, toMillis int64) ([]domain.Order, error) {
	var raw []orderJSON
	if err := readJSON(c.ordersPath, &raw); err != nil {
		return nil, fmt.Errorf("catalog.FetchOrders: %w", err)
	}

	var orders []domain.Order
	for _, o := range raw {
		if o.OrderDate < fromMillis || o.OrderDate > toMillis {
			continue
		}
		order := domain.Order{OrderNumber: o.OrderNumber, OrderDate: o.OrderDate}
		for _, l := range o.Lines {
			order.Lines = append(order.Lines, domain.OrderLine{
				Barcode:     l.Barcode,
				ProductName: l.ProductName,
				Amount:      l.Amount,
				Price:       l.Price,
				Commission:  l.CommissionRate,
				Quantity:    l.Quantity,
				Status:      l.Status,
			})
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func readJSON(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %q: %w", path, err)
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %q: %w", path, err)
	}
	return nil
}
