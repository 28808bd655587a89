package ports

import (
	"context"
	"time"

	"github.com/alejandrodnm/sellerbot/internal/domain"
)

// ReportStore persiste los informes de research para consulta posterior.
type ReportStore interface {
	// SaveResearch persiste un informe de research de producto.
	SaveResearch(ctx context.Context, report domain.ResearchReport) error

	// ResearchHistory devuelve los informes generados en el rango dado,
	// más recientes primero.
	ResearchHistory(ctx context.Context, from, to time.Time) ([]domain.ResearchReport, error)

	// Close cierra la conexión a la base de datos limpiamente.
	Close() error
}
