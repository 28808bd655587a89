package storage

// sqlite.go — persistencia local del vendedor.
//
//   - `costs`: una fila por barcode con el coste introducido a mano. Es el
//     único dato que el marketplace no expone, así que es la tabla que importa.
//   - `research_reports`: histórico de research con columnas de resumen
//     (score, estadísticas de precios, posición). El informe completo se
//     regenera bajo demanda; el histórico sirve para ver la evolución.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alejandrodnm/sellerbot/internal/domain"
	_ "modernc.org/sqlite"
)

const schema = `
-- Coste por barcode, introducido por el vendedor
CREATE TABLE IF NOT EXISTS costs (
    barcode    TEXT     PRIMARY KEY,
    cost       REAL     NOT NULL,
    updated_at DATETIME NOT NULL
);

-- Histórico de research, una fila por informe generado
CREATE TABLE IF NOT EXISTS research_reports (
    id              TEXT    PRIMARY KEY,
    barcode         TEXT    NOT NULL,
    title           TEXT,
    brand           TEXT,
    category        TEXT,
    sale_price      REAL    NOT NULL DEFAULT 0,
    title_score     INTEGER NOT NULL DEFAULT 0,
    score_label     TEXT,
    suggested_title TEXT,
    ai_title        TEXT,
    competitors     INTEGER NOT NULL DEFAULT 0,
    avg_price       REAL    NOT NULL DEFAULT 0,
    median_price    REAL    NOT NULL DEFAULT 0,
    percentile      INTEGER NOT NULL DEFAULT 0,
    break_even      REAL    NOT NULL DEFAULT 0,
    generated_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_reports_barcode ON research_reports(barcode);
CREATE INDEX IF NOT EXISTS idx_reports_at      ON research_reports(generated_at DESC);
`

// SQLiteStore implementa ports.CostStore y ports.ReportStore usando SQLite
// (pure Go, sin CGo).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore abre (o crea) la base de datos en la ruta dada y aplica el
// schema.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStore: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite es single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStore: apply schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// SetCost guarda el coste de un barcode. Un coste <= 0 elimina la entrada.
func (s *SQLiteStore) SetCost(ctx context.Context, barcode string, cost float64) error {
	if cost <= 0 {
		if _, err := s.db.ExecContext(ctx, `DELETE FROM costs WHERE barcode = ?`, barcode); err != nil {
			return fmt.Errorf("storage.SetCost: delete %q: %w", barcode, err)
		}
		return nil
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO costs (barcode, cost, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(barcode) DO UPDATE SET cost = excluded.cost, updated_at = excluded.updated_at`,
		barcode, cost, time.Now().UTC(),
	); err != nil {
		return fmt.Errorf("storage.SetCost: upsert %q: %w", barcode, err)
	}
	return nil
}

// GetCost devuelve el coste registrado de un barcode.
func (s *SQLiteStore) GetCost(ctx context.Context, barcode string) (float64, bool, error) {
	var cost float64
	err := s.db.QueryRowContext(ctx, `SELECT cost FROM costs WHERE barcode = ?`, barcode).Scan(&cost)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("storage.GetCost: %q: %w", barcode, err)
	}
	return cost, true, nil
}

// AllCosts devuelve todos los costes registrados indexados por barcode.
func (s *SQLiteStore) AllCosts(ctx context.Context) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT barcode, cost FROM costs`)
	if err != nil {
		return nil, fmt.Errorf("storage.AllCosts: %w", err)
	}
	defer rows.Close()

	out := make(map[string]float64)
	for rows.Next() {
		var barcode string
		var cost float64
		if err := rows.Scan(&barcode, &cost); err != nil {
			return nil, fmt.Errorf("storage.AllCosts: scan: %w", err)
		}
		out[barcode] = cost
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.AllCosts: rows: %w", err)
	}
	return out, nil
}

// SaveResearch persiste las columnas de resumen de un informe de research.
func (s *SQLiteStore) SaveResearch(ctx context.Context, report domain.ResearchReport) error {
	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO research_reports (
			id, barcode, title, brand, category, sale_price,
			title_score, score_label, suggested_title, ai_title,
			competitors, avg_price, median_price, percentile, break_even,
			generated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.ID, report.Barcode, report.Title, report.Brand, report.CategoryName, report.SalePrice,
		report.TitleScore.Score, report.TitleScore.Label, report.TitleScore.SuggestedTitle, report.AISuggestedTitle,
		report.TotalCategoryListings, report.Competitive.Stats.Avg, report.Competitive.Stats.Median,
		report.Competitive.Position.Percentile, report.Competitive.BreakEvenPrice,
		report.GeneratedAt.UTC(),
	); err != nil {
		return fmt.Errorf("storage.SaveResearch: insert %q: %w", report.ID, err)
	}
	return nil
}

// ResearchHistory devuelve los informes del rango dado, más recientes primero.
// Solo reconstruye las columnas de resumen: el desglose completo del rubric y
// los competidores no se persisten.
func (s *SQLiteStore) ResearchHistory(ctx context.Context, from, to time.Time) ([]domain.ResearchReport, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, barcode, title, brand, category, sale_price,
		       title_score, score_label, suggested_title, ai_title,
		       competitors, avg_price, median_price, percentile, break_even,
		       generated_at
		FROM research_reports
		WHERE generated_at >= ? AND generated_at <= ?
		ORDER BY generated_at DESC`,
		from.UTC(), to.UTC(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage.ResearchHistory: %w", err)
	}
	defer rows.Close()

	var out []domain.ResearchReport
	for rows.Next() {
		var r domain.ResearchReport
		if err := rows.Scan(
			&r.ID, &r.Barcode, &r.Title, &r.Brand, &r.CategoryName, &r.SalePrice,
			&r.TitleScore.Score, &r.TitleScore.Label, &r.TitleScore.SuggestedTitle, &r.AISuggestedTitle,
			&r.TotalCategoryListings, &r.Competitive.Stats.Avg, &r.Competitive.Stats.Median,
			&r.Competitive.Position.Percentile, &r.Competitive.BreakEvenPrice,
			&r.GeneratedAt,
		); err != nil {
			return nil, fmt.Errorf("storage.ResearchHistory: scan: %w", err)
		}
		r.TitleScore.Title = r.Title
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage.ResearchHistory: rows: %w", err)
	}
	return out, nil
}

// Close cierra la conexión a la base de datos limpiamente.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
