package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa de sellerbot.
type Config struct {
	Fees    FeesConfig    `yaml:"fees"`
	Margins MarginsConfig `yaml:"margins"`
	Advisor AdvisorConfig `yaml:"advisor"`
	Rubric  RubricConfig  `yaml:"rubric"`
	Storage StorageConfig `yaml:"storage"`
	Catalog CatalogConfig `yaml:"catalog"`
	Log     LogConfig     `yaml:"log"`
}

// FeesConfig define el modelo de deducciones del marketplace.
// Los valores por defecto son la tarifa 2026 de Trendyol.
type FeesConfig struct {
	PlatformFee   float64      `yaml:"platform_fee"` // cargo fijo por venta
	ShippingTiers []TierConfig `yaml:"shipping_tiers"`
}

// TierConfig es un barem de kargo: banda de precio con coste fijo.
// Max <= 0 significa sin límite superior (último tier).
type TierConfig struct {
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Cost float64 `yaml:"cost"`
}

// MarginsConfig es la tabla de margen ideal por banda de coste.
// Los productos baratos necesitan más margen porque los fees fijos pesan más.
type MarginsConfig struct {
	Bands   []MarginBandConfig `yaml:"bands"`
	Default float64            `yaml:"default"` // margen para costes por encima de la última banda
	Neutral float64            `yaml:"neutral"` // margen cuando el coste es desconocido o cero
}

// MarginBandConfig asocia un coste máximo con su margen objetivo.
type MarginBandConfig struct {
	MaxCost float64 `yaml:"max_cost"`
	Margin  float64 `yaml:"margin"`
}

// AdvisorConfig controla el análisis competitivo y el fan-out de research.
type AdvisorConfig struct {
	DefaultCommissionRate float64 `yaml:"default_commission_rate"` // % si no hay dato de órdenes
	MeanDeviationPct      float64 `yaml:"mean_deviation_pct"`      // umbral de desviación vs media para recomendar
	NearestCompetitors    int     `yaml:"nearest_competitors"`     // competidores más cercanos a reportar
	TierBoundaryMargin    float64 `yaml:"tier_boundary_margin"`    // margen sobre un breakpoint para avisar
	Workers               int     `yaml:"workers"`                 // goroutines para análisis en lote (0 = NumCPU*2)
	SearchRatePerSec      float64 `yaml:"search_rate_per_sec"`     // throttle hacia el colaborador de búsqueda
	AIEnabled             bool    `yaml:"ai_enabled"`              // colaborador de generación de texto (opcional)
}

// RubricConfig controla el scoring de títulos.
type RubricConfig struct {
	MinLength           int `yaml:"min_length"`            // por debajo: banda de longitud a cero
	IdealMinLength      int `yaml:"ideal_min_length"`      // ventana ideal de caracteres
	IdealMaxLength      int `yaml:"ideal_max_length"`
	TopKeywords         int `yaml:"top_keywords"`          // tokens más frecuentes del corpus a considerar
	MinUsagePercent     int `yaml:"min_usage_percent"`     // % mínimo de uso para contar como keyword faltante
	AppendUsagePercent  int `yaml:"append_usage_percent"`  // % mínimo para que el synthesizer añada la keyword
	MaxAppendedKeywords int `yaml:"max_appended_keywords"` // keywords añadidas como máximo al título sugerido
}

// StorageConfig controla dónde se persisten costes y reportes.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// CatalogConfig apunta a los fixtures JSON del catálogo y pedidos.
type CatalogConfig struct {
	ProductsPath string `yaml:"products_path"`
	OrdersPath   string `yaml:"orders_path"`
	ListingsPath string `yaml:"listings_path"` // fixture de listados competidores por query
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
// Si el archivo YAML no existe, arranca solo con los defaults.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
	} else if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("SELLERBOT_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Fees.PlatformFee <= 0 {
		cfg.Fees.PlatformFee = 13.80
	}
	if len(cfg.Fees.ShippingTiers) == 0 {
		cfg.Fees.ShippingTiers = []TierConfig{
			{Min: 0, Max: 149.99, Cost: 58.50},
			{Min: 150, Max: 299.99, Cost: 95.50},
			{Min: 300, Max: 399.99, Cost: 110},
			{Min: 400, Max: 0, Cost: 130},
		}
	}
	if len(cfg.Margins.Bands) == 0 {
		cfg.Margins.Bands = []MarginBandConfig{
			{MaxCost: 25, Margin: 0.50},
			{MaxCost: 50, Margin: 0.38},
			{MaxCost: 100, Margin: 0.30},
			{MaxCost: 200, Margin: 0.25},
			{MaxCost: 400, Margin: 0.22},
		}
	}
	if cfg.Margins.Default <= 0 {
		cfg.Margins.Default = 0.18
	}
	if cfg.Margins.Neutral <= 0 {
		cfg.Margins.Neutral = 0.30
	}
	if cfg.Advisor.DefaultCommissionRate <= 0 {
		cfg.Advisor.DefaultCommissionRate = 20
	}
	if cfg.Advisor.MeanDeviationPct <= 0 {
		cfg.Advisor.MeanDeviationPct = 25
	}
	if cfg.Advisor.NearestCompetitors <= 0 {
		cfg.Advisor.NearestCompetitors = 10
	}
	if cfg.Advisor.TierBoundaryMargin <= 0 {
		cfg.Advisor.TierBoundaryMargin = 10
	}
	if cfg.Advisor.SearchRatePerSec <= 0 {
		cfg.Advisor.SearchRatePerSec = 2
	}
	if cfg.Rubric.MinLength <= 0 {
		cfg.Rubric.MinLength = 25
	}
	if cfg.Rubric.IdealMinLength <= 0 {
		cfg.Rubric.IdealMinLength = 40
	}
	if cfg.Rubric.IdealMaxLength <= 0 {
		cfg.Rubric.IdealMaxLength = 150
	}
	if cfg.Rubric.TopKeywords <= 0 {
		cfg.Rubric.TopKeywords = 20
	}
	if cfg.Rubric.MinUsagePercent <= 0 {
		cfg.Rubric.MinUsagePercent = 20
	}
	if cfg.Rubric.AppendUsagePercent <= 0 {
		cfg.Rubric.AppendUsagePercent = 30
	}
	if cfg.Rubric.MaxAppendedKeywords <= 0 {
		cfg.Rubric.MaxAppendedKeywords = 3
	}
	if cfg.Catalog.ProductsPath == "" {
		cfg.Catalog.ProductsPath = "fixtures/products.json"
	}
	if cfg.Catalog.OrdersPath == "" {
		cfg.Catalog.OrdersPath = "fixtures/orders.json"
	}
	if cfg.Catalog.ListingsPath == "" {
		cfg.Catalog.ListingsPath = "fixtures/listings.json"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "sellerbot.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}
