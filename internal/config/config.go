package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Backend   BackendConfig
	POS       POSConfig
	Printer   PrinterConfig
	Metrics   MetricsConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int
}

// BackendConfig points the terminal at the billing backend
type BackendConfig struct {
	BaseURL        string
	Timeout        time.Duration
	RequestsPerSec float64
	Burst          int
	CatalogTTL     time.Duration
}

// POSConfig holds the feature flags of the cashier screen
type POSConfig struct {
	StockValidation     bool
	ExtraFields         bool
	PriceTiers          bool
	OrdersEnabled       bool
	DefaultDocumentType string
	SearchDebounce      time.Duration
	AlertDismissAfter   time.Duration
	StockConcurrency    int
}

type PrinterConfig struct {
	Type      string
	USBPath   string
	Address   string
	Width     int
	AutoPrint bool
}

type MetricsConfig struct {
	Enabled bool
	Path    string
}

// TerminalEnvFile holds per-terminal overrides loaded before .env
const TerminalEnvFile = ".env.terminal"

func Load() *Config {
	if err := godotenv.Load(TerminalEnvFile); err == nil {
		log.Printf("Loaded terminal overrides from %s", TerminalEnvFile)
	}

	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables: %v", err)
	}

	setDefaults()

	return &Config{
		App: AppConfig{
			Name:  viper.GetString("APP_NAME"),
			Env:   viper.GetString("APP_ENV"),
			Port:  viper.GetString("APP_PORT"),
			Debug: viper.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Enabled:  viper.GetBool("DB_ENABLED"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			SSLMode:  viper.GetString("DB_SSL_MODE"),
			Timezone: viper.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("JWT_SECRET"),
			Expiry: time.Duration(viper.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(viper.GetStringSlice("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(viper.GetStringSlice("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(viper.GetStringSlice("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: viper.GetInt("RATE_LIMIT_DURATION"),
		},
		Backend: BackendConfig{
			BaseURL:        strings.TrimRight(viper.GetString("BACKEND_URL"), "/"),
			Timeout:        viper.GetDuration("BACKEND_TIMEOUT"),
			RequestsPerSec: viper.GetFloat64("BACKEND_RPS"),
			Burst:          viper.GetInt("BACKEND_BURST"),
			CatalogTTL:     viper.GetDuration("BACKEND_CATALOG_TTL"),
		},
		POS: POSConfig{
			StockValidation:     viper.GetBool("POS_STOCK_VALIDATION"),
			ExtraFields:         viper.GetBool("POS_EXTRA_FIELDS_ENABLED"),
			PriceTiers:          viper.GetBool("POS_PRICE_TIERS_ENABLED"),
			OrdersEnabled:       viper.GetBool("POS_ORDERS_ENABLED"),
			DefaultDocumentType: viper.GetString("POS_DEFAULT_DOCUMENT_TYPE"),
			SearchDebounce:      viper.GetDuration("POS_SEARCH_DEBOUNCE"),
			AlertDismissAfter:   viper.GetDuration("POS_ALERT_DISMISS_AFTER"),
			StockConcurrency:    viper.GetInt("POS_STOCK_CHECK_CONCURRENCY"),
		},
		Printer: PrinterConfig{
			Type:      viper.GetString("PRINTER_TYPE"),
			USBPath:   viper.GetString("PRINTER_USB_PATH"),
			Address:   viper.GetString("PRINTER_ADDRESS"),
			Width:     viper.GetInt("PRINTER_WIDTH"),
			AutoPrint: viper.GetBool("PRINTER_AUTO_PRINT"),
		},
		Metrics: MetricsConfig{
			Enabled: viper.GetBool("METRICS_ENABLED"),
			Path:    viper.GetString("METRICS_PATH"),
		},
	}
}

func setDefaults() {
	viper.SetDefault("APP_NAME", "pos-terminal")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("APP_DEBUG", true)
	viper.SetDefault("DB_ENABLED", true)
	viper.SetDefault("DB_HOST", "localhost")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_NAME", "pos_terminal")
	viper.SetDefault("DB_USER", "postgres")
	viper.SetDefault("DB_PASSWORD", "postgres")
	viper.SetDefault("DB_SSL_MODE", "disable")
	viper.SetDefault("DB_TIMEZONE", "America/Guatemala")
	viper.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	viper.SetDefault("JWT_EXPIRY_HOURS", 12)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{})
	viper.SetDefault("RATE_LIMIT_REQUESTS", 100)
	viper.SetDefault("RATE_LIMIT_DURATION", 60)
	viper.SetDefault("BACKEND_URL", "http://localhost/api")
	viper.SetDefault("BACKEND_TIMEOUT", "10s")
	viper.SetDefault("BACKEND_RPS", 20)
	viper.SetDefault("BACKEND_BURST", 40)
	viper.SetDefault("BACKEND_CATALOG_TTL", "5m")
	viper.SetDefault("POS_STOCK_VALIDATION", true)
	viper.SetDefault("POS_EXTRA_FIELDS_ENABLED", false)
	viper.SetDefault("POS_PRICE_TIERS_ENABLED", false)
	viper.SetDefault("POS_ORDERS_ENABLED", false)
	viper.SetDefault("POS_DEFAULT_DOCUMENT_TYPE", "invoice")
	viper.SetDefault("POS_SEARCH_DEBOUNCE", "300ms")
	viper.SetDefault("POS_ALERT_DISMISS_AFTER", "4s")
	viper.SetDefault("POS_STOCK_CHECK_CONCURRENCY", 8)
	viper.SetDefault("PRINTER_TYPE", "none")
	viper.SetDefault("PRINTER_WIDTH", 32)
	viper.SetDefault("PRINTER_AUTO_PRINT", false)
	viper.SetDefault("METRICS_ENABLED", true)
	viper.SetDefault("METRICS_PATH", "/metrics")
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

// splitList accepts both repeated values and a single comma separated value
func splitList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
