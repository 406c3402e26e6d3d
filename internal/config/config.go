package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the homestay-backoffice (HTTP API) configuration.
type Config struct {
	HTTP struct {
		Addr string
	}
	// Capacity is the number of rentable units for occupancy math.
	Capacity int
	// AdminPassword guards the back-office login.
	AdminPassword string
	SessionTTL    time.Duration

	RedisEnabled bool
	Redis        struct {
		Addr     string
		Password string
		DB       int
	}

	Sheets SheetsConfig
	Excel  ExcelConfig
	Gemini GeminiConfig

	Log struct {
		Level  string
		Format string
	}
}

// SheetsConfig is the Google Sheets booking store. When disabled the
// service falls back to the local Excel workbook.
type SheetsConfig struct {
	Enabled       bool
	BaseURL       string
	APIKey        string
	AccessToken   string
	SpreadsheetID string
	Worksheet     string
	SheetGID      int
}

// ExcelConfig is the local workbook store used when Sheets is disabled.
type ExcelConfig struct {
	Path  string
	Sheet string
}

// GeminiConfig drives the AI booking-extraction endpoint. An empty APIKey
// disables extraction.
type GeminiConfig struct {
	BaseURL string
	APIKey  string
	Model   string
}

func Load() *Config {
	// Local runs keep secrets in a .env file; missing file is fine.
	_ = godotenv.Load()

	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")
	cfg.Capacity = parseInt(getEnv("TOTAL_CAPACITY", "3"), 3)
	cfg.AdminPassword = getEnv("ADMIN_PASSWORD", "admin")
	cfg.SessionTTL = time.Duration(parseInt(getEnv("SESSION_TTL_MINUTES", "720"), 720)) * time.Minute

	cfg.RedisEnabled = getEnv("REDIS_ENABLED", "false") == "true"
	cfg.Redis.Addr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.Redis.Password = getEnv("REDIS_PASSWORD", "")
	cfg.Redis.DB = parseInt(getEnv("REDIS_DB", "0"), 0)

	cfg.Sheets.Enabled = getEnv("SHEETS_ENABLED", "false") == "true"
	cfg.Sheets.BaseURL = getEnv("SHEETS_BASE_URL", "https://sheets.googleapis.com")
	cfg.Sheets.APIKey = getEnv("SHEETS_API_KEY", "")
	cfg.Sheets.AccessToken = getEnv("SHEETS_ACCESS_TOKEN", "")
	cfg.Sheets.SpreadsheetID = getEnv("SHEETS_SPREADSHEET_ID", "")
	cfg.Sheets.Worksheet = getEnv("SHEETS_WORKSHEET", "Bookings")
	cfg.Sheets.SheetGID = parseInt(getEnv("SHEETS_GID", "0"), 0)

	cfg.Excel.Path = getEnv("EXCEL_PATH", "bookings.xlsx")
	cfg.Excel.Sheet = getEnv("EXCEL_SHEET", "Bookings")

	cfg.Gemini.BaseURL = getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	cfg.Gemini.APIKey = getEnv("GEMINI_API_KEY", "")
	cfg.Gemini.Model = getEnv("GEMINI_MODEL", "gemini-1.5-flash")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseInt(s string, def int) int {
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}
