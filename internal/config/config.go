package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Pondo"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"pondo"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret string        `envconfig:"JWT_SECRET" default:"supersecretkey"`
		TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`
	}

	Gemini struct {
		APIKey  string `envconfig:"GEMINI_API_KEY"`
		Model   string `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash-lite"`
		BaseURL string `envconfig:"GEMINI_BASE_URL" default:"https://generativelanguage.googleapis.com/v1beta"`
	}

	OCR struct {
		URL   string `envconfig:"OCR_URL" default:"http://localhost:8081/ocr"`
		Token string `envconfig:"OCR_TOKEN"`
	}

	Market struct {
		BaseURL         string `envconfig:"MARKET_BASE_URL" default:"https://finnhub.io/api/v1"`
		APIKey          string `envconfig:"MARKET_API_KEY"`
		FxURL           string `envconfig:"FX_URL" default:"https://api.exchangerate.host"`
		DisplayCurrency string `envconfig:"DISPLAY_CURRENCY" default:"PHP"`
	}

	TUI struct {
		Username string `envconfig:"TUI_USERNAME" default:"demo"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
