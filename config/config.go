package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// Configuration concentra tudo que vem do ambiente. O main carrega .env via
// godotenv/autoload antes de Load() rodar.
type Configuration struct {
	Port    string `env:"PORT" envDefault:"8080"`
	BaseURL string `env:"BASE_URL"`

	// Database escolhe o dialeto: "sqlite3" (default, dev) ou "postgres".
	Database   string `env:"DATABASE" envDefault:"sqlite3"`
	DbHost     string `env:"DB_HOST" envDefault:"localhost"`
	DbPort     string `env:"DB_PORT" envDefault:"5432"`
	DbUser     string `env:"DB_USER"`
	DbName     string `env:"DB_NAME"`
	DbPass     string `env:"DB_PASS"`
	SqlitePath string `env:"SQLITE_PATH" envDefault:"db/database.db"`
	DebugSQL   bool   `env:"DEBUG_SQL" envDefault:"false"`

	PixupClientID     string `env:"PIXUP_CLIENT_ID"`
	PixupClientSecret string `env:"PIXUP_CLIENT_SECRET"`
	PixupAPIURL       string `env:"PIXUP_API_URL" envDefault:"https://api.pixupbr.com/v2"`

	PixelAPIVersion string `env:"PIXEL_API_VERSION" envDefault:"v20.0"`
	PixelQueueSize  int    `env:"PIXEL_QUEUE_SIZE" envDefault:"128"`

	// HTTPTimeout limita todas as chamadas de saída (provedor Pix e pixel).
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
}

func Load() (Configuration, error) {
	var c Configuration
	if err := env.Parse(&c); err != nil {
		return Configuration{}, err
	}
	if c.BaseURL == "" {
		c.BaseURL = "http://localhost:" + c.Port
	}
	return c, nil
}
