package engine

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска движка.
type Config struct {
	// Размеры тайловой сетки. Фиксируются на все время жизни игры.
	Width  int `env:"SHANZAI_WIDTH" envDefault:"40"`
	Height int `env:"SHANZAI_HEIGHT" envDefault:"20"`

	// Наполнение уровня.
	NumMonsters int `env:"SHANZAI_MONSTERS" envDefault:"8"`
	NumItems    int `env:"SHANZAI_ITEMS" envDefault:"6"`

	// Приемник телеметрии (UDP, best-effort).
	OSCHost string `env:"SHANZAI_OSC_HOST" envDefault:"127.0.0.1"`
	OSCPort int    `env:"SHANZAI_OSC_PORT" envDefault:"9001"`

	// HTTP порт внешнего слоя.
	Port string `env:"SHANZAI_PORT" envDefault:"8080"`

	// Seed - мастер-зерно генерации. 0 означает случайное.
	Seed int64 `env:"SHANZAI_SEED" envDefault:"0"`
}

// LoadConfig читает конфигурацию из переменных окружения.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, nil
}
