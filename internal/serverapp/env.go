package serverapp

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Env holds process runtime settings, separate from game content.
type Env struct {
	Addr        string `env:"DECKBUILDER_ADDR" envDefault:":8080"`
	DataDir     string `env:"DECKBUILDER_DATA_DIR" envDefault:"data"`
	StaticDir   string `env:"DECKBUILDER_STATIC_DIR" envDefault:"static"`
	ContentPath string `env:"DECKBUILDER_CONTENT"`
	DevStatic   bool   `env:"DECKBUILDER_DEV_STATIC"`
}

// LoadEnv parses runtime settings from the environment.
func LoadEnv() (Env, error) {
	var cfg Env
	if err := env.Parse(&cfg); err != nil {
		return Env{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}
