package main

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config holds the flag defaults. Each value can come from the environment
// or a .env file in the working directory; flags still win.
type config struct {
	Templates string `env:"CALCFORM_TEMPLATES"`
	Messages  string `env:"CALCFORM_MESSAGES"`
	Locale    string `env:"CALCFORM_LOCALE"`
	LogLevel  string `env:"CALCFORM_LOG_LEVEL" envDefault:"warn"`
	LogFormat string `env:"CALCFORM_LOG_FORMAT" envDefault:"console"`
	Addr      string `env:"CALCFORM_ADDR" envDefault:":8080"`
}

func loadConfig() (config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	var cfg config
	if err := env.Parse(&cfg); err != nil {
		return config{}, fmt.Errorf("read environment: %w", err)
	}
	return cfg, nil
}
