package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v8"
	"github.com/joho/godotenv"
)

type Config struct {
	Telegram       Telegram
	Log            Log
	CurrencySymbol string `env:"CURRENCY_SYMBOL" envDefault:"$"`
	IDStrategy     string `env:"ID_STRATEGY" envDefault:"uuid"` // uuid or timestamp
	ChatBuffer     int    `env:"CHAT_BUFFER" envDefault:"16"`   // updates waiting per chat before they are dropped
}

type Telegram struct {
	Token   string `env:"TG_TOKEN,required"`
	Timeout int    `env:"TIMEOUT" envDefault:"60"`
	Debug   bool   `env:"TG_DEBUG" envDefault:"false"`
}

type Log struct {
	Level string `env:"LOG_LEVEL" envDefault:"info"`
	JSON  bool   `env:"LOG_JSON" envDefault:"false"`
}

// Load reads .env files if there are any and then the environment
func Load(filenames ...string) (*Config, error) {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config.Load couldn't read .env: %v", err)
	}

	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("config.Load: %v", err)
	}
	return &cfg, nil
}
