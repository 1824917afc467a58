package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DiscordToken  string `env:"DISCORD_TOKEN,required,notEmpty"`
	GuildID       string `env:"GUILD_ID"`
	ClearCommands bool   `env:"CLEAR_COMMANDS" envDefault:"false"`

	API

	StoragePath string `env:"STORAGE_PATH" envDefault:"data/datastore.json"`

	PageTimeout    time.Duration `env:"PAGE_TIMEOUT" envDefault:"60s"`
	ConfirmTimeout time.Duration `env:"CONFIRM_TIMEOUT" envDefault:"15s"`

	HTTPAddr         string `env:"HTTP_ADDR"`
	DiscordPublicKey string `env:"DISCORD_PUBLIC_KEY"`
}

// Load reads .env (if present) and parses the environment into a Config.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}
	return Parse()
}

// API is the Croissant API part of the configuration, all the CLI needs.
type API struct {
	APIURL     string  `env:"API_URL" envDefault:"http://localhost:3000"`
	HashSecret string  `env:"HASH_SECRET"`
	APIRate    float64 `env:"API_RATE" envDefault:"10"`
}

// LoadAPI reads .env (if present) and parses only the API settings.
func LoadAPI() (*API, error) {
	_ = godotenv.Load()
	var api API
	if err := env.Parse(&api); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := api.validate(); err != nil {
		return nil, err
	}
	return &api, nil
}

func (a *API) validate() error {
	a.APIURL = strings.TrimRight(a.APIURL, "/")
	if a.APIURL == "" {
		return errors.New("API_URL must not be empty")
	}
	if a.APIRate <= 0 {
		return errors.New("API_RATE must be positive")
	}
	return nil
}

// APIBase is the root of every Croissant API route.
func (a *API) APIBase() string {
	return a.APIURL + "/api"
}

// Parse builds a Config from the current environment only.
func Parse() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if err := c.API.validate(); err != nil {
		return err
	}
	if c.PageTimeout <= 0 || c.ConfirmTimeout <= 0 {
		return errors.New("PAGE_TIMEOUT and CONFIRM_TIMEOUT must be positive")
	}
	if c.HTTPAddr != "" {
		if _, err := c.PublicKey(); err != nil {
			return err
		}
	}
	return nil
}

// PublicKey decodes DISCORD_PUBLIC_KEY, required by the webhook transport.
func (c *Config) PublicKey() ([]byte, error) {
	if c.DiscordPublicKey == "" {
		return nil, errors.New("DISCORD_PUBLIC_KEY is required when HTTP_ADDR is set")
	}
	key, err := hex.DecodeString(c.DiscordPublicKey)
	if err != nil {
		return nil, fmt.Errorf("decode DISCORD_PUBLIC_KEY: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("DISCORD_PUBLIC_KEY must be 32 bytes, got %d", len(key))
	}
	return key, nil
}
