package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/goserg/ratingengine/internal/policy"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type TgBot struct {
	Enabled          bool   `toml:"enabled"`
	TelegramApiToken string `toml:"telegram_apitoken"`
	Debug            bool   `toml:"debug"`
	// ChatIDs are subscribed to every notification on start.
	ChatIDs []int64 `toml:"chat_ids"`
}

type Rating struct {
	KFactor float64 `toml:"k_factor"`
	// KPolicy is "fixed" or "experience".
	KPolicy string `toml:"k_policy"`
}

type Server struct {
	Host       string `toml:"host"`
	Port       int    `toml:"port"`
	Debug      bool   `toml:"debug_mode"`
	LogLevel   string `toml:"log_level"`
	SqliteFile string `toml:"sqlite_file"`
	// CertFile and KeyFile switch the API to TLS when both are set.
	CertFile string        `toml:"cert_file"`
	KeyFile  string        `toml:"key_file"`
	Rating   Rating        `toml:"rating"`
	Rules    []policy.Rule `toml:"rules"`
}

type Config struct {
	TgBot  TgBot
	Server Server
}

func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (s Server) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

func defaults() Config {
	return Config{
		Server: Server{
			Port:       3000,
			LogLevel:   "info",
			SqliteFile: "rating.sqlite",
			Rating: Rating{
				KFactor: 32,
				KPolicy: "fixed",
			},
		},
	}
}

// New reads both config files, an empty botPath leaves the bot disabled.
// Variables from the environment or an optional .env file win over the files.
func New(serverPath, botPath string) (Config, error) {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf(".env: %w", err)
	}

	cfg := defaults()
	_, err = toml.DecodeFile(serverPath, &cfg.Server)
	if err != nil {
		return Config{}, err
	}
	if botPath != "" {
		_, err = toml.DecodeFile(botPath, &cfg.TgBot)
		if err != nil {
			return Config{}, err
		}
	}

	token := os.Getenv("TELEGRAM_APITOKEN")
	if token != "" {
		cfg.TgBot.TelegramApiToken = token
	}
	file := os.Getenv("SQLITE_FILE")
	if file != "" {
		cfg.Server.SqliteFile = file
	}

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Server.Port)
	}
	if cfg.TgBot.Enabled && cfg.TgBot.TelegramApiToken == "" {
		return Config{}, errors.New("telegram bot is enabled but TELEGRAM_APITOKEN is empty")
	}
	return cfg, nil
}
