package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/fading-tictactoe/internal/apperror"
	"github.com/rocketscienceinc/fading-tictactoe/internal/entity"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
)

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	Game     Game    `yaml:"game"`
	Storage  Storage `yaml:"storage"`
	Redis    Redis   `yaml:"redis"`
	Palette  Palette `yaml:"palette"`
}

type Game struct {
	BoardSize       int `yaml:"board-size" env:"BOARD_SIZE" env-default:"7"`
	ActiveMarkLimit int `yaml:"active-mark-limit" env:"ACTIVE_MARK_LIMIT" env-default:"7"`
}

type Storage struct {
	Driver     string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
	SQLitePath string `yaml:"sqlite-path" env:"SQLITE_PATH" env-default:"results.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Palette struct {
	Monochrome bool   `yaml:"monochrome" env:"MONOCHROME"`
	X          string `yaml:"x" env-default:"#ffc7e3"`
	O          string `yaml:"o" env-default:"#c7ffca"`
	Faded      string `yaml:"faded" env-default:"#525252"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the YAML file at path when it exists and the environment otherwise.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, statErr := os.Stat(path)

	switch {
	case statErr == nil:
		if err := cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("could not read config %s: %w", path, err)
		}
	case errors.Is(statErr, os.ErrNotExist):
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("could not read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("could not stat config %s: %w", path, statErr)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Game.BoardSize < entity.MinBoardSize {
		return fmt.Errorf("%w: board-size must be at least %d, got %d", apperror.ErrInvalidSettings, entity.MinBoardSize, that.Game.BoardSize)
	}

	if that.Game.ActiveMarkLimit < entity.MinActiveMarkLimit {
		return fmt.Errorf("%w: active-mark-limit must be at least %d, got %d", apperror.ErrInvalidSettings, entity.MinActiveMarkLimit, that.Game.ActiveMarkLimit)
	}

	switch that.Storage.Driver {
	case StorageMemory, StorageRedis, StorageSQLite:
	default:
		return fmt.Errorf("%w: %q", apperror.ErrUnknownStorage, that.Storage.Driver)
	}

	return nil
}

func (that *Game) Settings() entity.Settings {
	return entity.Settings{
		BoardSize:       that.BoardSize,
		ActiveMarkLimit: that.ActiveMarkLimit,
	}
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
