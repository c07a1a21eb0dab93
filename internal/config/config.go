package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env-default:"info"`
	HTTPPort   string `yaml:"http-port" env-default:"9090"`
	SocketPort string `yaml:"socket-port" env-default:"8080"`

	Storage  Storage  `yaml:"storage"`
	Registry Registry `yaml:"registry"`
	Chess    Chess    `yaml:"chess"`
}

type Storage struct {
	Driver     string `yaml:"driver" env-default:"redis"`
	Redis      Redis  `yaml:"redis"`
	SQLitePath string `yaml:"sqlite-path" env-default:"gamehub.db"`
}

type Redis struct {
	Host string `yaml:"host" env-default:"localhost"`
	Port string `yaml:"port" env-default:"6379"`
}

type Registry struct {
	// RoomTTL bounds how long an untouched room survives in the
	// in-memory registry before the janitor reaps it.
	RoomTTL time.Duration `yaml:"room-ttl" env-default:"24h"`
}

type Chess struct {
	// ValidateMoves switches the chess relay from trusting clients
	// to replaying every reported board against the server engine.
	ValidateMoves bool `yaml:"validate-moves" env-default:"false"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
