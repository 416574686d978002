package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Server     Server     `yaml:"server"`
	Logger     Logger     `yaml:"logger"`
	PostgresDB PostgresDB `yaml:"db"`
	Auth       Auth       `yaml:"auth"`
	RedisCache RedisCache `yaml:"rdb"`
	CORS       CORS       `yaml:"cors"`
}

type Server struct {
	Addr         string        `validate:"required"            yaml:"addr"`
	ReadTimeout  time.Duration `yaml:"readTimeout"`
	IdleTimeout  time.Duration `yaml:"idleTimeout"`
	WriteTimeout time.Duration `yaml:"writeTimeout"`
}

type Logger struct {
	Level     string   `validate:"omitempty,oneof=debug info warn error" yaml:"level"`
	Output    []string `yaml:"output"`
	ErrOutput []string `yaml:"errOutput"`
	File      LogFile  `yaml:"file"`
}

// LogFile enables a rotated log file next to the regular outputs when Path is set.
type LogFile struct {
	Path       string `yaml:"path"`
	MaxSize    int    `validate:"omitempty,min=1,max=1024" yaml:"maxSize"`
	MaxBackups int    `validate:"omitempty,min=1,max=100"  yaml:"maxBackups"`
	MaxAge     int    `validate:"omitempty,min=1,max=365"  yaml:"maxAge"`
}

type PostgresDB struct {
	Addr     string `validate:"required"                  yaml:"addr"`
	Username string `env:"POSTGRES_USER"                  env-required:"true" yaml:"username"`
	Password string `env:"POSTGRES_PASSWORD"              yaml:"password"`
	DB       string `env:"POSTGRES_DB"                    env-required:"true" yaml:"db"`
	SSLmode  string `env-default:"disable"                yaml:"sslmode"`
	MaxConns string `env-default:"10"                     yaml:"maxConns"`
	Reload   bool   `yaml:"reload"`
	Version  int    `yaml:"version"`
}

func (p PostgresDB) ConnString() string {
	return "postgres://" + p.Username + ":" + p.Password + "@" +
		p.Addr + "/" + p.DB + "?" + "sslmode=" + p.SSLmode + "&pool_max_conns=" + p.MaxConns
}

type Auth struct {
	TTL               time.Duration `env-default:"24h"   validate:"gt=0" yaml:"ttl"`
	Secret            string        `env:"SECRET"        env-required:"true" validate:"min=8" yaml:"secret"`
	AllowRegistration bool          `yaml:"allowRegistration"`
	BcryptCost        int           `validate:"omitempty,min=4,max=31" yaml:"bcryptCost"`
	Admin             Admin         `yaml:"admin"`
}

// Admin is the super admin created on startup when no user holds that role yet.
type Admin struct {
	Username string `env:"ADMIN_USERNAME" yaml:"username"`
	Email    string `env:"ADMIN_EMAIL"    yaml:"email"`
	Password string `env:"ADMIN_PASSWORD" yaml:"password"`
}

type RedisCache struct {
	Addr     string        `validate:"required" yaml:"addr"`
	Password string        `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int           `yaml:"db"`
	ExpTime  time.Duration `env-default:"5m"     validate:"gt=0" yaml:"exp"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowedOrigins"`
	MaxAge         int      `env-default:"300" yaml:"maxAge"`
}

func New(configPath string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env error: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return Config{}, fmt.Errorf("read config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("validate config error: %w", err)
	}

	return nil
}
