package main

import (
	"errors"
	"flag"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// config собирает настройки сервиса: сначала флаги, затем переменные окружения поверх них
type config struct {
	RunAddr  string `env:"RUN_ADDR"`
	LogLevel string `env:"LOG_LEVEL"`
	// Debug переключает логирование на уровень debug и больше ни на что не влияет
	Debug bool `env:"DEBUG"`

	DatabaseDSN   string `env:"DATABASE_DSN"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB"`

	// сервер поднимается с TLS, только если заданы и сертификат, и ключ
	TLSCert string `env:"TLS_CERT"`
	TLSKey  string `env:"TLS_KEY"`
}

// errTLSPair возвращается, если задан только один из файлов TLS
var errTLSPair = errors.New("both TLS certificate and key are required")

func (c config) tls() bool {
	return c.TLSCert != "" && c.TLSKey != ""
}

func parseFlags(args []string) (config, error) {
	var cfg config

	flags := flag.NewFlagSet("ext", flag.ContinueOnError)
	flags.StringVar(&cfg.RunAddr, "a", ":8770", "address and port to run server")
	flags.StringVar(&cfg.LogLevel, "l", "info", "log level")
	flags.BoolVar(&cfg.Debug, "debug", false, "enable debug logging")
	flags.StringVar(&cfg.DatabaseDSN, "d", "", "PostgreSQL DSN of the results journal")
	flags.StringVar(&cfg.RedisAddr, "r", "", "Redis address of the results journal")
	flags.StringVar(&cfg.TLSCert, "ssl-cert", "", "TLS certificate file")
	flags.StringVar(&cfg.TLSKey, "ssl-key", "", "TLS key file")
	if err := flags.Parse(args); err != nil {
		return cfg, err
	}

	// .env необязателен, уже заданные переменные окружения он не перезаписывает
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return cfg, err
	}

	// переменные окружения имеют приоритет над флагами
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}

	if (cfg.TLSCert == "") != (cfg.TLSKey == "") {
		return cfg, errTLSPair
	}

	if cfg.Debug {
		cfg.LogLevel = "debug"
	}
	return cfg, nil
}
