// config предоставляет структуру конфигурации сервиса и функции
// загрузки из файла/переменных окружения с предсказуемым приоритетом.
package config

import (
	"fmt"
	"net"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config — корневая конфигурация сервиса.
// Источники значений (по убыванию приоритета):
//  1. явный путь через флаг --config;
//  2. путь в переменной окружения CONFIG_PATH;
//  3. файл local.yaml из рабочей директории;
//  4. переменные окружения (cleanenv).
type Config struct {
	Env        string           `yaml:"env" env:"ENV" env-default:"local"`
	HTTP       HTTPConfig       `yaml:"http"`
	Ops        OpsConfig        `yaml:"ops"`
	Redis      RedisConfig      `yaml:"redis"`
	Profile    ProfileConfig    `yaml:"profile"`
	Translator TranslatorConfig `yaml:"translator"`
	Translate  TranslateConfig  `yaml:"translate"`
	Timeouts   TimeoutConfig    `yaml:"timeouts"`
}

// ProfileConfig — доменные настройки профилей.
type ProfileConfig struct {
	// DefaultBaseLanguage — базовый язык профиля, создаваемого при первом обращении.
	DefaultBaseLanguage string `yaml:"default_base_language" env:"DEFAULT_BASE_LANGUAGE" env-default:"fr"`
}

// HTTPConfig — сетевые настройки API-сервера.
type HTTPConfig struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"50090"`
}

// OpsConfig — сетевые настройки служебного сервера (livez/healthz/metrics).
type OpsConfig struct {
	Host string `yaml:"host" env:"OPS_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"OPS_PORT" env-default:"50091"`
}

// Addr возвращает адрес в формате host:port.
func (h HTTPConfig) Addr() string {
	return net.JoinHostPort(h.Host, h.Port)
}

// Addr возвращает адрес в формате host:port.
func (o OpsConfig) Addr() string {
	return net.JoinHostPort(o.Host, o.Port)
}

// RedisConfig — настройки подключения к хранилищу профилей.
type RedisConfig struct {
	RedisURL  string `yaml:"redis_url" env:"REDIS_URL" env-required:"true"`
	KeyPrefix string `yaml:"key_prefix" env:"REDIS_KEY_PREFIX" env-default:"profile:"`
}

// TranslatorConfig — параметры внешнего провайдера перевода.
// Ключ и endpoint читаются один раз на старте процесса и дальше
// передаются как инжектируемая зависимость (движок тестируется с фейком).
type TranslatorConfig struct {
	Endpoint string        `yaml:"endpoint" env:"TRANSLATOR_ENDPOINT" env-default:"https://api.deepl.com"`
	APIKey   string        `yaml:"api_key" env:"TRANSLATOR_API_KEY" env-required:"true"`
	Timeout  time.Duration `yaml:"timeout" env:"TRANSLATOR_TIMEOUT" env-default:"15s"`
}

// TranslateConfig — параметры движка согласования переводов.
// Parallelism ограничивает число одновременных вызовов провайдера
// в TranslateAll (лимиты провайдера).
type TranslateConfig struct {
	Parallelism int `yaml:"parallelism" env:"TRANSLATE_PARALLELISM" env-default:"4"`
}

// TimeoutConfig — таймауты сервиса.
type TimeoutConfig struct {
	Service time.Duration `yaml:"service" env:"SERVICE_TIMEOUT" env-default:"30s"`
}

// MustLoad — обёртка над Load с panic при ошибке.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

// Load загружает конфигурацию по приоритету:
// 1) явный путь; 2) CONFIG_PATH; 3) ./local.yaml; 4) ENV.
// ВАЖНО: после чтения файла накладываем ENV-переменные поверх значений из YAML.
func Load(path string) (*Config, error) {
	var cfg Config

	// чтение файла + overlay ENV.
	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) Явный путь.
	if path != "" {
		c, err := tryRead(path)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 2) CONFIG_PATH.
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		c, err := tryRead(envPath)
		if err != nil {
			return nil, err
		}

		return c, nil
	}

	// 3) ./local.yaml.
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) Только ENV.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
