// Package config предоставляет структуры и функцию для парсинга и загрузки конфига.
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config общая структура для хранения настроек платформы.
type Config struct {
	Env                     string `yaml:"env" env:"ENV" env-default:"local"`
	StorageConnectionString string `yaml:"storage_connection_string" env:"STORAGE_CONNECTION_STRING"`
	MigrationsPath          string `yaml:"migrations_path" env:"MIGRATIONS_PATH" env-default:"./migrations"`
	AmqpConnectionString    string `yaml:"amqp_connection_string" env:"AMQP_CONNECTION_STRING"`
	RedisConnection         `yaml:"redis_connection"`
	HTTPServer              `yaml:"http_server"`
	Payment                 `yaml:"payment"`
	Meetings                `yaml:"meetings"`
	Assistant               `yaml:"assistant"`
	Admin                   `yaml:"admin"`
	JWTToken                `yaml:"jwttoken"`
	SMTPConnection          `yaml:"smtp_connection"`
}

// HTTPServer структура для настройки сервера.
type HTTPServer struct {
	AddressHTTP string        `yaml:"addresshttp" env-default:"localhost:8080"`
	TimeoutHTTP time.Duration `yaml:"timeouthttp" env-default:"5s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
}

// RedisConnection структура для настройки подключения к redis.
// Пустой адрес означает работу без кеша.
type RedisConnection struct {
	AddressRedis string        `yaml:"addressredis" env:"REDIS_ADDRESS"`
	Password     string        `yaml:"password" env:"REDIS_PASSWORD"`
	User         string        `yaml:"user"`
	DB           int           `yaml:"db"`
	MaxRetries   int           `yaml:"max_retries" env-default:"3"`
	DialTimeout  time.Duration `yaml:"dial_timeout" env-default:"5s"`
	TimeoutRedis time.Duration `yaml:"timeoutredis" env-default:"3s"`
}

// Payment структура с учётными данными платёжного провайдера.
type Payment struct {
	StripeSecretKey string `yaml:"stripe_secret_key" env:"STRIPE_SECRET_KEY"`
	Currency        string `yaml:"currency" env-default:"thb"`
}

// Meetings структура с учётными данными провайдера видеовстреч.
type Meetings struct {
	ZoomAccountID    string `yaml:"zoom_account_id" env:"ZOOM_ACCOUNT_ID"`
	ZoomClientID     string `yaml:"zoom_client_id" env:"ZOOM_API_KEY"`
	ZoomClientSecret string `yaml:"zoom_client_secret" env:"ZOOM_API_SECRET"`
}

// Assistant структура с настройками AI-ассистента. Ключ опционален:
// без него ассистент отвечает фиксированными правилами.
type Assistant struct {
	OpenAIAPIKey string `yaml:"openai_api_key" env:"OPENAI_API_KEY"`
}

// Admin учётные данные администратора бэк-офиса.
type Admin struct {
	AdminUsername     string `yaml:"admin_username" env:"ADMIN_USERNAME"`
	AdminPasswordHash string `yaml:"admin_password_hash" env:"ADMIN_PASSWORD_HASH"`
	AdminEmail        string `yaml:"admin_email" env:"ADMIN_EMAIL"`
}

// JWTToken структура для работы с jwt-токеном админ-сессий.
type JWTToken struct {
	JWTSecretKey string        `yaml:"jwt_secret_key" env:"JWT_SECRET_KEY"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"12h"`
}

// SMTPConnection структура для настройки отправки почты.
type SMTPConnection struct {
	SMTPHost string `yaml:"smtp_host" env:"SMTP_HOST"`
	SMTPPort string `yaml:"smtp_port" env-default:"587"`
	SMTPUser string `yaml:"smtp_user" env:"SMTP_USER"`
	SMTPPass string `yaml:"smtp_pass" env:"SMTP_PASS"`
}

// MustLoad загружает конфиг по пути из CONFIG_PATH и проверяет обязательные
// секреты. Отсутствие обязательного секрета — фатальная ошибка запуска,
// а не ошибка на каждый запрос.
func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		log.Fatal("CONFIG_PATH is not set")
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("file: %s - does not exist", configPath)
	}
	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	if cfg.StripeSecretKey == "" {
		log.Fatal("missing required payment secret: stripe_secret_key")
	}
	if cfg.ZoomAccountID == "" || cfg.ZoomClientID == "" || cfg.ZoomClientSecret == "" {
		log.Fatal("missing required meeting credentials: zoom_account_id, zoom_client_id, zoom_client_secret")
	}
	if cfg.JWTSecretKey == "" {
		log.Fatal("missing required jwt_secret_key")
	}
	if cfg.AdminUsername == "" || cfg.AdminPasswordHash == "" {
		log.Fatal("missing required admin credentials: admin_username, admin_password_hash")
	}
	return &cfg
}
