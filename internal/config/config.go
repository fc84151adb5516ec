package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config конфигурация сервиса, загружается из config.toml
// Секреты (пароль БД, URL брокера) могут переопределяться переменными
// окружения; .env подхватывается, если присутствует
type Config struct {
	Server        ServerConfig        `toml:"server"`
	Database      DatabaseConfig      `toml:"database"`
	Logs          LogsConfig          `toml:"logs"`
	Metrics       MetricsConfig       `toml:"metrics"`
	Booking       BookingConfig       `toml:"booking"`
	Loyalty       LoyaltyConfig       `toml:"loyalty"`
	Notifications NotificationsConfig `toml:"notifications"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
	MigrationsDir   string `toml:"migrations_dir"`
}

// DSN возвращает строку подключения к PostgreSQL
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type BookingConfig struct {
	// BufferMinutes буфер вокруг существующих записей при выдаче слотов
	BufferMinutes int `toml:"buffer_minutes"`
	// ReminderWindowMinutes ширина окна сканирования напоминаний;
	// cron-триггер должен запускаться не реже, чем раз в это окно
	ReminderWindowMinutes int `toml:"reminder_window_minutes"`
}

type LoyaltyConfig struct {
	Enabled         bool `toml:"enabled"`
	StampsPerReward int  `toml:"stamps_per_reward"`
}

type NotificationsConfig struct {
	Enabled bool   `toml:"enabled"`
	AMQPURL string `toml:"amqp_url"`
	Queue   string `toml:"queue"`
	// DefaultLanguage язык шаблонов, если у клиента не задан свой
	DefaultLanguage string `toml:"default_language"`
}

// Load читает конфигурацию из TOML файла
// Переменные окружения DB_PASSWORD и AMQP_URL имеют приоритет над файлом
func Load(path string) (*Config, error) {
	// .env опционален: в проде переменные приходят из окружения
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("config: decode %s: %w", path, err)
	}

	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("AMQP_URL"); v != "" {
		cfg.Notifications.AMQPURL = v
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.HTTPPort == 0 {
		cfg.Server.HTTPPort = 8080
	}
	if cfg.Logs.Level == "" {
		cfg.Logs.Level = "info"
	}
	if cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "/metrics"
	}
	if cfg.Metrics.ServiceName == "" {
		cfg.Metrics.ServiceName = "salon-booking-service"
	}
	if cfg.Booking.BufferMinutes == 0 {
		cfg.Booking.BufferMinutes = 15
	}
	if cfg.Booking.ReminderWindowMinutes == 0 {
		cfg.Booking.ReminderWindowMinutes = 15
	}
	if cfg.Loyalty.StampsPerReward == 0 {
		cfg.Loyalty.StampsPerReward = 10
	}
	if cfg.Notifications.Queue == "" {
		cfg.Notifications.Queue = "salon.notifications"
	}
	if cfg.Notifications.DefaultLanguage == "" {
		cfg.Notifications.DefaultLanguage = "ru"
	}
	if cfg.Database.MigrationsDir == "" {
		cfg.Database.MigrationsDir = "migrations"
	}
}

func validate(cfg *Config) error {
	if cfg.Database.Host == "" || cfg.Database.DBName == "" {
		return fmt.Errorf("config: database host and dbname are required")
	}
	if cfg.Booking.BufferMinutes < 0 {
		return fmt.Errorf("config: buffer_minutes must not be negative")
	}
	if cfg.Notifications.Enabled && cfg.Notifications.AMQPURL == "" {
		return fmt.Errorf("config: notifications enabled but amqp_url is empty")
	}
	return nil
}
