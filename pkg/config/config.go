package config

import (
	"os"
	"strconv"
)

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
}

// MQConfig holds RabbitMQ settings.
type MQConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds Redis settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// JWTConfig holds token signing settings.
type JWTConfig struct {
	Secret string `yaml:"secret"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port string `yaml:"port"`
}

// TelegramConfig holds the messaging gateway settings.
type TelegramConfig struct {
	Token   string `yaml:"token"`
	APIBase string `yaml:"api_base"`
}

// ScheduleConfig holds reminder scheduling settings.
type ScheduleConfig struct {
	Timezone            string `yaml:"timezone"`
	BeatIntervalSeconds int    `yaml:"beat_interval_seconds"`
}

// OverrideDBFromEnv applies DB_* environment variables over the config.
func OverrideDBFromEnv(cfg *DBConfig) {
	if host := os.Getenv("DB_HOST"); host != "" {
		cfg.Host = host
	}
	if port := os.Getenv("DB_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			cfg.Port = p
		}
	}
	if user := os.Getenv("DB_USER"); user != "" {
		cfg.User = user
	}
	if password := os.Getenv("DB_PASSWORD"); password != "" {
		cfg.Password = password
	}
	if name := os.Getenv("DB_NAME"); name != "" {
		cfg.Name = name
	}
}

// OverrideMQFromEnv applies MQ_* environment variables over the config.
func OverrideMQFromEnv(cfg *MQConfig) {
	if url := os.Getenv("MQ_URL"); url != "" {
		cfg.URL = url
	}
}

// OverrideRedisFromEnv applies REDIS_* environment variables over the config.
func OverrideRedisFromEnv(cfg *RedisConfig) {
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cfg.Addr = addr
	}
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Password = password
	}
}

// OverrideJWTFromEnv applies JWT_* environment variables over the config.
func OverrideJWTFromEnv(cfg *JWTConfig) {
	if secret := os.Getenv("JWT_SECRET"); secret != "" {
		cfg.Secret = secret
	}
}

// OverrideServerFromEnv applies SERVER_* environment variables over the config.
func OverrideServerFromEnv(cfg *ServerConfig) {
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Port = port
	}
}

// OverrideTelegramFromEnv applies TELEGRAM_* environment variables over the config.
func OverrideTelegramFromEnv(cfg *TelegramConfig) {
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		cfg.Token = token
	}
	if base := os.Getenv("TELEGRAM_API_BASE"); base != "" {
		cfg.APIBase = base
	}
}

// OverrideScheduleFromEnv applies SCHEDULE_* environment variables over the config.
func OverrideScheduleFromEnv(cfg *ScheduleConfig) {
	if tz := os.Getenv("SCHEDULE_TIMEZONE"); tz != "" {
		cfg.Timezone = tz
	}
	if sec := os.Getenv("SCHEDULE_BEAT_INTERVAL_SECONDS"); sec != "" {
		if s, err := strconv.Atoi(sec); err == nil {
			cfg.BeatIntervalSeconds = s
		}
	}
}
