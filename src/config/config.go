package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Service         ServiceConfig        `mapstructure:"service"`
	Databases       DatabasesConfig      `mapstructure:"databases"`
	Auth            AuthConfig           `mapstructure:"auth"`
	ExternalClients ExternalClientConfig `mapstructure:"externalClients"`
	RequestLogs     RequestLogsConfig    `mapstructure:"requestLogs"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
	LogLevel       string      `mapstructure:"logLevel"`
	LogFile        string      `mapstructure:"logFile"`
}

type DatabasesConfig struct {
	SQL   SQLConfig   `mapstructure:"sql"`
	Redis RedisConfig `mapstructure:"redis"`
}

type SQLConfig struct {
	Host             string `mapstructure:"host"`
	Port             string `mapstructure:"port"`
	Username         string `mapstructure:"username"`
	Password         string `mapstructure:"password"`
	Driver           string `mapstructure:"driver"`
	Database         string `mapstructure:"database"`
	ConnectionString string `mapstructure:"connection_string"`
}

// DSN returns the connection string, building it from the parts when no
// explicit connection string is configured.
func (c SQLConfig) DSN() string {
	if c.ConnectionString != "" {
		return c.ConnectionString
	}
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.Host,
		c.Username,
		c.Password,
		c.Database,
		c.Port)
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	Database int    `mapstructure:"database"`
	TLS      bool   `mapstructure:"tls"`
}

type AuthConfig struct {
	JWTSecret       string        `mapstructure:"jwtSecret"`
	AWSRegion       string        `mapstructure:"awsRegion"`
	JWTSecretID     string        `mapstructure:"jwtSecretId"`
	AccessLifetime  time.Duration `mapstructure:"accessLifetime"`
	RefreshLifetime time.Duration `mapstructure:"refreshLifetime"`
}

type ExternalClientConfig struct {
	AMFI AMFIConfig `mapstructure:"amfi"`
}

type AMFIConfig struct {
	URL        string        `mapstructure:"url"`
	Timeout    time.Duration `mapstructure:"timeout"`
	CacheTTL   time.Duration `mapstructure:"cacheTtl"`
	MaxRetries uint64        `mapstructure:"maxRetries"`
	RetryBase  time.Duration `mapstructure:"retryBase"`
}

type RequestLogsConfig struct {
	RetentionDays int    `mapstructure:"retentionDays"`
	CleanupCron   string `mapstructure:"cleanupCron"`
}

// LoadConfig reads settings/appsettings.yaml, or appsettings.<env>.yaml when
// env is set. Values can be overridden from the environment, e.g.
// AUTH_JWTSECRET overrides auth.jwtSecret.
func LoadConfig(path string, env string) (*Config, error) {
	var cfg Config

	// A missing .env is fine, the process environment is used as is.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	if env != "" {
		v.SetConfigName(fmt.Sprintf("appsettings.%s", env))
	} else {
		v.SetConfigName("appsettings")
	}
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("service.logLevel", "info")
	v.SetDefault("auth.awsRegion", "ap-south-1")
	v.SetDefault("auth.accessLifetime", 5*time.Minute)
	v.SetDefault("auth.refreshLifetime", 24*time.Hour)
	v.SetDefault("externalClients.amfi.url", "https://www.amfiindia.com/modules/NearestFinancialAdvisorsDetails")
	v.SetDefault("externalClients.amfi.timeout", 15*time.Second)
	v.SetDefault("externalClients.amfi.cacheTtl", 24*time.Hour)
	v.SetDefault("externalClients.amfi.maxRetries", 2)
	v.SetDefault("externalClients.amfi.retryBase", 200*time.Millisecond)
	v.SetDefault("requestLogs.retentionDays", 90)
	v.SetDefault("requestLogs.cleanupCron", "0 3 * * *")
}
