package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type HTTPConfig struct {
	Host           string
	Port           int
	AllowedOrigins []string
}

type DBConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

type AuthConfig struct {
	AccessSecret string
	AccessTTL    time.Duration
}

type RedisConfig struct {
	URL string
	TTL time.Duration
}

type ProviderConfig struct {
	BaseURL string
	Key     string
	Secret  string
}

func (p ProviderConfig) Enabled() bool {
	return p.Key != ""
}

type RegistryConfig struct {
	DataNewton ProviderConfig
	FNS        ProviderConfig
	DaData     ProviderConfig
	Timeout    time.Duration
	Interval   time.Duration
	UseMock    bool
}

type DocumentsConfig struct {
	TemplatePath string
	LicenseKey   string
	PDFFontPath  string
	HistoryLimit int
}

type Config struct {
	Environment string
	HTTP        HTTPConfig
	DB          DBConfig
	Auth        AuthConfig
	Redis       RedisConfig
	Registry    RegistryConfig
	Documents   DocumentsConfig
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("app")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("./deploy")
	v.AddConfigPath("./internal/config")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HTTP_HOST", "0.0.0.0")
	v.SetDefault("HTTP_PORT", 7090)
	v.SetDefault("JWT_ACCESS_TTL", "12h")
	v.SetDefault("REDIS_TTL", "24h")
	v.SetDefault("DATANEWTON_URL", "https://api.datanewton.ru")
	v.SetDefault("API_FNS_URL", "https://api-fns.ru")
	v.SetDefault("DADATA_URL", "https://suggestions.dadata.ru/suggestions/api/4_1/rs")
	v.SetDefault("REGISTRY_TIMEOUT", "10s")
	v.SetDefault("REGISTRY_INTERVAL", "200ms")
	v.SetDefault("REGISTRY_USE_MOCK", true)
	v.SetDefault("CONTRACT_TEMPLATE_PATH", "templates/contract_template.docx")
	v.SetDefault("HISTORY_LIMIT", 50)

	_ = v.ReadInConfig()

	cfg := &Config{
		Environment: v.GetString("APP_ENV"),
		HTTP: HTTPConfig{
			Host:           v.GetString("HTTP_HOST"),
			Port:           v.GetInt("HTTP_PORT"),
			AllowedOrigins: parseList(v.GetString("HTTP_ALLOWED_ORIGINS")),
		},
		DB: DBConfig{
			DSN:             v.GetString("DB_DSN"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: v.GetString("DB_CONN_MAX_LIFETIME"),
		},
		Auth: AuthConfig{
			AccessSecret: v.GetString("JWT_ACCESS_SECRET"),
			AccessTTL:    v.GetDuration("JWT_ACCESS_TTL"),
		},
		Redis: RedisConfig{
			URL: v.GetString("REDIS_URL"),
			TTL: v.GetDuration("REDIS_TTL"),
		},
		Registry: RegistryConfig{
			DataNewton: ProviderConfig{
				BaseURL: v.GetString("DATANEWTON_URL"),
				Key:     v.GetString("DATANEWTON_API_KEY"),
			},
			FNS: ProviderConfig{
				BaseURL: v.GetString("API_FNS_URL"),
				Key:     v.GetString("API_FNS_API_KEY"),
			},
			DaData: ProviderConfig{
				BaseURL: v.GetString("DADATA_URL"),
				Key:     v.GetString("DADATA_API_KEY"),
				Secret:  v.GetString("DADATA_SECRET_KEY"),
			},
			Timeout:  v.GetDuration("REGISTRY_TIMEOUT"),
			Interval: v.GetDuration("REGISTRY_INTERVAL"),
			UseMock:  v.GetBool("REGISTRY_USE_MOCK"),
		},
		Documents: DocumentsConfig{
			TemplatePath: v.GetString("CONTRACT_TEMPLATE_PATH"),
			LicenseKey:   v.GetString("UNIDOC_LICENSE_API_KEY"),
			PDFFontPath:  v.GetString("PDF_FONT_PATH"),
			HistoryLimit: v.GetInt("HISTORY_LIMIT"),
		},
	}

	if cfg.Documents.HistoryLimit <= 0 {
		cfg.Documents.HistoryLimit = 50
	}
	if len(cfg.HTTP.AllowedOrigins) == 0 {
		cfg.HTTP.AllowedOrigins = []string{"*"}
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func validate(cfg *Config) error {
	if cfg.DB.DSN == "" {
		return fmt.Errorf("DB_DSN is required")
	}
	if cfg.Auth.AccessSecret == "" {
		return fmt.Errorf("JWT_ACCESS_SECRET is required")
	}
	if cfg.Auth.AccessTTL <= 0 {
		return fmt.Errorf("JWT_ACCESS_TTL must be positive")
	}
	if cfg.Documents.TemplatePath == "" {
		return fmt.Errorf("CONTRACT_TEMPLATE_PATH is required")
	}
	// без ключа unioffice не открывает ни один документ
	if cfg.Documents.LicenseKey == "" {
		return fmt.Errorf("UNIDOC_LICENSE_API_KEY is required")
	}
	return nil
}

func parseList(raw string) []string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	items := strings.Split(raw, ",")
	result := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			result = append(result, item)
		}
	}
	return result
}
