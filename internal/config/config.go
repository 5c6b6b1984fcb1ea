package config

import (
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// ErrMissingDatabaseURL indica que POSTGRES_URL não foi informada
var ErrMissingDatabaseURL = errors.New("config: POSTGRES_URL é obrigatória")

type Config struct {
	App      App      `mapstructure:",squash"`
	Server   Server   `mapstructure:",squash"`
	Database Database `mapstructure:",squash"`
	Seed     Seed     `mapstructure:",squash"`
	Auth     Auth     `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

type Database struct {
	DSN          string `mapstructure:"-"`
	URL          string `mapstructure:"postgres_url"`
	SSLMode      string `mapstructure:"database_sslmode"`
	MaxOpenConns int    `mapstructure:"database_max_open_conns"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Seed struct {
	HashCost     int    `mapstructure:"seed_hash_cost"`
	HashWorkers  int    `mapstructure:"seed_hash_workers"`
	DatasetPath  string `mapstructure:"seed_dataset_path"`
	OnStartup    bool   `mapstructure:"seed_on_startup"`
	CronEnabled  bool   `mapstructure:"seed_cron_enabled"`
	CronSchedule string `mapstructure:"seed_cron"`
}

type Auth struct {
	Secret string `mapstructure:"seed_auth_secret"`
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("HOST", "localhost")
	v.SetDefault("PORT", "8000")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")

	v.SetDefault("POSTGRES_URL", "")
	v.SetDefault("DATABASE_SSLMODE", "require") // o Postgres da Vercel exige SSL
	v.SetDefault("DATABASE_MAX_OPEN_CONNS", 5)

	v.SetDefault("SEED_HASH_COST", 10)
	v.SetDefault("SEED_HASH_WORKERS", 4)
	v.SetDefault("SEED_DATASET_PATH", "")
	v.SetDefault("SEED_ON_STARTUP", false)
	v.SetDefault("SEED_CRON_ENABLED", false)
	v.SetDefault("SEED_CRON", "0 3 * * *") // Todos os dias às 3h da manhã

	v.SetDefault("SEED_AUTH_SECRET", "")

	v.SetDefault("LOG_LEVEL", "info")
}

// NewConfig monta a configuração uma única vez; o resultado é repassado explicitamente
// para quem precisar, nada lê variáveis de ambiente depois disso.
func NewConfig() (*Config, error) {
	loadEnvFile()

	v := viper.New()
	SetDefaults(v)

	v.SetConfigType("env")
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		logrus.Debug("Usando variáveis de ambiente (viper não conseguiu ler .env): ", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Config, error) {
	config := &Config{}

	err := v.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	dsn, err := buildDSN(config.Database)
	if err != nil {
		return nil, err
	}
	config.Database.DSN = dsn

	if config.Seed.HashWorkers < 1 {
		config.Seed.HashWorkers = 1
	}

	return config, nil
}

// buildDSN acrescenta sslmode à URL quando ela não define um
func buildDSN(db Database) (string, error) {
	raw := strings.TrimSpace(db.URL)
	if raw == "" {
		return "", ErrMissingDatabaseURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "", err
	}

	query := parsed.Query()
	if query.Get("sslmode") == "" && db.SSLMode != "" {
		query.Set("sslmode", db.SSLMode)
		parsed.RawQuery = query.Encode()
	}

	return parsed.String(), nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	locations := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(filepath.Dir(cwd), ".env"),
		filepath.Join(cwd, "../../.env"),
	}

	for _, location := range locations {
		if err := godotenv.Load(location); err == nil {
			logrus.Info("Arquivo .env carregado de:", location)
			return
		}
	}

	logrus.Debug("Nenhum arquivo .env encontrado, usando apenas variáveis de ambiente")
}
