package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Auth             Auth             `mapstructure:",squash"`
	Upload           Upload           `mapstructure:",squash"`
	DatasetRetention DatasetRetention `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Auth struct {
	Secret               string `mapstructure:"auth_secret"`
	OperatorUser         string `mapstructure:"auth_operator_user"`
	OperatorPasswordHash string `mapstructure:"auth_operator_password_hash"`
}

type Upload struct {
	MaxBytes    int64 `mapstructure:"upload_max_bytes"`
	DefaultTopN int   `mapstructure:"upload_default_top_n"`
}

type DatasetRetention struct {
	CronSchedule string `mapstructure:"dataset_retention_cron"`
	TTLHours     int    `mapstructure:"dataset_retention_ttl_hours"`
	Enabled      bool   `mapstructure:"dataset_retention_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("AUTH_SECRET", "your_secret_key")
	viper.SetDefault("AUTH_OPERATOR_USER", "admin")
	// Hash de "admin" - ONLY LOCAL
	viper.SetDefault("AUTH_OPERATOR_PASSWORD_HASH", "$2b$12$fYsESLb9/nEnKbe.0T7vROADPc/6XP2ndQeE8PxZPH20KOui6VXU.")

	viper.SetDefault("UPLOAD_MAX_BYTES", 10<<20) // 10 MiB por upload
	viper.SetDefault("UPLOAD_DEFAULT_TOP_N", 15) // Top 15 AdSets, como no dashboard

	viper.SetDefault("DATASET_RETENTION_CRON", "0 * * * *") // Limpeza a cada hora
	viper.SetDefault("DATASET_RETENTION_TTL_HOURS", 24)     // Uploads expiram em 24h
	viper.SetDefault("DATASET_RETENTION_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	// Configurar valores padrão
	SetDefaults()

	// Configurar o Viper
	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv() // Isso permite que o Viper leia variáveis de ambiente

	// Tentar ler o arquivo .env com o Viper (opcional, já que usamos godotenv)
	if err := viper.ReadInConfig(); err != nil {
		logrus.Info("Usando variáveis carregadas pelo godotenv (viper não conseguiu ler .env):", err)
	} else {
		logrus.Info("Arquivo .env lido pelo Viper com sucesso")
	}

	err := viper.Unmarshal(&config, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	))
	if err != nil {
		return nil, err
	}

	return config, nil
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	cwd, err := os.Getwd()
	if err != nil {
		logrus.Warn("Não foi possível obter o diretório atual:", err)
		return
	}

	// Tentar várias localizações possíveis para o arquivo .env
	locations := []string{
		filepath.Join(cwd, ".env"),               // Diretório atual
		filepath.Join(filepath.Dir(cwd), ".env"), // Diretório pai
		filepath.Join(cwd, "../.env"),            // Diretório acima
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
