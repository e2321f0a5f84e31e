package config

import (
	"context"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Nomes dos secret files no Render usados como fonte alternativa de credenciais do banco
const (
	storeURLSecret       = "store_url"
	storeAccessKeySecret = "store_access_key"
)

type Config struct {
	App           App           `mapstructure:",squash"`
	Server        Server        `mapstructure:",squash"`
	Store         Store         `mapstructure:",squash"`
	Render        Render        `mapstructure:",squash"`
	Auth          Auth          `mapstructure:",squash"`
	StatusMonitor StatusMonitor `mapstructure:",squash"`
}

type Server struct {
	Host           string   `mapstructure:"host"`
	Port           string   `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// Store contém os parâmetros de conexão com o banco hospedado.
// URL e AccessKey são obrigatórios: sem eles nenhuma conexão é criada e a
// aplicação opera em modo degradado, servindo os dados de fallback.
type Store struct {
	DSN       string `mapstructure:"-"`
	Driver    string `mapstructure:"store_driver"`
	URL       string `mapstructure:"store_url"`
	AccessKey string `mapstructure:"store_access_key"`
	User      string `mapstructure:"store_user"`
	SSLMode   string `mapstructure:"store_sslmode"`
}

// IsConfigured indica se os dois parâmetros obrigatórios de conexão estão presentes
func (s Store) IsConfigured() bool {
	return s.URL != "" && s.AccessKey != ""
}

type Render struct {
	APIKey    string `mapstructure:"render_api_key"`
	ServiceID string `mapstructure:"render_service_id"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Auth struct {
	Secret string `mapstructure:"auth_secret"`
}

type StatusMonitor struct {
	CronSchedule string `mapstructure:"status_monitor_cron"`
	Enabled      bool   `mapstructure:"status_monitor_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000,http://localhost:5173")

	viper.SetDefault("STORE_DRIVER", "postgres")
	viper.SetDefault("STORE_USER", "postgres")
	viper.SetDefault("STORE_SSLMODE", "disable")

	// STORE_URL e STORE_ACCESS_KEY não têm valor padrão: a ausência deles define o modo degradado
	_ = viper.BindEnv("STORE_URL")
	_ = viper.BindEnv("STORE_ACCESS_KEY")

	viper.SetDefault("RENDER_API_KEY", "")
	viper.SetDefault("RENDER_SERVICE_ID", "")

	viper.SetDefault("AUTH_SECRET", "your_secret_key") // ONLY LOCAL

	viper.SetDefault("STATUS_MONITOR_CRON", "*/5 * * * *") // A cada 5 minutos
	viper.SetDefault("STATUS_MONITOR_ENABLED", true)

	viper.SetDefault("LOG_LEVEL", "debug")
}

func NewConfig() (*Config, error) {
	// Primeiro carregar o arquivo .env usando godotenv
	loadEnvFile() // ONLY LOCAL

	config := &Config{}

	SetDefaults()

	viper.SetConfigType("env")
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

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

	// Sem credenciais no ambiente, tentar os secret files do Render (uma única vez, na inicialização)
	if !config.Store.IsConfigured() && config.Render.ServiceID != "" {
		loadStoreSecrets(config, NewRenderClient(config))
	}

	config.Store.DSN = BuildDSN(config.Store)

	return config, nil
}

// BuildDSN monta a string de conexão. Retorna vazio quando o banco não está configurado.
// Usuário e chave de acesso são escapados; parâmetros já presentes em STORE_URL são preservados.
func BuildDSN(store Store) string {
	if !store.IsConfigured() {
		return ""
	}

	address := store.URL
	if i := strings.Index(address, "://"); i >= 0 {
		address = address[i+len("://"):]
	}

	rawQuery := ""
	if i := strings.Index(address, "?"); i >= 0 {
		address, rawQuery = address[:i], address[i+1:]
	}

	host, dbname, _ := strings.Cut(address, "/")

	query, err := url.ParseQuery(rawQuery)
	if err != nil {
		logrus.WithError(err).Warn("Parâmetros inválidos em STORE_URL, ignorando")
		query = url.Values{}
	}
	if store.SSLMode != "" && query.Get("sslmode") == "" {
		query.Set("sslmode", store.SSLMode)
	}

	dsn := url.URL{
		Scheme:   store.Driver,
		User:     url.UserPassword(store.User, store.AccessKey),
		Host:     host,
		RawQuery: query.Encode(),
	}
	if dbname != "" {
		dsn.Path = "/" + dbname
	}

	return dsn.String()
}

func loadStoreSecrets(config *Config, secrets SecretStorage) {
	ctx, cancel := context.WithTimeout(context.Background(), renderLookupBudget)
	defer cancel()

	secretsByCode, err := secrets.ListSecrets(ctx, config.Render.ServiceID)
	if err != nil {
		logrus.WithError(err).Warn("Erro ao obter secrets do Render, seguindo sem credenciais do banco")
		return
	}

	if url, ok := secretsByCode[storeURLSecret]; ok && config.Store.URL == "" {
		config.Store.URL = url
	}

	if key, ok := secretsByCode[storeAccessKeySecret]; ok && config.Store.AccessKey == "" {
		config.Store.AccessKey = key
	}
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
		filepath.Join(cwd, "../../.env"),         // Dois diretórios acima
	}

	for _, location := range locations {
		logrus.Debug("Tentando carregar .env de:", location)
		err := godotenv.Load(location)
		if err == nil {
			logrus.Info("Arquivo .env carregado com sucesso de:", location)
			return
		}
	}

	logrus.Warn("Não foi possível carregar o arquivo .env de nenhuma localização conhecida")
}
