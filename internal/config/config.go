package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	App              App              `mapstructure:",squash"`
	Server           Server           `mapstructure:",squash"`
	Database         Database         `mapstructure:",squash"`
	Reporting        Reporting        `mapstructure:",squash"`
	Scoring          Scoring          `mapstructure:",squash"`
	Actions          Actions          `mapstructure:",squash"`
	Forecast         Forecast         `mapstructure:",squash"`
	Balance          Balance          `mapstructure:",squash"`
	DailyActionsSync DailyActionsSync `mapstructure:",squash"`
}

type App struct {
	LogLevel string `mapstructure:"log_level"`
}

type Server struct {
	Host string `mapstructure:"host"`
	Port string `mapstructure:"port"`
}

type Database struct {
	DSN      string `mapstructure:"-"`
	Driver   string `mapstructure:"database_driver"`
	Password string `mapstructure:"database_password"`
	URL      string `mapstructure:"database_url"`
	User     string `mapstructure:"database_user"`
}

// Reporting define a moeda de referência e a tabela fixa de conversão.
// As taxas vêm de REPORTING_RATES no formato "USD:5.40,EUR:6.10".
type Reporting struct {
	Currency string             `mapstructure:"reporting_currency"`
	RatesRaw string             `mapstructure:"reporting_rates"`
	Rates    map[string]float64 `mapstructure:"-"`
}

// Scoring concentra os limiares e pesos do score de risco financeiro e do
// score de engajamento, para permitir ajuste sem alteração de código
type Scoring struct {
	DebtLowThreshold      float64 `mapstructure:"scoring_debt_low_threshold"`
	DebtHighThreshold     float64 `mapstructure:"scoring_debt_high_threshold"`
	PaymentSilenceMedium  int     `mapstructure:"scoring_payment_silence_medium_days"`
	PaymentSilenceLong    int     `mapstructure:"scoring_payment_silence_long_days"`
	CriticalRiskThreshold int     `mapstructure:"scoring_critical_risk_threshold"`
	NoDateSentinelDays    int     `mapstructure:"scoring_no_date_sentinel_days"`
	DefaultOrderFrequency float64 `mapstructure:"scoring_default_order_frequency_days"`
}

// Actions concentra os parâmetros do gerador de ações recomendadas
type Actions struct {
	MaxActions          int     `mapstructure:"actions_max"`
	StockCriticalLevel  int     `mapstructure:"actions_stock_critical_level"`
	ReorderWindowLower  float64 `mapstructure:"actions_reorder_window_lower"`
	ReorderWindowUpper  float64 `mapstructure:"actions_reorder_window_upper"`
	RelationshipSilence int     `mapstructure:"actions_relationship_silence_days"`
	MinOrderHistory     int     `mapstructure:"actions_min_order_history"`
}

// Forecast concentra os pesos da projeção de receita mensal
type Forecast struct {
	HotQuoteWindowDays int     `mapstructure:"forecast_hot_quote_window_days"`
	RealisticWeight    float64 `mapstructure:"forecast_realistic_weight"`
	OptimisticWeight   float64 `mapstructure:"forecast_optimistic_weight"`
}

// Balance concentra os parâmetros da conta-corrente e do risco de cobrança
type Balance struct {
	SettledTolerance   float64 `mapstructure:"balance_settled_tolerance"`
	UpcomingWindowDays int     `mapstructure:"balance_upcoming_window_days"`
}

type DailyActionsSync struct {
	CronSchedule string `mapstructure:"daily_actions_sync_cron"`
	Enabled      bool   `mapstructure:"daily_actions_sync_enabled"`
}

func SetDefaults() {
	viper.SetDefault("HOST", "localhost")
	viper.SetDefault("PORT", 8000)

	viper.SetDefault("DATABASE_DRIVER", "postgres")
	viper.SetDefault("DATABASE_URL", "localhost:5432/crm")
	viper.SetDefault("DATABASE_USER", "postgres")
	viper.SetDefault("DATABASE_PASSWORD", "root")

	viper.SetDefault("REPORTING_CURRENCY", "BRL")
	viper.SetDefault("REPORTING_RATES", "USD:5.40,EUR:6.10,GBP:7.00")

	// Limiares do score de risco financeiro
	viper.SetDefault("SCORING_DEBT_LOW_THRESHOLD", 1000.0)
	viper.SetDefault("SCORING_DEBT_HIGH_THRESHOLD", 10000.0)
	viper.SetDefault("SCORING_PAYMENT_SILENCE_MEDIUM_DAYS", 30)
	viper.SetDefault("SCORING_PAYMENT_SILENCE_LONG_DAYS", 60)
	viper.SetDefault("SCORING_CRITICAL_RISK_THRESHOLD", 70)
	viper.SetDefault("SCORING_NO_DATE_SENTINEL_DAYS", 999)
	viper.SetDefault("SCORING_DEFAULT_ORDER_FREQUENCY_DAYS", 30.0)

	// Parâmetros do gerador de ações
	viper.SetDefault("ACTIONS_MAX", 10)
	viper.SetDefault("ACTIONS_STOCK_CRITICAL_LEVEL", 5)
	viper.SetDefault("ACTIONS_REORDER_WINDOW_LOWER", 1.1)
	viper.SetDefault("ACTIONS_REORDER_WINDOW_UPPER", 1.5)
	viper.SetDefault("ACTIONS_RELATIONSHIP_SILENCE_DAYS", 60)
	viper.SetDefault("ACTIONS_MIN_ORDER_HISTORY", 3)

	// Parâmetros da projeção de receita
	viper.SetDefault("FORECAST_HOT_QUOTE_WINDOW_DAYS", 15)
	viper.SetDefault("FORECAST_REALISTIC_WEIGHT", 0.3)
	viper.SetDefault("FORECAST_OPTIMISTIC_WEIGHT", 0.6)

	// Parâmetros da conta-corrente
	viper.SetDefault("BALANCE_SETTLED_TOLERANCE", 100.0)
	viper.SetDefault("BALANCE_UPCOMING_WINDOW_DAYS", 7)

	// Defaults do digest diário de ações
	viper.SetDefault("DAILY_ACTIONS_SYNC_CRON", "0 7 * * *") // Todos os dias às 7h da manhã
	viper.SetDefault("DAILY_ACTIONS_SYNC_ENABLED", false)

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

	config.Reporting.Rates = ParseRates(config.Reporting.RatesRaw)

	config.Database.DSN = fmt.Sprintf(
		"%s://%s:%s@%s",
		config.Database.Driver,
		config.Database.User,
		config.Database.Password,
		config.Database.URL,
	)

	return config, nil
}

// ParseRates converte a tabela de taxas do formato "USD:5.40,EUR:6.10" em mapa.
// Entradas malformadas são ignoradas com aviso; a moeda de referência nunca
// precisa constar da tabela (taxa 1 implícita).
func ParseRates(raw string) map[string]float64 {
	rates := make(map[string]float64)

	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		parts := strings.SplitN(entry, ":", 2)
		if len(parts) != 2 {
			logrus.Warnf("Taxa de conversão malformada ignorada: %q", entry)
			continue
		}

		rate, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
		if err != nil {
			logrus.WithError(err).Warnf("Taxa de conversão inválida ignorada: %q", entry)
			continue
		}

		rates[strings.ToUpper(strings.TrimSpace(parts[0]))] = rate
	}

	return rates
}

// Função auxiliar para carregar o arquivo .env usando godotenv
func loadEnvFile() {
	// Obter diretório atual
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
