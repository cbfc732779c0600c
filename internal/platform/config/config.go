// Package config は起動時にアプリケーション設定を一度だけ読み込みます。
// cmd/ 以下以外は環境変数を直接参照せず、各コンストラクタは必要な設定セクションを受け取ります。
package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config はサービス全体の設定です。
type Config struct {
	Server    Server
	Log       Log
	Market    Market
	DB        DB
	Redis     Redis
	Watchlist Watchlist
}

// Server はHTTPサーバーの設定を保持します。
type Server struct {
	Addr           string   `envconfig:"SERVER_ADDR" default:":8080"`
	AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:5173"`
	GinMode        string   `envconfig:"GIN_MODE" default:"release"`
}

// Log はslogロガーの設定です。
type Log struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Format string `envconfig:"LOG_FORMAT" default:"json"`
}

// Market は株価データプロバイダーの選択と設定です。
type Market struct {
	Provider         string        `envconfig:"MARKET_PROVIDER" default:"finnhub"`
	FinnhubAPIKey    string        `envconfig:"FINNHUB_API_KEY"`
	FinnhubBaseURL   string        `envconfig:"FINNHUB_BASE_URL" default:"https://finnhub.io/api/v1"`
	TwelveDataAPIKey string        `envconfig:"TWELVE_DATA_API_KEY"`
	TwelveDataURL    string        `envconfig:"TWELVE_DATA_BASE_URL" default:"https://api.twelvedata.com"`
	Timeout          time.Duration `envconfig:"MARKET_TIMEOUT" default:"10s"`
	RateLimit        int           `envconfig:"MARKET_RATE_LIMIT" default:"60"`
	RateInterval     time.Duration `envconfig:"MARKET_RATE_INTERVAL" default:"1m"`
	HistoryCacheHour int           `envconfig:"HISTORY_CACHE_RESET_HOUR" default:"6"`
	HistoryCacheZone string        `envconfig:"HISTORY_CACHE_TZ" default:"America/New_York"`
}

// DB はウォッチリストを保存するDB接続の設定です。
type DB struct {
	Driver         string        `envconfig:"DB_DRIVER" default:"sqlite"`
	SQLitePath     string        `envconfig:"DB_SQLITE_PATH" default:"./watchlist.db"`
	Host           string        `envconfig:"DB_HOST" default:"localhost"`
	Port           string        `envconfig:"DB_PORT" default:"5432"`
	User           string        `envconfig:"DB_USER"`
	Password       string        `envconfig:"DB_PASSWORD"`
	Name           string        `envconfig:"DB_NAME"`
	SSLMode        string        `envconfig:"DB_SSLMODE" default:"require"`
	ConnectTimeout time.Duration `envconfig:"DB_CONNECT_TIMEOUT" default:"60s"`
	RunMigrations  bool          `envconfig:"RUN_MIGRATIONS" default:"true"`
}

// Redis は任意の株価履歴キャッシュの設定です。
type Redis struct {
	Host     string `envconfig:"REDIS_HOST"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// Enabled はRedisホストが設定されているかを返します。
func (r Redis) Enabled() bool {
	return r.Host != ""
}

// Addr は host:port 形式のアドレスを返します。
func (r Redis) Addr() string {
	return r.Host + ":" + r.Port
}

// Watchlist はウォッチリストのユースケースの設定です。
type Watchlist struct {
	// QuoteConcurrency はロード時のクォート同時取得数の上限です。0 以下は無制限です。
	QuoteConcurrency int `envconfig:"WATCHLIST_QUOTE_CONCURRENCY" default:"0"`
}

// Load は .env ファイルがあれば読み込み、環境変数を Config に展開します。
func Load() (*Config, error) {
	// デプロイ環境では環境変数を直接設定するため .env は任意
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
