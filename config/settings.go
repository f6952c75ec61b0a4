package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Settings holds all application configuration
type Settings struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	Log       LogConfig
	Storage   StorageConfig
	Redis     RedisConfig
	Geocoding GeocodingConfig
	Weather   WeatherConfig
	Twilio    TwilioConfig
	Reminders ReminderConfig
}

type AppConfig struct {
	Name string
	Env  string
	Port string
	// PublicURL is the browser origin used to build contract signing links.
	PublicURL string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	SlowThreshold   time.Duration
}

type JWTConfig struct {
	Secret string
	Expiry time.Duration
}

type CORSConfig struct {
	AllowOrigins []string
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StorageConfig configures the S3-compatible bucket holding contract files.
type StorageConfig struct {
	Bucket        string
	Region        string
	Endpoint      string
	AccessKey     string
	SecretKey     string
	UsePathStyle  bool
	PublicBaseURL string
}

// RedisConfig is optional; an empty Addr keeps caches in memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type GeocodingConfig struct {
	BaseURL   string
	UserAgent string
	Timeout   time.Duration
}

type WeatherConfig struct {
	GeocodingURL string
	ForecastURL  string
	DefaultCity  string
	CacheTTL     time.Duration
	Timeout      time.Duration
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

// Enabled reports whether credentials are present.
func (t TwilioConfig) Enabled() bool {
	return t.AccountSID != "" && t.AuthToken != ""
}

type ReminderConfig struct {
	Enabled    bool
	Schedule   string
	WindowDays int
}

// Load reads configuration with this priority (highest first):
// 1. CATERFLOW_ prefixed environment variables (CATERFLOW_DATABASE_URL)
// 2. legacy variables DB_URL, PORT, JWT_SECRET, JWT_EXPIRY_HOURS, TWILIO_*
// 3. config.toml in the working directory
// 4. built-in defaults
func Load() (*Settings, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.SetEnvPrefix("CATERFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	legacy := map[string]string{
		"database.url":           "DB_URL",
		"app.port":               "PORT",
		"jwt.secret":             "JWT_SECRET",
		"jwt_expiry_hours":       "JWT_EXPIRY_HOURS",
		"twilio.account_sid":     "TWILIO_ACCOUNT_SID",
		"twilio.auth_token":      "TWILIO_AUTH_TOKEN",
		"twilio.phone_number":    "TWILIO_PHONE_NUMBER",
		"twilio.whatsapp_number": "TWILIO_WHATSAPP_NUMBER",
	}
	for key, env := range legacy {
		if err := v.BindEnv(key, "CATERFLOW_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	jwtExpiry := v.GetDuration("jwt.expiry")
	if hours := v.GetInt("jwt_expiry_hours"); hours > 0 {
		jwtExpiry = time.Duration(hours) * time.Hour
	}

	cfg := &Settings{
		App: AppConfig{
			Name:      v.GetString("app.name"),
			Env:       v.GetString("app.env"),
			Port:      v.GetString("app.port"),
			PublicURL: strings.TrimRight(v.GetString("app.public_url"), "/"),
		},
		Database: DatabaseConfig{
			URL:             v.GetString("database.url"),
			MaxOpenConns:    v.GetInt("database.max_open_conns"),
			MaxIdleConns:    v.GetInt("database.max_idle_conns"),
			ConnMaxLifetime: v.GetDuration("database.conn_max_lifetime"),
			SlowThreshold:   v.GetDuration("database.slow_threshold"),
		},
		JWT: JWTConfig{
			Secret: v.GetString("jwt.secret"),
			Expiry: jwtExpiry,
		},
		CORS: CORSConfig{
			AllowOrigins: splitList(v.GetString("cors.allow_origins")),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Storage: StorageConfig{
			Bucket:        v.GetString("storage.bucket"),
			Region:        v.GetString("storage.region"),
			Endpoint:      v.GetString("storage.endpoint"),
			AccessKey:     v.GetString("storage.access_key"),
			SecretKey:     v.GetString("storage.secret_key"),
			UsePathStyle:  v.GetBool("storage.use_path_style"),
			PublicBaseURL: strings.TrimRight(v.GetString("storage.public_base_url"), "/"),
		},
		Redis: RedisConfig{
			Addr:     v.GetString("redis.addr"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Geocoding: GeocodingConfig{
			BaseURL:   v.GetString("geocoding.base_url"),
			UserAgent: v.GetString("geocoding.user_agent"),
			Timeout:   v.GetDuration("geocoding.timeout"),
		},
		Weather: WeatherConfig{
			GeocodingURL: v.GetString("weather.geocoding_url"),
			ForecastURL:  v.GetString("weather.forecast_url"),
			DefaultCity:  v.GetString("weather.default_city"),
			CacheTTL:     v.GetDuration("weather.cache_ttl"),
			Timeout:      v.GetDuration("weather.timeout"),
		},
		Twilio: TwilioConfig{
			AccountSID:     v.GetString("twilio.account_sid"),
			AuthToken:      v.GetString("twilio.auth_token"),
			PhoneNumber:    v.GetString("twilio.phone_number"),
			WhatsAppNumber: v.GetString("twilio.whatsapp_number"),
		},
		Reminders: ReminderConfig{
			Enabled:    v.GetBool("reminders.enabled"),
			Schedule:   v.GetString("reminders.schedule"),
			WindowDays: v.GetInt("reminders.window_days"),
		},
	}

	return cfg, nil
}

// Validate reports settings the server cannot start without.
func (s *Settings) Validate() error {
	if s.Database.URL == "" {
		return fmt.Errorf("database url is required (CATERFLOW_DATABASE_URL or DB_URL)")
	}
	if s.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required (CATERFLOW_JWT_SECRET or JWT_SECRET)")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "caterflow-backend")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("app.public_url", "http://localhost:3000")

	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", 5*time.Minute)
	v.SetDefault("database.slow_threshold", 200*time.Millisecond)

	v.SetDefault("jwt.expiry", 24*time.Hour)

	v.SetDefault("cors.allow_origins", "http://localhost:3000")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("storage.bucket", "contracts")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.use_path_style", true)

	v.SetDefault("redis.db", 0)

	v.SetDefault("geocoding.base_url", "https://nominatim.openstreetmap.org")
	v.SetDefault("geocoding.user_agent", "caterflow-backend/1.0")
	v.SetDefault("geocoding.timeout", 10*time.Second)

	v.SetDefault("weather.geocoding_url", "https://geocoding-api.open-meteo.com/v1/search")
	v.SetDefault("weather.forecast_url", "https://api.open-meteo.com/v1/forecast")
	v.SetDefault("weather.default_city", "Los Angeles")
	v.SetDefault("weather.cache_ttl", 15*time.Minute)
	v.SetDefault("weather.timeout", 5*time.Second)

	v.SetDefault("reminders.enabled", true)
	v.SetDefault("reminders.schedule", "0 9 * * *")
	v.SetDefault("reminders.window_days", 7)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
