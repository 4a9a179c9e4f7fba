package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sofiakaramia/Data-Storm/internal/domain/entities"
	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig
	OpenWeather OpenWeatherConfig
	Kafka       KafkaConfig
	Minio       MinioConfig
	Analysis    AnalysisConfig
	Scheduler   SchedulerConfig
	API         APIConfig
	HealthCheck HealthCheckConfig
}

type AppConfig struct {
	Name     string `mapstructure:"name"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
}

type OpenWeatherConfig struct {
	APIKey  string   `mapstructure:"api_key"`
	BaseURL string   `mapstructure:"base_url"`
	Units   string   `mapstructure:"units"`
	Cities  []string `mapstructure:"cities"`
}

type KafkaConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Broker       string `mapstructure:"broker"`
	Topic        string `mapstructure:"topic"`
	RequiredAcks int16  `mapstructure:"required_acks"`
	MaxRetries   int    `mapstructure:"max_retries"`
}

type MinioConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Bucket    string `mapstructure:"bucket"`
	UseSSL    bool   `mapstructure:"use_ssl"`
}

type AnalysisConfig struct {
	SummaryPath string `mapstructure:"summary_path"`
}

type SchedulerConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type APIConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port"`
}

type HealthCheckConfig struct {
	APITimeout    time.Duration `mapstructure:"api_timeout"`
	KafkaTimeout  time.Duration `mapstructure:"kafka_timeout"`
	RetryInterval time.Duration `mapstructure:"retry_interval"`
	MaxRetries    int           `mapstructure:"max_retries"`
}

func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/data-storm/")

	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if apiKey := os.Getenv("WEATHER_API_KEY"); apiKey != "" {
		v.Set("openweather.api_key", apiKey)
	}

	if baseURL := os.Getenv("OPENWEATHER_BASE_URL"); baseURL != "" {
		v.Set("openweather.base_url", baseURL)
	}

	if units := os.Getenv("OPENWEATHER_UNITS"); units != "" {
		v.Set("openweather.units", units)
	}

	if cities := os.Getenv("WEATHER_CITIES"); cities != "" {
		cityList := strings.Split(cities, ",")
		for i, city := range cityList {
			cityList[i] = strings.TrimSpace(city)
		}
		v.Set("openweather.cities", cityList)
	}

	if broker := os.Getenv("KAFKA_BROKER"); broker != "" {
		v.Set("kafka.enabled", true)
		v.Set("kafka.broker", broker)
	}

	if topic := os.Getenv("KAFKA_WEATHER_TOPIC"); topic != "" {
		v.Set("kafka.topic", topic)
	}

	if endpoint := os.Getenv("MINIO_ENDPOINT"); endpoint != "" {
		v.Set("minio.enabled", true)
		v.Set("minio.endpoint", endpoint)
	}

	if summaryPath := os.Getenv("SUMMARY_PATH"); summaryPath != "" {
		v.Set("analysis.summary_path", summaryPath)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "data-storm")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.log_level", "info")
	v.SetDefault("openweather.base_url", "https://api.openweathermap.org/data/2.5")
	v.SetDefault("openweather.units", "metric")
	v.SetDefault("kafka.topic", "weather-observations")
	v.SetDefault("kafka.required_acks", 1)
	v.SetDefault("kafka.max_retries", 3)
	v.SetDefault("minio.bucket", "weather-reports")
	v.SetDefault("analysis.summary_path", "summary.json")
	v.SetDefault("scheduler.interval", 5*time.Minute)
	v.SetDefault("scheduler.timeout", time.Minute)
	v.SetDefault("api.enabled", true)
	v.SetDefault("api.port", 8080)
	v.SetDefault("healthcheck.api_timeout", 10*time.Second)
	v.SetDefault("healthcheck.kafka_timeout", 10*time.Second)
	v.SetDefault("healthcheck.retry_interval", 5*time.Second)
	v.SetDefault("healthcheck.max_retries", 3)
}

func validateConfig(cfg *Config) error {
	if strings.TrimSpace(cfg.OpenWeather.APIKey) == "" {
		return fmt.Errorf("%w: OpenWeather API key cannot be empty", entities.ErrConfiguration)
	}

	if len(cfg.OpenWeather.Cities) == 0 {
		return fmt.Errorf("%w: cities list cannot be empty", entities.ErrConfiguration)
	}

	if cfg.Kafka.Enabled && cfg.Kafka.Broker == "" {
		return fmt.Errorf("%w: Kafka broker cannot be empty when Kafka is enabled", entities.ErrConfiguration)
	}

	if cfg.Minio.Enabled && (cfg.Minio.Endpoint == "" || cfg.Minio.AccessKey == "" || cfg.Minio.SecretKey == "") {
		return fmt.Errorf("%w: Minio endpoint and credentials are required when Minio is enabled", entities.ErrConfiguration)
	}

	if cfg.Scheduler.Interval <= 0 {
		return fmt.Errorf("%w: scheduler interval must be positive", entities.ErrConfiguration)
	}

	return nil
}
