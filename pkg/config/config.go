package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Storage    StorageConfig
	OpenAI     OpenAIConfig
	Whisper    WhisperConfig
	Assembly   AssemblyAIConfig
	Zoom       ZoomConfig
	Pipeline   PipelineConfig
	Transcribe TranscribeConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string
	Host            string
	Environment     string
	ShutdownTimeout int
}

// DatabaseConfig holds database configuration. Persistence is optional:
// the analyze command runs without a database when Enabled is false.
type DatabaseConfig struct {
	Enabled  bool
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
	MaxConns int
	MinConns int

	ConnMaxLifetime time.Duration
	MigrationsDir   string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
	TTL      time.Duration
}

// StorageConfig holds MinIO archive configuration
type StorageConfig struct {
	Enabled         bool
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	UseSSL          bool
}

// OpenAIConfig holds the language-model collaborator configuration
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// WhisperConfig holds whisper.cpp binary configuration
type WhisperConfig struct {
	BinaryPath string
	ModelPath  string
	Threads    int
}

// AssemblyAIConfig holds AssemblyAI configuration
type AssemblyAIConfig struct {
	APIKey string
}

// ZoomConfig holds Zoom server-to-server OAuth configuration
type ZoomConfig struct {
	AccountID    string
	ClientID     string
	ClientSecret string
	BaseURL      string
	OAuthURL     string
	PollInterval time.Duration
	DownloadDir  string
}

// TranscribeConfig selects the speech-to-text backend
type TranscribeConfig struct {
	Backend string // "whisper" or "assemblyai"
}

// PipelineConfig holds the analysis pipeline tuning knobs
type PipelineConfig struct {
	SpeakerGapSeconds   float64
	SpeakerCount        int
	FallbackMaxItems    int
	FallbackDedupe      bool
	SummaryMaxTokens    int
	SummaryTemperature  float64
	ExtractMaxTokens    int
	ExtractTemperature  float64
	SummaryPrefixLength int
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			Environment:     getEnv("ENVIRONMENT", "development"),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 10),
		},
		Database: DatabaseConfig{
			Enabled:  getEnvAsBool("DB_ENABLED", false),
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			Name:     getEnv("DB_NAME", "insightloop"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 25),
			MinConns: getEnvAsInt("DB_MIN_CONNS", 5),

			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", "1h"),
			MigrationsDir:   getEnv("DB_MIGRATIONS_DIR", "migrations"),
		},
		Redis: RedisConfig{
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			TTL:      getEnvAsDuration("REDIS_REPORT_TTL", "24h"),
		},
		Storage: StorageConfig{
			Enabled:         getEnvAsBool("STORAGE_ENABLED", false),
			Endpoint:        getEnv("STORAGE_ENDPOINT", "localhost:9000"),
			AccessKeyID:     getEnv("STORAGE_ACCESS_KEY", "minioadmin"),
			SecretAccessKey: getEnv("STORAGE_SECRET_KEY", "minioadmin"),
			BucketName:      getEnv("STORAGE_BUCKET", "insightloop"),
			UseSSL:          getEnvAsBool("STORAGE_USE_SSL", false),
		},
		OpenAI: OpenAIConfig{
			APIKey:  getEnv("OPENAI_API_KEY", ""),
			BaseURL: getEnv("OPENAI_API_URL", "https://api.openai.com"),
			Model:   getEnv("OPENAI_MODEL", "gpt-3.5-turbo"),
		},
		Whisper: WhisperConfig{
			BinaryPath: getEnv("WHISPER_BINARY", "whisper-cli"),
			ModelPath:  getEnv("WHISPER_MODEL", "models/ggml-base.bin"),
			Threads:    getEnvAsInt("WHISPER_THREADS", 4),
		},
		Assembly: AssemblyAIConfig{
			APIKey: getEnv("ASSEMBLYAI_API_KEY", ""),
		},
		Zoom: ZoomConfig{
			AccountID:    getEnv("ZOOM_ACCOUNT_ID", ""),
			ClientID:     getEnv("ZOOM_CLIENT_ID", ""),
			ClientSecret: getEnv("ZOOM_CLIENT_SECRET", ""),
			BaseURL:      getEnv("ZOOM_API_URL", "https://api.zoom.us/v2"),
			OAuthURL:     getEnv("ZOOM_OAUTH_URL", "https://zoom.us/oauth/token"),
			PollInterval: getEnvAsDuration("ZOOM_POLL_INTERVAL", "2m"),
			DownloadDir:  getEnv("ZOOM_DOWNLOAD_DIR", os.TempDir()),
		},
		Transcribe: TranscribeConfig{
			Backend: getEnv("TRANSCRIBER", "whisper"),
		},
		Pipeline: PipelineConfig{
			SpeakerGapSeconds:   getEnvAsFloat("SPEAKER_GAP_SECONDS", 2.0),
			SpeakerCount:        getEnvAsInt("SPEAKER_COUNT", 2),
			FallbackMaxItems:    getEnvAsInt("FALLBACK_MAX_ITEMS", 10),
			FallbackDedupe:      getEnvAsBool("FALLBACK_DEDUPE", false),
			SummaryMaxTokens:    getEnvAsInt("SUMMARY_MAX_TOKENS", 1500),
			SummaryTemperature:  getEnvAsFloat("SUMMARY_TEMPERATURE", 0.7),
			ExtractMaxTokens:    getEnvAsInt("EXTRACT_MAX_TOKENS", 2000),
			ExtractTemperature:  getEnvAsFloat("EXTRACT_TEMPERATURE", 0.3),
			SummaryPrefixLength: getEnvAsInt("SUMMARY_PREFIX_LENGTH", 500),
		},
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.OpenAI.APIKey == "" {
		return fmt.Errorf("OPENAI_API_KEY is required")
	}
	if c.Transcribe.Backend != "whisper" && c.Transcribe.Backend != "assemblyai" {
		return fmt.Errorf("TRANSCRIBER must be \"whisper\" or \"assemblyai\", got %q", c.Transcribe.Backend)
	}
	if c.Transcribe.Backend == "assemblyai" && c.Assembly.APIKey == "" {
		return fmt.Errorf("ASSEMBLYAI_API_KEY is required when TRANSCRIBER=assemblyai")
	}
	return nil
}

// GetDatabaseDSN returns the database connection string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}
	return duration
}
