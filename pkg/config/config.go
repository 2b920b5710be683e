package config

import (
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds application configuration
type Config struct {
	Server   ServerConfig
	LLM      LLMConfig
	Notion   NotionConfig
	Calendar CalendarConfig
	Assembly AssemblyAIConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	JWT      JWTConfig
	Chat     ChatConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port            string   `envconfig:"PORT" default:"8080"`
	Host            string   `envconfig:"HOST" default:"0.0.0.0"`
	Environment     string   `envconfig:"ENVIRONMENT" default:"development"`
	AllowedOrigins  []string `envconfig:"ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ShutdownTimeout int      `envconfig:"SHUTDOWN_TIMEOUT" default:"10"`
	MaxUploadBytes  int64    `envconfig:"MAX_UPLOAD_BYTES" default:"5242880"`
	MaxAudioBytes   int64    `envconfig:"MAX_AUDIO_BYTES" default:"104857600"`
}

// LLMConfig holds credentials for the text-generation backends, tried in order
type LLMConfig struct {
	GeminiAPIKey  string        `envconfig:"GOOGLE_API_KEY"`
	GeminiModel   string        `envconfig:"GEMINI_MODEL" default:"gemini-1.5-flash"`
	GeminiBaseURL string        `envconfig:"GEMINI_API_URL" default:"https://generativelanguage.googleapis.com"`
	GroqAPIKey    string        `envconfig:"GROQ_API_KEY"`
	GroqModel     string        `envconfig:"GROQ_MODEL" default:"llama-3.1-70b-versatile"`
	GroqBaseURL   string        `envconfig:"GROQ_API_URL" default:"https://api.groq.com"`
	CompletionURL string        `envconfig:"LLM_COMPLETION_URL"`
	Timeout       time.Duration `envconfig:"LLM_TIMEOUT" default:"60s"`
	CacheTTL      time.Duration `envconfig:"LLM_CACHE_TTL" default:"0s"`
}

// NotionConfig holds notes-service configuration
type NotionConfig struct {
	Token         string `envconfig:"NOTION_TOKEN"`
	DatabaseID    string `envconfig:"NOTION_DATABASE_ID"`
	PageID        string `envconfig:"NOTION_PAGE_ID"`
	BaseURL       string `envconfig:"NOTION_API_URL" default:"https://api.notion.com"`
	Version       string `envconfig:"NOTION_VERSION" default:"2022-06-28"`
	TitleProperty string `envconfig:"NOTION_TITLE_PROPERTY" default:"Name"`
	TasksDBID     string `envconfig:"NOTION_TASKS_DATABASE_ID"`
	AutoPage      bool   `envconfig:"NOTION_AUTO_PAGE" default:"false"`
}

// CalendarConfig holds Google Calendar configuration
type CalendarConfig struct {
	ClientID     string `envconfig:"GOOGLE_CLIENT_ID"`
	ClientSecret string `envconfig:"GOOGLE_CLIENT_SECRET"`
	RefreshToken string `envconfig:"GOOGLE_REFRESH_TOKEN"`
	RedirectURL  string `envconfig:"GOOGLE_REDIRECT_URL" default:"http://localhost:8080/v1/calendar/callback"`
	CalendarID   string `envconfig:"GOOGLE_CALENDAR_ID" default:"primary"`
	BaseURL      string `envconfig:"GOOGLE_CALENDAR_API_URL" default:"https://www.googleapis.com/calendar/v3"`
	TimeZone     string `envconfig:"CALENDAR_TIME_ZONE" default:"UTC"`
	DayStartHour int    `envconfig:"CALENDAR_DAY_START_HOUR" default:"9"`
	DayEndHour   int    `envconfig:"CALENDAR_DAY_END_HOUR" default:"17"`
}

// AssemblyAIConfig holds speech-to-text configuration
type AssemblyAIConfig struct {
	APIKey       string `envconfig:"ASSEMBLYAI_API_KEY"`
	LanguageCode string `envconfig:"ASSEMBLYAI_LANGUAGE_CODE"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Enabled     bool   `envconfig:"DB_ENABLED" default:"false"`
	Host        string `envconfig:"DB_HOST" default:"localhost"`
	Port        string `envconfig:"DB_PORT" default:"5432"`
	User        string `envconfig:"DB_USER" default:"postgres"`
	Password    string `envconfig:"DB_PASSWORD" default:"postgres"`
	Name        string `envconfig:"DB_NAME" default:"meet_agent"`
	SSLMode     string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns    int    `envconfig:"DB_MAX_CONNS" default:"25"`
	MinConns    int    `envconfig:"DB_MIN_CONNS" default:"5"`
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" default:"true"`
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     string `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

// StorageConfig holds storage configuration
type StorageConfig struct {
	Enabled         bool   `envconfig:"STORAGE_ENABLED" default:"false"`
	Endpoint        string `envconfig:"STORAGE_ENDPOINT" default:"localhost:9000"`
	AccessKeyID     string `envconfig:"STORAGE_ACCESS_KEY" default:"minioadmin"`
	SecretAccessKey string `envconfig:"STORAGE_SECRET_KEY" default:"minioadmin"`
	BucketName      string `envconfig:"STORAGE_BUCKET" default:"meet-agent"`
	UseSSL          bool   `envconfig:"STORAGE_USE_SSL" default:"false"`
	PublicURL       string `envconfig:"STORAGE_PUBLIC_URL"`
}

// JWTConfig holds session token configuration
type JWTConfig struct {
	Secret string        `envconfig:"JWT_SECRET" default:"your-session-secret-change-in-production"`
	Expiry time.Duration `envconfig:"JWT_EXPIRY" default:"24h"`
}

// ChatConfig overrides the conversational intent vocabulary. Empty lists keep the defaults.
type ChatConfig struct {
	PersistTriggers  []string      `envconfig:"CHAT_PERSIST_TRIGGERS"`
	ScheduleKeywords []string      `envconfig:"CHAT_SCHEDULE_KEYWORDS"`
	TaskKeywords     []string      `envconfig:"CHAT_TASK_KEYWORDS"`
	DecisionKeywords []string      `envconfig:"CHAT_DECISION_KEYWORDS"`
	SessionIdleTTL   time.Duration `envconfig:"CHAT_SESSION_IDLE_TTL" default:"2h"`
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables or defaults")
	}

	config := &Config{}
	sections := []interface{}{
		&config.Server,
		&config.LLM,
		&config.Notion,
		&config.Calendar,
		&config.Assembly,
		&config.Database,
		&config.Redis,
		&config.Storage,
		&config.JWT,
		&config.Chat,
	}
	for _, section := range sections {
		if err := envconfig.Process("", section); err != nil {
			return nil, fmt.Errorf("failed to read configuration: %w", err)
		}
	}

	// Validate required fields
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configuration that can never work. Missing integration
// credentials are not errors: those integrations are simply disabled.
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}
	if c.Server.Environment == "production" && c.JWT.Secret == "your-session-secret-change-in-production" {
		return fmt.Errorf("JWT_SECRET must be set in production")
	}
	if c.Calendar.DayStartHour < 0 || c.Calendar.DayEndHour > 24 || c.Calendar.DayStartHour >= c.Calendar.DayEndHour {
		return fmt.Errorf("invalid calendar working hours %d-%d", c.Calendar.DayStartHour, c.Calendar.DayEndHour)
	}
	if c.Server.MaxUploadBytes <= 0 || c.Server.MaxAudioBytes <= 0 {
		return fmt.Errorf("MAX_UPLOAD_BYTES and MAX_AUDIO_BYTES must be positive")
	}
	return nil
}

// NotionEnabled reports whether pages can be created
func (c *Config) NotionEnabled() bool {
	return c.Notion.Token != "" && (c.Notion.DatabaseID != "" || c.Notion.PageID != "")
}

// CalendarEnabled reports whether OAuth client credentials are present.
// Without a refresh token the calendar stays disconnected until the consent flow completes.
func (c *Config) CalendarEnabled() bool {
	return c.Calendar.ClientID != "" && c.Calendar.ClientSecret != ""
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
