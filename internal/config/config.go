package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"alfredoptarigan/resume-insights/internal/models"
)

const (
	ProviderAzure  = "azure"
	ProviderGemini = "gemini"

	SchemaPlacementPlaceholder = "placeholder"
	SchemaPlacementAppended    = "appended"
)

type Config struct {
	Server     ServerConfig
	Completion CompletionConfig
	Prompt     PromptConfig
	Storage    StorageConfig
	Logging    LoggingConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type CompletionConfig struct {
	Provider    string
	Endpoint    string
	APIKey      string
	GeminiKey   string
	GeminiModel string
	// Zero means the call is bounded only by the caller's context.
	Timeout time.Duration
}

type PromptConfig struct {
	ResponseMode    models.ResponseMode
	StripCodeFences bool
	SchemaPath      string
	SchemaPlacement string
	Strict          bool
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
	KeepUploads bool
}

type LoggingConfig struct {
	Level      string
	Pretty     bool
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
	Compress   bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found. Using environment and default values.")
	}

	mode, err := models.ParseResponseMode(getEnv("RESPONSE_MODE", string(models.ModeStructured)))
	if err != nil {
		log.Warn().Err(err).Msg("invalid RESPONSE_MODE, falling back to structured")
		mode = models.ModeStructured
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Completion: CompletionConfig{
			Provider:    strings.ToLower(getEnv("COMPLETION_PROVIDER", ProviderAzure)),
			Endpoint:    getEnv("AZURE_OPENAI_ENDPOINT", ""),
			APIKey:      getEnv("AZURE_OPENAI_API_KEY", ""),
			GeminiKey:   getEnv("GEMINI_API_KEY", ""),
			GeminiModel: getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			Timeout:     getEnvAsDuration("COMPLETION_TIMEOUT", "0s"),
		},
		Prompt: PromptConfig{
			ResponseMode:    mode,
			StripCodeFences: getEnvAsBool("STRIP_CODE_FENCES", true),
			SchemaPath:      getEnv("SCHEMA_PATH", "./schema.json"),
			SchemaPlacement: strings.ToLower(getEnv("SCHEMA_PLACEMENT", SchemaPlacementPlaceholder)),
			Strict:          getEnvAsBool("PROMPT_STRICT", true),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
			KeepUploads: getEnvAsBool("KEEP_UPLOADS", false),
		},
		Logging: LoggingConfig{
			Level:      getEnv("LOG_LEVEL", "info"),
			Pretty:     getEnvAsBool("LOG_PRETTY", false),
			File:       getEnv("LOG_FILE", ""),
			MaxSizeMB:  getEnvAsInt("LOG_MAX_SIZE_MB", 50),
			MaxBackups: getEnvAsInt("LOG_MAX_BACKUPS", 3),
			MaxAgeDays: getEnvAsInt("LOG_MAX_AGE_DAYS", 14),
			Compress:   getEnvAsBool("LOG_COMPRESS", true),
		},
	}
}

// Validate fails fast when the secrets for the selected provider are absent.
func (c *Config) Validate() error {
	var missing []string

	switch c.Completion.Provider {
	case ProviderAzure:
		if c.Completion.Endpoint == "" {
			missing = append(missing, "AZURE_OPENAI_ENDPOINT")
		}
		if c.Completion.APIKey == "" {
			missing = append(missing, "AZURE_OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.Completion.GeminiKey == "" {
			missing = append(missing, "GEMINI_API_KEY")
		}
	default:
		return models.NewPipelineError(models.ErrConfigMissing,
			fmt.Sprintf("unknown COMPLETION_PROVIDER %q", c.Completion.Provider), nil)
	}

	if c.Prompt.SchemaPlacement != SchemaPlacementPlaceholder && c.Prompt.SchemaPlacement != SchemaPlacementAppended {
		return models.NewPipelineError(models.ErrConfigMissing,
			fmt.Sprintf("unknown SCHEMA_PLACEMENT %q", c.Prompt.SchemaPlacement), nil)
	}

	if len(missing) > 0 {
		return models.NewPipelineError(models.ErrConfigMissing,
			"missing required configuration: "+strings.Join(missing, ", "), nil)
	}

	return nil
}

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

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
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
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
