package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCC is appended to every outbound message unless CC_EMAILS overrides it.
var DefaultCC = []string{"arghyadip.pal@180dc.org", "mishra.moulik@180dc.org"}

type Config struct {
	// LLM
	LLMProvider  string
	GoogleAPIKey string
	OpenAIAPIKey string
	ModelName    string

	// Generation
	SubjectPrefix   string
	ResultsPath     string
	GenerationPause time.Duration

	// Sending
	MailTransport    string
	CredentialsPath  string
	GmailCredentials string
	GmailToken       string
	DefaultSender    string
	CC               []string
	SendPause        time.Duration

	// History
	HistoryDB string

	// Logging
	LogLevel  string
	LogFormat string
}

// Load reads .env (when present) and the process environment. The returned
// string is a notice for the caller to log, empty when .env was found.
func Load() (*Config, string, error) {
	var notice string
	if err := godotenv.Load(); err != nil {
		notice = "No .env file found, using environment variables"
	}

	cfg := &Config{
		LLMProvider:      strings.ToLower(getEnv("LLM_PROVIDER", "gemini")),
		GoogleAPIKey:     getEnv("GOOGLE_API_KEY", ""),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		ModelName:        getEnv("MODEL_NAME", ""),
		SubjectPrefix:    getEnv("SUBJECT_PREFIX", "180DC IIT Kharagpur X"),
		ResultsPath:      getEnv("RESULTS_PATH", "generated_emails.json"),
		GenerationPause:  getDurationEnv("GENERATION_PAUSE", time.Second),
		MailTransport:    strings.ToLower(getEnv("MAIL_TRANSPORT", "smtp")),
		CredentialsPath:  getEnv("CREDENTIALS_PATH", "credentials.yaml"),
		GmailCredentials: getEnv("GMAIL_CREDENTIALS", "gmail_credentials.json"),
		GmailToken:       getEnv("GMAIL_TOKEN", "gmail_token.json"),
		DefaultSender:    getEnv("DEFAULT_SENDER", "parthsethi@180dc.org"),
		CC:               getListEnv("CC_EMAILS", DefaultCC),
		SendPause:        getDurationEnv("SEND_PAUSE", 2*time.Second),
		HistoryDB:        getEnvAllowEmpty("HISTORY_DB", "outreach.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	if err := cfg.validate(); err != nil {
		return nil, notice, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, notice, nil
}

func (c *Config) validate() error {
	switch c.LLMProvider {
	case "gemini", "openai":
	default:
		return fmt.Errorf("unsupported LLM provider: %s (supported: gemini, openai)", c.LLMProvider)
	}

	switch c.MailTransport {
	case "smtp", "gmail":
	default:
		return fmt.Errorf("unsupported mail transport: %s (supported: smtp, gmail)", c.MailTransport)
	}

	return nil
}

// LLMAPIKey returns the key for the configured provider.
func (c *Config) LLMAPIKey() string {
	if c.LLMProvider == "openai" {
		return c.OpenAIAPIKey
	}
	return c.GoogleAPIKey
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAllowEmpty distinguishes an unset variable from one set to "".
func getEnvAllowEmpty(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return defaultValue
	}

	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
