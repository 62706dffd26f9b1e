package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates configuration for the whole service.
type Config struct {
	Server  ServerConfig
	OpenAI  OpenAIConfig
	Places  PlacesConfig
	Session SessionConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	openAI, err := loadOpenAIConfig()
	if err != nil {
		return nil, err
	}

	places, err := loadPlacesConfig()
	if err != nil {
		return nil, err
	}

	session, err := loadSessionConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, OpenAI: openAI, Places: places, Session: session}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Accept ":8080" or "127.0.0.1:8080" verbatim.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// OpenAIConfig describes the chat-completion upstream.
type OpenAIConfig struct {
	APIKey      string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Enabled reports whether the chat credential was supplied.
func (c OpenAIConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadOpenAIConfig() (OpenAIConfig, error) {
	temperature := float32(0.4)
	if override, err := parseOptionalFloat32Env("OPENAI_TEMPERATURE"); err != nil {
		return OpenAIConfig{}, err
	} else if override != nil {
		temperature = *override
	}

	maxTokens := 450
	if override, err := parseOptionalIntEnv("OPENAI_MAX_TOKENS"); err != nil {
		return OpenAIConfig{}, err
	} else if override != nil {
		maxTokens = *override
	}

	return OpenAIConfig{
		APIKey:      strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		Model:       getEnvOrDefault("OPENAI_MODEL", "gpt-4o-mini"),
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}, nil
}

// PlacesConfig describes the places-search upstream.
type PlacesConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// Enabled reports whether the places credential was supplied.
func (c PlacesConfig) Enabled() bool {
	return c.APIKey != ""
}

func loadPlacesConfig() (PlacesConfig, error) {
	timeoutSeconds := 15
	if override, err := parseOptionalIntEnv("PLACES_TIMEOUT"); err != nil {
		return PlacesConfig{}, err
	} else if override != nil {
		timeoutSeconds = *override
	}

	return PlacesConfig{
		APIKey:  strings.TrimSpace(os.Getenv("GOOGLE_MAPS_API_KEY")),
		BaseURL: getEnvOrDefault("PLACES_BASE_URL", "https://maps.googleapis.com/maps/api/place/nearbysearch/json"),
		Timeout: time.Duration(timeoutSeconds) * time.Second,
	}, nil
}

// SessionConfig describes in-memory session retention.
type SessionConfig struct {
	TTL time.Duration
}

func loadSessionConfig() (SessionConfig, error) {
	raw := strings.TrimSpace(os.Getenv("SESSION_TTL"))
	if raw == "" {
		return SessionConfig{TTL: time.Hour}, nil
	}

	ttl, err := time.ParseDuration(raw)
	if err != nil {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_TTL value %q: %w", raw, err)
	}
	if ttl < 0 {
		return SessionConfig{}, fmt.Errorf("invalid SESSION_TTL value %q: must not be negative", raw)
	}
	return SessionConfig{TTL: ttl}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}

func parseOptionalFloat32Env(key string) (*float32, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	result := float32(val)
	return &result, nil
}
