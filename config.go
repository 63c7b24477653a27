package agriassist

import "os"

// Config is the immutable process configuration, read once at startup
// and passed to the components that need it.
type Config struct {
	Port         string
	DatabaseURL  string
	JWTSecret    string
	ClientOrigin string
	FrontendURL  string

	LLMProvider string
	LLMModel    string
	LLMAPIKey   string

	OpenWeatherAPIKey string
}

// ConfigFromEnv builds a Config from the environment. Only JWT_SECRET
// and the provider API keys have no usable default.
func ConfigFromEnv() Config {
	return Config{
		Port:         envOr("PORT", "4000"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    os.Getenv("JWT_SECRET"),
		ClientOrigin: os.Getenv("CLIENT_ORIGIN"),
		FrontendURL:  envOr("FRONTEND_URL", "http://localhost:5500"),

		LLMProvider: envOr("LLM_PROVIDER", "openai"),
		LLMModel:    envOr("LLM_MODEL", "gpt-4o-mini"),
		LLMAPIKey:   os.Getenv("LLM_API_KEY"),

		OpenWeatherAPIKey: os.Getenv("OPENWEATHER_API_KEY"),
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
