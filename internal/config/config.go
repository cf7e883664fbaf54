package config

import "os"

type Config struct {
	HTTPAddr  string
	MongoURI  string
	MongoDB   string
	JWTSecret string
	StripeKey string
	GelfAddr  string
}

func Load() *Config {
	return &Config{
		HTTPAddr:  ":" + getEnv("PORT", "5000"),
		MongoURI:  getEnv("MONGODB_URI", "mongodb://127.0.0.1:27017"),
		MongoDB:   getEnv("MONGODB_DB", "surveyMaster"),
		JWTSecret: getEnv("ACCESS_TOKEN", "surveymaster-dev-secret-change-me"),
		StripeKey: getEnv("STRIPE_SECRET_KEY", ""),
		GelfAddr:  getEnv("GELF_ADDR", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
