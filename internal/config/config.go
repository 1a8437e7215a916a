package config

import (
	"os"
	"time"
)

type Config struct {
	ServerAddress string

	MongoURI    string
	MongoDBName string
	DataDir     string

	JWTSecret         string
	JWTExpiration     time.Duration
	SessionExpiration time.Duration

	FirebaseProjectID       string
	FirebaseCredentialsJSON string

	SendGridAPIKey    string
	SendGridFromEmail string
	RecaptchaSecret   string

	StaticDir string
}

func Load() *Config {
	return &Config{
		ServerAddress:           getEnv("SERVER_ADDRESS", ":8080"),
		MongoURI:                getEnv("MONGODB_URI", ""),
		MongoDBName:             getEnv("MONGODB_DB", "bizlink"),
		DataDir:                 getEnv("DATA_DIR", "./data"),
		JWTSecret:               getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:           24 * time.Hour,
		SessionExpiration:       5 * 24 * time.Hour,
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsJSON: getEnv("FIREBASE_CREDENTIALS_JSON", ""),
		SendGridAPIKey:          getEnv("SENDGRID_API_KEY", ""),
		SendGridFromEmail:       getEnv("SENDGRID_FROM_EMAIL", ""),
		RecaptchaSecret:         getEnv("RECAPTCHA_SECRET", ""),
		StaticDir:               getEnv("STATIC_DIR", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
