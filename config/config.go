package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	MongoURI string
	MongoDB  string

	RedisAddr string
	JWTSecret string

	FreeShippingThreshold float64
	ShippingFee           float64
	Currency              string

	RazorpayKeyID     string
	RazorpayKeySecret string

	FrontendURL string

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	EmailFrom string
}

// App holds the process-wide configuration, read once at startup.
var App = Load()

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}
	return &Config{
		Port:                  getEnv("PORT", "8080"),
		MongoURI:              getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:               getEnv("MONGODB_DB", "sparkledb"),
		RedisAddr:             getEnv("REDIS_ADDR", "localhost:6379"),
		JWTSecret:             getEnv("JWT_SECRET", "dev_only_secret_change_me"),
		FreeShippingThreshold: getEnvFloat("FREE_SHIPPING_THRESHOLD", 2000),
		ShippingFee:           getEnvFloat("STANDARD_SHIPPING_COST", 99),
		Currency:              getEnv("CURRENCY", "INR"),
		RazorpayKeyID:         getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret:     getEnv("RAZORPAY_KEY_SECRET", ""),
		FrontendURL:           getEnv("FRONTEND_URL", "http://localhost:5173"),
		SMTPHost:              getEnv("EMAIL_HOST", ""),
		SMTPPort:              getEnv("EMAIL_PORT", "587"),
		SMTPUser:              getEnv("EMAIL_USER", ""),
		SMTPPass:              getEnv("EMAIL_PASS", ""),
		EmailFrom:             getEnv("EMAIL_FROM", "no-reply@sparkle.local"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
