package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port          string
	StoreBackend  string
	DBPath        string
	BookingDBHost string
	BookingDBPort string
	JWTSecret     string
	JaegerAddress string
	LogFile       string
	CasbinModel   string
	CasbinPolicy  string
}

func NewConfig() *Config {
	// A local .env is optional, the environment wins either way.
	_ = godotenv.Load()

	return &Config{
		Port:          getEnv("PORT", "4000"),
		StoreBackend:  getEnv("STORE_BACKEND", "file"),
		DBPath:        getEnv("DB_PATH", "db.json"),
		BookingDBHost: os.Getenv("BOOKING_DB_HOST"),
		BookingDBPort: os.Getenv("BOOKING_DB_PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		JaegerAddress: os.Getenv("JAEGER_ADDRESS"),
		LogFile:       getEnv("LOG_FILE", "logs/booking_service.log"),
		CasbinModel:   getEnv("CASBIN_MODEL", "casbinAuthorization/rbac_model.conf"),
		CasbinPolicy:  getEnv("CASBIN_POLICY", "casbinAuthorization/policy.csv"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
