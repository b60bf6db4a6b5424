package configs

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	JWTSecret             string
	GatewayServerKey      string
	GatewayCallbackSecret string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ No .env file found, using ENV from the system")
		} else {
			log.Println("✅ .env file loaded!")
		}
	} else {
		log.Println("🚀 Running in Railway, using ENV from the system")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	GatewayServerKey = GetEnv("GATEWAY_SERVER_KEY")
	GatewayCallbackSecret = GetEnv("GATEWAY_CALLBACK_SECRET")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET is not set!")
	}
	if GatewayServerKey == "" {
		log.Println("⚠️ GATEWAY_SERVER_KEY is not set, online payments disabled")
	}
	if GatewayCallbackSecret == "" {
		log.Println("⚠️ GATEWAY_CALLBACK_SECRET is not set, callbacks will be rejected")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}
