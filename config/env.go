package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	Port           string
	StoreDriver    string
	DatabaseURL    string
	DBHost         string
	DBPort         string
	DBUser         string
	DBPassword     string
	DBName         string
	DBSSLMode      string
	MongoURI       string
	MongoDatabase  string
	RedisURL       string
	RedisAddr      string
	RedisPassword  string
	CacheTTL       time.Duration
	JWTSecret      string
	SessionTTL     time.Duration
	CookieSecure   bool
	AllowOrigins   []string
	MaxUploadSize  int64
	CloudinaryURL  string
	SMTPHost       string
	SMTPPort       int
	SMTPUser       string
	SMTPPass       string
	SMTPFrom       string
	KafkaBrokers   []string
	KafkaTopic     string
	OTLPEndpoint   string
	AdminEmail     string
	AdminPassword  string
	CheckoutFanout int
}

var AppConfig *Config

func LoadConfig() *Config {
	if os.Getenv("VERCEL") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("Warning: .env file not found, using system environment variables")
		}
	}

	appEnv := getEnv("APP_ENV", "development")

	AppConfig = &Config{
		AppEnv:         appEnv,
		Port:           getEnv("APP_PORT", getEnv("PORT", "5000")),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", "postgres")),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DBHost:         getEnv("DB_HOST", "localhost"),
		DBPort:         getEnv("DB_PORT", "5432"),
		DBUser:         getEnv("DB_USER", "postgres"),
		DBPassword:     getEnv("DB_PASSWORD", "postgres"),
		DBName:         getEnv("DB_NAME", "bazaar"),
		DBSSLMode:      getEnv("DB_SSLMODE", "disable"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getEnv("MONGO_DATABASE", "bazaar"),
		RedisURL:       os.Getenv("REDIS_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RedisPassword:  os.Getenv("REDIS_PASSWORD"),
		CacheTTL:       getEnvDuration("CACHE_TTL", 5*time.Minute),
		JWTSecret:      getEnv("SESSION_SECRET", getEnv("JWT_SECRET", "secret")),
		SessionTTL:     getEnvDuration("SESSION_TTL", 24*time.Hour),
		CookieSecure:   getEnvBool("COOKIE_SECURE", appEnv == "production"),
		AllowOrigins:   getEnvList("ORIGIN_URL", []string{"http://localhost:3000"}),
		MaxUploadSize:  int64(getEnvInt("MAX_UPLOAD_SIZE", 5242880)),
		CloudinaryURL:  os.Getenv("CLOUDINARY_URL"),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       getEnvInt("SMTP_PORT", 587),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		SMTPFrom:       os.Getenv("SMTP_FROM"),
		KafkaBrokers:   getEnvList("KAFKA_BROKERS", nil),
		KafkaTopic:     getEnv("KAFKA_ORDER_TOPIC", "orders.created"),
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		AdminEmail:     os.Getenv("ADMIN_EMAIL"),
		AdminPassword:  os.Getenv("ADMIN_PASSWORD"),
		CheckoutFanout: getEnvInt("CHECKOUT_FANOUT", 10),
	}

	return AppConfig
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return n
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return d
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
