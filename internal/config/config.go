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
	Environment string
	ServerPort  string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPath     string

	JWTSecret      string
	JWTExpiryHours int

	UploadDir     string
	PublicBaseURL string
	MaxUploadMB   int64

	// S3-compatible storage; local disk is used when S3Bucket is empty.
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string
	S3PublicURL       string

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPass     string
	MailFrom     string
	ResendAPIKey string
	StudioInbox  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration

	StrictTaskTransitions bool
}

func Load() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	return &Config{
		Environment:           getEnv("ENVIRONMENT", "development"),
		ServerPort:            getEnv("SERVER_PORT", "8080"),
		DBDriver:              strings.ToLower(getEnv("DB_DRIVER", "postgres")),
		DBHost:                getEnv("DB_HOST", "localhost"),
		DBPort:                getEnv("DB_PORT", "5432"),
		DBUser:                getEnv("DB_USER", "studio_user"),
		DBPassword:            getEnv("DB_PASSWORD", "studio_pass"),
		DBName:                getEnv("DB_NAME", "studio_db"),
		DBPath:                getEnv("DB_PATH", "studio.db"),
		JWTSecret:             getEnv("JWT_SECRET", "supersecretkey"),
		JWTExpiryHours:        getEnvInt("JWT_EXPIRY_HOURS", 72),
		UploadDir:             getEnv("UPLOAD_DIR", "uploads"),
		PublicBaseURL:         strings.TrimSuffix(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		MaxUploadMB:           int64(getEnvInt("MAX_UPLOAD_MB", 50)),
		S3Bucket:              getEnv("S3_BUCKET", ""),
		S3Region:              getEnv("S3_REGION", "auto"),
		S3Endpoint:            getEnv("S3_ENDPOINT", ""),
		S3AccessKeyID:         getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey:     getEnv("S3_SECRET_ACCESS_KEY", ""),
		S3PublicURL:           getEnv("S3_PUBLIC_URL", ""),
		SMTPHost:              getEnv("SMTP_HOST", ""),
		SMTPPort:              getEnvInt("SMTP_PORT", 587),
		SMTPUser:              getEnv("SMTP_USER", ""),
		SMTPPass:              getEnv("SMTP_PASS", ""),
		MailFrom:              getEnv("MAIL_FROM", "Studio <no-reply@localhost>"),
		ResendAPIKey:          getEnv("RESEND_API_KEY", ""),
		StudioInbox:           getEnv("STUDIO_INBOX", ""),
		RedisAddr:             getEnv("REDIS_ADDR", ""),
		RedisPassword:         getEnv("REDIS_PASSWORD", ""),
		RedisDB:               getEnvInt("REDIS_DB", 0),
		CacheTTL:              getEnvDuration("CACHE_TTL", 5*time.Minute),
		StrictTaskTransitions: getEnvBool("STRICT_TASK_TRANSITIONS", false),
	}
}

// IsProduction reports whether the service runs with production settings.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Invalid integer for %s: %q, using %d", key, value, defaultVal)
		return defaultVal
	}
	return n
}

func getEnvBool(key string, defaultVal bool) bool {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	default:
		return defaultVal
	}
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultVal
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		log.Printf("Invalid duration for %s: %q, using %s", key, value, defaultVal)
		return defaultVal
	}
	return d
}
