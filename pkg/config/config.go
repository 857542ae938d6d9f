package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string

	MongoURI      string
	MongoDatabase string

	JWTSecret string
	JWTExpiry int64

	// Storage: "local" writes under UploadDir and serves it at PublicBaseURL,
	// "gcs" writes to StorageBucket.
	StorageDriver      string
	UploadDir          string
	PublicBaseURL      string
	StorageBucket      string
	GCSCredentialsPath string

	AdminEmail    string
	AdminPassword string
	AdminName     string

	RateLimitPerMinute int
	CORSOrigins        []string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:         getEnv("SERVER_PORT", "8080"),
		Environment:        getEnv("ENVIRONMENT", "development"),
		MongoURI:           getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:      getEnv("MONGODB_DATABASE", "tamilsociety"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTExpiry:          getEnvAsInt64("JWT_EXPIRY", 24*60*60), // 24 hours
		StorageDriver:      getEnv("STORAGE_DRIVER", "local"),
		UploadDir:          getEnv("UPLOAD_DIR", "public/uploads"),
		PublicBaseURL:      strings.TrimRight(getEnv("PUBLIC_BASE_URL", "/uploads"), "/"),
		StorageBucket:      getEnv("STORAGE_BUCKET", ""),
		GCSCredentialsPath: getEnv("GCS_CREDENTIALS_PATH", ""),
		AdminEmail:         getEnv("ADMIN_EMAIL", ""),
		AdminPassword:      getEnv("ADMIN_PASSWORD", ""),
		AdminName:          getEnv("ADMIN_NAME", "Administrator"),
		RateLimitPerMinute: int(getEnvAsInt64("RATE_LIMIT_PER_MINUTE", 60)),
		CORSOrigins:        splitList(getEnv("CORS_ORIGINS", "*")),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) validate() error {
	if c.JWTSecret == "" {
		if !c.IsDevelopment() {
			return fmt.Errorf("JWT_SECRET is required in %s", c.Environment)
		}
		c.JWTSecret = "development-secret"
	}

	switch c.StorageDriver {
	case "local":
	case "gcs":
		if c.StorageBucket == "" {
			return fmt.Errorf("STORAGE_BUCKET is required when STORAGE_DRIVER=gcs")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}

	if c.RateLimitPerMinute <= 0 {
		c.RateLimitPerMinute = 60
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
