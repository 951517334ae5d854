package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	// Redis configuration.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB     int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB      int    `mapstructure:"REDIS_AUTH_DB"`
	RedisNotifyQueue int    `mapstructure:"REDIS_NOTIFY_QUEUE_DB"`

	// Collaborator endpoints.
	CatalogAPIURL      string `mapstructure:"CATALOG_API_URL"`
	CatalogAPIToken    string `mapstructure:"CATALOG_API_TOKEN"`
	VerifierAPIURL     string `mapstructure:"VERIFIER_API_URL"`
	VerifierAPIToken   string `mapstructure:"VERIFIER_API_TOKEN"`
	DocCheckAPIURL     string `mapstructure:"DOC_CHECK_API_URL"`
	RequestTimeoutSecs int    `mapstructure:"REQUEST_TIMEOUT_SECS"`

	// Verification retry policy.
	VerifyMaxAttempts  int `mapstructure:"VERIFY_MAX_ATTEMPTS"`
	VerifyBackoffMs    int `mapstructure:"VERIFY_BACKOFF_MS"`
	MaxRetrySelections int `mapstructure:"MAX_RETRY_SELECTIONS"`

	// Input limits enforced by the security gate.
	MaxMessageLength int `mapstructure:"MAX_MESSAGE_LENGTH"`
	MaxFieldLength   int `mapstructure:"MAX_FIELD_LENGTH"`

	// Required document types, comma separated.
	UserDocumentTypes     string `mapstructure:"USER_DOCUMENT_TYPES"`
	ProviderDocumentTypes string `mapstructure:"PROVIDER_DOCUMENT_TYPES"`

	// Gemini intent extraction.
	GeminiAPIKey string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel  string `mapstructure:"GEMINI_MODEL"`

	// Firebase Cloud Messaging.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Cloudinary document store.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	// LOG_LEVEL is empty by default so the ENV-based level applies
	// (info in production, debug otherwise).
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "freightbook")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_NOTIFY_QUEUE_DB", 2)
	viper.SetDefault("REQUEST_TIMEOUT_SECS", 60)
	viper.SetDefault("VERIFY_MAX_ATTEMPTS", 3)
	viper.SetDefault("VERIFY_BACKOFF_MS", 500)
	viper.SetDefault("MAX_RETRY_SELECTIONS", 5)
	viper.SetDefault("MAX_MESSAGE_LENGTH", 10000)
	viper.SetDefault("MAX_FIELD_LENGTH", 5000)
	viper.SetDefault("USER_DOCUMENT_TYPES", "consignment_note,id_proof")
	viper.SetDefault("PROVIDER_DOCUMENT_TYPES", "vehicle_registration,transit_permit")
	viper.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// RequiredUserDocuments returns the configured user-side document types.
func RequiredUserDocuments() []string {
	return splitTypes(AppConfig.UserDocumentTypes)
}

// RequiredProviderDocuments returns the configured provider-side document types.
func RequiredProviderDocuments() []string {
	return splitTypes(AppConfig.ProviderDocumentTypes)
}

func splitTypes(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
