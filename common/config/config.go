package config

import (
	"os"
	"strconv"
	"strings"
)

var (
	Port         = GetEnvInt("PORT", 3000)
	DebugEnabled = strings.ToLower(os.Getenv("DEBUG")) == "true"
	GinMode      = os.Getenv("GIN_MODE")
)

// Gemini backend
var (
	GeminiAPIKey     = os.Getenv("GEMINI_API_KEY")
	GeminiBaseURL    = GetEnvString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com")
	GeminiAPIVersion = GetEnvString("GEMINI_API_VERSION", "v1beta")
	// fast variant keeps latency bounded, high variant is used whenever
	// identity fidelity matters
	ModelVariantFast = GetEnvString("MODEL_VARIANT_FAST", "gemini-2.5-flash-image")
	ModelVariantHigh = GetEnvString("MODEL_VARIANT_HIGH", "gemini-3-pro-image-preview")
)

// storage for generated images
var (
	StorageBaseURL    = os.Getenv("STORAGE_BASE_URL")
	StorageServiceKey = os.Getenv("STORAGE_SERVICE_KEY")
	StorageBucket     = GetEnvString("STORAGE_BUCKET", "generated-images")
)

var (
	// 单次请求最多出图数
	MaxImagesPerRequest = GetEnvInt("MAX_IMAGES_PER_REQUEST", 4)
	// per backend call wall-clock limit, seconds
	BackendTimeout = GetEnvInt("BACKEND_TIMEOUT", 60)
	// queue scheduler relays requests with this shared secret (JWT HS256)
	QueueRelaySecret = os.Getenv("QUEUE_RELAY_SECRET")
)

var (
	GlobalApiRateLimitNum      = GetEnvInt("GLOBAL_API_RATE_LIMIT", 240)
	GlobalApiRateLimitDuration = int64(GetEnvInt("GLOBAL_API_RATE_LIMIT_DURATION", 180))
)

var (
	SyncFrequency        = GetEnvInt("SYNC_FREQUENCY", 600) // in seconds
	MaxReferenceImageMB  = GetEnvInt("MAX_REFERENCE_IMAGE_MB", 20)
	UserContentTimeout   = GetEnvInt("USER_CONTENT_REQUEST_TIMEOUT", 30)
	RelayProxy           = os.Getenv("RELAY_PROXY")
	UserContentProxy     = os.Getenv("USER_CONTENT_REQUEST_PROXY")
	IsMasterNode         = os.Getenv("NODE_TYPE") != "slave"
	UsingSQLite          = false
	UsingPostgreSQL      = false
	UsingMySQL           = false
	SQLitePath           = GetEnvString("SQLITE_PATH", "photogen.db")
	SQLMaxIdleConns      = GetEnvInt("SQL_MAX_IDLE_CONNS", 100)
	SQLMaxOpenConns      = GetEnvInt("SQL_MAX_OPEN_CONNS", 1000)
	SQLMaxLifetime       = GetEnvInt("SQL_MAX_LIFETIME", 60)
)

func GetEnvString(env string, defaultValue string) string {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	return os.Getenv(env)
}

func GetEnvInt(env string, defaultValue int) int {
	if env == "" || os.Getenv(env) == "" {
		return defaultValue
	}
	num, err := strconv.Atoi(os.Getenv(env))
	if err != nil {
		return defaultValue
	}
	return num
}
