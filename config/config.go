package config

import (
	"os"
	"strconv"
	"strings"
)

// Config collects the environment-driven settings shared across services.
// Call Load once at startup; zero values fall back to local defaults.
type Config struct {
	// CohereAPIKey authenticates script generation requests.
	CohereAPIKey string

	// TTSBaseURL points at the speech synthesis service.
	TTSBaseURL string

	// TTSVoice selects the narration voice.
	TTSVoice string

	// OutputDir is where finished videos land.
	OutputDir string

	// TempDir holds intermediate clips and audio.
	TempDir string

	// IntroOutro toggles the branded intro and outro slides.
	IntroOutro bool

	// RedisAddr enables the run registry when non-empty.
	RedisAddr string

	// S3Bucket enables artifact publishing when non-empty.
	S3Bucket string

	// S3Prefix namespaces published artifacts within the bucket.
	S3Prefix string

	// YouTubeCredentials is the path to a service account JSON file;
	// empty disables YouTube publishing.
	YouTubeCredentials string
}

// Load reads the configuration from the environment.
func Load() Config {
	return Config{
		CohereAPIKey:       os.Getenv("COHERE_API_KEY"),
		TTSBaseURL:         GetEnvOrDefault("TTS_BASE_URL", "http://localhost:5002"),
		TTSVoice:           GetEnvOrDefault("TTS_VOICE", "en-US-neutral"),
		OutputDir:          GetEnvOrDefault("OUTPUT_DIR", OutputDir),
		TempDir:            GetEnvOrDefault("TEMP_DIR", TempDir),
		IntroOutro:         GetEnvBool("INTRO_OUTRO", true),
		RedisAddr:          os.Getenv("REDIS_ADDR"),
		S3Bucket:           strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Prefix:           normalizePrefix(os.Getenv("S3_PREFIX")),
		YouTubeCredentials: os.Getenv("YOUTUBE_CREDENTIALS"),
	}
}

// GetEnvOrDefault returns the value of an environment variable or a default value
func GetEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// GetEnvBool parses a boolean environment variable, falling back on
// defaultVal when unset or unparseable.
func GetEnvBool(key string, defaultVal bool) bool {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}

func normalizePrefix(p string) string {
	p = strings.Trim(strings.TrimSpace(p), "/")
	if p == "" {
		return ""
	}
	return p + "/"
}
