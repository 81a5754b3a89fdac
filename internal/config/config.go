// Package config loads pipeline settings from the environment.
// The CLI loads a local .env first (via godotenv); everything here reads
// plain env vars so deployments can configure the pipeline without files.
package config

import (
	"os"
	"strconv"
	"time"
)

// Env var names.
const (
	EnvLLMEndpoint   = "LLM_ENDPOINT"
	EnvLLMAPIKey     = "LLM_API_KEY"
	EnvLLMModel      = "LLM_MODEL"
	EnvGCPProjectID  = "GCP_PROJECT_ID"
	EnvGCPAPIKey     = "GCP_API_KEY"
	EnvGCPLocation   = "GCP_LOCATION"
	EnvSTTLanguage   = "STT_LANGUAGE_CODE"
	EnvSTTModel      = "STT_MODEL"
	EnvSTTMaxSeconds = "STT_MAX_AUDIO_SECONDS"
	EnvEnableAudio   = "ENABLE_AUDIO_TRANSCRIPTION"
	EnvYtdlpPath     = "YTDLP_PATH"
	EnvFFmpegPath    = "FFMPEG_PATH"
	EnvFFprobePath   = "FFPROBE_PATH"
	EnvDatabasePath  = "DATABASE_PATH"
)

// Settings holds everything the pipeline needs from the environment.
type Settings struct {
	// LLM backend (OpenAI-compatible chat completions endpoint).
	LLMEndpoint string
	LLMAPIKey   string
	LLMModel    string

	// Speech-to-text (Google Cloud Speech v1).
	GCPProjectID       string
	GCPAPIKey          string
	GCPLocation        string
	STTLanguageCode    string
	STTModel           string
	STTMaxAudioSeconds int

	// Audio fallback is opt-in: constrained deployments leave it off and
	// rely on captions/metadata only.
	EnableAudioTranscription bool

	// External binaries.
	YtdlpPath   string
	FFmpegPath  string
	FFprobePath string

	// Persistence.
	DatabasePath string

	// Timeouts for external calls.
	MediaTimeout time.Duration
	STTTimeout   time.Duration
	LLMTimeout   time.Duration
}

// Load reads settings from the environment, applying defaults.
func Load() Settings {
	return Settings{
		LLMEndpoint: os.Getenv(EnvLLMEndpoint),
		LLMAPIKey:   os.Getenv(EnvLLMAPIKey),
		LLMModel:    getenv(EnvLLMModel, "gemini-1.5-flash"),

		GCPProjectID:       os.Getenv(EnvGCPProjectID),
		GCPAPIKey:          os.Getenv(EnvGCPAPIKey),
		GCPLocation:        getenv(EnvGCPLocation, "us-central1"),
		STTLanguageCode:    getenv(EnvSTTLanguage, "en-US"),
		STTModel:           os.Getenv(EnvSTTModel),
		STTMaxAudioSeconds: getint(EnvSTTMaxSeconds, 600),

		EnableAudioTranscription: getbool(EnvEnableAudio, false),

		YtdlpPath:   getenv(EnvYtdlpPath, "yt-dlp"),
		FFmpegPath:  getenv(EnvFFmpegPath, "ffmpeg"),
		FFprobePath: getenv(EnvFFprobePath, "ffprobe"),

		DatabasePath: getenv(EnvDatabasePath, "cookclip.db"),

		MediaTimeout: getdur("MEDIA_TIMEOUT_SECONDS", 120*time.Second),
		STTTimeout:   getdur("STT_TIMEOUT_SECONDS", 300*time.Second),
		LLMTimeout:   getdur("LLM_TIMEOUT_SECONDS", 60*time.Second),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getbool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getdur(key string, def time.Duration) time.Duration {
	n := getint(key, -1)
	if n <= 0 {
		return def
	}
	return time.Duration(n) * time.Second
}
