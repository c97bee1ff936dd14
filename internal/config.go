package internal

import (
	"fmt"
	"strings"
	"time"

	"github.com/Netflix/go-env"
)

const (
	TrackerMemory = "memory"
	TrackerBadger = "badger"
)

type Config struct {
	Host     string `env:"HOST,default=0.0.0.0"`
	Port     int    `env:"PORT,default=16273"`
	LogLevel string `env:"LOG_LEVEL,default=INFO"`

	DownloadsEnabled bool   `env:"DOWNLOADS_ENABLED,default=true"`
	ChunkAreaRoot    string `env:"CHUNK_AREA_ROOT,default=./chunk"`
	ArtifactAreaRoot string `env:"ARTIFACT_AREA_ROOT,default=./storage"`

	TrackerBackend     string        `env:"TRACKER_BACKEND,default=memory"`
	BadgerFilepath     string        `env:"BADGER_FILEPATH,default=./data/sessions"`
	LockShards         int           `env:"LOCK_SHARDS,default=64"`
	SessionTTL         time.Duration `env:"SESSION_TTL,default=24h"`
	SweepInterval      time.Duration `env:"SWEEP_INTERVAL,default=10m"`
	CompletedRetention time.Duration `env:"COMPLETED_RETENTION,default=1h"`
	RestartInterval    time.Duration `env:"RESTART_INTERVAL,default=1s"`

	StorageCheckInterval time.Duration `env:"STORAGE_CHECK_INTERVAL,default=1m"`
	StorageWarnPercent   float64       `env:"STORAGE_WARN_PERCENT,default=90"`

	MaxFileSizeMB   int           `env:"MAX_FILE_SIZE_MB,default=100000"`
	ChunkSizeBytes  int           `env:"CHUNK_SIZE_BYTES,default=1000000"`
	TransferTimeout time.Duration `env:"TRANSFER_TIMEOUT,default=120s"`
	DropzoneCDN     string        `env:"DROPZONE_CDN,default=https://cdnjs.cloudflare.com/ajax/libs/dropzone"`
	DropzoneVersion string        `env:"DROPZONE_VERSION,default=5.7.6"`
	ParallelChunks  bool          `env:"PARALLEL_CHUNKS,default=true"`
	ForceChunking   bool          `env:"FORCE_CHUNKING,default=true"`
	IndexPage       string        `env:"INDEX_PAGE"`

	CorsAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS,default=*"`
	DebugInspectorPort int    `env:"DEBUG_INSPECTOR_PORT,default=8081"`
}

// LoadConfig reads the process environment and validates the result.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if c.MaxFileSizeMB < 1 || c.ChunkSizeBytes < 1 || c.TransferTimeout < time.Millisecond {
		return fmt.Errorf("invalid upload option, make sure MAX_FILE_SIZE_MB, CHUNK_SIZE_BYTES and TRANSFER_TIMEOUT are all positive")
	}
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", c.Port)
	}
	switch c.TrackerBackend {
	case TrackerMemory:
	case TrackerBadger:
		if strings.TrimSpace(c.BadgerFilepath) == "" {
			return fmt.Errorf("BADGER_FILEPATH is required with TRACKER_BACKEND=%s", TrackerBadger)
		}
	default:
		return fmt.Errorf("TRACKER_BACKEND must be %q or %q, got %q", TrackerMemory, TrackerBadger, c.TrackerBackend)
	}
	if c.SessionTTL <= 0 || c.SweepInterval <= 0 {
		return fmt.Errorf("SESSION_TTL and SWEEP_INTERVAL must be positive")
	}
	if c.CompletedRetention < 0 {
		return fmt.Errorf("COMPLETED_RETENTION must not be negative")
	}
	if c.ChunkAreaRoot == c.ArtifactAreaRoot {
		return fmt.Errorf("CHUNK_AREA_ROOT and ARTIFACT_AREA_ROOT must differ")
	}
	return nil
}

// CorsOrigins splits CORS_ALLOWED_ORIGINS on commas.
func (c Config) CorsOrigins() []string {
	var origins []string
	for _, origin := range strings.Split(c.CorsAllowedOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	return origins
}
