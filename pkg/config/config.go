package config

import (
	"os"
	"path/filepath"
)

// Config carries everything the bot reads from the environment. It is built
// once in main and passed into constructors, so no package reaches for
// os.Getenv on its own.
type Config struct {
	// Prefix is the command prefix, "!" unless overridden.
	Prefix string
	// BotName is shown in the admin debug output.
	BotName string
	// StorePath is the sqlite file holding the paired device session.
	StorePath string
	// DataDir holds the activity log CSV.
	DataDir string
	// TempDir is where transcode scratch files are written.
	TempDir string
	// FFmpegPath and FFprobePath default to whatever is on PATH.
	FFmpegPath  string
	FFprobePath string
	// LogLevel is a zerolog level name (debug, info, warn, error).
	LogLevel string
	// TuningPath points at the optional yaml tuning file.
	TuningPath string

	// Tuning is loaded from TuningPath in main. Zero values fall back to
	// the built-in defaults downstream, so a bare Config still works.
	Tuning Tuning
}

func Load() *Config {
	return &Config{
		Prefix:      getenv("BOT_PREFIX", "!"),
		BotName:     getenv("BOT_NAME", "Bot"),
		StorePath:   getenv("STORE_PATH", "session.db"),
		DataDir:     getenv("DATA_DIR", "data"),
		TempDir:     getenv("TEMP_DIR", os.TempDir()),
		FFmpegPath:  getenv("FFMPEG_PATH", "ffmpeg"),
		FFprobePath: getenv("FFPROBE_PATH", "ffprobe"),
		LogLevel:    getenv("LOG_LEVEL", "info"),
		TuningPath:  getenv("TUNING_PATH", "stikerbot.yaml"),
	}
}

// ActivityLogPath is the CSV file the activity logger appends to.
func (c *Config) ActivityLogPath() string {
	return filepath.Join(c.DataDir, "activity_log.csv")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
