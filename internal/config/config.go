package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "SUBCLEAN"

// settings read from the environment, optionally seeded from a .env file
type Config struct {
	FilterDir     string `envconfig:"FILTER_DIR"`
	DefaultFilter string `envconfig:"DEFAULT_FILTER" default:"main"`
	FFmpegPath    string `envconfig:"FFMPEG_PATH"`
	DetectCharset bool   `envconfig:"DETECT_CHARSET" default:"true"`
}

// Load reads SUBCLEAN_* variables. envFiles are loaded first when present;
// variables already set in the environment take precedence.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := &Config{}
	if err := envconfig.Process(envPrefix, cfg); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}

	if cfg.FilterDir == "" {
		cfg.FilterDir = defaultFilterDir()
	}
	return cfg, nil
}

func defaultFilterDir() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ""
	}
	return filepath.Join(dir, "subclean", "filters")
}
