package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

var ErrNotFound = errors.New(
	"ffmpeg not found: install it or set SUBCLEAN_FFMPEG_PATH",
)

// Path resolves the ffmpeg binary. A configured path must point at an
// existing file; otherwise ffmpeg is looked up on PATH.
func Path(configured string) (string, error) {
	if configured != "" {
		info, err := os.Stat(configured)
		if err != nil {
			return "", fmt.Errorf("configured ffmpeg %s: %w", configured, err)
		}
		if info.IsDir() {
			return "", fmt.Errorf("configured ffmpeg %s is a directory", configured)
		}
		return configured, nil
	}

	found, err := exec.LookPath("ffmpeg" + executableSuffix())
	if err != nil {
		return "", ErrNotFound
	}
	return found, nil
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
