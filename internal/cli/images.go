package cli

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const pngDataPrefix = "data:image/png;base64,"

// saveImage decodes a PNG data URL and writes it to dir, returning the
// file path.
func saveImage(dataURL, dir string) (string, error) {
	encoded, ok := strings.CutPrefix(dataURL, pngDataPrefix)
	if !ok {
		return "", fmt.Errorf("unsupported image data URL")
	}

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decoding image data: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("manifest-%d.png", time.Now().Unix()))
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return "", fmt.Errorf("writing image file: %w", err)
	}

	return path, nil
}

// imageOutputDir is where /image writes rendered files.
func imageOutputDir() string {
	if dir := os.Getenv("MANIFEST_IMAGE_DIR"); dir != "" {
		return dir
	}
	return "."
}
