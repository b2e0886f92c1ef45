package assets

import (
	"fmt"
	"os"
	"strings"
)

// ReadShaderSource returns the GLSL text at path, or fallback when path is empty
func ReadShaderSource(path, fallback string) (string, error) {
	if path == "" {
		return fallback, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read shader %s: %w", path, err)
	}

	source := string(data)
	if strings.TrimSpace(source) == "" {
		return "", fmt.Errorf("shader %s is empty", path)
	}
	return source, nil
}
