package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

var (
	loadOnce sync.Once
	loadErr  error
)

// LoadEnv loads environment variables from a .env file in project root if present.
// Existing environment variables are not overwritten. A missing file is not an
// error; a file that exists but cannot be read or parsed is.
func LoadEnv() error {
	loadOnce.Do(func() {
		if path := findEnvFile(); path != "" {
			loadErr = loadEnvFile(path)
		}
	})
	return loadErr
}

func loadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("cannot open .env %s: %w", path, err)
	}
	return nil
}

// findEnvFile looks for .env in the working directory and at most two of its parents.
func findEnvFile() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, ".env")
		if st, err := os.Stat(path); err == nil && !st.IsDir() {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
