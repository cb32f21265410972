package config

import (
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"

	"fjacquet/fiobank/internal/fileutils"
)

var (
	envOnce sync.Once
	envFile string
)

// LoadEnv loads environment variables from a .env file in the current or
// parent directory, once per process. Variables already set win. It returns
// the file that was loaded, or "" when none was.
func LoadEnv() string {
	envOnce.Do(func() {
		envFile = loadEnvFrom(".", "..")
	})
	return envFile
}

func loadEnvFrom(dirs ...string) string {
	for _, dir := range dirs {
		candidate := filepath.Join(dir, ".env")
		if !fileutils.FileExists(candidate) {
			continue
		}
		if err := godotenv.Load(candidate); err != nil {
			return ""
		}
		return candidate
	}
	return ""
}
