package utils

import (
	"os"
	"strconv"
	"strings"

	"github.com/daybook-app/daybook-backend/internal/platform/logger"
)

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		log.Debug("Env var not set, using default", "key", key)
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		log.Debug("Env var not set, using default", "key", key)
		return defaultVal
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		log.Warn("Env var not an integer, using default", "key", key, "value", val)
		return defaultVal
	}
	return parsed
}
