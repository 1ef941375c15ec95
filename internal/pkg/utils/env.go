package utils

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// lookupEnv returns defaultValue for unset or blank keys. Parse failures are
// reported on the standard logger because config loads before zap exists.
func lookupEnv[T any](key string, defaultValue T, parse func(string) (T, error)) T {
	raw, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(raw) == "" {
		return defaultValue
	}

	value, err := parse(strings.TrimSpace(raw))
	if err != nil {
		log.Printf("config: cannot parse %s=%q (%v), using default %v", key, raw, err, defaultValue)
		return defaultValue
	}
	return value
}

func GetEnvString(key, defaultValue string) string {
	return lookupEnv(key, defaultValue, func(s string) (string, error) { return s, nil })
}

func GetEnvInt(key string, defaultValue int) int {
	return lookupEnv(key, defaultValue, strconv.Atoi)
}

func GetEnvInt64(key string, defaultValue int64) int64 {
	return lookupEnv(key, defaultValue, func(s string) (int64, error) { return strconv.ParseInt(s, 10, 64) })
}

func GetEnvBool(key string, defaultValue bool) bool {
	return lookupEnv(key, defaultValue, strconv.ParseBool)
}

// GetEnvDuration accepts Go duration strings such as "500ms" or "2m".
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	return lookupEnv(key, defaultValue, time.ParseDuration)
}
