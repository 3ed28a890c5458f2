package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Get returns the value of the environment variable key. When key is unset
// and key+"_FILE" names a readable file, the trimmed file contents are used
// instead, which lets secrets come from mounted files. Otherwise def.
func Get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return def
}

// GetInt parses Get(key) as an int, falling back to def.
func GetInt(key string, def int) int {
	return int(GetInt64(key, int64(def)))
}

// GetInt64 parses Get(key) as a base 10 integer. Unset or malformed values
// yield def.
func GetInt64(key string, def int64) int64 {
	if val := Get(key, ""); val != "" {
		if i, err := strconv.ParseInt(strings.TrimSpace(val), 10, 64); err == nil {
			return i
		}
	}
	return def
}

// GetBool returns the boolean value of key.
// True: 1, t, true, y, yes, on. False: 0, f, false, n, no, off.
// Anything else yields def.
func GetBool(key string, def bool) bool {
	switch strings.ToLower(Get(key, "")) {
	case "1", "t", "true", "y", "yes", "on":
		return true
	case "0", "f", "false", "n", "no", "off":
		return false
	}
	return def
}

// ParseDuration is time.ParseDuration plus a "d" suffix for whole days,
// e.g. "30d".
func ParseDuration(s string) (time.Duration, error) {
	lower := strings.ToLower(strings.TrimSpace(s))
	if days, ok := strings.CutSuffix(lower, "d"); ok {
		if n, err := strconv.Atoi(days); err == nil {
			return time.Duration(n) * 24 * time.Hour, nil
		}
	}
	return time.ParseDuration(lower)
}

// GetDuration parses Get(key) with ParseDuration, falling back to def.
func GetDuration(key string, def time.Duration) time.Duration {
	if val := Get(key, ""); val != "" {
		if d, err := ParseDuration(val); err == nil {
			return d
		}
	}
	return def
}
