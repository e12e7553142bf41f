package testcase

import (
	"fmt"
	"strconv"
	"strings"
)

// DefaultKeyPrefix is used when no project prefix is configured.
const DefaultKeyPrefix = "FIT"

const keyInfix = "-TC-"

// FormatKey builds a display key like "FIT-TC-42".
func FormatKey(prefix string, n uint) string {
	return fmt.Sprintf("%s%s%d", prefix, keyInfix, n)
}

// ParseKeyNumber extracts the numeric suffix after the last "-TC-" in a key.
// A missing infix or unparseable suffix yields 0, so the next generated key
// restarts the sequence at 1 rather than failing.
func ParseKeyNumber(key string) uint {
	idx := strings.LastIndex(key, keyInfix)
	if idx < 0 {
		return 0
	}

	n, err := strconv.ParseUint(key[idx+len(keyInfix):], 10, 32)
	if err != nil {
		return 0
	}
	return uint(n)
}
