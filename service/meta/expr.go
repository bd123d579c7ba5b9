package meta

import (
	"os"
	"strings"
	"unicode"
)

const envPrefix = "${env."

// expandEnvExpr replaces every ${env.KEY} in value with the KEY environment
// variable ("" when unset).
func expandEnvExpr(value string) string {
	return expandWith(value, os.Getenv)
}

// expandWith expands ${env.KEY} expressions using lookup. A prefix without a
// closing brace is kept literally; a key with characters other than letters,
// digits or '_' leaves the prefix literal and scanning resumes after it.
func expandWith(value string, lookup func(string) string) string {
	var b strings.Builder
	for {
		idx := strings.Index(value, envPrefix)
		if idx < 0 {
			b.WriteString(value)
			return b.String()
		}
		b.WriteString(value[:idx])
		rest := value[idx+len(envPrefix):]
		end := strings.IndexByte(rest, '}')
		if end < 0 {
			b.WriteString(value[idx:])
			return b.String()
		}
		key := rest[:end]
		if !isEnvKey(key) {
			b.WriteString(envPrefix)
			value = rest
			continue
		}
		b.WriteString(lookup(key))
		value = rest[end+1:]
	}
}

func isEnvKey(key string) bool {
	for _, r := range key {
		if !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			return false
		}
	}
	return true
}
