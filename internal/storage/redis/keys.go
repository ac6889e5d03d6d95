package redis

import "fmt"

// saveKey returns the Redis key for a backend key
func saveKey(prefix, key string) string {
	return fmt.Sprintf("%s:save:%s", prefix, key)
}

// saveKeyPattern matches every key owned by this backend
func saveKeyPattern(prefix string) string {
	return fmt.Sprintf("%s:save:*", prefix)
}
