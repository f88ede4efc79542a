package pkg

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// FormatID renders a sequential id such as USR000042.
func FormatID(prefix string, n int64) string {
	return fmt.Sprintf("%s%06d", prefix, n)
}

// HasPrefix reports whether id looks like a sequential id of the given prefix.
func HasPrefix(id, prefix string) bool {
	return len(id) > len(prefix) && strings.HasPrefix(id, prefix)
}

// NewRowID returns a random id for join and child rows.
func NewRowID() string {
	return uuid.NewString()
}
