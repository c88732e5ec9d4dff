// internal/util/ids.go
// ID helpers for request tracing and translation jobs

package util

import (
	"github.com/google/uuid"
)

func NewID() string {
	return uuid.New().String()
}

// ValidID reports whether s is a canonical UUID as produced by NewID.
func ValidID(s string) bool {
	id, err := uuid.Parse(s)
	return err == nil && id.String() == s
}
