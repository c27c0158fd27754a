package id

import (
	"crypto/rand"
	"encoding/hex"
	"regexp"
)

// NewID32 returns exactly 32 hex characters (no separators/prefixes).
func NewID32() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// reRequestID accepts our own ids and the usual upstream formats (UUIDs,
// trace ids) while keeping log lines free of arbitrary client text.
var reRequestID = regexp.MustCompile(`^[A-Za-z0-9_-]{8,64}$`)

// Valid reports whether a client-supplied request id can be kept as-is.
func Valid(s string) bool { return reRequestID.MatchString(s) }
