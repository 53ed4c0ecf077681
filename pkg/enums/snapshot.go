package enums

import (
	"fmt"
	"strings"
)

// SnapshotBackend selects where cart snapshots are cached between visits.
type SnapshotBackend string

const (
	SnapshotBackendMemory SnapshotBackend = "memory"
	SnapshotBackendFile   SnapshotBackend = "file"
	SnapshotBackendRedis  SnapshotBackend = "redis"
	SnapshotBackendDB     SnapshotBackend = "db"
)

var validSnapshotBackends = []SnapshotBackend{
	SnapshotBackendMemory,
	SnapshotBackendFile,
	SnapshotBackendRedis,
	SnapshotBackendDB,
}

func (b SnapshotBackend) String() string {
	return string(b)
}

// ParseSnapshotBackend converts raw input into a SnapshotBackend. "mem" is
// accepted as an alias for memory.
func ParseSnapshotBackend(value string) (SnapshotBackend, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "mem" {
		return SnapshotBackendMemory, nil
	}
	for _, candidate := range validSnapshotBackends {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid snapshot backend %q", value)
}
