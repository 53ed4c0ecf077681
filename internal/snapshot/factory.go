package snapshot

import (
	"fmt"
	"time"

	"github.com/lovenest/storefront/pkg/db"
	"github.com/lovenest/storefront/pkg/enums"
	"github.com/lovenest/storefront/pkg/redis"
)

// Deps carries the infrastructure a backend kind may need.
type Deps struct {
	Redis *redis.Client
	DB    *db.Client
	Dir   string
	TTL   time.Duration
}

// New constructs the backend selected by kind.
func New(kind enums.SnapshotBackend, deps Deps) (Backend, error) {
	switch kind {
	case enums.SnapshotBackendMemory:
		return NewMemory(), nil
	case enums.SnapshotBackendFile:
		return NewFile(deps.Dir, deps.TTL)
	case enums.SnapshotBackendRedis:
		return NewRedis(deps.Redis, deps.TTL)
	case enums.SnapshotBackendDB:
		return NewSQL(deps.DB, deps.TTL)
	default:
		return nil, fmt.Errorf("unknown snapshot backend: %s", kind)
	}
}
