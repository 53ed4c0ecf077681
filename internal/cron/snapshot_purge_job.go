package cron

import (
	"context"
	"errors"

	"github.com/lovenest/storefront/pkg/logger"
)

const snapshotPurgeJobName = "snapshot-purge"

// Purger is implemented by snapshot backends that can drop expired carts in
// bulk instead of waiting for them to be read.
type Purger interface {
	PurgeExpired(ctx context.Context) (int64, error)
}

// SnapshotPurgeJob deletes cart snapshots past their TTL.
type SnapshotPurgeJob struct {
	purger Purger
	logg   *logger.Logger
}

func NewSnapshotPurgeJob(purger Purger, logg *logger.Logger) (*SnapshotPurgeJob, error) {
	if purger == nil {
		return nil, errors.New("purger required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &SnapshotPurgeJob{purger: purger, logg: logg}, nil
}

func (j *SnapshotPurgeJob) Name() string {
	return snapshotPurgeJobName
}

func (j *SnapshotPurgeJob) Run(ctx context.Context) error {
	removed, err := j.purger.PurgeExpired(ctx)
	if err != nil {
		return err
	}
	if removed > 0 {
		j.logg.Info(j.logg.WithField(ctx, "removed", removed), "expired cart snapshots purged")
	}
	return nil
}
