package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lovenest/storefront/pkg/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CartSnapshot is one row of the cart_snapshots table.
type CartSnapshot struct {
	SessionID string    `gorm:"column:session_id;primaryKey;size:64"`
	Payload   string    `gorm:"column:payload;type:text;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;not null"`
}

func (CartSnapshot) TableName() string {
	return "cart_snapshots"
}

// SQL stores snapshots in the cart_snapshots table, upserting by session id.
type SQL struct {
	client *db.Client
	ttl    time.Duration
	now    func() time.Time
}

var _ Backend = (*SQL)(nil)

// NewSQL wraps client. Rows older than ttl read as absent; ttl <= 0 keeps
// them forever.
func NewSQL(client *db.Client, ttl time.Duration) (*SQL, error) {
	if client == nil {
		return nil, fmt.Errorf("db client is required")
	}
	return &SQL{client: client, ttl: ttl, now: time.Now}, nil
}

func (s *SQL) Read(ctx context.Context, key string) ([]byte, error) {
	var row CartSnapshot
	err := s.client.DB().WithContext(ctx).
		Where("session_id = ?", key).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("select cart snapshot: %w", err)
	}
	if s.ttl > 0 && s.now().Sub(row.UpdatedAt) > s.ttl {
		return nil, ErrNotFound
	}
	return []byte(row.Payload), nil
}

func (s *SQL) Write(ctx context.Context, key string, data []byte) error {
	row := CartSnapshot{
		SessionID: key,
		Payload:   string(data),
		UpdatedAt: s.now().UTC(),
	}
	err := s.client.DB().WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("upsert cart snapshot: %w", err)
	}
	return nil
}

func (s *SQL) Remove(ctx context.Context, key string) error {
	err := s.client.DB().WithContext(ctx).
		Where("session_id = ?", key).
		Delete(&CartSnapshot{}).Error
	if err != nil {
		return fmt.Errorf("delete cart snapshot: %w", err)
	}
	return nil
}

// PurgeExpired deletes rows not updated within the TTL and returns how many
// were removed. It is a no-op without a TTL.
func (s *SQL) PurgeExpired(ctx context.Context) (int64, error) {
	if s.ttl <= 0 {
		return 0, nil
	}
	res := s.client.DB().WithContext(ctx).
		Where("updated_at < ?", s.now().UTC().Add(-s.ttl)).
		Delete(&CartSnapshot{})
	if res.Error != nil {
		return 0, fmt.Errorf("purge cart snapshots: %w", res.Error)
	}
	return res.RowsAffected, nil
}

func (s *SQL) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}
