package snapshot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lovenest/storefront/pkg/config"
	"github.com/lovenest/storefront/pkg/db"
	"github.com/lovenest/storefront/pkg/enums"
	pkgredis "github.com/lovenest/storefront/pkg/redis"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func runBackendContract(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Read(ctx, "session-a")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, b.Write(ctx, "session-a", []byte(`[1]`)))
	require.NoError(t, b.Write(ctx, "session-a", []byte(`[2]`)))
	require.NoError(t, b.Write(ctx, "session-b", []byte(`[3]`)))

	got, err := b.Read(ctx, "session-a")
	require.NoError(t, err)
	assert.Equal(t, `[2]`, string(got))

	require.NoError(t, b.Remove(ctx, "session-a"))
	require.NoError(t, b.Remove(ctx, "session-a"))
	_, err = b.Read(ctx, "session-a")
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = b.Read(ctx, "session-b")
	require.NoError(t, err)
	assert.Equal(t, `[3]`, string(got))

	assert.NoError(t, Ping(ctx, b))
}

func TestMemoryBackend(t *testing.T) {
	m := NewMemory()
	runBackendContract(t, m)
	assert.Equal(t, 1, m.Len())
}

func TestMemoryBackendCopiesPayloads(t *testing.T) {
	m := NewMemory()
	payload := []byte(`[1]`)
	require.NoError(t, m.Write(context.Background(), "k", payload))
	payload[1] = '9'

	got, err := m.Read(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(got))
}

func TestMemoryBackendHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.Error(t, NewMemory().Write(ctx, "k", nil))
}

func TestFileBackend(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir, 0)
	require.NoError(t, err)
	runBackendContract(t, f)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "session-b.json", entries[0].Name())
}

func TestFileBackendRejectsPathKeys(t *testing.T) {
	f, err := NewFile(t.TempDir(), 0)
	require.NoError(t, err)
	for _, key := range []string{"../escape", "a/b", "", ".hidden"} {
		assert.Error(t, f.Write(context.Background(), key, []byte(`[]`)), key)
	}
}

func TestFileBackendExpiresOldSnapshots(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir, time.Hour)
	require.NoError(t, err)
	require.NoError(t, f.Write(context.Background(), "old", []byte(`[]`)))

	stale := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "old.json"), stale, stale))

	_, err = f.Read(context.Background(), "old")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileBackendPurgeExpired(t *testing.T) {
	dir := t.TempDir()
	f, err := NewFile(dir, time.Hour)
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, f.Write(ctx, "old", []byte(`[]`)))
	require.NoError(t, f.Write(ctx, "fresh", []byte(`[]`)))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "old.123.tmp"), []byte(`[`), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte(`keep`), 0o644))

	stale := time.Now().Add(-2 * time.Hour)
	for _, name := range []string{"old.json", "old.123.tmp", "notes.txt"} {
		require.NoError(t, os.Chtimes(filepath.Join(dir, name), stale, stale))
	}

	removed, err := f.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = os.Stat(filepath.Join(dir, "old.123.tmp"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(dir, "notes.txt"))
	assert.NoError(t, err)
	data, err := f.Read(ctx, "fresh")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(data))

	noTTL, err := NewFile(dir, 0)
	require.NoError(t, err)
	removed, err = noTTL.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.Zero(t, removed)
}

func TestNewFileRequiresDir(t *testing.T) {
	_, err := NewFile("", 0)
	assert.Error(t, err)
}

func newSQLiteClient(t *testing.T) *db.Client {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, conn.AutoMigrate(&CartSnapshot{}))
	return db.Wrap(conn, config.DBDriverSQLite)
}

func TestSQLBackend(t *testing.T) {
	backend, err := NewSQL(newSQLiteClient(t), 0)
	require.NoError(t, err)
	runBackendContract(t, backend)
}

func TestSQLBackendExpiryAndPurge(t *testing.T) {
	backend, err := NewSQL(newSQLiteClient(t), time.Hour)
	require.NoError(t, err)
	ctx := context.Background()

	now := time.Date(2026, 2, 14, 12, 0, 0, 0, time.UTC)
	backend.now = func() time.Time { return now.Add(-3 * time.Hour) }
	require.NoError(t, backend.Write(ctx, "stale", []byte(`[]`)))
	backend.now = func() time.Time { return now }
	require.NoError(t, backend.Write(ctx, "fresh", []byte(`[]`)))

	_, err = backend.Read(ctx, "stale")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = backend.Read(ctx, "fresh")
	assert.NoError(t, err)

	purged, err := backend.PurgeExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, purged)
}

func TestRedisBackend(t *testing.T) {
	fake := newFakeRedis()
	backend, err := NewRedis(pkgredis.NewWithCmdable(fake), 30*time.Minute)
	require.NoError(t, err)
	runBackendContract(t, backend)

	assert.Contains(t, fake.data, "ln:cart_snapshot:session-b")
	assert.Equal(t, 30*time.Minute, fake.ttls["ln:cart_snapshot:session-b"])
}

func TestFactory(t *testing.T) {
	b, err := New(enums.SnapshotBackendMemory, Deps{})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	b, err = New(enums.SnapshotBackendFile, Deps{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &File{}, b)

	_, err = New(enums.SnapshotBackendRedis, Deps{})
	assert.Error(t, err)
	_, err = New(enums.SnapshotBackendDB, Deps{})
	assert.Error(t, err)
	_, err = New(enums.SnapshotBackend("s3"), Deps{})
	assert.Error(t, err)
}

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Ping(context.Context) *goredis.StatusCmd {
	return goredis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) *goredis.StatusCmd {
	if b, ok := value.([]byte); ok {
		f.data[key] = string(b)
	} else {
		f.data[key] = fmt.Sprint(value)
	}
	f.ttls[key] = ttl
	return goredis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) SetNX(ctx context.Context, key string, value any, ttl time.Duration) *goredis.BoolCmd {
	if _, ok := f.data[key]; ok {
		return goredis.NewBoolResult(false, nil)
	}
	f.Set(ctx, key, value, ttl)
	return goredis.NewBoolResult(true, nil)
}

func (f *fakeRedis) Get(_ context.Context, key string) *goredis.StringCmd {
	v, ok := f.data[key]
	if !ok {
		return goredis.NewStringResult("", goredis.Nil)
	}
	return goredis.NewStringResult(v, nil)
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) *goredis.IntCmd {
	for _, k := range keys {
		delete(f.data, k)
	}
	return goredis.NewIntResult(int64(len(keys)), nil)
}
