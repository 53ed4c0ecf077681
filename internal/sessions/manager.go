package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/lovenest/storefront/internal/snapshot"
	"github.com/lovenest/storefront/internal/store"
	"github.com/lovenest/storefront/pkg/logger"
	"github.com/lovenest/storefront/pkg/metrics"
	"go.uber.org/multierr"
)

const sweepJob = "session-sweep"

// Options configures a Manager.
type Options struct {
	Backend      snapshot.Backend
	Logger       *logger.Logger
	StoreMetrics *metrics.StoreMetrics
	JobMetrics   *metrics.JobMetrics
	// IdleTTL is how long an untouched session stays in memory. Zero disables sweeping.
	IdleTTL      time.Duration
	WriteTimeout time.Duration
	Now          func() time.Time
}

// entry is published in the map before its store exists; ready closes once
// store is set. Hydration happens outside Manager.mu.
type entry struct {
	ready    chan struct{}
	store    *store.Store
	lastSeen time.Time
}

func (e *entry) loaded() bool {
	select {
	case <-e.ready:
		return true
	default:
		return false
	}
}

// Manager owns one Store per browsing session. Evicting a session drops its
// wishlist; the cart lives on in the snapshot backend and is restored the next
// time the session shows up.
type Manager struct {
	backend      snapshot.Backend
	logg         *logger.Logger
	storeMetrics *metrics.StoreMetrics
	jobMetrics   *metrics.JobMetrics
	idleTTL      time.Duration
	writeTimeout time.Duration
	now          func() time.Time

	mu       sync.Mutex
	sessions map[string]*entry
	closed   bool
}

func NewManager(opts Options) *Manager {
	if opts.Backend == nil {
		opts.Backend = snapshot.NewMemory()
	}
	if opts.Logger == nil {
		opts.Logger = logger.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Manager{
		backend:      opts.Backend,
		logg:         opts.Logger,
		storeMetrics: opts.StoreMetrics,
		jobMetrics:   opts.JobMetrics,
		idleTTL:      opts.IdleTTL,
		writeTimeout: opts.WriteTimeout,
		now:          opts.Now,
		sessions:     make(map[string]*entry),
	}
}

// Get returns the session's store, creating and hydrating it on first use.
// Concurrent first requests for one session share a single load; other
// sessions are never held up by it. After Close the returned store is not
// tracked and writes its snapshot synchronously.
func (m *Manager) Get(ctx context.Context, sessionID string) *store.Store {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		s := m.newStore(ctx, sessionID)
		_ = s.Close()
		return s
	}
	e, ok := m.sessions[sessionID]
	if !ok {
		e = &entry{ready: make(chan struct{})}
		m.sessions[sessionID] = e
		m.storeMetrics.SetActiveSessions(len(m.sessions))
	}
	e.lastSeen = m.now()
	m.mu.Unlock()

	if ok {
		<-e.ready
		return e.store
	}

	e.store = m.newStore(ctx, sessionID)
	close(e.ready)

	logCtx := m.logg.WithSessionID(ctx, sessionID)
	if e.store.LoadTimedOut() {
		// Retry the load on the next request instead of serving an empty cart
		// for the rest of the session.
		m.forget(sessionID, e)
		m.logg.WarnErr(logCtx, "session store not kept after snapshot load timed out", e.store.LoadErr())
		return e.store
	}
	m.logg.Debug(logCtx, "session store created")
	return e.store
}

func (m *Manager) newStore(ctx context.Context, sessionID string) *store.Store {
	return store.New(ctx, store.Options{
		SessionID:    sessionID,
		Snapshot:     snapshot.NewSlot(m.backend, sessionID),
		Logger:       m.logg,
		Metrics:      m.storeMetrics,
		WriteTimeout: m.writeTimeout,
	})
}

func (m *Manager) forget(sessionID string, e *entry) {
	m.mu.Lock()
	if m.sessions[sessionID] == e {
		delete(m.sessions, sessionID)
		m.storeMetrics.SetActiveSessions(len(m.sessions))
	}
	m.mu.Unlock()
	_ = e.store.Close()
}

// Len reports how many sessions are held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Sweep closes and forgets sessions idle for longer than the TTL and returns
// how many were evicted.
func (m *Manager) Sweep(now time.Time) (int, error) {
	if m.idleTTL <= 0 {
		return 0, nil
	}

	m.mu.Lock()
	var idle []*store.Store
	for id, e := range m.sessions {
		if e.loaded() && now.Sub(e.lastSeen) > m.idleTTL {
			idle = append(idle, e.store)
			delete(m.sessions, id)
		}
	}
	m.storeMetrics.SetActiveSessions(len(m.sessions))
	m.mu.Unlock()

	var err error
	for _, s := range idle {
		err = multierr.Append(err, s.Close())
	}
	return len(idle), err
}

// Run sweeps every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 || m.idleTTL <= 0 {
		<-ctx.Done()
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			started := time.Now()
			evicted, err := m.Sweep(m.now())
			m.jobMetrics.Observe(sweepJob, time.Since(started), err)
			if err != nil {
				m.logg.WarnErr(ctx, "session sweep failed", err)
				continue
			}
			if evicted > 0 {
				m.logg.Info(m.logg.WithField(ctx, "evicted", evicted), "idle sessions evicted")
			}
		}
	}
}

// Close flushes every session's pending snapshot and forgets all sessions.
func (m *Manager) Close() error {
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return nil
	}
	m.closed = true
	all := make([]*entry, 0, len(m.sessions))
	for id, e := range m.sessions {
		all = append(all, e)
		delete(m.sessions, id)
	}
	m.storeMetrics.SetActiveSessions(0)
	m.mu.Unlock()

	var err error
	for _, e := range all {
		<-e.ready
		err = multierr.Append(err, e.store.Close())
	}
	return err
}

// Ping reports whether the snapshot backend is reachable.
func (m *Manager) Ping(ctx context.Context) error {
	return snapshot.Ping(ctx, m.backend)
}
