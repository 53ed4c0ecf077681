package store

import (
	"context"
	"sync"
	"time"

	"github.com/lovenest/storefront/pkg/logger"
	"github.com/lovenest/storefront/pkg/metrics"
)

const defaultWriteTimeout = 2 * time.Second

type writeOp struct {
	seq   uint64
	items []CartItem
	clear bool
}

// snapshotWriter persists cart state off the mutating goroutine. Only the most
// recent pending op is kept, so bursts of mutations collapse into one write.
type snapshotWriter struct {
	port    SnapshotPort
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	ctx     context.Context
	timeout time.Duration

	mu      sync.Mutex
	seq     uint64
	pending *writeOp
	closed  bool

	// writeMu orders writes; ops older than written are skipped.
	writeMu sync.Mutex
	written uint64

	wake chan struct{}
	stop chan struct{}
	done chan struct{}
}

func newSnapshotWriter(ctx context.Context, port SnapshotPort, logg *logger.Logger, m *metrics.StoreMetrics, timeout time.Duration) *snapshotWriter {
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	w := &snapshotWriter{
		port:    port,
		logg:    logg,
		metrics: m,
		ctx:     ctx,
		timeout: timeout,
		wake:    make(chan struct{}, 1),
		stop:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go w.run()
	return w
}

// enqueue replaces any pending op with op. After close the op is written
// synchronously so late mutations are not lost.
func (w *snapshotWriter) enqueue(op writeOp) {
	w.mu.Lock()
	w.seq++
	op.seq = w.seq
	if w.closed {
		w.mu.Unlock()
		w.write(op)
		return
	}
	w.pending = &op
	w.mu.Unlock()

	select {
	case w.wake <- struct{}{}:
	default:
	}
}

func (w *snapshotWriter) run() {
	defer close(w.done)
	for {
		select {
		case <-w.wake:
			w.flush()
		case <-w.stop:
			w.flush()
			return
		}
	}
}

func (w *snapshotWriter) flush() {
	w.mu.Lock()
	op := w.pending
	w.pending = nil
	w.mu.Unlock()
	if op != nil {
		w.write(*op)
	}
}

func (w *snapshotWriter) write(op writeOp) {
	w.writeMu.Lock()
	defer w.writeMu.Unlock()
	if op.seq <= w.written {
		return
	}
	w.written = op.seq

	ctx, cancel := context.WithTimeout(context.WithoutCancel(w.ctx), w.timeout)
	defer cancel()

	if op.clear {
		if err := w.port.Clear(ctx); err != nil {
			w.metrics.IncSnapshotFailure("clear")
			w.logg.WarnErr(ctx, "cart snapshot clear failed", err)
		}
		return
	}
	if err := w.port.Save(ctx, op.items); err != nil {
		w.metrics.IncSnapshotFailure("save")
		w.logg.WarnErr(ctx, "cart snapshot save failed", err)
	}
}

// close flushes whatever is pending and stops the goroutine. Safe to call twice.
func (w *snapshotWriter) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done
		return
	}
	w.closed = true
	w.mu.Unlock()

	close(w.stop)
	<-w.done
}
