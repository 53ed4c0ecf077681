package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/lovenest/storefront/internal/catalog"
	"github.com/lovenest/storefront/pkg/logger"
	"github.com/lovenest/storefront/pkg/metrics"
	"github.com/shopspring/decimal"
)

// Options wires a Store to its collaborators. Only Snapshot is required.
type Options struct {
	SessionID    string
	Snapshot     SnapshotPort
	Logger       *logger.Logger
	Metrics      *metrics.StoreMetrics
	WriteTimeout time.Duration
	// LoadTimeout bounds the initial snapshot read. Zero uses WriteTimeout.
	LoadTimeout time.Duration
}

// Store holds one shopper's cart and wishlist. Mutations never fail: a cart
// change is applied in memory, observers are told, and a snapshot write is
// queued in the background. All methods are safe for concurrent use.
type Store struct {
	logg    *logger.Logger
	metrics *metrics.StoreMetrics
	ctx     context.Context
	writer  *snapshotWriter
	loadErr error

	mu        sync.RWMutex
	cart      []CartItem
	wishlist  []catalog.Product
	listeners map[int]Listener
	nextID    int

	// Each commit takes a ticket under mu; listeners are called in ticket
	// order so observers see states in mutation order.
	ticket     uint64
	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	delivered  uint64

	closeOnce sync.Once
}

// New builds a Store and hydrates its cart from the snapshot port. A missing
// snapshot yields an empty cart; an unreadable one is logged and also yields
// an empty cart. The load is not tied to ctx cancellation. When the load runs
// out of time the store keeps working in memory but never writes a snapshot,
// so the stored cart it could not read is not overwritten.
func New(ctx context.Context, opts Options) *Store {
	logg := opts.Logger
	if logg == nil {
		logg = logger.Nop()
	}
	baseCtx := logg.WithSessionID(context.WithoutCancel(ctx), opts.SessionID)

	s := &Store{
		logg:      logg,
		metrics:   opts.Metrics,
		ctx:       baseCtx,
		cart:      []CartItem{},
		wishlist:  []catalog.Product{},
		listeners: make(map[int]Listener),
	}
	s.notifyCond = sync.NewCond(&s.notifyMu)

	if opts.Snapshot == nil {
		opts.Snapshot = discardPort{}
	}
	s.cart, s.loadErr = s.hydrate(baseCtx, opts)
	port := opts.Snapshot
	if s.LoadTimedOut() {
		port = discardPort{}
	}
	s.writer = newSnapshotWriter(baseCtx, port, logg, opts.Metrics, opts.WriteTimeout)
	return s
}

// LoadErr reports why the initial snapshot read failed, or nil.
func (s *Store) LoadErr() error {
	return s.loadErr
}

// LoadTimedOut reports whether the initial snapshot read was cut short.
func (s *Store) LoadTimedOut() bool {
	return errors.Is(s.loadErr, context.DeadlineExceeded) || errors.Is(s.loadErr, context.Canceled)
}

func (s *Store) hydrate(ctx context.Context, opts Options) ([]CartItem, error) {
	timeout := opts.LoadTimeout
	if timeout <= 0 {
		timeout = opts.WriteTimeout
	}
	if timeout <= 0 {
		timeout = defaultWriteTimeout
	}
	loadCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	items, err := opts.Snapshot.Load(loadCtx)
	if err != nil {
		s.metrics.IncSnapshotFailure("load")
		s.logg.WarnErr(s.ctx, "cart snapshot unreadable, starting with an empty cart", err)
		return []CartItem{}, err
	}
	return Sanitize(items), nil
}

// AddToCart adds quantity units of product. Quantities below 1 are treated
// as 1. An existing line for the same id has its quantity increased.
func (s *Store) AddToCart(product catalog.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	s.mu.Lock()
	if idx := s.cartIndex(product.ID); idx >= 0 {
		s.cart[idx].Quantity += quantity
	} else {
		s.cart = append(s.cart, CartItem{Product: product, Quantity: quantity})
	}
	s.commitCart("add_to_cart")
}

// RemoveFromCart drops the line for id. Unknown ids are a no-op.
func (s *Store) RemoveFromCart(id string) {
	s.mu.Lock()
	idx := s.cartIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.cart = append(s.cart[:idx:idx], s.cart[idx+1:]...)
	s.commitCart("remove_from_cart")
}

// UpdateQuantity sets the quantity for id; below 1 removes the line. Unknown
// ids are a no-op.
func (s *Store) UpdateQuantity(id string, quantity int) {
	if quantity < 1 {
		s.RemoveFromCart(id)
		return
	}
	s.mu.Lock()
	idx := s.cartIndex(id)
	if idx < 0 || s.cart[idx].Quantity == quantity {
		s.mu.Unlock()
		return
	}
	s.cart[idx].Quantity = quantity
	s.commitCart("update_quantity")
}

// ClearCart empties the cart and deletes the stored snapshot.
func (s *Store) ClearCart() {
	s.mu.Lock()
	s.cart = []CartItem{}
	s.writer.enqueue(writeOp{clear: true})
	s.commit("clear_cart")
}

// TakeCart atomically returns the cart lines and clears the cart, as
// ClearCart does. Checkout uses it so the order holds exactly what was removed.
func (s *Store) TakeCart() []CartItem {
	s.mu.Lock()
	taken := s.cart
	s.cart = []CartItem{}
	s.writer.enqueue(writeOp{clear: true})
	s.commit("clear_cart")
	return taken
}

// AddToWishlist inserts product if its id is not already present.
func (s *Store) AddToWishlist(product catalog.Product) {
	s.mu.Lock()
	if s.wishlistIndex(product.ID) >= 0 {
		s.mu.Unlock()
		return
	}
	s.wishlist = append(s.wishlist, product)
	s.commit("add_to_wishlist")
}

// RemoveFromWishlist drops id from the wishlist. Unknown ids are a no-op.
func (s *Store) RemoveFromWishlist(id string) {
	s.mu.Lock()
	idx := s.wishlistIndex(id)
	if idx < 0 {
		s.mu.Unlock()
		return
	}
	s.wishlist = append(s.wishlist[:idx:idx], s.wishlist[idx+1:]...)
	s.commit("remove_from_wishlist")
}

// IsInWishlist reports wishlist membership.
func (s *Store) IsInWishlist(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.wishlistIndex(id) >= 0
}

// Cart returns a copy of the cart lines in insertion order.
func (s *Store) Cart() []CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneCart(s.cart)
}

// Wishlist returns a copy of the wishlist in insertion order.
func (s *Store) Wishlist() []catalog.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneProducts(s.wishlist)
}

// CartTotal is recomputed from the cart on every call.
func (s *Store) CartTotal() decimal.Decimal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CartTotal(s.cart)
}

// CartCount is recomputed from the cart on every call.
func (s *Store) CartCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return CartCount(s.cart)
}

// State returns a consistent copy of cart, wishlist and derived totals.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

// Subscribe registers fn for post-mutation notifications and returns a func
// that removes it.
func (s *Store) Subscribe(fn Listener) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

// Close flushes the pending snapshot write and stops the background writer.
// The store stays usable; later cart changes are written synchronously.
func (s *Store) Close() error {
	s.closeOnce.Do(s.writer.close)
	return nil
}

// commitCart queues a snapshot of the cart, then finishes like commit.
// Callers hold s.mu.
func (s *Store) commitCart(op string) {
	s.writer.enqueue(writeOp{items: cloneCart(s.cart)})
	s.commit(op)
}

// commit releases s.mu and notifies listeners. Callers hold s.mu.
func (s *Store) commit(op string) {
	state := s.stateLocked()
	listeners := make([]Listener, 0, len(s.listeners))
	for id := 0; id < s.nextID; id++ {
		if fn, ok := s.listeners[id]; ok {
			listeners = append(listeners, fn)
		}
	}
	s.ticket++
	ticket := s.ticket
	s.mu.Unlock()

	s.metrics.IncMutation(op)

	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	for s.delivered != ticket-1 {
		s.notifyCond.Wait()
	}
	for _, fn := range listeners {
		fn(state)
	}
	s.delivered = ticket
	s.notifyCond.Broadcast()
}

func (s *Store) stateLocked() State {
	return State{
		Cart:      cloneCart(s.cart),
		Wishlist:  cloneProducts(s.wishlist),
		CartTotal: CartTotal(s.cart),
		CartCount: CartCount(s.cart),
	}
}

func (s *Store) cartIndex(id string) int {
	for i, item := range s.cart {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) wishlistIndex(id string) int {
	for i, p := range s.wishlist {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func cloneCart(items []CartItem) []CartItem {
	out := make([]CartItem, len(items))
	copy(out, items)
	return out
}

func cloneProducts(products []catalog.Product) []catalog.Product {
	out := make([]catalog.Product, len(products))
	copy(out, products)
	return out
}

type discardPort struct{}

func (discardPort) Load(context.Context) ([]CartItem, error) { return nil, nil }
func (discardPort) Save(context.Context, []CartItem) error { return nil }
func (discardPort) Clear(context.Context) error { return nil }
