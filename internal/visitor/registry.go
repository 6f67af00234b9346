package visitor

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/fjod/go_cart/storefront/internal/cart"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/fjod/go_cart/storefront/internal/session"
	"github.com/fjod/go_cart/storefront/internal/snapshot"
	"golang.org/x/sync/singleflight"
)

const loadTimeout = 3 * time.Second

var (
	ErrInvalidVisitorID = errors.New("visitor id must not be empty")
	ErrRegistryClosed   = errors.New("visitor registry is closed")
)

// Visitor bundles the stores of one browsing session. They are built once and shared by reference.
type Visitor struct {
	ID      string
	Cart    *cart.Store
	UI      *session.UI
	Landing *session.Landing

	lastSeen atomic.Int64
}

func (v *Visitor) touch(now time.Time) {
	v.lastSeen.Store(now.UnixNano())
}

func (v *Visitor) idleSince(now time.Time) time.Duration {
	return now.Sub(time.Unix(0, v.lastSeen.Load()))
}

func (v *Visitor) close() {
	v.Landing.Close()
	v.UI.Close()
}

type Settings struct {
	Namespace       string
	ToastTTL        time.Duration
	EntryDelay      time.Duration
	IdleTTL         time.Duration
	CleanupInterval time.Duration
	MaxQuantity     int
}

// Registry owns every live visitor. Idle visitors are evicted; their cart survives in the snapshot
// store while UI state starts over on the next visit.
type Registry struct {
	mu       sync.RWMutex
	visitors map[string]*Visitor
	closed   bool
	sfg      singleflight.Group // one rehydration per visitor

	snapshots snapshot.Store
	publisher events.Publisher
	log       *slog.Logger
	settings  Settings
	now       func() time.Time

	stopCleanup chan struct{}
	wg          sync.WaitGroup
}

func NewRegistry(snapshots snapshot.Store, publisher events.Publisher, log *slog.Logger, settings Settings) *Registry {
	if settings.Namespace == "" {
		settings.Namespace = "kolor-cart"
	}
	if settings.ToastTTL == 0 {
		settings.ToastTTL = session.DefaultToastTTL
	}
	if settings.EntryDelay == 0 {
		settings.EntryDelay = session.DefaultEntryDelay
	}
	if settings.IdleTTL == 0 {
		settings.IdleTTL = 30 * time.Minute
	}
	if settings.CleanupInterval == 0 {
		settings.CleanupInterval = time.Minute
	}
	if settings.MaxQuantity == 0 {
		settings.MaxQuantity = cart.DefaultMaxQuantity
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if log == nil {
		log = slog.Default()
	}

	r := &Registry{
		visitors:    make(map[string]*Visitor),
		snapshots:   snapshots,
		publisher:   publisher,
		log:         log,
		settings:    settings,
		now:         time.Now,
		stopCleanup: make(chan struct{}),
	}

	r.wg.Add(1)
	go r.cleanupLoop()

	return r
}

// Get returns the visitor for id, creating and rehydrating it on first use.
func (r *Registry) Get(ctx context.Context, id string) (*Visitor, error) {
	if id == "" {
		return nil, ErrInvalidVisitorID
	}
	if r.isClosed() {
		return nil, ErrRegistryClosed
	}

	if v := r.lookup(id); v != nil {
		return v, nil
	}

	res, err, _ := r.sfg.Do(id, func() (interface{}, error) {
		if v := r.lookup(id); v != nil {
			return v, nil
		}
		if r.isClosed() {
			return nil, ErrRegistryClosed
		}

		v := r.build(ctx, id)
		r.mu.Lock()
		defer r.mu.Unlock()
		if r.closed {
			v.close()
			return nil, ErrRegistryClosed
		}
		r.visitors[id] = v
		return v, nil
	})
	if err != nil {
		return nil, err
	}

	return res.(*Visitor), nil
}

func (r *Registry) lookup(id string) *Visitor {
	r.mu.RLock()
	v, ok := r.visitors[id]
	r.mu.RUnlock()
	if !ok {
		return nil
	}
	v.touch(r.now())
	return v
}

func (r *Registry) isClosed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.closed
}

func (r *Registry) build(ctx context.Context, id string) *Visitor {
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
	defer cancel()

	log := r.log.With("visitor_id", id)
	ui := session.NewUI(session.WithToastTTL(r.settings.ToastTTL))
	v := &Visitor{
		ID: id,
		Cart: cart.NewStore(loadCtx, r.snapshots, snapshot.Key(r.settings.Namespace, id),
			cart.WithPublisher(r.publisher),
			cart.WithLogger(log),
			cart.WithVisitorID(id),
			cart.WithMaxQuantity(r.settings.MaxQuantity),
		),
		UI:      ui,
		Landing: session.NewLanding(ui, r.settings.EntryDelay),
	}
	v.touch(r.now())

	log.DebugContext(ctx, "visitor created", "items", len(v.Cart.Items()))
	return v
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.visitors)
}

func (r *Registry) cleanupLoop() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.settings.CleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.evictIdle()
		case <-r.stopCleanup:
			return
		}
	}
}

func (r *Registry) evictIdle() {
	now := r.now()

	r.mu.Lock()
	var evicted []*Visitor
	for id, v := range r.visitors {
		if v.idleSince(now) > r.settings.IdleTTL {
			delete(r.visitors, id)
			evicted = append(evicted, v)
		}
	}
	r.mu.Unlock()

	for _, v := range evicted {
		v.close()
	}
	if len(evicted) > 0 {
		r.log.Debug("evicted idle visitors", "count", len(evicted))
	}
}

// Close stops the cleanup loop and cancels every pending visitor timer.
// Later calls to Get fail with ErrRegistryClosed.
func (r *Registry) Close() error {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return nil
	}
	r.closed = true
	r.mu.Unlock()

	close(r.stopCleanup)
	r.wg.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()
	for id, v := range r.visitors {
		v.close()
		delete(r.visitors, id)
	}
	return nil
}
