package cart

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/fjod/go_cart/storefront/internal/domain"
	"github.com/fjod/go_cart/storefront/internal/events"
	"github.com/fjod/go_cart/storefront/internal/snapshot"
)

const persistTimeout = 2 * time.Second

// State is a read-only view of the store handed to subscribers.
type State struct {
	Items   []domain.LineItem `json:"items"`
	IsOpen  bool              `json:"is_open"`
	Summary Summary           `json:"summary"`
}

// Store wraps Cart with locking, snapshot persistence, activity events and subscriptions.
// Every content mutation is applied to the in-memory cart first and then persisted.
type Store struct {
	mu        sync.Mutex
	cart      *Cart
	snapshots snapshot.Store
	key       string
	visitorID string
	publisher events.Publisher
	log       *slog.Logger

	subMu  sync.Mutex
	subs   map[int]func(State)
	nextID int
}

type Option func(*Store)

func WithPublisher(p events.Publisher) Option {
	return func(s *Store) { s.publisher = p }
}

func WithLogger(l *slog.Logger) Option {
	return func(s *Store) { s.log = l }
}

func WithVisitorID(id string) Option {
	return func(s *Store) { s.visitorID = id }
}

// WithMaxQuantity caps the quantity of each line item.
func WithMaxQuantity(limit int) Option {
	return func(s *Store) { s.cart.SetMaxQuantity(limit) }
}

// WithIDGenerator replaces the line item id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Store) { s.cart.newID = fn }
}

// NewStore creates a store and rehydrates its items from the snapshot under key.
// A missing or unreadable snapshot yields an empty cart. The cart always starts closed.
func NewStore(ctx context.Context, snapshots snapshot.Store, key string, opts ...Option) *Store {
	s := &Store{
		cart:      New(nil),
		snapshots: snapshots,
		key:       key,
		publisher: events.NopPublisher{},
		log:       slog.Default(),
		subs:      make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.rehydrate(ctx)
	return s
}

func (s *Store) rehydrate(ctx context.Context) {
	data, err := s.snapshots.Load(ctx, s.key)
	if errors.Is(err, snapshot.ErrNotFound) {
		return
	}
	if err != nil {
		s.log.WarnContext(ctx, "snapshot load failed, starting with empty cart", "key", s.key, "error", err)
		return
	}

	items, err := DecodeSnapshot(data)
	if err != nil {
		s.log.WarnContext(ctx, "snapshot decode failed, starting with empty cart", "key", s.key, "error", err)
		return
	}
	s.cart.items = items
}

// AddItem adds quantity of a product configuration and opens the cart.
// Size and color availability are the caller's concern.
func (s *Store) AddItem(ctx context.Context, product domain.Product, size domain.Size, color domain.ColorVariant, quantity int) (domain.LineItem, error) {
	s.mu.Lock()
	item, err := s.cart.AddItem(product, size, color, quantity)
	if err != nil {
		s.mu.Unlock()
		return domain.LineItem{}, err
	}
	s.persist(ctx)
	event := s.event(events.ItemAdded, item)
	event.Quantity = quantity
	state := s.state()
	s.mu.Unlock()

	s.publish(ctx, event)
	s.notify(state)
	return item, nil
}

// RemoveItem deletes a line item. Unknown ids are a no-op.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	item, found := s.cart.Item(id)
	s.cart.RemoveItem(id)
	s.persist(ctx)
	event := s.event(events.ItemRemoved, item)
	state := s.state()
	s.mu.Unlock()

	if found {
		s.publish(ctx, event)
	}
	s.notify(state)
}

// UpdateQuantity sets an absolute quantity. Zero or less removes the line item; unknown ids are a no-op.
// Raising a line item past the cap fails with ErrQuantityLimit.
func (s *Store) UpdateQuantity(ctx context.Context, id string, quantity int) error {
	s.mu.Lock()
	if err := s.cart.CheckQuantity(id, quantity); err != nil {
		s.mu.Unlock()
		return err
	}
	item, found := s.cart.Item(id)
	s.cart.UpdateQuantity(id, quantity)
	s.persist(ctx)
	typ := events.QuantityUpdated
	if quantity <= 0 {
		typ = events.ItemRemoved
	}
	item.Quantity = max(quantity, 0)
	event := s.event(typ, item)
	state := s.state()
	s.mu.Unlock()

	if found {
		s.publish(ctx, event)
	}
	s.notify(state)
	return nil
}

// ClearCart empties the cart. The open flag is left as is.
func (s *Store) ClearCart(ctx context.Context) {
	s.mu.Lock()
	s.cart.Clear()
	s.persist(ctx)
	event := s.event(events.CartCleared, domain.LineItem{})
	state := s.state()
	s.mu.Unlock()

	s.publish(ctx, event)
	s.notify(state)
}

// Wipe empties the cart and deletes its snapshot instead of persisting an empty one.
func (s *Store) Wipe(ctx context.Context) {
	s.mu.Lock()
	s.cart.Clear()
	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	if err := s.snapshots.Delete(saveCtx, s.key); err != nil {
		s.log.ErrorContext(ctx, "snapshot delete failed", "key", s.key, "error", err)
	}
	cancel()
	state := s.state()
	s.mu.Unlock()

	s.notify(state)
}

func (s *Store) ToggleCart() { s.visibility((*Cart).Toggle) }
func (s *Store) OpenCart()   { s.visibility((*Cart).Open) }
func (s *Store) CloseCart()  { s.visibility((*Cart).Close) }

// visibility changes only the open flag, which is never persisted.
func (s *Store) visibility(fn func(*Cart)) {
	s.mu.Lock()
	fn(s.cart)
	state := s.state()
	s.mu.Unlock()

	s.notify(state)
}

func (s *Store) IsOpen() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.IsOpen()
}

func (s *Store) Items() []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Items()
}

func (s *Store) GetTotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.Total()
}

func (s *Store) GetItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cart.ItemCount()
}

func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state()
}

// Subscribe registers fn to be called with the new state after every change.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func(State)) func() {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		delete(s.subs, id)
	}
}

func (s *Store) state() State {
	return State{
		Items:   s.cart.Items(),
		IsOpen:  s.cart.IsOpen(),
		Summary: s.cart.Summary(),
	}
}

// persist writes the current items. Failures are logged and swallowed; memory stays authoritative.
// Called with s.mu held so snapshot writes land in mutation order.
func (s *Store) persist(ctx context.Context) {
	data, err := EncodeSnapshot(s.cart.items)
	if err != nil {
		s.log.ErrorContext(ctx, "snapshot encode failed", "key", s.key, "error", err)
		return
	}

	saveCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), persistTimeout)
	defer cancel()
	if err := s.snapshots.Save(saveCtx, s.key, data); err != nil {
		s.log.ErrorContext(ctx, "snapshot save failed", "key", s.key, "error", err)
	}
}

func (s *Store) event(typ events.Type, item domain.LineItem) events.Event {
	return events.Event{
		Type:       typ,
		VisitorID:  s.visitorID,
		ItemID:     item.ID,
		ProductID:  item.Product.ID,
		Size:       string(item.Size),
		Color:      item.Color.Name,
		Quantity:   item.Quantity,
		ItemCount:  s.cart.ItemCount(),
		Subtotal:   s.cart.Total(),
		OccurredAt: time.Now(),
	}
}

func (s *Store) publish(ctx context.Context, event events.Event) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.WarnContext(ctx, "cart event publish failed", "type", event.Type, "error", err)
	}
}

func (s *Store) notify(state State) {
	s.subMu.Lock()
	subs := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()

	for _, fn := range subs {
		fn(state)
	}
}
