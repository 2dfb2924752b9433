package cart

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

// Observer receives the fresh snapshot after every mutation of a cart.
type Observer func(token string, snap Snapshot)

// Service exposes per-visitor cart operations keyed by cart token.
type Service interface {
	Add(ctx context.Context, token string, product models.Product, qty int) (Snapshot, error)
	Remove(ctx context.Context, token string, productID uint) (Snapshot, error)
	SetQuantity(ctx context.Context, token string, productID uint, qty int) (Snapshot, error)
	Clear(ctx context.Context, token string) error
	Snapshot(ctx context.Context, token string) (Snapshot, error)
	Subscribe(fn Observer) (unsubscribe func())
}

type service struct {
	mu      sync.Mutex
	carts   map[string][]Item
	loaded  map[string]bool
	subs    map[int]Observer
	nextSub int
	storage Storage
	logg    *logger.Logger
}

// NewService builds the cart store backed by the provided storage.
func NewService(storage Storage, logg *logger.Logger) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("cart storage required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{
		carts:   make(map[string][]Item),
		loaded:  make(map[string]bool),
		subs:    make(map[int]Observer),
		storage: storage,
		logg:    logg,
	}, nil
}

// Add appends the product or increments an existing line. A non-positive
// quantity is treated as one.
func (s *service) Add(ctx context.Context, token string, product models.Product, qty int) (Snapshot, error) {
	if token == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}
	if product.ID == 0 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if qty < 1 {
		qty = 1
	}

	s.mu.Lock()
	s.ensureLoadedLocked(ctx, token)

	items := s.carts[token]
	found := false
	for i := range items {
		if items[i].ProductID == product.ID {
			items[i].Quantity += qty
			found = true
			break
		}
	}
	if !found {
		items = append(items, Item{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.EffectivePrice(),
			Quantity:  qty,
			ImageURL:  product.ImageURL,
		})
	}
	s.carts[token] = items
	snap, observers := s.commitLocked(ctx, token)
	s.mu.Unlock()

	notify(observers, token, snap)
	return snap, nil
}

// Remove drops the line for the product; absent ids are a no-op.
func (s *service) Remove(ctx context.Context, token string, productID uint) (Snapshot, error) {
	if token == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	s.mu.Lock()
	s.ensureLoadedLocked(ctx, token)
	s.removeLocked(token, productID)
	snap, observers := s.commitLocked(ctx, token)
	s.mu.Unlock()

	notify(observers, token, snap)
	return snap, nil
}

// SetQuantity replaces the line quantity; zero or less removes the line.
func (s *service) SetQuantity(ctx context.Context, token string, productID uint, qty int) (Snapshot, error) {
	if token == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	s.mu.Lock()
	s.ensureLoadedLocked(ctx, token)

	if qty <= 0 {
		s.removeLocked(token, productID)
	} else {
		items := s.carts[token]
		for i := range items {
			if items[i].ProductID == productID {
				items[i].Quantity = qty
				break
			}
		}
		s.carts[token] = items
	}
	snap, observers := s.commitLocked(ctx, token)
	s.mu.Unlock()

	notify(observers, token, snap)
	return snap, nil
}

// Clear empties the cart and removes its persisted copy.
func (s *service) Clear(ctx context.Context, token string) error {
	if token == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	s.mu.Lock()
	delete(s.carts, token)
	s.loaded[token] = true
	if err := s.storage.Delete(ctx, token); err != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "failed to delete persisted cart: "+err.Error())
	}
	snap, observers := snapshotAndObserversLocked(s, token)
	s.mu.Unlock()

	notify(observers, token, snap)
	return nil
}

// Snapshot returns a copy of the cart with recomputed totals.
func (s *service) Snapshot(ctx context.Context, token string) (Snapshot, error) {
	if token == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "cart token is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.ensureLoadedLocked(ctx, token)
	return buildSnapshot(s.carts[token]), nil
}

// Subscribe registers an observer for all cart mutations.
func (s *service) Subscribe(fn Observer) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}

// ensureLoadedLocked rehydrates the cart from storage on first touch. A
// payload that fails to parse or validate yields an empty cart and drops
// the stale key.
func (s *service) ensureLoadedLocked(ctx context.Context, token string) {
	if s.loaded[token] {
		return
	}
	s.loaded[token] = true

	items, found, err := s.storage.Load(ctx, token)
	if err != nil {
		if stderrors.Is(err, ErrMalformedPayload) {
			s.discardStaleLocked(ctx, token, "persisted cart is malformed")
			return
		}
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "failed to load persisted cart: "+err.Error())
		return
	}
	if !found {
		return
	}
	if !validItems(items) {
		s.discardStaleLocked(ctx, token, "persisted cart failed validation")
		return
	}
	s.carts[token] = items
}

func (s *service) discardStaleLocked(ctx context.Context, token, reason string) {
	s.logg.Warn(s.logg.WithCartToken(ctx, token), reason+", resetting cart")
	if err := s.storage.Delete(ctx, token); err != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "failed to delete stale cart: "+err.Error())
	}
}

func (s *service) removeLocked(token string, productID uint) {
	items := s.carts[token]
	kept := items[:0]
	for _, item := range items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		delete(s.carts, token)
		return
	}
	s.carts[token] = kept
}

// commitLocked persists the current items best-effort and returns the fresh
// snapshot plus the observers to notify. An empty cart deletes the key
// instead of writing an empty list.
func (s *service) commitLocked(ctx context.Context, token string) (Snapshot, []Observer) {
	items := s.carts[token]
	var err error
	if len(items) == 0 {
		err = s.storage.Delete(ctx, token)
	} else {
		err = s.storage.Save(ctx, token, items)
	}
	if err != nil {
		s.logg.Warn(s.logg.WithCartToken(ctx, token), "failed to persist cart: "+err.Error())
	}
	return snapshotAndObserversLocked(s, token)
}

func snapshotAndObserversLocked(s *service, token string) (Snapshot, []Observer) {
	snap := buildSnapshot(s.carts[token])
	observers := make([]Observer, 0, len(s.subs))
	for _, fn := range s.subs {
		observers = append(observers, fn)
	}
	return snap, observers
}

func notify(observers []Observer, token string, snap Snapshot) {
	for _, fn := range observers {
		fn(token, snap)
	}
}
