package cart

import (
	"context"
	"io"
	"math/rand"
	"testing"

	"github.com/rs/zerolog"

	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
	"github.com/marocvoyages/marocvoyages-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "cart-test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func newTestService(t *testing.T, storage Storage) Service {
	t.Helper()
	svc, err := NewService(storage, testLogger())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func product(id uint, price int) models.Product {
	return models.Product{ID: id, Name: "product", Price: price, Category: "pottery", InStock: true}
}

type stubStorage struct {
	data      map[string][]Item
	malformed map[string]bool
	saveErr   error
	deletes   []string
}

func newStubStorage() *stubStorage {
	return &stubStorage{data: make(map[string][]Item), malformed: make(map[string]bool)}
}

func (s *stubStorage) Load(ctx context.Context, token string) ([]Item, bool, error) {
	if s.malformed[token] {
		return nil, true, ErrMalformedPayload
	}
	items, ok := s.data[token]
	return items, ok, nil
}

func (s *stubStorage) Save(ctx context.Context, token string, items []Item) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	copied := make([]Item, len(items))
	copy(copied, items)
	s.data[token] = copied
	return nil
}

func (s *stubStorage) Delete(ctx context.Context, token string) error {
	s.deletes = append(s.deletes, token)
	delete(s.data, token)
	delete(s.malformed, token)
	return nil
}

func TestAddIncrementsExistingLine(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStorage())
	ctx := context.Background()

	snap, err := svc.Add(ctx, "tok", product(1, 100), 1)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 1 {
		t.Fatalf("unexpected snapshot after first add: %+v", snap)
	}

	snap, err = svc.Add(ctx, "tok", product(1, 100), 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("expected a single line, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", snap.Items[0].Quantity)
	}
	if snap.ItemCount != 3 || snap.Total != 300 {
		t.Fatalf("unexpected totals: count=%d total=%d", snap.ItemCount, snap.Total)
	}
}

func TestAddDefaultsQuantityToOne(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStorage())
	snap, err := svc.Add(context.Background(), "tok", product(1, 50), 0)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if snap.ItemCount != 1 {
		t.Fatalf("expected quantity 1, got %d", snap.ItemCount)
	}
}

func TestAddUsesDiscountPrice(t *testing.T) {
	t.Parallel()

	discount := 80
	p := product(1, 100)
	p.DiscountPrice = &discount

	svc := newTestService(t, newStubStorage())
	snap, err := svc.Add(context.Background(), "tok", p, 2)
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if snap.Total != 160 {
		t.Fatalf("expected discounted total 160, got %d", snap.Total)
	}
}

func TestSetQuantityRemovesOnNonPositive(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStorage())
	ctx := context.Background()
	if _, err := svc.Add(ctx, "tok", product(1, 100), 2); err != nil {
		t.Fatalf("add: %v", err)
	}

	snap, err := svc.SetQuantity(ctx, "tok", 1, 0)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(snap.Items) != 0 || snap.ItemCount != 0 || snap.Total != 0 {
		t.Fatalf("expected empty cart, got %+v", snap)
	}

	snap, err = svc.SetQuantity(ctx, "tok", 1, -3)
	if err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("negative quantity should keep cart empty, got %+v", snap)
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStorage())
	ctx := context.Background()
	if _, err := svc.Add(ctx, "tok", product(1, 100), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	snap, err := svc.Remove(ctx, "tok", 99)
	if err != nil {
		t.Fatalf("remove: %v", err)
	}
	if len(snap.Items) != 1 {
		t.Fatalf("expected untouched cart, got %+v", snap)
	}
}

func TestClearDeletesPersistedKey(t *testing.T) {
	t.Parallel()

	storage := newStubStorage()
	svc := newTestService(t, storage)
	ctx := context.Background()
	if _, err := svc.Add(ctx, "tok", product(1, 100), 1); err != nil {
		t.Fatalf("add: %v", err)
	}

	if err := svc.Clear(ctx, "tok"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, ok := storage.data["tok"]; ok {
		t.Fatalf("expected persisted cart removed")
	}
	if len(storage.deletes) == 0 {
		t.Fatalf("expected delete issued to storage")
	}

	snap, err := svc.Snapshot(ctx, "tok")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("expected empty cart after clear, got %+v", snap)
	}
}

func TestRehydratesPersistedCart(t *testing.T) {
	t.Parallel()

	storage := newStubStorage()
	storage.data["tok"] = []Item{{ProductID: 4, Name: "rug", Price: 250, Quantity: 2}}

	svc := newTestService(t, storage)
	snap, err := svc.Snapshot(context.Background(), "tok")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.ItemCount != 2 || snap.Total != 500 {
		t.Fatalf("unexpected rehydrated totals: %+v", snap)
	}
}

func TestMalformedPayloadResetsCart(t *testing.T) {
	t.Parallel()

	storage := newStubStorage()
	storage.malformed["tok"] = true

	svc := newTestService(t, storage)
	snap, err := svc.Snapshot(context.Background(), "tok")
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.Items) != 0 {
		t.Fatalf("expected empty cart, got %+v", snap)
	}
	if len(storage.deletes) == 0 {
		t.Fatalf("expected stale key deleted")
	}
}

func TestInvalidPersistedItemsResetCart(t *testing.T) {
	t.Parallel()

	cases := map[string][]Item{
		"zero product id":       {{ProductID: 0, Price: 10, Quantity: 1}},
		"non-positive quantity": {{ProductID: 1, Price: 10, Quantity: 0}},
		"negative price":        {{ProductID: 1, Price: -5, Quantity: 1}},
	}
	for name, items := range cases {
		items := items
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			storage := newStubStorage()
			storage.data["tok"] = items
			svc := newTestService(t, storage)

			snap, err := svc.Snapshot(context.Background(), "tok")
			if err != nil {
				t.Fatalf("snapshot: %v", err)
			}
			if len(snap.Items) != 0 {
				t.Fatalf("expected reset cart, got %+v", snap)
			}
			if len(storage.deletes) == 0 {
				t.Fatalf("expected stale key deleted")
			}
		})
	}
}

func TestPersistenceFailureDegradesToMemory(t *testing.T) {
	t.Parallel()

	storage := newStubStorage()
	storage.saveErr = context.DeadlineExceeded

	svc := newTestService(t, storage)
	snap, err := svc.Add(context.Background(), "tok", product(1, 100), 1)
	if err != nil {
		t.Fatalf("add should not surface persistence failure: %v", err)
	}
	if snap.ItemCount != 1 {
		t.Fatalf("expected in-memory cart intact, got %+v", snap)
	}
}

func TestSubscribeNotifiesOnMutations(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStorage())
	ctx := context.Background()

	var got []Snapshot
	unsubscribe := svc.Subscribe(func(token string, snap Snapshot) {
		if token == "tok" {
			got = append(got, snap)
		}
	})

	if _, err := svc.Add(ctx, "tok", product(1, 100), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if _, err := svc.SetQuantity(ctx, "tok", 1, 5); err != nil {
		t.Fatalf("set quantity: %v", err)
	}
	if err := svc.Clear(ctx, "tok"); err != nil {
		t.Fatalf("clear: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("expected 3 notifications, got %d", len(got))
	}
	if got[1].ItemCount != 5 {
		t.Fatalf("expected mid snapshot count 5, got %d", got[1].ItemCount)
	}
	if got[2].ItemCount != 0 {
		t.Fatalf("expected final snapshot empty, got %+v", got[2])
	}

	unsubscribe()
	if _, err := svc.Add(ctx, "tok", product(1, 100), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected no notification after unsubscribe, got %d", len(got))
	}
}

func TestEmptyTokenRejected(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStorage())
	_, err := svc.Add(context.Background(), "", product(1, 100), 1)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRandomizedMutationsKeepTotalsConsistent(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newStubStorage())
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))

	expected := map[uint]int{}
	prices := map[uint]int{1: 100, 2: 250, 3: 40}

	for i := 0; i < 500; i++ {
		id := uint(rng.Intn(3) + 1)
		switch rng.Intn(4) {
		case 0:
			qty := rng.Intn(3) + 1
			if _, err := svc.Add(ctx, "tok", product(id, prices[id]), qty); err != nil {
				t.Fatalf("add: %v", err)
			}
			expected[id] += qty
		case 1:
			if _, err := svc.Remove(ctx, "tok", id); err != nil {
				t.Fatalf("remove: %v", err)
			}
			delete(expected, id)
		case 2:
			qty := rng.Intn(5) - 1
			if _, err := svc.SetQuantity(ctx, "tok", id, qty); err != nil {
				t.Fatalf("set quantity: %v", err)
			}
			if _, present := expected[id]; present {
				if qty <= 0 {
					delete(expected, id)
				} else {
					expected[id] = qty
				}
			} else if qty <= 0 {
				delete(expected, id)
			}
		case 3:
			snap, err := svc.Snapshot(ctx, "tok")
			if err != nil {
				t.Fatalf("snapshot: %v", err)
			}
			wantCount, wantTotal := 0, 0
			for pid, qty := range expected {
				wantCount += qty
				wantTotal += qty * prices[pid]
			}
			if snap.ItemCount != wantCount || snap.Total != wantTotal {
				t.Fatalf("iteration %d: snapshot count=%d total=%d, want count=%d total=%d",
					i, snap.ItemCount, snap.Total, wantCount, wantTotal)
			}
		}
	}
}
