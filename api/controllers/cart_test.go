package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/marocvoyages/marocvoyages-backend/api/middleware"
	cartsvc "github.com/marocvoyages/marocvoyages-backend/internal/cart"
	"github.com/marocvoyages/marocvoyages-backend/internal/catalog"
	productsvc "github.com/marocvoyages/marocvoyages-backend/internal/products"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

type stubCartService struct {
	added     []uint
	removed   []uint
	setQty    map[uint]int
	cleared   bool
	lastToken string
}

func (s *stubCartService) Add(_ context.Context, token string, product models.Product, qty int) (cartsvc.Snapshot, error) {
	s.lastToken = token
	s.added = append(s.added, product.ID)
	return cartsvc.Snapshot{ItemCount: qty}, nil
}

func (s *stubCartService) Remove(_ context.Context, token string, productID uint) (cartsvc.Snapshot, error) {
	s.lastToken = token
	s.removed = append(s.removed, productID)
	return cartsvc.Snapshot{}, nil
}

func (s *stubCartService) SetQuantity(_ context.Context, token string, productID uint, qty int) (cartsvc.Snapshot, error) {
	s.lastToken = token
	if s.setQty == nil {
		s.setQty = map[uint]int{}
	}
	s.setQty[productID] = qty
	return cartsvc.Snapshot{}, nil
}

func (s *stubCartService) Clear(_ context.Context, token string) error {
	s.lastToken = token
	s.cleared = true
	return nil
}

func (s *stubCartService) Snapshot(_ context.Context, token string) (cartsvc.Snapshot, error) {
	s.lastToken = token
	return cartsvc.Snapshot{}, nil
}

func (s *stubCartService) Subscribe(cartsvc.Observer) func() { return func() {} }

type stubProductService struct {
	product *models.Product
	err     error
}

func (s *stubProductService) List(context.Context, catalog.ProductCriteria) ([]models.Product, error) {
	return nil, nil
}

func (s *stubProductService) Get(context.Context, uint) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Create(context.Context, productsvc.ProductInput) (*models.Product, error) {
	return nil, nil
}

func (s *stubProductService) Update(context.Context, uint, productsvc.ProductInput) (*models.Product, error) {
	return nil, nil
}

func (s *stubProductService) Delete(context.Context, uint) error { return nil }

func withCartToken(req *http.Request, token string) *http.Request {
	return req.WithContext(middleware.WithCartToken(req.Context(), token))
}

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestAddCartItemResolvesProduct(t *testing.T) {
	carts := &stubCartService{}
	products := &stubProductService{product: &models.Product{ID: 4, Name: "Argan Oil", Price: 120}}

	handler := AddCartItem(carts, products, nil)
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"productId":4,"quantity":2}`)), "visitor-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(carts.added) != 1 || carts.added[0] != 4 {
		t.Fatalf("expected product 4 added, got %v", carts.added)
	}
	if carts.lastToken != "visitor-1" {
		t.Fatalf("expected token visitor-1 got %q", carts.lastToken)
	}
}

func TestAddCartItemUnknownProduct(t *testing.T) {
	carts := &stubCartService{}
	products := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}

	handler := AddCartItem(carts, products, nil)
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"productId":99}`)), "visitor-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if len(carts.added) != 0 {
		t.Fatal("nothing should be added for unknown products")
	}
}

func TestAddCartItemRejectsUnknownFields(t *testing.T) {
	carts := &stubCartService{}
	products := &stubProductService{product: &models.Product{ID: 4}}

	handler := AddCartItem(carts, products, nil)
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/cart/items", strings.NewReader(`{"productId":4,"price":1}`)), "visitor-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}

func TestUpdateCartItemSetsQuantity(t *testing.T) {
	carts := &stubCartService{}

	handler := UpdateCartItem(carts, nil)
	req := httptest.NewRequest(http.MethodPatch, "/api/cart/items/4", strings.NewReader(`{"quantity":3}`))
	req = withURLParam(withCartToken(req, "visitor-1"), "productId", "4")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", resp.Code, resp.Body.String())
	}
	if carts.setQty[4] != 3 {
		t.Fatalf("expected quantity 3 got %d", carts.setQty[4])
	}
}

func TestRemoveCartItem(t *testing.T) {
	carts := &stubCartService{}

	handler := RemoveCartItem(carts, nil)
	req := httptest.NewRequest(http.MethodDelete, "/api/cart/items/4", nil)
	req = withURLParam(withCartToken(req, "visitor-1"), "productId", "4")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if len(carts.removed) != 1 || carts.removed[0] != 4 {
		t.Fatalf("expected product 4 removed, got %v", carts.removed)
	}
}

func TestClearCart(t *testing.T) {
	carts := &stubCartService{}

	handler := ClearCart(carts, nil)
	req := withCartToken(httptest.NewRequest(http.MethodDelete, "/api/cart", nil), "visitor-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if !carts.cleared {
		t.Fatal("expected clear to be called")
	}
}
