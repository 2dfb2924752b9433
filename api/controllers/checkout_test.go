package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	checkoutsvc "github.com/marocvoyages/marocvoyages-backend/internal/checkout"
	"github.com/marocvoyages/marocvoyages-backend/pkg/db/models"
	pkgerrors "github.com/marocvoyages/marocvoyages-backend/pkg/errors"
)

type stubCheckoutService struct {
	began     []string
	shipping  map[string]checkoutsvc.ShippingDetails
	submitErr error
	order     *models.Order
}

func (s *stubCheckoutService) Begin(token string) (checkoutsvc.Flow, error) {
	s.began = append(s.began, token)
	return checkoutsvc.Flow{Stage: checkoutsvc.StageShipping}, nil
}

func (s *stubCheckoutService) SetShipping(token string, details checkoutsvc.ShippingDetails) (checkoutsvc.Flow, error) {
	if s.shipping == nil {
		s.shipping = map[string]checkoutsvc.ShippingDetails{}
	}
	s.shipping[token] = details
	return checkoutsvc.Flow{Stage: checkoutsvc.StagePayment, Shipping: details}, nil
}

func (s *stubCheckoutService) Flow(token string) (checkoutsvc.Flow, error) {
	return checkoutsvc.Flow{Stage: checkoutsvc.StageShipping}, nil
}

func (s *stubCheckoutService) Submit(ctx context.Context, token string) (*models.Order, error) {
	if s.submitErr != nil {
		return nil, s.submitErr
	}
	return s.order, nil
}

const validCheckoutBody = `{"customerName":"Amina","email":"amina@example.com","phone":"+212600000000","address":"12 Rue des Orangers","city":"Marrakech"}`

func TestSubmitOrderRunsFullFlow(t *testing.T) {
	svc := &stubCheckoutService{order: &models.Order{ID: 9}}

	handler := SubmitOrder(svc, nil)
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validCheckoutBody)), "visitor-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201 got %d: %s", resp.Code, resp.Body.String())
	}
	if len(svc.began) != 1 || svc.began[0] != "visitor-1" {
		t.Fatalf("expected begin for visitor-1, got %v", svc.began)
	}
	if svc.shipping["visitor-1"].CustomerName != "Amina" {
		t.Fatalf("shipping details not captured: %+v", svc.shipping)
	}
}

func TestSubmitOrderEmptyCart(t *testing.T) {
	svc := &stubCheckoutService{submitErr: pkgerrors.New(pkgerrors.CodePrecondition, "cart is empty")}

	handler := SubmitOrder(svc, nil)
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(validCheckoutBody)), "visitor-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", resp.Code)
	}
}

func TestSubmitOrderValidatesShipping(t *testing.T) {
	svc := &stubCheckoutService{order: &models.Order{ID: 9}}

	handler := SubmitOrder(svc, nil)
	req := withCartToken(httptest.NewRequest(http.MethodPost, "/api/orders", strings.NewReader(`{"customerName":"Amina"}`)), "visitor-1")
	resp := httptest.NewRecorder()
	handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if len(svc.began) != 0 {
		t.Fatal("begin must not run for invalid payloads")
	}
}
