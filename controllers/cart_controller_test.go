package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"market-api/models"
)

func doRequest(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestAddToCartHandler(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(3)
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", productID), "")
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if item.ProductID != productID || item.Quantity != 1 {
		t.Errorf("unexpected cart item: %+v", item)
	}
	if item.Product == nil || item.Product.Stock != 2 {
		t.Errorf("expected joined product with stock 2, got %+v", item.Product)
	}
}

func TestAddToCartHandler_ProductNotFound(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doRequest(t, router, http.MethodPost, "/cart/99", "")
	if w.Code != 404 {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestAddToCartHandler_OutOfStock(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(0)
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", productID), "")
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestAddToCartHandler_InvalidID(t *testing.T) {
	router := newTestRouter(newFakeStore())

	w := doRequest(t, router, http.MethodPost, "/cart/abc", "")
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSetCartQuantityHandler(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(5)
	router := newTestRouter(store)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", productID), "")

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/cart/%d", productID), `{"quantity": 4}`)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var item models.CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &item); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if item.Quantity != 4 {
		t.Errorf("expected quantity 4, got %d", item.Quantity)
	}
}

func TestSetCartQuantityHandler_NegativeQuantity(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(5)
	router := newTestRouter(store)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", productID), "")

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/cart/%d", productID), `{"quantity": -1}`)
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSetCartQuantityHandler_MissingBody(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(5)
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/cart/%d", productID), `{}`)
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSetCartQuantityHandler_NotInCart(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(5)
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/cart/%d", productID), `{"quantity": 2}`)
	if w.Code != 404 {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestSetCartQuantityHandler_InsufficientStock(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(2)
	router := newTestRouter(store)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", productID), "")

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/cart/%d", productID), `{"quantity": 10}`)
	if w.Code != 400 {
		t.Errorf("expected 400, got %d", w.Code)
	}
}

func TestSetCartQuantityHandler_ZeroRemoves(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(5)
	router := newTestRouter(store)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", productID), "")

	w := doRequest(t, router, http.MethodPut, fmt.Sprintf("/cart/%d", productID), `{"quantity": 0}`)
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.RemovedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "removed" || resp.ProductID != productID {
		t.Errorf("unexpected removal payload: %+v", resp)
	}
}

func TestRemoveFromCartHandler(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(5)
	router := newTestRouter(store)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", productID), "")

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/cart/%d", productID), "")
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp models.RemovedResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if resp.Status != "removed" || resp.ProductID != productID {
		t.Errorf("unexpected removal payload: %+v", resp)
	}

	w = doRequest(t, router, http.MethodGet, "/cart/", "")
	var items []models.CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected empty cart, got %d items", len(items))
	}
}

func TestRemoveFromCartHandler_NotInCart(t *testing.T) {
	store := newFakeStore()
	productID := store.addProduct(5)
	router := newTestRouter(store)

	w := doRequest(t, router, http.MethodDelete, fmt.Sprintf("/cart/%d", productID), "")
	if w.Code != 404 {
		t.Errorf("expected 404, got %d", w.Code)
	}
}

func TestListCartHandler(t *testing.T) {
	store := newFakeStore()
	first := store.addProduct(5)
	second := store.addProduct(5)
	router := newTestRouter(store)

	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", first), "")
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", second), "")
	doRequest(t, router, http.MethodPost, fmt.Sprintf("/cart/%d", second), "")

	w := doRequest(t, router, http.MethodGet, "/cart/", "")
	if w.Code != 200 {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var items []models.CartItem
	if err := json.Unmarshal(w.Body.Bytes(), &items); err != nil {
		t.Fatalf("invalid response body: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 cart items, got %d", len(items))
	}
	for _, item := range items {
		if item.Product == nil {
			t.Errorf("cart item %d missing joined product", item.ID)
		}
	}
}
