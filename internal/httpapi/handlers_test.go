package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/service"
	"github.com/Jamlick126/invoice-manager/internal/store"
	"github.com/Jamlick126/invoice-manager/internal/store/memory"
)

const testOwnerPassword = "owner-pass"

func newTestAPI(t *testing.T, withAuth bool) *API {
	t.Helper()

	state, err := store.Open(context.Background(), memory.New(), nil, store.Options{SeedProducts: true})
	if err != nil {
		t.Fatalf("open state: %v", err)
	}
	svc := service.New(state, service.Options{
		Now: func() time.Time { return time.Date(2026, time.October, 16, 9, 30, 0, 0, time.UTC) },
	})

	var auth *AuthManager
	if withAuth {
		auth, err = NewAuthManager(strings.Repeat("k", 32), time.Hour, testOwnerPassword)
		if err != nil {
			t.Fatalf("new auth manager: %v", err)
		}
	}
	return New(svc, auth, "*", nil)
}

func doJSON(t *testing.T, api *API, method string, path string, body string, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	api.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), dest); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}

func TestHandleHealth(t *testing.T) {
	api := newTestAPI(t, false)
	rec := doJSON(t, api, http.MethodGet, "/healthz", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var payload map[string]any
	decodeBody(t, rec, &payload)
	if payload["ok"] != true {
		t.Fatalf("expected ok=true, got %v", payload)
	}
}

func TestClientLifecycle(t *testing.T) {
	api := newTestAPI(t, false)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/clients", `{"name":"Ann","phone":"0700"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var client domain.Client
	decodeBody(t, rec, &client)
	if client.ID == "" || client.Name != "Ann" {
		t.Fatalf("unexpected client %+v", client)
	}

	rec = doJSON(t, api, http.MethodPost, "/api/v1/clients", `{"name":"  "}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank name, got %d", rec.Code)
	}

	rec = doJSON(t, api, http.MethodDelete, "/api/v1/clients/"+client.ID, "", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	rec = doJSON(t, api, http.MethodDelete, "/api/v1/clients/"+client.ID, "", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected repeated delete to be 204, got %d", rec.Code)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/clients", "", "")
	var list struct {
		Clients []domain.Client `json:"clients"`
	}
	decodeBody(t, rec, &list)
	if len(list.Clients) != 0 {
		t.Fatalf("expected no clients, got %+v", list.Clients)
	}
}

func TestInvoiceFlowUpdatesInventoryAndDashboard(t *testing.T) {
	api := newTestAPI(t, false)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/invoices", `{"clientName":"","items":[{"productId":"1","quantity":15}]}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var invoice domain.Invoice
	decodeBody(t, rec, &invoice)
	if invoice.ClientName != domain.WalkInCustomer || invoice.Total.String() != "87000" || invoice.Status != domain.InvoiceStatusPending {
		t.Fatalf("unexpected invoice %+v", invoice)
	}
	if invoice.Date != "Friday, 16 October 2026" {
		t.Fatalf("unexpected date %q", invoice.Date)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/inventory", "", "")
	var inventory struct {
		Items []domain.StockLevel `json:"items"`
	}
	decodeBody(t, rec, &inventory)
	if len(inventory.Items) != 1 || inventory.Items[0].Remaining != 85 {
		t.Fatalf("expected remaining 85, got %+v", inventory.Items)
	}

	rec = doJSON(t, api, http.MethodPatch, "/api/v1/invoices/"+invoice.ID+"/status", `{"status":"Paid"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/dashboard", "", "")
	var dash domain.Dashboard
	decodeBody(t, rec, &dash)
	if dash.TotalSales.String() != "87000" || dash.PaidAmount.String() != "87000" || !dash.PendingAmount.IsZero() {
		t.Fatalf("unexpected dashboard %+v", dash)
	}

	rec = doJSON(t, api, http.MethodPatch, "/api/v1/invoices/"+invoice.ID+"/status", `{"status":"Void"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown status, got %d", rec.Code)
	}
	rec = doJSON(t, api, http.MethodPatch, "/api/v1/invoices/missing/status", `{"status":"Paid"}`, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing invoice, got %d", rec.Code)
	}
}

func TestCreateInvoiceRejectsEmptyCart(t *testing.T) {
	api := newTestAPI(t, false)
	rec := doJSON(t, api, http.MethodPost, "/api/v1/invoices", `{"clientName":"Ann","items":[]}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	var payload map[string]string
	decodeBody(t, rec, &payload)
	if payload["error"] != "cart is empty" {
		t.Fatalf("unexpected error %q", payload["error"])
	}
}

func TestPreviewDoesNotSaveInvoice(t *testing.T) {
	api := newTestAPI(t, false)
	rec := doJSON(t, api, http.MethodPost, "/api/v1/invoices/preview", `{"items":[{"productId":"1","quantity":2}]}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var preview domain.CartPreview
	decodeBody(t, rec, &preview)
	if preview.Total.String() != "11600" {
		t.Fatalf("expected total 11600, got %s", preview.Total)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/invoices", "", "")
	var list struct {
		Invoices []domain.Invoice `json:"invoices"`
	}
	decodeBody(t, rec, &list)
	if len(list.Invoices) != 0 {
		t.Fatalf("expected preview to leave invoices untouched, got %d", len(list.Invoices))
	}
}

func TestPurchasePaymentFlow(t *testing.T) {
	api := newTestAPI(t, false)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/purchases", `{"supplier":"Acme","totalAmount":1000,"description":"crates"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var purchase domain.PurchaseView
	decodeBody(t, rec, &purchase)

	path := "/api/v1/purchases/" + purchase.ID + "/payments"
	if rec = doJSON(t, api, http.MethodPost, path, `{"amount":600}`, ""); rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if rec = doJSON(t, api, http.MethodPost, path, `{"amount":500}`, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected overpayment to be 400, got %d", rec.Code)
	}
	if rec = doJSON(t, api, http.MethodPost, "/api/v1/purchases/missing/payments", `{"amount":5}`, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing purchase, got %d", rec.Code)
	}

	rec = doJSON(t, api, http.MethodGet, "/api/v1/dashboard", "", "")
	var dash domain.Dashboard
	decodeBody(t, rec, &dash)
	if dash.AccountsPayable != 400 {
		t.Fatalf("expected payable 400, got %d", dash.AccountsPayable)
	}

	rec = doJSON(t, api, http.MethodPost, path, `{"amount":400}`, "")
	decodeBody(t, rec, &purchase)
	if purchase.Balance != 0 || purchase.Label != "Fully Paid" {
		t.Fatalf("unexpected settled purchase %+v", purchase)
	}
}

func TestRestockProduct(t *testing.T) {
	api := newTestAPI(t, false)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/products/1/restock", `{"units":25}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var product domain.Product
	decodeBody(t, rec, &product)
	if product.InitialStock != 125 {
		t.Fatalf("expected stock 125, got %d", product.InitialStock)
	}

	if rec = doJSON(t, api, http.MethodPost, "/api/v1/products/1/restock", `{"units":0}`, ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if rec = doJSON(t, api, http.MethodPost, "/api/v1/products/none/restock", `{"units":3}`, ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestReceiptEndpoint(t *testing.T) {
	api := newTestAPI(t, false)

	rec := doJSON(t, api, http.MethodPost, "/api/v1/invoices", `{"clientName":"Ann","items":[{"productId":"1","quantity":1}]}`, "")
	var invoice domain.Invoice
	decodeBody(t, rec, &invoice)

	rec = doJSON(t, api, http.MethodGet, "/api/v1/invoices/"+invoice.ID+"/receipt", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.HasPrefix(rec.Header().Get("Content-Type"), "text/html") {
		t.Fatalf("expected html content type, got %q", rec.Header().Get("Content-Type"))
	}
	if !strings.Contains(rec.Body.String(), "OFFICIAL RECEIPT") {
		t.Fatalf("expected receipt body")
	}

	if rec = doJSON(t, api, http.MethodGet, "/api/v1/invoices/"+invoice.ID+"/receipt?format=pdf", "", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected pdf without renderer to be 400, got %d", rec.Code)
	}
	if rec = doJSON(t, api, http.MethodGet, "/api/v1/invoices/missing/receipt", "", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestProfileUpdateIsPartial(t *testing.T) {
	api := newTestAPI(t, false)

	doJSON(t, api, http.MethodPatch, "/api/v1/profile", `{"businessName":"Duka","phone":"0711"}`, "")
	rec := doJSON(t, api, http.MethodPatch, "/api/v1/profile", `{"phone":"0722"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var profile domain.Profile
	decodeBody(t, rec, &profile)
	if profile.BusinessName != "Duka" || profile.Phone != "0722" {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestUnknownFieldsRejected(t *testing.T) {
	api := newTestAPI(t, false)
	rec := doJSON(t, api, http.MethodPost, "/api/v1/clients", `{"name":"Ann","role":"admin"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
