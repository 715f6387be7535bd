package domain

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

const (
	InvoiceStatusPending = "Pending"
	InvoiceStatusPaid    = "Paid"
)

const (
	PurchaseStatusUnpaid = "Unpaid"
	PurchaseStatusPaid   = "Paid"
)

// WalkInCustomer is the client name used when an invoice is saved without one.
const WalkInCustomer = "Walk-in Customer"

// LowStockThreshold is the remaining-stock level below which a tracked product alerts.
const LowStockThreshold = 10

type Client struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Phone *string `json:"phone"`
}

type ClientCreateRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

type Product struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Price        decimal.Decimal `json:"price"`
	InitialStock Count           `json:"initialStock"`
}

// Tracked reports whether stock is counted for the product at all.
func (p Product) Tracked() bool {
	return p.InitialStock > 0
}

type ProductCreateRequest struct {
	Name         string      `json:"name"`
	Price        json.Number `json:"price"`
	InitialStock json.Number `json:"initialStock"`
}

type RestockRequest struct {
	Units json.Number `json:"units"`
}

// LineItem is a frozen copy of a product taken when it was put on an invoice.
type LineItem struct {
	LineID    string          `json:"lineId,omitempty"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  Count           `json:"quantity"`
}

// Subtotal is price times quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type Invoice struct {
	ID         string          `json:"id"`
	ClientName string          `json:"clientName"`
	Items      []LineItem      `json:"items"`
	Total      decimal.Decimal `json:"total"`
	Date       string          `json:"date"`
	Status     string          `json:"status,omitempty"`
}

// EffectiveStatus treats invoices saved without a status as pending.
func (inv Invoice) EffectiveStatus() string {
	if inv.Status == "" {
		return InvoiceStatusPending
	}
	return inv.Status
}

type CartLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type InvoiceCreateRequest struct {
	ClientName string            `json:"clientName"`
	Items      []CartLineRequest `json:"items"`
}

type InvoiceStatusRequest struct {
	Status string `json:"status"`
}

type CartPreview struct {
	Items []LineItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

type Payment struct {
	ID     string `json:"id"`
	Amount int64  `json:"amount"`
	Date   string `json:"date"`
}

type Purchase struct {
	ID          string `json:"id"`
	Supplier    string `json:"supplier"`
	TotalAmount int64  `json:"totalAmount"`
	// LegacyAmount is the owed total written by versions before installments existed.
	LegacyAmount int64     `json:"amount,omitempty"`
	Description  string    `json:"description"`
	Status       string    `json:"status"`
	Date         string    `json:"date"`
	Payments     []Payment `json:"payments"`
}

// Owed is the total the supplier is owed, falling back to the legacy field.
func (p Purchase) Owed() int64 {
	if p.TotalAmount != 0 {
		return p.TotalAmount
	}
	return p.LegacyAmount
}

type PurchaseCreateRequest struct {
	Supplier    string      `json:"supplier"`
	TotalAmount json.Number `json:"totalAmount"`
	Description string      `json:"description"`
}

type PaymentCreateRequest struct {
	Amount json.Number `json:"amount"`
}

type PurchaseView struct {
	Purchase
	Paid    int64  `json:"paid"`
	Balance int64  `json:"balance"`
	Label   string `json:"label"`
}

type Profile struct {
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone"`
	LogoURI      string `json:"logoUri"`
}

type ProfileUpdateRequest struct {
	BusinessName *string `json:"businessName,omitempty"`
	Phone        *string `json:"phone,omitempty"`
	LogoURI      *string `json:"logoUri,omitempty"`
}

type StockLevel struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Initial   int    `json:"initial"`
	Remaining int    `json:"remaining"`
	Tracked   bool   `json:"tracked"`
	LowStock  bool   `json:"lowStock"`
}

type SalesSummary struct {
	TotalSales    decimal.Decimal `json:"totalSales"`
	PaidAmount    decimal.Decimal `json:"paidAmount"`
	PendingAmount decimal.Decimal `json:"pendingAmount"`
}

type Dashboard struct {
	TotalSales      decimal.Decimal `json:"totalSales"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	PendingAmount   decimal.Decimal `json:"pendingAmount"`
	AccountsPayable int64           `json:"accountsPayable"`
	LowStockItems   []StockLevel    `json:"lowStockItems"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	ExpiresAt   string `json:"expiresAt"`
}
