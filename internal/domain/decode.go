package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Count is a whole number read leniently: numbers, numeric strings and
// fractional values are accepted, anything else (null, "", "abc") reads as 0.
type Count int

func (c *Count) UnmarshalJSON(data []byte) error {
	*c = 0
	raw := unquote(data)
	if raw == "" {
		return nil
	}
	if n, err := strconv.Atoi(raw); err == nil {
		*c = Count(n)
		return nil
	}
	if f, err := strconv.ParseFloat(raw, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		*c = Count(int(f))
	}
	return nil
}

// ParseAmount reads a price or total stored either as a JSON number or a
// string. Unparseable values read as zero.
func ParseAmount(data json.RawMessage) decimal.Decimal {
	raw := unquote(data)
	if raw == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func unquote(data []byte) string {
	raw := strings.TrimSpace(string(data))
	if raw == "null" {
		return ""
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	return raw
}

func (p *Product) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID           string          `json:"id"`
		Name         string          `json:"name"`
		Price        json.RawMessage `json:"price"`
		InitialStock Count           `json:"initialStock"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Product{
		ID:           aux.ID,
		Name:         aux.Name,
		Price:        ParseAmount(aux.Price),
		InitialStock: aux.InitialStock,
	}
	return nil
}

// UnmarshalJSON also accepts the older line shape, where the whole product
// was copied into the line (product id under "id") and rows were keyed by "tempId".
func (l *LineItem) UnmarshalJSON(data []byte) error {
	var aux struct {
		LineID    string          `json:"lineId"`
		TempID    string          `json:"tempId"`
		ProductID string          `json:"productId"`
		LegacyID  string          `json:"id"`
		Name      string          `json:"name"`
		Price     json.RawMessage `json:"price"`
		Quantity  Count           `json:"quantity"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*l = LineItem{
		LineID:    defaultString(aux.LineID, aux.TempID),
		ProductID: defaultString(aux.ProductID, aux.LegacyID),
		Name:      aux.Name,
		Price:     ParseAmount(aux.Price),
		Quantity:  aux.Quantity,
	}
	return nil
}

func (inv *Invoice) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID         string          `json:"id"`
		ClientName string          `json:"clientName"`
		Items      []LineItem      `json:"items"`
		Total      json.RawMessage `json:"total"`
		Date       string          `json:"date"`
		Status     string          `json:"status"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*inv = Invoice{
		ID:         aux.ID,
		ClientName: aux.ClientName,
		Items:      aux.Items,
		Total:      ParseAmount(aux.Total),
		Date:       aux.Date,
		Status:     aux.Status,
	}
	return nil
}

func defaultString(value string, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

// WholeAmount reads a shilling amount stored either as a JSON number or a
// string. Fractions are truncated and unparseable values read as zero.
func WholeAmount(data json.RawMessage) int64 {
	return ParseAmount(data).IntPart()
}

func (p *Payment) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID     string          `json:"id"`
		Amount json.RawMessage `json:"amount"`
		Date   string          `json:"date"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Payment{
		ID:     aux.ID,
		Amount: WholeAmount(aux.Amount),
		Date:   aux.Date,
	}
	return nil
}

// UnmarshalJSON accepts amounts written as strings as well as numbers,
// including the legacy "amount" field.
func (p *Purchase) UnmarshalJSON(data []byte) error {
	var aux struct {
		ID           string          `json:"id"`
		Supplier     string          `json:"supplier"`
		TotalAmount  json.RawMessage `json:"totalAmount"`
		LegacyAmount json.RawMessage `json:"amount"`
		Description  string          `json:"description"`
		Status       string          `json:"status"`
		Date         string          `json:"date"`
		Payments     []Payment       `json:"payments"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	*p = Purchase{
		ID:           aux.ID,
		Supplier:     aux.Supplier,
		TotalAmount:  WholeAmount(aux.TotalAmount),
		LegacyAmount: WholeAmount(aux.LegacyAmount),
		Description:  aux.Description,
		Status:       aux.Status,
		Date:         aux.Date,
		Payments:     aux.Payments,
	}
	return nil
}
