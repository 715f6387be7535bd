package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Jamlick126/invoice-manager/internal/domain"
	"github.com/Jamlick126/invoice-manager/internal/money"
)

const (
	defaultBusinessName = "BIZ"
	defaultPhone        = "Contact Info Not Set"
)

type Receipt struct {
	BusinessName  string
	Phone         string
	LogoURI       template.URL
	Date          string
	InvoiceNumber string
	ClientName    string
	Rows          []ReceiptRow
	Total         string
}

type ReceiptRow struct {
	Description string
	Subtotal    string
}

// BuildReceipt lays out an invoice for printing. Amounts come from the frozen
// line prices, never from the current product list.
func BuildReceipt(invoice domain.Invoice, profile domain.Profile) Receipt {
	rows := make([]ReceiptRow, 0, len(invoice.Items))
	for _, item := range invoice.Items {
		qty := int64(item.Quantity)
		if qty < 1 {
			qty = 1
		}
		rows = append(rows, ReceiptRow{
			Description: fmt.Sprintf("%s (x%d)", item.Name, qty),
			Subtotal:    money.Fixed2(item.Price.Mul(decimal.NewFromInt(qty))),
		})
	}

	return Receipt{
		BusinessName:  defaultString(profile.BusinessName, defaultBusinessName),
		Phone:         defaultString(profile.Phone, defaultPhone),
		LogoURI:       safeLogoURI(profile.LogoURI),
		Date:          invoice.Date,
		InvoiceNumber: InvoiceNumber(invoice.ID),
		ClientName:    defaultString(invoice.ClientName, domain.WalkInCustomer),
		Rows:          rows,
		Total:         money.Fixed2(invoice.Total),
	}
}

// InvoiceNumber is the short printed reference: the last six characters of the id.
func InvoiceNumber(id string) string {
	runes := []rune(id)
	if len(runes) <= 6 {
		return id
	}
	return string(runes[len(runes)-6:])
}

var receiptHTMLTmpl = template.Must(template.New("receipt").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Receipt {{.InvoiceNumber}}</title>
  <style>
    body { font-family: sans-serif; margin: 32px; color: #1e293b; }
    .header { display: flex; justify-content: space-between; align-items: flex-start; }
    .logo img { width: 100px; height: 100px; object-fit: contain; border-radius: 12px; }
    .client { margin: 20px 0; padding: 10px; background: #f8fafc; border-radius: 5px; }
    .client-label { font-size: 12px; color: #64748b; text-transform: uppercase; }
    .client-name { font-size: 22px; font-weight: bold; color: #1e3a8a; }
    table { width: 100%; border-collapse: collapse; }
    th { background: #f8fafc; padding: 12px; border-bottom: 2px solid #e2e8f0; text-align: left; }
    td { padding: 12px; border-bottom: 1px solid #e2e8f0; }
    .amount { text-align: right; }
    .total { text-align: right; margin-top: 30px; font-size: 20px; color: #10b981; }
  </style>
</head>
<body>
  <div class="header">
    <div>
      {{if .LogoURI}}<div class="logo"><img src="{{.LogoURI}}" alt="logo" /></div>{{end}}
      <h1>{{.BusinessName}}</h1>
      <p>{{.Phone}}</p>
    </div>
    <div>
      <h2>OFFICIAL RECEIPT</h2>
      <p><strong>Date:</strong> {{.Date}}</p>
      <p><strong>Invoice #:</strong> {{.InvoiceNumber}}</p>
    </div>
  </div>
  <div class="client">
    <div class="client-label">Bill To:</div>
    <div class="client-name">{{.ClientName}}</div>
  </div>
  <table>
    <thead><tr><th>Description</th><th class="amount">Subtotal</th></tr></thead>
    <tbody>{{range .Rows}}<tr><td>{{.Description}}</td><td class="amount">Ksh. {{.Subtotal}}</td></tr>{{end}}</tbody>
  </table>
  <div class="total"><strong>Total Amount: Ksh. {{.Total}}</strong></div>
</body>
</html>
`))

func RenderHTML(receipt Receipt) ([]byte, error) {
	var buf bytes.Buffer
	if err := receiptHTMLTmpl.Execute(&buf, receipt); err != nil {
		return nil, fmt.Errorf("render receipt: %w", err)
	}
	return buf.Bytes(), nil
}

// safeLogoURI keeps picked images (data/file) and web URLs, and drops anything else.
func safeLogoURI(raw string) template.URL {
	uri := strings.TrimSpace(raw)
	lower := strings.ToLower(uri)
	switch {
	case strings.HasPrefix(lower, "data:image/"),
		strings.HasPrefix(lower, "file://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "http://"):
		return template.URL(uri)
	default:
		return ""
	}
}

func defaultString(value string, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
