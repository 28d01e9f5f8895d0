package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estado comercial de la factura. No se imponen transiciones: cualquier
// valor permitido puede asignarse en cualquier momento.
type Status string

// Estados permitidos.
const (
	StatusDraft   Status = "draft"
	StatusSent    Status = "sent"
	StatusPaid    Status = "paid"
	StatusOverdue Status = "overdue"
)

// Statuses lista ordenada de los estados válidos.
var Statuses = []Status{StatusDraft, StatusSent, StatusPaid, StatusOverdue}

// Valid indica si s es uno de los estados permitidos.
func (s Status) Valid() bool {
	for _, st := range Statuses {
		if s == st {
			return true
		}
	}
	return false
}

// CurrencyPrecision decimales usados para montos.
const CurrencyPrecision = 2

// MaxAmount mayor monto representable en NUMERIC(14,2).
var MaxAmount = decimal.RequireFromString("999999999999.99")

var hundred = decimal.NewFromInt(100)

// Invoice representa la cabecera de una factura junto con sus líneas (agregado).
// Subtotal, TaxAmount y TotalAmount son derivados: solo CalculateTotals los escribe.
type Invoice struct {
	ID            string
	ClientName    string
	ClientEmail   string
	ClientAddress string
	InvoiceDate   time.Time
	DueDate       time.Time
	TaxRate       decimal.Decimal
	Status        Status
	Notes         *string
	Subtotal      decimal.Decimal
	TaxAmount     decimal.Decimal
	TotalAmount   decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Items         []*InvoiceItem
}

// CalculateTotals recalcula subtotal, impuesto y total a partir de las líneas actuales.
//
//	subtotal = Σ quantity × unit_price
//	tax      = round(subtotal × tax_rate / 100, 2)   (half-up)
//	total    = subtotal + tax
//
// Sin líneas todos los montos quedan en 0. Devuelve la misma factura para encadenar.
func (inv *Invoice) CalculateTotals() *Invoice {
	subtotal := decimal.Zero
	for _, item := range inv.Items {
		item.LineTotal = item.computeLineTotal()
		subtotal = subtotal.Add(item.LineTotal)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate).Div(hundred).Round(CurrencyPrecision)
	inv.TotalAmount = inv.Subtotal.Add(inv.TaxAmount)
	return inv
}

// SetItems reemplaza por completo la colección de líneas, asignando dueño y posición.
// Las líneas reciben identidad nueva al persistirse.
func (inv *Invoice) SetItems(items []*InvoiceItem) {
	for i, item := range items {
		item.InvoiceID = inv.ID
		item.Position = i + 1
	}
	inv.Items = items
}

// WithinLimits indica si el total (y por tanto subtotal, impuesto y cada línea,
// todos no negativos) cabe en MaxAmount.
func (inv *Invoice) WithinLimits() bool {
	return inv.TotalAmount.LessThanOrEqual(MaxAmount)
}

// DueDateValid verifica due_date >= invoice_date.
func (inv *Invoice) DueDateValid() bool {
	return !inv.DueDate.Before(inv.InvoiceDate)
}

// InvoicePatch cambios parciales de cabecera; nil significa "sin cambios".
type InvoicePatch struct {
	ClientName    *string
	ClientEmail   *string
	ClientAddress *string
	InvoiceDate   *time.Time
	DueDate       *time.Time
	TaxRate       *decimal.Decimal
	Status        *Status
	Notes         *string

	// ClearNotes borra las notas guardadas; tiene prioridad sobre Notes.
	ClearNotes bool
}

// Apply aplica solo los campos presentes del patch. Los totales no se tocan:
// el llamador debe invocar CalculateTotals después.
func (inv *Invoice) Apply(p InvoicePatch) {
	if p.ClientName != nil {
		inv.ClientName = *p.ClientName
	}
	if p.ClientEmail != nil {
		inv.ClientEmail = *p.ClientEmail
	}
	if p.ClientAddress != nil {
		inv.ClientAddress = *p.ClientAddress
	}
	if p.InvoiceDate != nil {
		inv.InvoiceDate = *p.InvoiceDate
	}
	if p.DueDate != nil {
		inv.DueDate = *p.DueDate
	}
	if p.TaxRate != nil {
		inv.TaxRate = *p.TaxRate
	}
	if p.Status != nil {
		inv.Status = *p.Status
	}
	switch {
	case p.ClearNotes:
		inv.Notes = nil
	case p.Notes != nil:
		notes := *p.Notes
		inv.Notes = &notes
	}
}
