package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceItem representa una línea de detalle; siempre pertenece a una factura.
type InvoiceItem struct {
	ID          string
	InvoiceID   string
	Position    int
	Description string
	Quantity    int64
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewInvoiceItem construye una línea con el precio llevado a precisión de moneda
// (misma precisión que la columna NUMERIC donde se persiste).
func NewInvoiceItem(description string, quantity int64, unitPrice decimal.Decimal) *InvoiceItem {
	item := &InvoiceItem{
		Description: description,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Round(CurrencyPrecision),
	}
	item.LineTotal = item.computeLineTotal()
	return item
}

func (it *InvoiceItem) computeLineTotal() decimal.Decimal {
	return it.UnitPrice.Mul(decimal.NewFromInt(it.Quantity))
}
