package dto

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Claves que aceptan null explícito para borrar el valor guardado.
const (
	FieldTaxRate = "tax_rate"
	FieldNotes   = "notes"
)

var nullableKeys = []string{FieldTaxRate, FieldNotes}

// InvoicePayload body para POST /api/v1/invoices y PUT /api/v1/invoices/:id.
// Todos los campos son punteros para distinguir "ausente" de "vacío"; las reglas
// de creación y actualización se aplican sobre este mismo tipo.
type InvoicePayload struct {
	ClientName    *string       `json:"client_name"`
	ClientEmail   *string       `json:"client_email"`
	ClientAddress *string       `json:"client_address"`
	InvoiceDate   *string       `json:"invoice_date"` // YYYY-MM-DD
	DueDate       *string       `json:"due_date"`     // YYYY-MM-DD
	TaxRate       *Decimal      `json:"tax_rate"`
	Status        *string       `json:"status"`
	Notes         *string       `json:"notes"`
	Items         []ItemPayload `json:"items"`

	// Nulls claves enviadas con null explícito (tax_rate, notes).
	Nulls map[string]bool `json:"-"`
}

// UnmarshalJSON decodifica el payload y registra qué claves anulables llegaron como null.
func (p *InvoicePayload) UnmarshalJSON(data []byte) error {
	type plain InvoicePayload
	var out plain
	if err := json.Unmarshal(data, &out); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*p = InvoicePayload(out)
	p.Nulls = nil
	for _, key := range nullableKeys {
		if v, ok := raw[key]; ok && bytes.Equal(bytes.TrimSpace(v), []byte("null")) {
			p.setNull(key)
		}
	}
	return nil
}

// IsNull indica si la clave llegó con null explícito.
func (p InvoicePayload) IsNull(key string) bool {
	return p.Nulls[key]
}

func (p *InvoicePayload) setNull(key string) {
	if p.Nulls == nil {
		p.Nulls = make(map[string]bool, len(nullableKeys))
	}
	p.Nulls[key] = true
}

// HasItems indica si el request trae la clave items (aunque venga vacía).
func (p InvoicePayload) HasItems() bool {
	return p.Items != nil
}

// Normalized devuelve una copia con los textos recortados; notes vacío equivale a null.
func (p InvoicePayload) Normalized() InvoicePayload {
	out := p
	out.ClientName = trimmed(p.ClientName)
	out.ClientEmail = trimmed(p.ClientEmail)
	out.ClientAddress = trimmed(p.ClientAddress)
	out.InvoiceDate = trimmed(p.InvoiceDate)
	out.DueDate = trimmed(p.DueDate)
	out.Status = trimmed(p.Status)
	out.Notes = trimmed(p.Notes)

	out.Nulls = nil
	for key, null := range p.Nulls {
		if null {
			out.setNull(key)
		}
	}
	if out.Notes != nil && *out.Notes == "" {
		out.Notes = nil
		out.setNull(FieldNotes)
	}

	if p.Items != nil {
		out.Items = make([]ItemPayload, len(p.Items))
		for i, it := range p.Items {
			it.Description = trimmed(it.Description)
			out.Items[i] = it
		}
	}
	return out
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

// ItemPayload línea de factura en el request.
type ItemPayload struct {
	Description *string  `json:"description"`
	Quantity    *int64   `json:"quantity"`
	UnitPrice   *Decimal `json:"unit_price"`
}

// InvoiceResponse factura hidratada (cabecera + líneas). Montos con 2 decimales.
type InvoiceResponse struct {
	ID            string                `json:"id"`
	ClientName    string                `json:"client_name"`
	ClientEmail   string                `json:"client_email"`
	ClientAddress string                `json:"client_address"`
	InvoiceDate   string                `json:"invoice_date"`
	DueDate       string                `json:"due_date"`
	TaxRate       string                `json:"tax_rate"`
	Status        string                `json:"status"`
	Notes         *string               `json:"notes"`
	Subtotal      string                `json:"subtotal"`
	TaxAmount     string                `json:"tax_amount"`
	TotalAmount   string                `json:"total_amount"`
	CreatedAt     string                `json:"created_at"`
	UpdatedAt     string                `json:"updated_at"`
	Items         []InvoiceItemResponse `json:"items"`
}

// InvoiceItemResponse línea de detalle en la respuesta.
type InvoiceItemResponse struct {
	ID          string `json:"id"`
	InvoiceID   string `json:"invoice_id"`
	Description string `json:"description"`
	Quantity    int64  `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// InvoiceListResponse página de facturas para GET /api/v1/invoices.
type InvoiceListResponse struct {
	PageResponse
	Data []InvoiceResponse `json:"data"`
}
