package dto

import (
	"encoding/json"
	"strings"

	"github.com/shopspring/decimal"
)

// Decimal número recibido como JSON number o string numérico. Un valor que no
// es número no rompe la decodificación: queda Valid=false con el texto en Raw
// para que la validación lo reporte en su propio campo.
type Decimal struct {
	Value decimal.Decimal
	Raw   string
	Valid bool
}

// NewDecimal construye un Decimal válido a partir de su representación textual.
func NewDecimal(s string) *Decimal {
	return &Decimal{Value: decimal.RequireFromString(s), Raw: s, Valid: true}
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Decimal) UnmarshalJSON(data []byte) error {
	d.Raw = strings.Trim(strings.TrimSpace(string(data)), `"`)
	var v decimal.Decimal
	if err := v.UnmarshalJSON(data); err != nil {
		d.Value, d.Valid = decimal.Zero, false
		return nil
	}
	d.Value, d.Valid = v, true
	return nil
}

// MarshalJSON implementa json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return json.Marshal(d.Raw)
	}
	return d.Value.MarshalJSON()
}
