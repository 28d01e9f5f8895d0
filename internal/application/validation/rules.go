package validation

import (
	"strings"

	"github.com/jhoicas/invoice-api/internal/domain/entity"
)

// Reglas declarativas por campo. Las tablas base no incluyen presencia: la
// creación antepone "required" y la actualización "omitempty" (semántica
// "sometimes"), de modo que ambos conjuntos no pueden divergir.

// headerRules campos obligatorios al crear y opcionales al actualizar.
var headerRules = map[string]string{
	"ClientName":    "notblank,max=255",
	"ClientEmail":   "email,max=255",
	"ClientAddress": "notblank",
	"InvoiceDate":   "date",
	"DueDate":       "date,after_or_equal=InvoiceDate",
	"Items":         "min=1,dive",
}

// nullableRules campos opcionales en ambos casos; si vienen, se validan.
var nullableRules = map[string]string{
	"TaxRate": "numeric,gte=0,lte=100",
	"Status":  "oneof=" + statusList(),
	"Notes":   "",
}

// itemRules cada línea enviada se valida completa, también al reemplazar en un update.
var itemRules = map[string]string{
	"Description": "required,notblank,max=255",
	"Quantity":    "required,min=1,max=1000000",
	"UnitPrice":   "required,numeric,gte=0,lte=9999999999.99", // NUMERIC(12,2)
}

func statusList() string {
	names := make([]string, 0, len(entity.Statuses))
	for _, st := range entity.Statuses {
		names = append(names, string(st))
	}
	return strings.Join(names, " ")
}

// presence construye la tabla final anteponiendo el modificador de presencia.
func presence(header string) map[string]string {
	out := make(map[string]string, len(headerRules)+len(nullableRules))
	for field, rule := range headerRules {
		out[field] = join(header, rule)
	}
	for field, rule := range nullableRules {
		out[field] = join("omitempty", rule)
	}
	return out
}

func join(prefix, rule string) string {
	if rule == "" {
		return prefix
	}
	return prefix + "," + rule
}

// CreateRules tabla de reglas para crear una factura.
func CreateRules() map[string]string { return presence("required") }

// UpdateRules tabla de reglas para actualizar una factura.
func UpdateRules() map[string]string { return presence("omitempty") }

// ItemRules tabla de reglas de cada línea.
func ItemRules() map[string]string {
	out := make(map[string]string, len(itemRules))
	for k, v := range itemRules {
		out[k] = v
	}
	return out
}
