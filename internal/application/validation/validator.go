// Package validation aplica las tablas de reglas de factura con go-playground/validator
// y traduce las violaciones a un mapa campo → mensajes.
package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/jhoicas/invoice-api/internal/application/dto"
)

// Errors mapa ruta de campo (ej. "items.0.quantity") → mensajes de error.
type Errors map[string][]string

// Error implementa error con un resumen estable (campos ordenados).
func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return "validación fallida: " + strings.Join(fields, ", ")
}

// Add agrega un mensaje al campo.
func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// dateLayouts formatos aceptados para fechas de calendario.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

// ParseDate interpreta una fecha de calendario y la normaliza a medianoche UTC.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
	}
	return time.Time{}, fmt.Errorf("fecha inválida: %q", s)
}

// InvoiceValidator motor de validación con un conjunto de reglas por operación.
type InvoiceValidator struct {
	create *validator.Validate
	update *validator.Validate
}

// NewInvoiceValidator construye el validador registrando las tablas de reglas.
func NewInvoiceValidator() *InvoiceValidator {
	return &InvoiceValidator{
		create: newEngine(CreateRules()),
		update: newEngine(UpdateRules()),
	}
}

func newEngine(headerRules map[string]string) *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// dto.Decimal se compara como número en gte/lte; si no es numérico se
	// expone el texto original para que falle la regla numeric.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		d, ok := field.Interface().(dto.Decimal)
		if !ok {
			return nil
		}
		if !d.Valid {
			return d.Raw
		}
		f, _ := d.Value.Float64()
		return f
	}, dto.Decimal{})
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	_ = v.RegisterValidation("date", isDate)
	_ = v.RegisterValidation("after_or_equal", afterOrEqual)
	v.RegisterStructValidationMapRules(headerRules, dto.InvoicePayload{})
	v.RegisterStructValidationMapRules(ItemRules(), dto.ItemPayload{})
	return v
}

// ValidateCreate valida el payload de creación. Devuelve Errors o nil.
func (iv *InvoiceValidator) ValidateCreate(p dto.InvoicePayload) error {
	return translate(iv.create.Struct(p))
}

// ValidateUpdate valida el payload de actualización: solo los campos presentes.
func (iv *InvoiceValidator) ValidateUpdate(p dto.InvoicePayload) error {
	return translate(iv.update.Struct(p))
}

func isDate(fl validator.FieldLevel) bool {
	_, err := ParseDate(fl.Field().String())
	return err == nil
}

// afterOrEqual compara contra otro campo fecha del mismo struct; si el otro campo
// no está presente o no es una fecha válida, la regla no aplica.
func afterOrEqual(fl validator.FieldLevel) bool {
	current, err := ParseDate(fl.Field().String())
	if err != nil {
		return true
	}
	other, kind, _, found := fl.GetStructFieldOKAdvanced2(fl.Parent(), fl.Param())
	if !found || kind != reflect.String {
		return true
	}
	start, err := ParseDate(other.String())
	if err != nil {
		return true
	}
	return !current.Before(start)
}

func translate(err error) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := Errors{}
	for _, fe := range verrs {
		field := fieldPath(fe.Namespace())
		out.Add(field, message(fe, field))
	}
	return out
}

// fieldPath convierte "InvoicePayload.items[0].quantity" en "items.0.quantity".
func fieldPath(namespace string) string {
	if i := strings.Index(namespace, "."); i >= 0 {
		namespace = namespace[i+1:]
	}
	namespace = strings.ReplaceAll(namespace, "[", ".")
	return strings.ReplaceAll(namespace, "]", "")
}

func attribute(field string) string {
	return strings.ReplaceAll(field, "_", " ")
}

var goFieldToJSON = map[string]string{
	"InvoiceDate": "invoice_date",
}

func message(fe validator.FieldError, field string) string {
	attr := attribute(field)
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Sprintf("The %s field is required.", attr)
	case "numeric":
		return fmt.Sprintf("The %s field must be a number.", attr)
	case "min":
		switch fe.Kind() {
		case reflect.String:
			return fmt.Sprintf("The %s field must be at least %s characters.", attr, fe.Param())
		case reflect.Slice:
			return fmt.Sprintf("The %s field must have at least %s items.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("The %s field must not be greater than %s characters.", attr, fe.Param())
		}
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
	case "gte":
		return fmt.Sprintf("The %s field must be at least %s.", attr, fe.Param())
	case "lte":
		return fmt.Sprintf("The %s field must not be greater than %s.", attr, fe.Param())
	case "email":
		return fmt.Sprintf("The %s field must be a valid email address.", attr)
	case "date":
		return fmt.Sprintf("The %s field must be a valid date.", attr)
	case "after_or_equal":
		other := fe.Param()
		if name, ok := goFieldToJSON[other]; ok {
			other = name
		}
		return AfterOrEqualMessage(field, other)
	case "oneof":
		return fmt.Sprintf("The selected %s is invalid.", attr)
	}
	return fmt.Sprintf("The %s field is invalid.", attr)
}

// AfterOrEqualMessage mensaje para la regla due_date >= invoice_date.
func AfterOrEqualMessage(field, other string) string {
	return fmt.Sprintf("The %s field must be a date after or equal to %s.", attribute(field), attribute(other))
}

// FromDecodeError traduce un error de decodificación JSON a Errors.
func FromDecodeError(err error) Errors {
	out := Errors{}
	var typeErr *json.UnmarshalTypeError
	var syntaxErr *json.SyntaxError
	switch {
	case errors.As(err, &typeErr) && typeErr.Field != "":
		out.Add(typeErr.Field, fmt.Sprintf("The %s field has an invalid type.", attribute(typeErr.Field)))
	case errors.As(err, &syntaxErr):
		out.Add("body", "The request body must be valid JSON.")
	default:
		out.Add("body", "The request body contains an invalid value.")
	}
	return out
}
