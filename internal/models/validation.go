package models

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// priceScale es la escala de la columna lot.price
const priceScale = 2

var (
	innPattern = regexp.MustCompile(`^(\d{10}|\d{12})$`)
	kppPattern = regexp.MustCompile(`^\d{9}$`)

	fieldValidator = validator.New()
)

// Validate valida el request de cliente y retorna los errores por campo
func (r *CustomerRequest) Validate() []ErrorDetail {
	var details []ErrorDetail

	if isBlank(r.CustomerCode) {
		details = append(details, ErrorDetail{Field: "customerCode", Issue: "customer code is required"})
	}
	if isBlank(r.CustomerName) {
		details = append(details, ErrorDetail{Field: "customerName", Issue: "customer name is required"})
	}
	if v := deref(r.CustomerInn); v != "" && !innPattern.MatchString(v) {
		details = append(details, ErrorDetail{Field: "customerInn", Issue: "INN must contain 10 or 12 digits"})
	}
	if v := deref(r.CustomerKpp); v != "" && !kppPattern.MatchString(v) {
		details = append(details, ErrorDetail{Field: "customerKpp", Issue: "KPP must contain 9 digits"})
	}
	if v := deref(r.CustomerEmail); v != "" && !IsValidEmail(v) {
		details = append(details, ErrorDetail{Field: "customerEmail", Issue: "invalid email format"})
	}

	return details
}

// Validate valida el request de lote y retorna los errores por campo
func (r *LotRequest) Validate() []ErrorDetail {
	var details []ErrorDetail

	if isBlank(r.LotName) {
		details = append(details, ErrorDetail{Field: "lotName", Issue: "lot name is required"})
	}
	if isBlank(r.CustomerCode) {
		details = append(details, ErrorDetail{Field: "customerCode", Issue: "customer code is required"})
	}
	switch {
	case r.Price == nil:
		details = append(details, ErrorDetail{Field: "price", Issue: "price is required"})
	case !r.Price.IsPositive():
		details = append(details, ErrorDetail{Field: "price", Issue: "price must be positive"})
	case !r.Price.Equal(r.Price.Round(priceScale)):
		details = append(details, ErrorDetail{Field: "price", Issue: "price must have at most 2 decimal places"})
	}
	if isBlank(r.CurrencyCode) {
		details = append(details, ErrorDetail{Field: "currencyCode", Issue: "currency code is required"})
	}
	if isBlank(r.NdsRate) {
		details = append(details, ErrorDetail{Field: "ndsRate", Issue: "NDS rate is required"})
	}

	return details
}

// IsValidEmail valida la sintaxis de un email
func IsValidEmail(email string) bool {
	return fieldValidator.Var(email, "email") == nil
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
