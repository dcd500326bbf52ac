package invoices

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Invoice document types.
const (
	TypeQuotation = "Quotation"
	TypeEstimate  = "Estimate"
)

// Document lifecycle statuses.
const (
	StatusOpen    = "Open"
	StatusPaid    = "Paid"
	StatusOverdue = "Overdue"
)

// Payment collection statuses.
const (
	PaymentPending = "Pending"
	PaymentPaid    = "Paid"
	PaymentOverdue = "Overdue"
)

var (
	Types           = []string{TypeQuotation, TypeEstimate}
	Statuses        = []string{StatusOpen, StatusPaid, StatusOverdue}
	PaymentStatuses = []string{PaymentPending, PaymentPaid, PaymentOverdue}
)

var numberPrefixes = map[string]string{
	TypeQuotation: "QTN",
	TypeEstimate:  "EST",
}

// NumberPrefix returns the invoice number prefix for a normalized type.
func NumberPrefix(invoiceType string) string {
	if p, ok := numberPrefixes[invoiceType]; ok {
		return p
	}
	return numberPrefixes[TypeQuotation]
}

// Normalize trims value, capitalizes its first letter and lower-cases the
// rest. Values outside allowed fall back to def. It never fails.
func Normalize(value string, allowed []string, def string) string {
	if v := canonical(value); v != "" && slices.Contains(allowed, v) {
		return v
	}
	return def
}

// NormalizeFilter is Normalize without a default: unknown values yield "".
func NormalizeFilter(value string, allowed []string) string {
	return Normalize(value, allowed, "")
}

func canonical(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	first, size := utf8.DecodeRuneInString(value)
	return string(unicode.ToUpper(first)) + strings.ToLower(value[size:])
}
