package services

import (
	"regexp"
	"strings"
)

// ValidationError carries every rejection reason from a validator run
type ValidationError struct {
	Reasons []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Reasons, "; ")
}

// First returns the first rejection reason
func (e *ValidationError) First() string {
	if len(e.Reasons) == 0 {
		return ""
	}
	return e.Reasons[0]
}

// Identifier formats enforced on live input and on seeded data alike
var (
	// NPWP: DD.DDD.DDD.D-DDD.DDD
	npwpPattern = regexp.MustCompile(`^\d{2}\.\d{3}\.\d{3}\.\d-\d{3}\.\d{3}$`)
	// NIB: exactly 13 digits
	nibPattern = regexp.MustCompile(`^\d{13}$`)
	// Phone: 08 + 2-digit carrier prefix + 8-11 digits (total 12-15)
	phonePattern = regexp.MustCompile(`^08\d{2}\d{8,11}$`)
	// Invoice number: INV-YYYYMMDD-XXXXX
	invoiceNumberPattern = regexp.MustCompile(`^INV-\d{8}-\d{5}$`)
	// Payment number: PAY-YYYYMMDD-XXXXX
	paymentNumberPattern = regexp.MustCompile(`^PAY-\d{8}-\d{5}$`)

	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// ValidNPWP reports whether s matches the NPWP format
func ValidNPWP(s string) bool {
	return npwpPattern.MatchString(s)
}

// ValidNIB reports whether s matches the NIB format
func ValidNIB(s string) bool {
	return nibPattern.MatchString(s)
}

// ValidPhone reports whether s matches the phone format
func ValidPhone(s string) bool {
	return phonePattern.MatchString(s)
}

// ValidInvoiceNumber reports whether s matches the invoice number format
func ValidInvoiceNumber(s string) bool {
	return invoiceNumberPattern.MatchString(s)
}

// ValidPaymentNumber reports whether s matches the payment number format
func ValidPaymentNumber(s string) bool {
	return paymentNumberPattern.MatchString(s)
}

// ValidEmail reports whether s looks like an email address
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}
