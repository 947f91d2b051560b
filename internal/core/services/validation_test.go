package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidNPWP(t *testing.T) {
	cases := map[string]bool{
		"01.234.567.8-901.234": true,
		"99.999.999.9-999.999": true,
		"01.234.567.8-901.23":  false,
		"01234567890123456":    false,
		"ab.cde.fgh.i-jkl.mno": false,
		"":                     false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidNPWP(in), "npwp %q", in)
	}
}

func TestValidNIB(t *testing.T) {
	cases := map[string]bool{
		"1234567890123":  true,
		"123456789012":   false,
		"12345678901234": false,
		"12345678901ab":  false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidNIB(in), "nib %q", in)
	}
}

func TestValidPhone(t *testing.T) {
	cases := map[string]bool{
		"081234567890":    true, // 12 digits
		"08123456789012":  true, // 14 digits
		"081234567890123": true, // 15 digits
		"08123456789":     false,
		"0812345678901234": false,
		"621234567890":     false,
	}
	for in, want := range cases {
		assert.Equal(t, want, ValidPhone(in), "phone %q", in)
	}
}

func TestValidDocumentNumbers(t *testing.T) {
	assert.True(t, ValidInvoiceNumber("INV-20260301-00001"))
	assert.False(t, ValidInvoiceNumber("INV-2026031-00001"))
	assert.False(t, ValidInvoiceNumber("inv-20260301-00001"))
	assert.False(t, ValidInvoiceNumber("INV-20260301-001"))

	assert.True(t, ValidPaymentNumber("PAY-20260301-00001"))
	assert.False(t, ValidPaymentNumber("INV-20260301-00001"))
}

func TestValidationErrorMessage(t *testing.T) {
	err := &ValidationError{Reasons: []string{"first reason", "second reason"}}
	assert.Equal(t, "validation failed: first reason; second reason", err.Error())
	assert.Equal(t, "first reason", err.First())

	empty := &ValidationError{}
	assert.Equal(t, "", empty.First())
}
