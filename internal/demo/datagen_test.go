package demo

import (
	"testing"
	"time"

	"kencana-crm/internal/core/services"

	"github.com/stretchr/testify/assert"
)

func TestDataGenSameSeedSameSequence(t *testing.T) {
	a := NewDataGen(7)
	b := NewDataGen(7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, a.PersonName(), b.PersonName())
		assert.Equal(t, a.NPWP(), b.NPWP())
		assert.Equal(t, a.Phone(), b.Phone())
	}
}

func TestDataGenCandidatesPassLiveValidation(t *testing.T) {
	gen := NewDataGen(7)
	at := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 100; i++ {
		assert.True(t, services.ValidNPWP(gen.NPWP()), "npwp candidate rejected")
		assert.True(t, services.ValidNIB(gen.NIB()), "nib candidate rejected")
		assert.True(t, services.ValidPhone(gen.Phone()), "phone candidate rejected")
		assert.True(t, services.ValidInvoiceNumber(gen.InvoiceNumber(at)), "invoice number candidate rejected")
		assert.True(t, services.ValidPaymentNumber(gen.PaymentNumber(at)), "payment number candidate rejected")
		assert.True(t, services.ValidEmail(gen.Email(gen.PersonName())), "email candidate rejected")
	}
}

func TestDataGenChanceBounds(t *testing.T) {
	gen := NewDataGen(7)

	for i := 0; i < 50; i++ {
		assert.False(t, gen.Chance(0))
		assert.True(t, gen.Chance(1))
	}
}
