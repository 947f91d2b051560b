package demo

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Indonesian name pools for synthetic people and companies
var (
	firstNames = []string{
		"Budi", "Siti", "Agus", "Dewi", "Eko", "Rina", "Joko", "Sri",
		"Andi", "Lestari", "Hendra", "Wati", "Bayu", "Indah", "Teguh",
		"Fitri", "Rudi", "Yanti", "Dian", "Putri",
	}
	lastNames = []string{
		"Santoso", "Wijaya", "Kusuma", "Pratama", "Saputra", "Hidayat",
		"Nugroho", "Setiawan", "Permana", "Wibowo", "Hartono", "Susanto",
		"Utama", "Firmansyah", "Gunawan", "Siregar",
	}
	companyWords = []string{
		"Maju", "Sejahtera", "Makmur", "Abadi", "Jaya", "Mandiri",
		"Sentosa", "Utama", "Prima", "Cemerlang", "Harapan", "Nusantara",
	}
	companyKinds = []string{
		"Karya", "Mitra", "Sumber", "Tirta", "Buana", "Graha", "Citra",
	}
	phonePrefixes = []string{"11", "12", "13", "21", "22", "52", "53", "55", "57", "78", "81", "82", "95", "96"}
	positions     = []string{"Manajer", "Supervisor", "Staf Administrasi", "Staf Keuangan", "Staf Operasional", "Analis"}
)

// DataGen produces synthetic Indonesian business data. It owns a
// per-run rand source so two runs with the same seed roll the same
// candidates, and never touches global rand state.
type DataGen struct {
	rng *rand.Rand
}

// NewDataGen creates a generator from a seed. Seed 0 derives one from
// the clock.
func NewDataGen(seed int64) *DataGen {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &DataGen{rng: rand.New(rand.NewSource(seed))}
}

// PersonName returns a synthetic full name
func (g *DataGen) PersonName() string {
	return g.pick(firstNames) + " " + g.pick(lastNames)
}

// CompanyName returns a synthetic PT-style company name
func (g *DataGen) CompanyName() string {
	return fmt.Sprintf("PT %s %s %s", g.pick(companyKinds), g.pick(companyWords), g.pick(companyWords))
}

// Position returns a synthetic job title
func (g *DataGen) Position() string {
	return g.pick(positions)
}

// NPWP returns a candidate tax ID in DD.DDD.DDD.D-DDD.DDD form
func (g *DataGen) NPWP() string {
	return fmt.Sprintf("%02d.%03d.%03d.%d-%03d.%03d",
		g.rng.Intn(100), g.rng.Intn(1000), g.rng.Intn(1000),
		g.rng.Intn(10), g.rng.Intn(1000), g.rng.Intn(1000))
}

// NIB returns a candidate 13-digit business registration number
func (g *DataGen) NIB() string {
	var b strings.Builder
	// leading digit nonzero so the number never shortens
	b.WriteByte(byte('1' + g.rng.Intn(9)))
	for i := 0; i < 12; i++ {
		b.WriteByte(byte('0' + g.rng.Intn(10)))
	}
	return b.String()
}

// Phone returns a candidate mobile number: 08 + 2-digit carrier prefix
// + 8-11 further digits
func (g *DataGen) Phone() string {
	var b strings.Builder
	b.WriteString("08")
	b.WriteString(g.pick(phonePrefixes))
	tail := 8 + g.rng.Intn(4)
	for i := 0; i < tail; i++ {
		b.WriteByte(byte('0' + g.rng.Intn(10)))
	}
	return b.String()
}

// Email returns a candidate email derived from a name
func (g *DataGen) Email(name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "."))
	return fmt.Sprintf("%s%d@demo.kencana.co.id", slug, g.rng.Intn(1000))
}

// Username returns a candidate login name derived from a name
func (g *DataGen) Username(name string) string {
	slug := strings.ToLower(strings.ReplaceAll(name, " ", "_"))
	return fmt.Sprintf("%s%02d", slug, g.rng.Intn(100))
}

// InvoiceNumber returns a candidate INV-YYYYMMDD-XXXXX number
func (g *DataGen) InvoiceNumber(at time.Time) string {
	return fmt.Sprintf("INV-%s-%05d", at.Format("20060102"), g.rng.Intn(100000))
}

// PaymentNumber returns a candidate PAY-YYYYMMDD-XXXXX number
func (g *DataGen) PaymentNumber(at time.Time) string {
	return fmt.Sprintf("PAY-%s-%05d", at.Format("20060102"), g.rng.Intn(100000))
}

// Chance rolls true with probability p in [0,1]
func (g *DataGen) Chance(p float64) bool {
	return g.rng.Float64() < p
}

// Intn proxies the run-scoped rand source
func (g *DataGen) Intn(n int) int {
	return g.rng.Intn(n)
}

func (g *DataGen) pick(pool []string) string {
	return pool[g.rng.Intn(len(pool))]
}
