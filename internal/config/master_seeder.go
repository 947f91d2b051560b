package config

import (
	"errors"
	"log"

	"kencana-crm/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// SeedMasterData seeds initial master data
func SeedMasterData(db *gorm.DB) error {
	// Seed Provinces
	if err := seedProvinces(db); err != nil {
		return err
	}

	// Seed Regencies
	if err := seedRegencies(db); err != nil {
		return err
	}

	// Seed Agencies
	if err := seedAgencies(db); err != nil {
		return err
	}

	// Seed Agency Employees
	if err := seedAgencyEmployees(db); err != nil {
		return err
	}

	log.Println("✅ Master data seeded successfully")
	return nil
}

func seedProvinces(db *gorm.DB) error {
	provinces := []models.Province{
		{Code: "31", Name: "DKI Jakarta"},
		{Code: "32", Name: "Jawa Barat"},
		{Code: "33", Name: "Jawa Tengah"},
		{Code: "34", Name: "DI Yogyakarta"},
		{Code: "35", Name: "Jawa Timur"},
	}

	for _, p := range provinces {
		var existing models.Province
		if err := db.Where("code = ?", p.Code).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				if err := db.Create(&p).Error; err != nil {
					return err
				}
				log.Printf("   Created province: %s", p.Name)
			}
		}
	}
	return nil
}

func seedRegencies(db *gorm.DB) error {
	// Regency codes follow the BPS numbering, province code first
	regencies := []struct {
		ProvinceCode string
		Code         string
		Name         string
	}{
		{"31", "31.71", "Jakarta Pusat"},
		{"31", "31.72", "Jakarta Utara"},
		{"31", "31.74", "Jakarta Selatan"},
		{"32", "32.73", "Kota Bandung"},
		{"32", "32.76", "Kota Depok"},
		{"33", "33.74", "Kota Semarang"},
		{"33", "33.72", "Kota Surakarta"},
		{"34", "34.71", "Kota Yogyakarta"},
		{"34", "34.04", "Kabupaten Sleman"},
		{"35", "35.78", "Kota Surabaya"},
		{"35", "35.73", "Kota Malang"},
	}

	for _, r := range regencies {
		var province models.Province
		if err := db.Where("code = ?", r.ProvinceCode).First(&province).Error; err != nil {
			return err
		}

		var existing models.Regency
		if err := db.Where("code = ?", r.Code).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				regency := models.Regency{
					ProvinceID: province.ID,
					Code:       r.Code,
					Name:       r.Name,
				}
				if err := db.Create(&regency).Error; err != nil {
					return err
				}
				log.Printf("   Created regency: %s", r.Name)
			}
		}
	}
	return nil
}

func seedAgencies(db *gorm.DB) error {
	agencies := []struct {
		ProvinceCode string
		Code         string
		Name         string
	}{
		{"31", "DISNAKER-JKT", "Dinas Tenaga Kerja DKI Jakarta"},
		{"32", "DISNAKER-JBR", "Dinas Tenaga Kerja Jawa Barat"},
		{"33", "DISNAKER-JTG", "Dinas Tenaga Kerja Jawa Tengah"},
		{"34", "DISNAKER-DIY", "Dinas Tenaga Kerja DI Yogyakarta"},
		{"35", "DISNAKER-JTM", "Dinas Tenaga Kerja Jawa Timur"},
	}

	for _, a := range agencies {
		var province models.Province
		if err := db.Where("code = ?", a.ProvinceCode).First(&province).Error; err != nil {
			return err
		}

		var existing models.Agency
		if err := db.Where("code = ?", a.Code).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				agency := models.Agency{
					ProvinceID: province.ID,
					Code:       a.Code,
					Name:       a.Name,
					IsActive:   true,
				}
				if err := db.Create(&agency).Error; err != nil {
					return err
				}
				log.Printf("   Created agency: %s", a.Name)
			}
		}
	}
	return nil
}

func seedAgencyEmployees(db *gorm.DB) error {
	employees := []struct {
		AgencyCode  string
		Name        string
		NIP         string
		IsInspector bool
	}{
		{"DISNAKER-JKT", "Bambang Sutrisno", "196805121990031001", true},
		{"DISNAKER-JKT", "Sri Handayani", "197203251995022003", false},
		{"DISNAKER-JBR", "Agus Priyanto", "197011081993011002", true},
		{"DISNAKER-JTG", "Dewi Kartika", "197506171998032001", true},
		{"DISNAKER-DIY", "Joko Susilo", "196912301992031004", true},
		{"DISNAKER-JTM", "Rina Wulandari", "197808222001122002", true},
	}

	for _, e := range employees {
		var agency models.Agency
		if err := db.Where("code = ?", e.AgencyCode).First(&agency).Error; err != nil {
			return err
		}

		var existing models.AgencyEmployee
		if err := db.Where("nip = ?", e.NIP).First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				employee := models.AgencyEmployee{
					AgencyID:    agency.ID,
					Name:        e.Name,
					NIP:         e.NIP,
					IsInspector: e.IsInspector,
					IsActive:    true,
				}
				if err := db.Create(&employee).Error; err != nil {
					return err
				}
				log.Printf("   Created agency employee: %s", e.Name)
			}
		}
	}
	return nil
}
