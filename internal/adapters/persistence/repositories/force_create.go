package repositories

import (
	"gorm.io/gorm"
)

// clearForcedID hard-deletes any row of the given model already holding
// the caller-chosen primary key. Repositories call this before inserting
// a record whose ID was set by the caller, so fixture inserts land on the
// exact key even when a previous run left a row behind. Auto-assigned
// inserts (ID == 0) never reach this path.
func clearForcedID(db *gorm.DB, model interface{}, id uint) error {
	if id == 0 {
		return nil
	}
	return db.Unscoped().Where("id = ?", id).Delete(model).Error
}

// withFKChecksDisabled runs fn inside a window where referential
// integrity enforcement is suspended. Used only by low-level key
// reassignment. The sqlite branch exists for the test driver.
func withFKChecksDisabled(db *gorm.DB, fn func(*gorm.DB) error) error {
	switch db.Dialector.Name() {
	case "mysql":
		if err := db.Exec("SET FOREIGN_KEY_CHECKS = 0").Error; err != nil {
			return err
		}
		defer db.Exec("SET FOREIGN_KEY_CHECKS = 1")
	case "sqlite":
		if err := db.Exec("PRAGMA defer_foreign_keys = ON").Error; err != nil {
			return err
		}
	}
	return fn(db)
}
