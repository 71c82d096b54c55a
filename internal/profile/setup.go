package profile

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/het-sheth/fulcrumai/internal/db"
)

// Init prepares the fulcrum schema and migrates the user table.
func Init(gdb *gorm.DB) error {
	if err := db.EnsureSchema(gdb, "fulcrum"); err != nil {
		return fmt.Errorf("ensure schema fulcrum: %w", err)
	}

	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("enable uuid-ossp: %w", err)
	}

	if err := gdb.AutoMigrate(&User{}); err != nil {
		return fmt.Errorf("migrate users: %w", err)
	}

	return nil
}
