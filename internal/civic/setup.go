package civic

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/het-sheth/fulcrumai/internal/db"
)

// Init prepares the fulcrum schema and migrates the civic event table.
func Init(gdb *gorm.DB) error {
	if err := db.EnsureSchema(gdb, "fulcrum"); err != nil {
		return fmt.Errorf("ensure schema fulcrum: %w", err)
	}

	if err := gdb.AutoMigrate(&CivicEvent{}); err != nil {
		return fmt.Errorf("migrate civic_events: %w", err)
	}

	return nil
}
