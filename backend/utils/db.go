package utils

import (
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"vidya/backend/config"
)

// InitDB opens the local SQLite file that backs session persistence. The
// portal has no server-side database; this file is the durable local
// storage of the single learner session.
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	if dir := filepath.Dir(cfg.DataPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return gorm.Open(sqlite.Open(cfg.DataPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
}
