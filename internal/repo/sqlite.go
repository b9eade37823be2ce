package repo

import (
	"log"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

// InitSqliteTest initializes an in-memory SQLite store so service tests run
// without a MySQL server. Foreign keys are enabled to keep cascade behavior
// aligned with the MySQL schema.
func InitSqliteTest() {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared&_pragma=foreign_keys(1)"), &gorm.Config{})
	if err != nil {
		log.Fatal("init sqlite fail", err)
	}
	// A pooled :memory: connection would otherwise open a fresh empty
	// database per connection.
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatal("get sql db fail", err)
	}
	sqlDB.SetMaxOpenConns(1)

	autoMigrateAll(db)
	Db = db
}
