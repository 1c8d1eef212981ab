package postgres

import (
	"fmt"
	"time"

	"ferryops/internal/adapters/out/postgres/bookingrepo"
	"ferryops/internal/adapters/out/postgres/chatrepo"
	"ferryops/internal/adapters/out/postgres/itemrepo"
	"ferryops/internal/adapters/out/postgres/orderrepo"
	"ferryops/internal/adapters/out/postgres/supplierrepo"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // database/sql driver for the read side
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSN builds a key/value connection string.
func DSN(host, port, user, password, dbName, sslMode string) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		host, port, user, password, dbName, sslMode)
}

// Open connects to PostgreSQL. Driver errors are translated so unique
// violations surface as gorm.ErrDuplicatedKey.
func Open(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	return db, nil
}

// OpenReader connects the read side through lib/pq. Query handlers share this
// pool; it never writes.
func OpenReader(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)
	return db, nil
}

// Migrate creates or updates every table owned by the service.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&supplierrepo.SupplierDTO{},
		&itemrepo.ItemDTO{},
		&orderrepo.OrderDTO{},
		&bookingrepo.BookingDTO{},
		&chatrepo.MessageDTO{},
	)
}
