package db

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"

	migrate "github.com/golang-migrate/migrate/v4"
	// The following blank imports register the drivers and file source for golang-migrate.
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite3"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/diewo77/retail-pos/internal/models"
)

// Connect opens the store named by dsn (SQLite path or postgres DSN) without
// running migrations. Used by ConnectAndMigrate and by the -migrate-only
// entry point.
func Connect(dsn string) (*gorm.DB, error) {
	dsn = NormalizeDSN(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_DSN is empty, check environment configuration")
	}
	logLevel := logger.Silent
	if os.Getenv("DB_DEBUG") == "1" {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel)}

	var db *gorm.DB
	var err error
	if IsPostgres(dsn) {
		for i := 0; i < 10; i++ {
			db, err = gorm.Open(postgres.Open(dsn), cfg)
			if err == nil {
				break
			}
			fmt.Println("Retrying DB connection...", err)
			time.Sleep(2 * time.Second)
		}
	} else {
		db, err = gorm.Open(sqlite.Open(dsn), cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	if pingErr := db.Exec("SELECT 1").Error; pingErr != nil {
		return nil, fmt.Errorf("db ping failed: %w", pingErr)
	}
	if !IsPostgres(dsn) {
		// SQLite leaves FK enforcement off unless asked.
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("enable foreign keys: %w", err)
		}
	}
	return db, nil
}

// ConnectAndMigrate opens the store and brings the schema up to date. With
// MIGRATIONS=1 the sql files under ./migrations/<driver> run via
// golang-migrate; otherwise AutoMigrate covers the model set (dev
// convenience).
func ConnectAndMigrate(dsn string) (*gorm.DB, error) {
	db, err := Connect(dsn)
	if err != nil {
		return nil, err
	}

	masked := dsn
	if strings.Contains(masked, "password=") {
		re := regexp.MustCompile(`(password=)([^\s]+)`)
		masked = re.ReplaceAllString(masked, `${1}***`)
	}
	fmt.Println("[DB] Using DSN:", masked)

	if v := strings.ToLower(os.Getenv("MIGRATIONS")); v == "1" || v == "true" || v == "yes" {
		if err := runSQLMigrations(dsn); err != nil {
			return nil, fmt.Errorf("sql migrations failed: %w", err)
		}
	} else {
		if err := AutoMigrate(db); err != nil {
			return nil, err
		}
	}

	for _, table := range []string{"products", "bills", "purchase_orders", "tax_config"} {
		if !db.Migrator().HasTable(table) {
			return nil, errors.New("missing table after migration: " + table)
		}
	}
	if v := strings.ToLower(os.Getenv("DB_SEED")); v == "1" || v == "true" || v == "yes" {
		seed(db)
	}
	return db, nil
}

// AutoMigrate migrates every model one by one so a failure names the
// offending type.
func AutoMigrate(db *gorm.DB) error {
	modelsToMigrate := []interface{}{
		&models.TaxRate{}, &models.Product{}, &models.Customer{}, &models.Vendor{},
		&models.PurchaseOrder{}, &models.PurchaseOrderItem{},
		&models.Bill{}, &models.BillItem{}, &models.StoreInfo{},
	}
	for _, m := range modelsToMigrate {
		if migErr := db.AutoMigrate(m); migErr != nil {
			return fmt.Errorf("automigrate %T: %w", m, migErr)
		}
	}
	return nil
}

// seed inserts the baseline tax slabs plus the TCS surcharge row. Idempotent:
// existing names are left alone.
func seed(db *gorm.DB) {
	baseRates := []models.TaxRate{
		{Name: "VAT 5", Value: 5, Type: "GST"},
		{Name: "VAT 12", Value: 12, Type: "GST"},
		{Name: "VAT 18", Value: 18, Type: "GST"},
		{Name: "VAT 28", Value: 28, Type: "GST"},
		{Name: models.TCSRateName, Value: 1.0, Type: "TCS"},
	}
	for _, tr := range baseRates {
		var existing models.TaxRate
		if err := db.Where("tax_name = ?", tr.Name).First(&existing).Error; err == gorm.ErrRecordNotFound {
			db.Create(&tr)
		}
	}
}

// migrationsSourceURL picks the migration directory for the dsn's driver.
// The dialects disagree on identity columns (SQLite's rowid alias vs
// Postgres GENERATED ... AS IDENTITY), so each gets its own set.
func migrationsSourceURL(dsn string) string {
	if IsPostgres(dsn) {
		return "file://migrations/postgres"
	}
	return "file://migrations/sqlite"
}

// runSQLMigrations executes the driver's migration set via the golang-migrate
// file source.
func runSQLMigrations(dsn string) error {
	target := dsn
	if !IsPostgres(dsn) {
		target = "sqlite3://" + dsn
	}
	m, err := migrate.New(migrationsSourceURL(dsn), target)
	if err != nil {
		return err
	}
	if err = m.Up(); err != nil && err != migrate.ErrNoChange {
		return err
	}
	return nil
}
