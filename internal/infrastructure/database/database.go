package database

import (
	"fmt"
	"net"
	"strings"
	"time"

	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/domain"
	"rentdesk-backend/internal/lease"

	"github.com/glebarez/sqlite"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// Open opens a GORM DB for the configured driver. TranslateError lets the
// store see gorm.ErrDuplicatedKey when the SITE unique key fires.
func Open(cfg *config.Config) (*gorm.DB, error) {
	gcfg := &gorm.Config{TranslateError: true}
	switch cfg.DBDriver {
	case "sqlite":
		dsn := cfg.DatabaseURL
		if dsn == "" {
			dsn = "rentdesk.db"
		}
		db, err := gorm.Open(sqlite.Open(dsn), gcfg)
		if err != nil {
			return nil, err
		}
		// One writer; also keeps ":memory:" databases on a single connection.
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	case "mysql", "":
		dsn, err := MySQLDSN(cfg)
		if err != nil {
			return nil, err
		}
		return gorm.Open(mysql.Open(dsn), gcfg)
	}
	return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
}

// MySQLDSN builds the DSN from DATABASE_URL or the DB_* parts. Dates are
// scanned as time.Time, and UPDATE reports matched rather than changed rows
// so rewriting identical values is not mistaken for a missing site.
func MySQLDSN(cfg *config.Config) (string, error) {
	var mc *mysqldriver.Config
	if cfg.DatabaseURL != "" {
		parsed, err := mysqldriver.ParseDSN(strings.TrimPrefix(cfg.DatabaseURL, "mysql://"))
		if err != nil {
			return "", fmt.Errorf("parse DATABASE_URL: %w", err)
		}
		mc = parsed
	} else {
		mc = mysqldriver.NewConfig()
		mc.User = cfg.DBUser
		mc.Passwd = cfg.DBPassword
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.DBHost, cfg.DBPort)
		mc.DBName = cfg.DBName
	}
	mc.ParseTime = true
	mc.ClientFoundRows = true
	mc.Loc = time.UTC
	return mc.FormatDSN(), nil
}

// Migrate provisions RENTDETAILS and USERS when they are missing. The lease
// table is created from raw DDL: its column names contain dots and spaces,
// which gorm's migrator would split as table qualifiers.
func Migrate(db *gorm.DB) error {
	if err := db.Exec(RentDetailsDDL(db.Dialector.Name())).Error; err != nil {
		return fmt.Errorf("create %s: %w", lease.Table, err)
	}
	return db.AutoMigrate(&domain.User{})
}

// RentDetailsDDL renders CREATE TABLE for the lease relation in the given
// dialect ("mysql" or "sqlite").
func RentDetailsDDL(dialect string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE IF NOT EXISTS ")
	b.WriteString(lease.Table)
	b.WriteString(" (\n")
	if dialect == "sqlite" {
		b.WriteString("  ENTRY_NO INTEGER PRIMARY KEY AUTOINCREMENT")
	} else {
		b.WriteString("  ENTRY_NO INT AUTO_INCREMENT PRIMARY KEY")
	}
	for _, f := range lease.Fields() {
		b.WriteString(",\n  ")
		b.WriteString(lease.Column{Name: f.Column}.Quoted())
		b.WriteString(" ")
		b.WriteString(columnType(f, dialect))
		if f.Required {
			b.WriteString(" NOT NULL")
		} else {
			b.WriteString(" NULL")
		}
		if f.Column == lease.ColSite {
			b.WriteString(" UNIQUE")
		}
	}
	b.WriteString("\n)")
	return b.String()
}

func columnType(f lease.Field, dialect string) string {
	switch f.Kind {
	case lease.KindDate:
		return "DATE"
	case lease.KindInt:
		return "INT"
	case lease.KindDecimal:
		return "DECIMAL(14,2)"
	}
	switch f.Column {
	case lease.ColSite, lease.ColDiv, lease.ColStatus:
		return "VARCHAR(10)"
	case "MATURE":
		return "VARCHAR(3)"
	case "GST_NUMBER", "PAN_NUMBER", "OWNER MOBILE NUMBER":
		return "VARCHAR(20)"
	case lease.ColRegion, "CURRENT DATE 1", "VALIDITY DATE":
		return "VARCHAR(50)"
	case "REMARKS":
		return "TEXT"
	}
	if dialect == "sqlite" {
		return "TEXT"
	}
	return "VARCHAR(100)"
}
