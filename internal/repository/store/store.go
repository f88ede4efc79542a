// Package store is the persistence gateway: gorm repositories over MySQL, Postgres or SQLite.
package store

import (
	"errors"
	"fmt"
	"strings"

	"Club_Portal/internal/model"
	"Club_Portal/internal/pkg"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

var ErrUnknownDriver = errors.New("unknown database driver")

// Open connects with the dialect named by driver.
func Open(driver, dsn string, debug bool) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMySQL:
		dialector = mysql.Open(dsn)
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	case DriverSQLite:
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, driver)
	}

	level := logger.Warn
	if debug {
		level = logger.Info
	}
	return gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(level),
	})
}

// Models lists every table in migration order.
func Models() []any {
	return []any{
		&model.Sequence{},
		&model.Account{},
		&model.Profile{},
		&model.Socials{},
		&model.Address{},
		&model.Connection{},
		&model.Event{},
		&model.EventAttendee{},
		&model.Blog{},
		&model.TimelinePost{},
		&model.Poll{},
		&model.PollOption{},
		&model.PollVote{},
		&model.RolePermission{},
	}
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// nextID bumps the named sequence inside tx and formats the result.
func nextID(tx *gorm.DB, prefix string) (string, error) {
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.Sequence{Name: prefix}).Error; err != nil {
		return "", err
	}
	if err := tx.Model(&model.Sequence{}).
		Where("name = ?", prefix).
		UpdateColumn("value", gorm.Expr("value + ?", 1)).Error; err != nil {
		return "", err
	}
	var seq model.Sequence
	if err := tx.Where("name = ?", prefix).First(&seq).Error; err != nil {
		return "", err
	}
	return pkg.FormatID(prefix, seq.Value), nil
}

// IsDuplicate reports a unique-constraint violation from any supported dialect.
func IsDuplicate(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "Duplicate entry") ||
		strings.Contains(msg, "duplicate key value")
}

// IsNotFound reports gorm's record-not-found.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Paginate applies offset and limit when limit is positive.
func Paginate(offset, limit int) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if limit <= 0 {
			return db
		}
		return db.Offset(offset).Limit(limit)
	}
}
