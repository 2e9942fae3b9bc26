package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/opugacodez/frutaria/internal/model"
)

// OpenGorm connects to postgres or mysql and migrates the three tables.
func OpenGorm(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return openDialector(postgres.Open(dsn))
	case "mysql":
		return openDialector(mysql.Open(dsn))
	default:
		return nil, fmt.Errorf("unsupported gorm driver %q", driver)
	}
}

func openDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.Product{}, &model.Cart{}); err != nil {
		return nil, err
	}
	return db, nil
}

// GormTable stores a collection as a table. Mutate replaces the table
// contents inside one transaction, so it keeps the whole-document
// semantics of the file backend.
type GormTable[T any] struct {
	mu sync.Mutex
	db *gorm.DB
}

func NewGormTable[T any](db *gorm.DB) *GormTable[T] {
	return &GormTable[T]{db: db}
}

func (t *GormTable[T]) LoadAll(ctx context.Context) ([]T, error) {
	var recs []T
	if err := t.db.WithContext(ctx).Order("id asc").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if recs == nil {
		recs = []T{}
	}
	return recs, nil
}

func (t *GormTable[T]) Mutate(ctx context.Context, fn func([]T) ([]T, error)) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var fnErr error
	err := t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recs []T
		if err := tx.Order("id asc").Find(&recs).Error; err != nil {
			return err
		}
		next, err := fn(recs)
		if err != nil {
			fnErr = err
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(T)).Error; err != nil {
			return err
		}
		if len(next) > 0 {
			if err := tx.Create(&next).Error; err != nil {
				return err
			}
		}
		slog.Debug("table rewritten", "records", len(next))
		return nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
