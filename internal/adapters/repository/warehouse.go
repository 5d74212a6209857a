package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const (
	memoryPath = ":memory:"
	dsnParams  = "?_foreign_keys=on&_busy_timeout=5000"
)

// Warehouse is an open SQLite warehouse file.
type Warehouse struct {
	db   *gorm.DB
	path string
}

// Open opens (creating if needed) the warehouse at path with foreign keys
// enforced. The parent directory is created when missing.
func Open(ctx context.Context, path string) (*Warehouse, error) {
	if path != memoryPath {
		if dir := filepath.Dir(path); dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrOpen, err)
			}
		}
	}

	db, err := gorm.Open(sqlite.Open(path+dsnParams), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpen, err)
	}
	// One connection keeps :memory: databases and PRAGMAs consistent.
	sqlDB.SetMaxOpenConns(1)

	w := &Warehouse{db: db, path: path}
	if err := w.Ping(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return w, nil
}

// OpenExisting opens a warehouse that must already exist on disk.
func OpenExisting(ctx context.Context, path string) (*Warehouse, error) {
	if path != memoryPath {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrOpen, path, err)
		}
	}
	return Open(ctx, path)
}

// DB returns the underlying gorm handle.
func (w *Warehouse) DB() *gorm.DB {
	return w.db
}

// Path returns the file the warehouse was opened from.
func (w *Warehouse) Path() string {
	return w.path
}

// Ping verifies the database is reachable.
func (w *Warehouse) Ping(ctx context.Context) error {
	sqlDB, err := w.db.DB()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrOpen, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: ping: %v", ErrOpen, err)
	}
	return nil
}

// Close releases the database handle.
func (w *Warehouse) Close() error {
	sqlDB, err := w.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ApplySchema runs ddl verbatim outside of a load.
func (w *Warehouse) ApplySchema(ctx context.Context, ddl string) error {
	return applySchema(w.db.WithContext(ctx), ddl)
}

func applySchema(tx *gorm.DB, ddl string) error {
	if err := tx.Exec(ddl).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

// TableCounts returns the row count of every warehouse table.
func (w *Warehouse) TableCounts(ctx context.Context) (map[string]int64, error) {
	db := w.db.WithContext(ctx)
	out := make(map[string]int64, 6)
	for _, m := range []interface{ TableName() string }{
		DimDate{}, DimTechnology{}, DimSeniority{}, DimCountry{}, DimCandidate{}, FactHiring{},
	} {
		var n int64
		if err := db.Table(m.TableName()).Count(&n).Error; err != nil {
			return nil, fmt.Errorf("count %s: %w", m.TableName(), err)
		}
		out[m.TableName()] = n
	}
	return out, nil
}

// OrphanFacts counts fact rows that fail to join any dimension.
func (w *Warehouse) OrphanFacts(ctx context.Context) (int64, error) {
	var n int64
	err := w.db.WithContext(ctx).Raw(`
SELECT COUNT(*) FROM FactHiring f
LEFT JOIN DimCandidate ca ON ca.candidate_id = f.candidate_id
LEFT JOIN DimTechnology t ON t.technology_id = f.technology_id
LEFT JOIN DimSeniority s ON s.seniority_id = f.seniority_id
LEFT JOIN DimCountry co ON co.country_id = f.country_id
LEFT JOIN DimDate d ON d.date_id = f.date_id
WHERE ca.candidate_id IS NULL OR t.technology_id IS NULL OR s.seniority_id IS NULL
   OR co.country_id IS NULL OR d.date_id IS NULL`).Scan(&n).Error
	if err != nil {
		return 0, fmt.Errorf("orphan facts: %w", err)
	}
	return n, nil
}
