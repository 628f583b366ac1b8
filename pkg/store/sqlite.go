package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// cartSnapshotRow is the single-row-per-terminal table backing SQLiteStore.
type cartSnapshotRow struct {
	TerminalID string `gorm:"primaryKey;size:64"`
	Payload    []byte
	UpdatedAt  time.Time
}

func (cartSnapshotRow) TableName() string { return "cart_snapshots" }

// SQLiteStore is the default cart persistence: a small sqlite file next to
// the binary, scoped to one terminal.
type SQLiteStore struct {
	db         *gorm.DB
	terminalID string
}

func NewSQLiteStore(path, terminalID string) (*SQLiteStore, error) {
	if terminalID == "" {
		return nil, fmt.Errorf("terminal id is required")
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening cart db: %w", err)
	}
	if err := db.AutoMigrate(&cartSnapshotRow{}); err != nil {
		return nil, fmt.Errorf("migrating cart db: %w", err)
	}
	return &SQLiteStore{db: db, terminalID: terminalID}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (Snapshot, bool, error) {
	var row cartSnapshotRow
	err := s.db.WithContext(ctx).First(&row, "terminal_id = ?", s.terminalID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Snapshot{}, false, nil
	}
	if err != nil {
		return Snapshot{}, false, fmt.Errorf("loading cart snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(row.Payload, &snap); err != nil {
		// Corrupt payload reads as an empty cart rather than failing startup.
		return Snapshot{}, false, nil
	}
	return snap, true, nil
}

func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) error {
	payload, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding cart snapshot: %w", err)
	}
	row := cartSnapshotRow{TerminalID: s.terminalID, Payload: payload, UpdatedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Save(&row).Error; err != nil {
		return fmt.Errorf("saving cart snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	err := s.db.WithContext(ctx).Delete(&cartSnapshotRow{}, "terminal_id = ?", s.terminalID).Error
	if err != nil {
		return fmt.Errorf("clearing cart snapshot: %w", err)
	}
	return nil
}

// Ping checks the underlying handle, for readiness probes.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// Close releases the underlying sqlite handle.
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
