package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"

	"github.com/anibaldeboni/zero-paper/soilbyte/sensor"
)

// snapshotID is the primary key of the only row in the table
const snapshotID = 1

type snapshot struct {
	ID        uint   `gorm:"primaryKey"`
	Payload   string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

func (snapshot) TableName() string {
	return "sensor_snapshots"
}

// SQLStore keeps the reading in a single-row table
type SQLStore struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) an embedded SQLite database at path
func OpenSQLite(path string, log logrus.FieldLogger) (*SQLStore, error) {
	if path == "" {
		path = "data/sensor_data.db"
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	return NewSQLStore(sqlite.Open(path), log)
}

// OpenPostgres connects to the database described by dsn
func OpenPostgres(dsn string, log logrus.FieldLogger) (*SQLStore, error) {
	if dsn == "" {
		return nil, errors.New("postgres store requires a dsn")
	}
	return NewSQLStore(postgres.Open(dsn), log)
}

// NewSQLStore opens the database and migrates the snapshot table
func NewSQLStore(dialector gorm.Dialector, log logrus.FieldLogger) (*SQLStore, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}

	gormLogger := logger.New(
		log,
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  false,
		},
	)

	db, err := gorm.Open(dialector, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&snapshot{}); err != nil {
		return nil, fmt.Errorf("failed to migrate snapshot table: %w", err)
	}

	return &SQLStore{db: db}, nil
}

// Write upserts the single snapshot row
func (s *SQLStore) Write(ctx context.Context, reading sensor.Reading) error {
	data, err := encode(reading)
	if err != nil {
		return err
	}

	row := snapshot{ID: snapshotID, Payload: string(data), UpdatedAt: time.Now()}
	tx := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row)
	if tx.Error != nil {
		return fmt.Errorf("failed to write snapshot: %w", tx.Error)
	}
	return nil
}

// Read returns the stored payload unchanged
func (s *SQLStore) Read(ctx context.Context) ([]byte, error) {
	var row snapshot
	err := s.db.WithContext(ctx).First(&row, snapshotID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	data := []byte(row.Payload)
	if err := validate(data, row.TableName()); err != nil {
		return nil, err
	}
	return data, nil
}

// Exists reports whether the snapshot row is present
func (s *SQLStore) Exists(ctx context.Context) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&snapshot{}).Where("id = ?", snapshotID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return count > 0, nil
}

// Close releases the underlying connection pool
func (s *SQLStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

var (
	_ Store = (*FileStore)(nil)
	_ Store = (*SQLStore)(nil)
)
