package kvstore

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/lifeline-sos/lifeline/utils"
	"github.com/pkg/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "lifeline.db"

// Record is a single key-value row. The whole app state is a handful of
// keys, so one table is plenty.
type Record struct {
	Key   string `gorm:"primarykey"`
	Value string
}

// GormStore is a Store backed by a sqlite file, for state that must
// survive restarts. Writes are synchronous; each Set replaces the whole
// value for its key.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore opens(or creates) the sqlite db under '<rootDir>/db' and
// migrates the records table.
func NewGormStore(rootDir string) (*GormStore, error) {
	dbFilePath, err := DbFilePath(rootDir)
	if err != nil {
		return nil, errors.Wrap(err, "failed to resolve db path")
	}

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%v?_journal_mode=WAL", dbFilePath)), &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  gormLogger.Silent,
				IgnoreRecordNotFoundError: true,
				Colorful:                  false,
			},
		),
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect database")
	}

	if err = db.AutoMigrate(&Record{}); err != nil {
		return nil, errors.Wrap(err, "failed to migrate records table")
	}

	return &GormStore{db: db}, nil
}

func (s *GormStore) Get(key string) (string, bool, error) {
	record := Record{}

	err := s.db.First(&record, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}

	if err != nil {
		return "", false, errors.Wrapf(err, "failed to read %q", key)
	}

	return record.Value, true, nil
}

func (s *GormStore) Set(key, value string) error {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Record{Key: key, Value: value}).Error

	return errors.Wrapf(err, "failed to write %q", key)
}

// DbFilePath returns the sqlite file path under '<rootDir>/db', creating
// the directory if needed. The backup job uses it to find the file to ship.
func DbFilePath(rootDir string) (string, error) {
	dbDir := filepath.Join(rootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}
