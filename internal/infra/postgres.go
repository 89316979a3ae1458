package infra

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"tabi/internal/models/db_models"
	"tabi/pkg/utils"
)

func InitPostgresql(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%w: POSTGRES_URL is empty", utils.ErrUnsupportedConfig)
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	return connectionPool, nil
}

// PostgresStore keeps every key as one row of key_values.
type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&db_models.KeyValue{}); err != nil {
		return nil, fmt.Errorf("migrating key_values: %w", err)
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) ([]byte, error) {
	var kv db_models.KeyValue
	err := s.db.WithContext(ctx).First(&kv, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrKeyNotFound
		}
		return nil, fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return kv.Value, nil
}

func (s *PostgresStore) Set(ctx context.Context, key string, value []byte) error {
	kv := db_models.KeyValue{Key: key, Value: value, UpdatedAt: time.Now().Unix()}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&kv).Error
	if err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	if err := s.db.WithContext(ctx).Delete(&db_models.KeyValue{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("%w: %v", utils.ErrStoreFailure, err)
	}
	return nil
}

func (s *PostgresStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
