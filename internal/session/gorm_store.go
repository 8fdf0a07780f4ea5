package session

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/gradepro/gradepro-web/internal/models"
)

// GormStore keeps sessions in a SQL table.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore builds a database-backed store.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Migrate creates the sessions table.
func (s *GormStore) Migrate() error {
	return s.db.AutoMigrate(&models.Session{})
}

// Save inserts or replaces the session.
func (s *GormStore) Save(ctx context.Context, sess models.Session) error {
	return s.db.WithContext(ctx).Save(&sess).Error
}

// Get loads a session.
func (s *GormStore) Get(ctx context.Context, id string) (models.Session, error) {
	var sess models.Session
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Session{}, ErrNotFound
		}
		return models.Session{}, err
	}
	return sess, nil
}

// Delete removes a session.
func (s *GormStore) Delete(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Session{}).Error
}

// PurgeExpired deletes sessions that expired before the reference time.
func (s *GormStore) PurgeExpired(ctx context.Context, reference time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at <= ?", reference).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}
