package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainUser "device-checkout/internal/domain/user"
	"device-checkout/internal/infrastructure/database/postgres/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionRepository implements the session storage interface.
type SessionRepository struct {
	db *DB
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *DB) domainUser.SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *domainUser.Session) error {
	s.ID = uuid.New()
	s.CreatedAt = time.Now()

	dbModel := &models.SessionModel{
		ID:        s.ID,
		UserID:    s.UserID,
		Token:     s.Token,
		ExpiresAt: s.ExpiresAt,
		CreatedAt: s.CreatedAt,
	}
	if err := r.db.DB.WithContext(ctx).Create(dbModel).Error; err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}

	return nil
}

func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*domainUser.Session, error) {
	var dbModel models.SessionModel
	err := r.db.DB.WithContext(ctx).
		Where("token = ?", token).
		First(&dbModel).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domainUser.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &domainUser.Session{
		ID:        dbModel.ID,
		UserID:    dbModel.UserID,
		Token:     dbModel.Token,
		ExpiresAt: dbModel.ExpiresAt,
		CreatedAt: dbModel.CreatedAt,
	}, nil
}

func (r *SessionRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.db.DB.WithContext(ctx).
		Where("token = ?", token).
		Delete(&models.SessionModel{}).Error
}

func (r *SessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return r.db.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.SessionModel{}).Error
}

func (r *SessionRepository) DeleteExpired(ctx context.Context) error {
	return r.db.DB.WithContext(ctx).
		Where("expires_at <= ?", time.Now()).
		Delete(&models.SessionModel{}).Error
}
