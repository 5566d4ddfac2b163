package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

type GenerationRequestRepo interface {
	Create(ctx context.Context, tx *gorm.DB, request *models.GenerationRequest) error
	CountForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error)
}

type generationRequestRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewGenerationRequestRepo(db *gorm.DB, baseLog *logger.Logger) GenerationRequestRepo {
	return &generationRequestRepo{db: db, log: baseLog.With("repo", "GenerationRequestRepo")}
}

func (r *generationRequestRepo) Create(ctx context.Context, tx *gorm.DB, request *models.GenerationRequest) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(request).Error
}

func (r *generationRequestRepo) CountForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&models.GenerationRequest{}).
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
