package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

type JobRepo interface {
	ListAll(ctx context.Context, tx *gorm.DB) ([]models.Job, error)
	GetByID(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) (*models.Job, error)
}

type jobRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewJobRepo(db *gorm.DB, baseLog *logger.Logger) JobRepo {
	return &jobRepo{db: db, log: baseLog.With("repo", "JobRepo")}
}

func (r *jobRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]models.Job, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var jobs []models.Job
	if err := transaction.WithContext(ctx).
		Preload("Company").
		Order("created_at DESC").
		Find(&jobs).Error; err != nil {
		return nil, err
	}
	return jobs, nil
}

func (r *jobRepo) GetByID(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) (*models.Job, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var job models.Job
	if err := transaction.WithContext(ctx).
		Preload("Company").
		Where("id = ?", jobID).
		First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}
