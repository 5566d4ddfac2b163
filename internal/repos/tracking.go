package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

type TrackingRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, entry *models.Tracking) error
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.Tracking, error)
	DeleteByUserAndJob(ctx context.Context, tx *gorm.DB, userID, jobID uuid.UUID) error
}

type trackingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrackingRepo(db *gorm.DB, baseLog *logger.Logger) TrackingRepo {
	return &trackingRepo{db: db, log: baseLog.With("repo", "TrackingRepo")}
}

func (r *trackingRepo) Upsert(ctx context.Context, tx *gorm.DB, entry *models.Tracking) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "auto_favourite", "updated_at"}),
		}).
		Create(entry).Error
}

func (r *trackingRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.Tracking, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var entries []models.Tracking
	if err := transaction.WithContext(ctx).
		Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *trackingRepo) DeleteByUserAndJob(ctx context.Context, tx *gorm.DB, userID, jobID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		Delete(&models.Tracking{}).Error
}
