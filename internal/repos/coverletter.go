package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

type CoverLetterRepo interface {
	// Upsert replaces any prior letter for the same (user, job) pair and
	// returns the row as stored.
	Upsert(ctx context.Context, tx *gorm.DB, letter *models.CoverLetter) (*models.CoverLetter, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.CoverLetter, error)
}

type coverLetterRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCoverLetterRepo(db *gorm.DB, baseLog *logger.Logger) CoverLetterRepo {
	return &coverLetterRepo{db: db, log: baseLog.With("repo", "CoverLetterRepo")}
}

func (r *coverLetterRepo) Upsert(ctx context.Context, tx *gorm.DB, letter *models.CoverLetter) (*models.CoverLetter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	if err := transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "job_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cover_letter", "updated_at"}),
		}).
		Create(letter).Error; err != nil {
		return nil, err
	}

	var stored models.CoverLetter
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", letter.UserID, letter.JobID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *coverLetterRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.CoverLetter, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var letters []models.CoverLetter
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&letters).Error; err != nil {
		return nil, err
	}
	return letters, nil
}
