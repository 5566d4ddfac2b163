package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

type ProfileRepo interface {
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Profile, error)
	Upsert(ctx context.Context, tx *gorm.DB, profile *models.Profile) error
}

type profileRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewProfileRepo(db *gorm.DB, baseLog *logger.Logger) ProfileRepo {
	return &profileRepo{db: db, log: baseLog.With("repo", "ProfileRepo")}
}

func (r *profileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Profile, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var profile models.Profile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&profile).Error; err != nil {
		return nil, err
	}
	return &profile, nil
}

func (r *profileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *models.Profile) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"full_name", "university", "year_of_study", "degree", "updated_at"}),
		}).
		Create(profile).Error
}

// SkillsRepo decodes the JSON-text list columns on the way out; the
// serialized form never leaves this package.
type SkillsRepo interface {
	GetViewByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.SkillsView, error)
	Upsert(ctx context.Context, tx *gorm.DB, userID uuid.UUID, view models.SkillsView) error
}

type skillsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSkillsRepo(db *gorm.DB, baseLog *logger.Logger) SkillsRepo {
	return &skillsRepo{db: db, log: baseLog.With("repo", "SkillsRepo")}
}

func (r *skillsRepo) GetViewByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.SkillsView, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var stored models.SkillsProfile
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&stored).Error; err != nil {
		return nil, err
	}
	view := stored.View()
	return &view, nil
}

func (r *skillsRepo) Upsert(ctx context.Context, tx *gorm.DB, userID uuid.UUID, view models.SkillsView) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	stored := models.SkillsProfile{
		ID:               uuid.New(),
		UserID:           userID,
		TechnicalSkills:  view.TechnicalSkills,
		SoftSkills:       view.SoftSkills,
		ExtraCurriculars: models.EncodeItemList(view.ExtraCurriculars),
		PersonalProjects: models.EncodeItemList(view.PersonalProjects),
	}
	return transaction.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"technical_skills", "soft_skills", "extra_curriculars", "personal_projects", "updated_at"}),
		}).
		Create(&stored).Error
}
