package repos

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

// Credit columns addressable by the balance gate. Kept as a closed set
// so feature tags never reach SQL as raw strings.
const (
	CreditColumnCoverLetter = "cover_letter_credits"
	CreditColumnResolveAI   = "resolve_ai_credits"
)

type UserCreditsRepo interface {
	Create(ctx context.Context, tx *gorm.DB, credits *models.UserCredits) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.UserCredits, error)
	// DecrementIfPositive performs the atomic conditional spend:
	// UPDATE user_credits SET col = col - 1 WHERE user_id = ? AND col > 0.
	// Returns whether a credit was actually taken.
	DecrementIfPositive(ctx context.Context, tx *gorm.DB, userID uuid.UUID, column string) (bool, error)
}

type userCreditsRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserCreditsRepo(db *gorm.DB, baseLog *logger.Logger) UserCreditsRepo {
	return &userCreditsRepo{db: db, log: baseLog.With("repo", "UserCreditsRepo")}
}

func (r *userCreditsRepo) Create(ctx context.Context, tx *gorm.DB, credits *models.UserCredits) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(credits).Error
}

func (r *userCreditsRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.UserCredits, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var credits models.UserCredits
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&credits).Error; err != nil {
		return nil, err
	}
	return &credits, nil
}

func (r *userCreditsRepo) DecrementIfPositive(ctx context.Context, tx *gorm.DB, userID uuid.UUID, column string) (bool, error) {
	if column != CreditColumnCoverLetter && column != CreditColumnResolveAI {
		return false, fmt.Errorf("unknown credit column %q", column)
	}
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	res := transaction.WithContext(ctx).
		Model(&models.UserCredits{}).
		Where("user_id = ? AND "+column+" > 0", userID).
		UpdateColumn(column, gorm.Expr(column+" - 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
