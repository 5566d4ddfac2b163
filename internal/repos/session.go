package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
)

type ChatSessionRepo interface {
	Create(ctx context.Context, tx *gorm.DB, session *models.ChatSession) error
	GetForUser(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*models.ChatSession, error)
	GetByUserAndJob(ctx context.Context, tx *gorm.DB, userID, jobID uuid.UUID) (*models.ChatSession, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.ChatSession, error)
	// CountInputsForUserBetween counts generation inputs across all of
	// the user's sessions in [from, to); the counting gate's window.
	CountInputsForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error)
}

type chatSessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatSessionRepo(db *gorm.DB, baseLog *logger.Logger) ChatSessionRepo {
	return &chatSessionRepo{db: db, log: baseLog.With("repo", "ChatSessionRepo")}
}

func (r *chatSessionRepo) Create(ctx context.Context, tx *gorm.DB, session *models.ChatSession) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(session).Error
}

func (r *chatSessionRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*models.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var session models.ChatSession
	if err := transaction.WithContext(ctx).
		Preload("Job.Company").
		Where("id = ? AND user_id = ?", sessionID, userID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatSessionRepo) GetByUserAndJob(ctx context.Context, tx *gorm.DB, userID, jobID uuid.UUID) (*models.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var session models.ChatSession
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND job_id = ?", userID, jobID).
		First(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *chatSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.ChatSession, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var sessions []models.ChatSession
	if err := transaction.WithContext(ctx).
		Preload("Job.Company").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *chatSessionRepo) CountInputsForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&models.ChatInput{}).
		Joins("JOIN chat_sessions ON chat_sessions.id = chat_inputs.session_id").
		Where("chat_sessions.user_id = ? AND chat_inputs.created_at >= ? AND chat_inputs.created_at < ?", userID, from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

type ChatInputRepo interface {
	Create(ctx context.Context, tx *gorm.DB, input *models.ChatInput) error
	ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]models.ChatInput, error)
}

type chatInputRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatInputRepo(db *gorm.DB, baseLog *logger.Logger) ChatInputRepo {
	return &chatInputRepo{db: db, log: baseLog.With("repo", "ChatInputRepo")}
}

func (r *chatInputRepo) Create(ctx context.Context, tx *gorm.DB, input *models.ChatInput) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(input).Error
}

func (r *chatInputRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]models.ChatInput, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var inputs []models.ChatInput
	if err := transaction.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at ASC").
		Find(&inputs).Error; err != nil {
		return nil, err
	}
	return inputs, nil
}

type ChatOutputRepo interface {
	Create(ctx context.Context, tx *gorm.DB, output *models.ChatOutput) error
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]models.ChatOutput, error)
}

type chatOutputRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewChatOutputRepo(db *gorm.DB, baseLog *logger.Logger) ChatOutputRepo {
	return &chatOutputRepo{db: db, log: baseLog.With("repo", "ChatOutputRepo")}
}

func (r *chatOutputRepo) Create(ctx context.Context, tx *gorm.DB, output *models.ChatOutput) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx).Create(output).Error
}

func (r *chatOutputRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]models.ChatOutput, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	var outputs []models.ChatOutput
	if len(ids) == 0 {
		return outputs, nil
	}
	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&outputs).Error; err != nil {
		return nil, err
	}
	return outputs, nil
}
