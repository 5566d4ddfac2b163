package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkoukk/tiktoken-go"
	"gorm.io/datatypes"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/repos"
)

// TokenCounter counts tokens with a real tokenizer. The character/4
// estimate is the documented fallback for when the encoding cannot be
// loaded, never the primary path.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

func NewTokenCounter(log *logger.Logger) *TokenCounter {
	enc, err := tiktoken.GetEncoding("cl100k_base")
	if err != nil {
		log.Warn("Tokenizer unavailable, using character estimate", "error", err)
		return &TokenCounter{}
	}
	return &TokenCounter{enc: enc}
}

func (tc *TokenCounter) Count(text string) int {
	if text == "" {
		return 0
	}
	if tc.enc != nil {
		return len(tc.enc.Encode(text, nil, nil))
	}
	return (len(text) + 3) / 4
}

// UsageRecord is the bookkeeping around one generation call.
type UsageRecord struct {
	UserID           uuid.UUID
	ContextID        *uuid.UUID
	CallType         string
	Model            string
	Prompt           string
	Response         string
	Success          bool
	Err              error
	PromptTokens     int
	CompletionTokens int
	Elapsed          time.Duration
}

// UsageRecorder persists call logs. A failed write must never block
// returning generated content, so Record reports nothing and logs
// internally.
type UsageRecorder interface {
	Record(ctx context.Context, rec UsageRecord)
}

type usageRecorder struct {
	log  *logger.Logger
	logs repos.AICallLogRepo
}

func NewUsageRecorder(log *logger.Logger, logs repos.AICallLogRepo) UsageRecorder {
	return &usageRecorder{
		log:  log.With("service", "UsageRecorder"),
		logs: logs,
	}
}

func (r *usageRecorder) Record(ctx context.Context, rec UsageRecord) {
	usage, err := json.Marshal(map[string]any{
		"prompt_tokens":     rec.PromptTokens,
		"completion_tokens": rec.CompletionTokens,
		"total_tokens":      rec.PromptTokens + rec.CompletionTokens,
		"duration_ms":       rec.Elapsed.Milliseconds(),
	})
	if err != nil {
		r.log.Warn("Failed to marshal usage payload", "error", err)
		usage = []byte("{}")
	}

	userID := rec.UserID
	entry := &models.AICallLog{
		ID:        uuid.New(),
		UserID:    &userID,
		ContextID: rec.ContextID,
		CallType:  rec.CallType,
		Model:     rec.Model,
		Prompt:    rec.Prompt,
		Response:  rec.Response,
		Success:   rec.Success,
		Usage:     datatypes.JSON(usage),
	}
	if rec.Err != nil {
		entry.Error = rec.Err.Error()
	}

	if err := r.logs.Create(ctx, nil, entry); err != nil {
		r.log.Warn("Failed to persist AI call log",
			"call_type", rec.CallType,
			"user_id", rec.UserID,
			"error", err,
		)
	}
}
