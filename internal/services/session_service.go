package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/repos"
	"github.com/placementflow/placementflow-backend/internal/requestdata"
)

// SessionTurn pairs a stored question with its answer, if one was ever
// produced.
type SessionTurn struct {
	Input  models.ChatInput   `json:"input"`
	Output *models.ChatOutput `json:"output,omitempty"`
}

type SessionService interface {
	// GetOrCreate returns the caller's session for the given job,
	// creating one on first use.
	GetOrCreate(ctx context.Context, jobID uuid.UUID) (*models.ChatSession, error)
	List(ctx context.Context) ([]models.ChatSession, error)
	History(ctx context.Context, sessionID uuid.UUID) ([]SessionTurn, error)
}

type sessionService struct {
	log      *logger.Logger
	sessions repos.ChatSessionRepo
	inputs   repos.ChatInputRepo
	outputs  repos.ChatOutputRepo
	jobs     repos.JobRepo
}

func NewSessionService(
	log *logger.Logger,
	sessions repos.ChatSessionRepo,
	inputs repos.ChatInputRepo,
	outputs repos.ChatOutputRepo,
	jobs repos.JobRepo,
) SessionService {
	return &sessionService{
		log:      log.With("service", "SessionService"),
		sessions: sessions,
		inputs:   inputs,
		outputs:  outputs,
		jobs:     jobs,
	}
}

func (s *sessionService) GetOrCreate(ctx context.Context, jobID uuid.UUID) (*models.ChatSession, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.GetByUserAndJob(ctx, nil, rd.UserID, jobID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	if _, err := s.jobs.GetByID(ctx, nil, jobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job %s", ErrNotFound, jobID)
		}
		return nil, fmt.Errorf("fetch job: %w", err)
	}

	session = &models.ChatSession{
		ID:     uuid.New(),
		UserID: rd.UserID,
		JobID:  jobID,
	}
	if err := s.sessions.Create(ctx, nil, session); err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	return session, nil
}

func (s *sessionService) List(ctx context.Context) ([]models.ChatSession, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}
	return s.sessions.ListByUser(ctx, nil, rd.UserID)
}

// History returns the session's question/answer turns in the order the
// questions were asked. Inputs whose generation failed appear with a
// nil Output.
func (s *sessionService) History(ctx context.Context, sessionID uuid.UUID) ([]SessionTurn, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}

	if _, err := s.sessions.GetForUser(ctx, nil, rd.UserID, sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %s", ErrNotFound, sessionID)
		}
		return nil, fmt.Errorf("fetch session: %w", err)
	}

	inputs, err := s.inputs.ListBySession(ctx, nil, sessionID)
	if err != nil {
		return nil, fmt.Errorf("fetch inputs: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ID)
	}
	outputs, err := s.outputs.GetByIDs(ctx, nil, ids)
	if err != nil {
		return nil, fmt.Errorf("fetch outputs: %w", err)
	}
	byID := make(map[uuid.UUID]models.ChatOutput, len(outputs))
	for _, out := range outputs {
		byID[out.ID] = out
	}

	turns := make([]SessionTurn, 0, len(inputs))
	for _, in := range inputs {
		turn := SessionTurn{Input: in}
		if out, ok := byID[in.ID]; ok {
			o := out
			turn.Output = &o
		}
		turns = append(turns, turn)
	}
	return turns, nil
}
