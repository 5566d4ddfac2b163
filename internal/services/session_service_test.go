package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/requestdata"
)

func TestSessionHistoryPairsInputsWithOutputs(t *testing.T) {
	userID := uuid.New()
	session := &models.ChatSession{ID: uuid.New(), UserID: userID, JobID: uuid.New()}
	inputs := &fakeInputRepo{}
	outputs := &fakeOutputRepo{}

	answered := &models.ChatInput{ID: uuid.New(), SessionID: session.ID, Question: "first"}
	unanswered := &models.ChatInput{ID: uuid.New(), SessionID: session.ID, Question: "second"}
	inputs.inputs = append(inputs.inputs, answered, unanswered)
	outputs.outputs = append(outputs.outputs, &models.ChatOutput{ID: answered.ID, Answer: "an answer"})

	svc := NewSessionService(newTestLogger(t), &fakeSessionRepo{session: session}, inputs, outputs, &fakeJobRepo{})
	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})

	turns, err := svc.History(ctx, session.ID)
	if err != nil {
		t.Fatalf("History() = %v", err)
	}
	if len(turns) != 2 {
		t.Fatalf("got %d turns, want 2", len(turns))
	}
	if turns[0].Input.Question != "first" || turns[0].Output == nil || turns[0].Output.Answer != "an answer" {
		t.Errorf("first turn = %+v", turns[0])
	}
	if turns[1].Input.Question != "second" || turns[1].Output != nil {
		t.Errorf("second turn should have no output, got %+v", turns[1])
	}
}

func TestSessionHistoryRejectsForeignSession(t *testing.T) {
	owner := uuid.New()
	session := &models.ChatSession{ID: uuid.New(), UserID: owner, JobID: uuid.New()}
	svc := NewSessionService(newTestLogger(t), &fakeSessionRepo{session: session}, &fakeInputRepo{}, &fakeOutputRepo{}, &fakeJobRepo{})

	intruder := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: uuid.New()})
	if _, err := svc.History(intruder, session.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("History() for another user's session = %v, want ErrNotFound", err)
	}
}

func TestGetOrCreateReturnsExistingSession(t *testing.T) {
	userID := uuid.New()
	jobID := uuid.New()
	existing := &models.ChatSession{ID: uuid.New(), UserID: userID, JobID: jobID}
	svc := NewSessionService(newTestLogger(t), &fakeSessionRepo{session: existing}, &fakeInputRepo{}, &fakeOutputRepo{},
		&fakeJobRepo{jobs: map[uuid.UUID]*models.Job{jobID: {ID: jobID}}})

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: userID})
	got, err := svc.GetOrCreate(ctx, jobID)
	if err != nil {
		t.Fatalf("GetOrCreate() = %v", err)
	}
	if got.ID != existing.ID {
		t.Fatalf("got session %s, want existing %s", got.ID, existing.ID)
	}
}

func TestGetOrCreateRejectsUnknownJob(t *testing.T) {
	svc := NewSessionService(newTestLogger(t), &fakeSessionRepo{}, &fakeInputRepo{}, &fakeOutputRepo{}, &fakeJobRepo{jobs: map[uuid.UUID]*models.Job{}})

	ctx := requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: uuid.New()})
	if _, err := svc.GetOrCreate(ctx, uuid.New()); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetOrCreate() with unknown job = %v, want ErrNotFound", err)
	}
}
