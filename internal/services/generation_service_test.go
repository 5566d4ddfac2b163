package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/dtos"
	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/requestdata"
)

type fakeLLM struct {
	response string
	usage    CompletionUsage
	err      error
	// errFor fails only calls whose prompt contains the key.
	errFor map[string]error
	calls  int
}

func (f *fakeLLM) Complete(ctx context.Context, system, prompt string) (string, CompletionUsage, error) {
	f.calls++
	for key, err := range f.errFor {
		if key != "" && strings.Contains(prompt, key) {
			return "", CompletionUsage{}, err
		}
	}
	if f.err != nil {
		return "", CompletionUsage{}, f.err
	}
	return f.response, f.usage, nil
}

func (f *fakeLLM) Model() string { return "fake-model" }

type fakeGate struct {
	err   error
	calls int
}

func (f *fakeGate) Allow(ctx context.Context, userID uuid.UUID) error {
	f.calls++
	return f.err
}

type spyUsageRecorder struct {
	records []UsageRecord
}

func (s *spyUsageRecorder) Record(ctx context.Context, rec UsageRecord) {
	s.records = append(s.records, rec)
}

type fakeSessionRepo struct {
	session *models.ChatSession
}

func (f *fakeSessionRepo) Create(ctx context.Context, tx *gorm.DB, s *models.ChatSession) error {
	return nil
}

func (f *fakeSessionRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, sessionID uuid.UUID) (*models.ChatSession, error) {
	if f.session == nil || f.session.ID != sessionID || f.session.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.session, nil
}

func (f *fakeSessionRepo) GetByUserAndJob(ctx context.Context, tx *gorm.DB, userID, jobID uuid.UUID) (*models.ChatSession, error) {
	if f.session == nil || f.session.JobID != jobID || f.session.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return f.session, nil
}

func (f *fakeSessionRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.ChatSession, error) {
	if f.session == nil {
		return nil, nil
	}
	return []models.ChatSession{*f.session}, nil
}

func (f *fakeSessionRepo) CountInputsForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error) {
	return 0, nil
}

type fakeInputRepo struct {
	inputs []*models.ChatInput
	err    error
}

func (f *fakeInputRepo) Create(ctx context.Context, tx *gorm.DB, input *models.ChatInput) error {
	if f.err != nil {
		return f.err
	}
	f.inputs = append(f.inputs, input)
	return nil
}

func (f *fakeInputRepo) ListBySession(ctx context.Context, tx *gorm.DB, sessionID uuid.UUID) ([]models.ChatInput, error) {
	out := make([]models.ChatInput, 0, len(f.inputs))
	for _, in := range f.inputs {
		if in.SessionID == sessionID {
			out = append(out, *in)
		}
	}
	return out, nil
}

type fakeOutputRepo struct {
	outputs []*models.ChatOutput
}

func (f *fakeOutputRepo) Create(ctx context.Context, tx *gorm.DB, output *models.ChatOutput) error {
	f.outputs = append(f.outputs, output)
	return nil
}

func (f *fakeOutputRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]models.ChatOutput, error) {
	want := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	out := make([]models.ChatOutput, 0, len(f.outputs))
	for _, o := range f.outputs {
		if want[o.ID] {
			out = append(out, *o)
		}
	}
	return out, nil
}

type fakeRequestRepo struct {
	requests []*models.GenerationRequest
	err      error
}

func (f *fakeRequestRepo) Create(ctx context.Context, tx *gorm.DB, r *models.GenerationRequest) error {
	if f.err != nil {
		return f.err
	}
	f.requests = append(f.requests, r)
	return nil
}

func (f *fakeRequestRepo) CountForUserBetween(ctx context.Context, tx *gorm.DB, userID uuid.UUID, from, to time.Time) (int64, error) {
	return int64(len(f.requests)), nil
}

type fakeCoverLetterRepo struct {
	byKey map[[2]uuid.UUID]*models.CoverLetter
}

func newFakeCoverLetterRepo() *fakeCoverLetterRepo {
	return &fakeCoverLetterRepo{byKey: make(map[[2]uuid.UUID]*models.CoverLetter)}
}

func (f *fakeCoverLetterRepo) Upsert(ctx context.Context, tx *gorm.DB, letter *models.CoverLetter) (*models.CoverLetter, error) {
	key := [2]uuid.UUID{letter.UserID, letter.JobID}
	if existing, ok := f.byKey[key]; ok {
		existing.CoverLetter = letter.CoverLetter
		return existing, nil
	}
	stored := *letter
	f.byKey[key] = &stored
	return &stored, nil
}

func (f *fakeCoverLetterRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]models.CoverLetter, error) {
	out := make([]models.CoverLetter, 0, len(f.byKey))
	for key, letter := range f.byKey {
		if key[0] == userID {
			out = append(out, *letter)
		}
	}
	return out, nil
}

type fakeProfileRepo struct {
	profile *models.Profile
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.Profile, error) {
	if f.profile == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.profile, nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *models.Profile) error {
	f.profile = profile
	return nil
}

type fakeSkillsRepo struct {
	view *models.SkillsView
}

func (f *fakeSkillsRepo) GetViewByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*models.SkillsView, error) {
	if f.view == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return f.view, nil
}

func (f *fakeSkillsRepo) Upsert(ctx context.Context, tx *gorm.DB, userID uuid.UUID, view models.SkillsView) error {
	f.view = &view
	return nil
}

type fakeJobRepo struct {
	jobs map[uuid.UUID]*models.Job
}

func (f *fakeJobRepo) ListAll(ctx context.Context, tx *gorm.DB) ([]models.Job, error) {
	out := make([]models.Job, 0, len(f.jobs))
	for _, j := range f.jobs {
		out = append(out, *j)
	}
	return out, nil
}

func (f *fakeJobRepo) GetByID(ctx context.Context, tx *gorm.DB, jobID uuid.UUID) (*models.Job, error) {
	job, ok := f.jobs[jobID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return job, nil
}

type genFixture struct {
	svc      GenerationService
	userID   uuid.UUID
	session  *models.ChatSession
	llm      *fakeLLM
	answer   *fakeGate
	letters  *fakeGate
	usage    *spyUsageRecorder
	inputs   *fakeInputRepo
	outputs  *fakeOutputRepo
	requests *fakeRequestRepo
	stored   *fakeCoverLetterRepo
	jobs     *fakeJobRepo
}

func newGenFixture(t *testing.T) *genFixture {
	t.Helper()
	userID := uuid.New()
	jobID := uuid.New()

	job := &models.Job{
		ID:          jobID,
		JobTitle:    "Backend Intern",
		Description: "Build Go services.",
		Category:    "Software",
		Location:    "Remote",
		Company:     &models.Company{ID: uuid.New(), Name: "Acme Corp"},
	}
	session := &models.ChatSession{
		ID:     uuid.New(),
		UserID: userID,
		JobID:  jobID,
		Job:    job,
	}

	f := &genFixture{
		userID:   userID,
		session:  session,
		llm:      &fakeLLM{response: "Generated text.", usage: CompletionUsage{PromptTokens: 10, CompletionTokens: 5}},
		answer:   &fakeGate{},
		letters:  &fakeGate{},
		usage:    &spyUsageRecorder{},
		inputs:   &fakeInputRepo{},
		outputs:  &fakeOutputRepo{},
		requests: &fakeRequestRepo{},
		stored:   newFakeCoverLetterRepo(),
		jobs:     &fakeJobRepo{jobs: map[uuid.UUID]*models.Job{jobID: job}},
	}
	f.svc = NewGenerationService(
		newTestLogger(t),
		f.llm,
		&TokenCounter{},
		f.usage,
		f.answer,
		f.letters,
		&fakeSessionRepo{session: session},
		f.inputs,
		f.outputs,
		f.requests,
		f.stored,
		&fakeProfileRepo{profile: &models.Profile{UserID: userID, FullName: "Priya Sharma"}},
		&fakeSkillsRepo{view: &models.SkillsView{TechnicalSkills: "Go"}},
		f.jobs,
	)
	return f
}

func (f *genFixture) ctx() context.Context {
	return requestdata.WithRequestData(context.Background(), &requestdata.RequestData{UserID: f.userID})
}

func TestGenerateAnswerHappyPath(t *testing.T) {
	f := newGenFixture(t)

	resp, err := f.svc.GenerateAnswer(f.ctx(), &dtos.GenerateAnswerRequest{
		SessionID: f.session.ID,
		Question:  "Why this role?",
	})
	if err != nil {
		t.Fatalf("GenerateAnswer() = %v", err)
	}
	if !resp.Success || resp.Answer != "Generated text." {
		t.Fatalf("response = %+v", resp)
	}

	if len(f.inputs.inputs) != 1 || len(f.outputs.outputs) != 1 {
		t.Fatalf("stored %d inputs, %d outputs; want 1 and 1", len(f.inputs.inputs), len(f.outputs.outputs))
	}
	if f.outputs.outputs[0].ID != f.inputs.inputs[0].ID {
		t.Error("output does not share its input's id")
	}
	if f.answer.calls != 1 {
		t.Errorf("gate consulted %d times, want 1", f.answer.calls)
	}
	if len(f.usage.records) != 1 || !f.usage.records[0].Success {
		t.Errorf("usage records = %+v, want one success", f.usage.records)
	}
}

func TestGenerateAnswerRejectedByGateSkipsProvider(t *testing.T) {
	f := newGenFixture(t)
	f.answer.err = ErrQuotaExceeded

	_, err := f.svc.GenerateAnswer(f.ctx(), &dtos.GenerateAnswerRequest{
		SessionID: f.session.ID,
		Question:  "Why this role?",
	})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("GenerateAnswer() = %v, want ErrQuotaExceeded", err)
	}
	if f.llm.calls != 0 {
		t.Errorf("provider called %d times after gate rejection", f.llm.calls)
	}
	if len(f.inputs.inputs) != 0 {
		t.Error("request log written despite gate rejection")
	}
}

func TestGenerateAnswerAbortsWhenRequestLogFails(t *testing.T) {
	f := newGenFixture(t)
	f.inputs.err = errors.New("insert failed")

	_, err := f.svc.GenerateAnswer(f.ctx(), &dtos.GenerateAnswerRequest{
		SessionID: f.session.ID,
		Question:  "Why this role?",
	})
	if err == nil {
		t.Fatal("GenerateAnswer() succeeded despite request log failure")
	}
	if f.llm.calls != 0 {
		t.Error("provider called without a request log")
	}
}

func TestGenerateAnswerSubstitutesFallbackForEmptyCompletion(t *testing.T) {
	f := newGenFixture(t)
	f.llm.err = ErrEmptyCompletion

	resp, err := f.svc.GenerateAnswer(f.ctx(), &dtos.GenerateAnswerRequest{
		SessionID: f.session.ID,
		Question:  "Why this role?",
	})
	if err != nil {
		t.Fatalf("GenerateAnswer() = %v", err)
	}
	if resp.Answer != "No answer generated." {
		t.Fatalf("answer = %q, want fallback text", resp.Answer)
	}
	if len(f.outputs.outputs) != 1 {
		t.Fatal("fallback answer was not persisted")
	}
}

func TestGenerateAnswerAppendsToHistory(t *testing.T) {
	f := newGenFixture(t)

	for i := 0; i < 3; i++ {
		if _, err := f.svc.GenerateAnswer(f.ctx(), &dtos.GenerateAnswerRequest{
			SessionID: f.session.ID,
			Question:  "Question",
		}); err != nil {
			t.Fatalf("round %d: %v", i+1, err)
		}
	}

	if len(f.inputs.inputs) != 3 || len(f.outputs.outputs) != 3 {
		t.Fatalf("stored %d inputs, %d outputs; want 3 and 3", len(f.inputs.inputs), len(f.outputs.outputs))
	}
	seen := make(map[uuid.UUID]bool)
	for _, in := range f.inputs.inputs {
		if seen[in.ID] {
			t.Fatal("input ids are not unique; history was overwritten")
		}
		seen[in.ID] = true
	}
}

func TestGenerateCoverLettersIsolatesPerJobFailures(t *testing.T) {
	f := newGenFixture(t)

	goodA := uuid.New()
	bad := uuid.New()
	goodB := uuid.New()
	f.jobs.jobs[goodA] = &models.Job{ID: goodA, JobTitle: "Role A", Company: &models.Company{Name: "A Corp"}}
	f.jobs.jobs[bad] = &models.Job{ID: bad, JobTitle: "Doomed Role", Company: &models.Company{Name: "B Corp"}}
	f.jobs.jobs[goodB] = &models.Job{ID: goodB, JobTitle: "Role B", Company: &models.Company{Name: "C Corp"}}
	f.llm.errFor = map[string]error{"Doomed Role": errors.New("provider error")}

	letters, err := f.svc.GenerateCoverLetters(f.ctx(), []dtos.CoverLetterJobRef{
		{ID: goodA}, {ID: bad}, {ID: goodB},
	})
	if err != nil {
		t.Fatalf("GenerateCoverLetters() = %v", err)
	}
	if len(letters) != 2 {
		t.Fatalf("got %d letters, want 2 (failed job skipped)", len(letters))
	}
	for _, letter := range letters {
		if letter.JobID == bad {
			t.Error("letter produced for the failed job")
		}
	}
	if f.letters.calls != 1 {
		t.Errorf("gate consulted %d times for the batch, want 1", f.letters.calls)
	}
	if len(f.requests.requests) != 2 {
		t.Errorf("stored %d request logs, want 2", len(f.requests.requests))
	}
}

func TestGenerateCoverLettersRejectedByGate(t *testing.T) {
	f := newGenFixture(t)
	f.letters.err = ErrQuotaExceeded

	_, err := f.svc.GenerateCoverLetters(f.ctx(), []dtos.CoverLetterJobRef{{ID: f.session.JobID}})
	if !errors.Is(err, ErrQuotaExceeded) {
		t.Fatalf("GenerateCoverLetters() = %v, want ErrQuotaExceeded", err)
	}
	if f.llm.calls != 0 {
		t.Error("provider called after gate rejection")
	}
}

func TestGenerateCoverLettersReplacesExisting(t *testing.T) {
	f := newGenFixture(t)
	jobID := f.session.JobID

	first, err := f.svc.GenerateCoverLetters(f.ctx(), []dtos.CoverLetterJobRef{{ID: jobID}})
	if err != nil || len(first) != 1 {
		t.Fatalf("first batch: letters=%d err=%v", len(first), err)
	}

	f.llm.response = "Revised letter."
	second, err := f.svc.GenerateCoverLetters(f.ctx(), []dtos.CoverLetterJobRef{{ID: jobID}})
	if err != nil || len(second) != 1 {
		t.Fatalf("second batch: letters=%d err=%v", len(second), err)
	}

	all, err := f.svc.ListCoverLetters(f.ctx())
	if err != nil {
		t.Fatalf("ListCoverLetters() = %v", err)
	}
	if len(all) != 1 {
		t.Fatalf("stored %d letters for the job, want 1", len(all))
	}
	if all[0].CoverLetter != "Revised letter." {
		t.Errorf("stored letter = %q, want the regenerated text", all[0].CoverLetter)
	}
}

func TestGenerationRequiresIdentity(t *testing.T) {
	f := newGenFixture(t)

	if _, err := f.svc.GenerateAnswer(context.Background(), &dtos.GenerateAnswerRequest{SessionID: f.session.ID, Question: "q"}); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("GenerateAnswer without identity = %v, want ErrUnauthenticated", err)
	}
	if _, err := f.svc.GenerateCoverLetters(context.Background(), nil); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("GenerateCoverLetters without identity = %v, want ErrUnauthenticated", err)
	}
}
