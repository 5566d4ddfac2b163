package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/placementflow/placementflow-backend/internal/dtos"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/repos"
	"github.com/placementflow/placementflow-backend/internal/requestdata"
)

const (
	callTypeAnswer      = "generate_answer"
	callTypeCoverLetter = "generate_cover_letter"

	// Substituted when the provider returns an empty answer; cover
	// letters treat the same condition as a hard failure.
	answerFallbackText = "No answer generated."
)

// GenerationService runs the metered generation workflow: resolve
// identity, gate, assemble, generate, record, persist. Strictly linear,
// no retries; a failure at any step aborts that request.
type GenerationService interface {
	GenerateAnswer(ctx context.Context, req *dtos.GenerateAnswerRequest) (*dtos.GenerateAnswerResponse, error)
	GenerateCoverLetters(ctx context.Context, jobRefs []dtos.CoverLetterJobRef) ([]models.CoverLetter, error)
	ListCoverLetters(ctx context.Context) ([]models.CoverLetter, error)
}

type generationService struct {
	log             *logger.Logger
	llm             LLMService
	tokens          *TokenCounter
	usage           UsageRecorder
	answerGate      Gate
	coverLetterGate Gate

	sessions repos.ChatSessionRepo
	inputs   repos.ChatInputRepo
	outputs  repos.ChatOutputRepo
	requests repos.GenerationRequestRepo
	letters  repos.CoverLetterRepo
	profiles repos.ProfileRepo
	skills   repos.SkillsRepo
	jobs     repos.JobRepo
}

func NewGenerationService(
	log *logger.Logger,
	llm LLMService,
	tokens *TokenCounter,
	usage UsageRecorder,
	answerGate Gate,
	coverLetterGate Gate,
	sessions repos.ChatSessionRepo,
	inputs repos.ChatInputRepo,
	outputs repos.ChatOutputRepo,
	requests repos.GenerationRequestRepo,
	letters repos.CoverLetterRepo,
	profiles repos.ProfileRepo,
	skills repos.SkillsRepo,
	jobs repos.JobRepo,
) GenerationService {
	return &generationService{
		log:             log.With("service", "GenerationService"),
		llm:             llm,
		tokens:          tokens,
		usage:           usage,
		answerGate:      answerGate,
		coverLetterGate: coverLetterGate,
		sessions:        sessions,
		inputs:          inputs,
		outputs:         outputs,
		requests:        requests,
		letters:         letters,
		profiles:        profiles,
		skills:          skills,
		jobs:            jobs,
	}
}

func (s *generationService) GenerateAnswer(ctx context.Context, req *dtos.GenerateAnswerRequest) (*dtos.GenerateAnswerResponse, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}

	session, err := s.sessions.GetForUser(ctx, nil, rd.UserID, req.SessionID)
	if err != nil {
		return nil, fmt.Errorf("fetch session: %w", err)
	}
	if session.Job == nil || session.Job.Company == nil {
		return nil, fmt.Errorf("session %s has no job or company attached", session.ID)
	}

	skills, err := s.skills.GetViewByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("fetch user information: %w", err)
	}

	// Gate after input validation, before anything costly or recorded.
	if err := s.answerGate.Allow(ctx, rd.UserID); err != nil {
		return nil, err
	}

	prompt := BuildAnswerPrompt(AnswerPromptInput{
		CompanyName:    session.Job.Company.Name,
		JobTitle:       session.Job.JobTitle,
		JobDescription: session.Job.Description,
		Skills:         *skills,
		Question:       req.Question,
		Comment:        req.Comment,
		WordLimit:      req.WordLimit,
	})

	// The request log is written before the provider call: no
	// generation may run without a record. A failed write aborts.
	var comment *string
	if req.Comment != "" {
		c := req.Comment
		comment = &c
	}
	input := &models.ChatInput{
		ID:        uuid.New(),
		SessionID: session.ID,
		Question:  req.Question,
		Comment:   comment,
		WordLimit: req.WordLimit,
		InputSize: len(prompt),
		TokenSize: s.tokens.Count(prompt),
	}
	if err := s.inputs.Create(ctx, nil, input); err != nil {
		return nil, fmt.Errorf("store chat input: %w", err)
	}

	start := time.Now()
	answer, usage, err := s.llm.Complete(ctx, AnswerSystemPrompt, prompt)
	elapsed := time.Since(start)

	if errors.Is(err, ErrEmptyCompletion) {
		answer = answerFallbackText
		err = nil
	}
	if err != nil {
		s.usage.Record(ctx, UsageRecord{
			UserID:       rd.UserID,
			ContextID:    &input.ID,
			CallType:     callTypeAnswer,
			Model:        s.llm.Model(),
			Prompt:       prompt,
			Success:      false,
			Err:          err,
			PromptTokens: input.TokenSize,
			Elapsed:      elapsed,
		})
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	outputTokens := usage.CompletionTokens
	if outputTokens == 0 {
		outputTokens = s.tokens.Count(answer)
	}

	output := &models.ChatOutput{
		ID:           input.ID,
		Answer:       answer,
		OutputTokens: &outputTokens,
	}
	if err := s.outputs.Create(ctx, nil, output); err != nil {
		return nil, fmt.Errorf("store chat output: %w", err)
	}

	s.usage.Record(ctx, UsageRecord{
		UserID:           rd.UserID,
		ContextID:        &input.ID,
		CallType:         callTypeAnswer,
		Model:            s.llm.Model(),
		Prompt:           prompt,
		Response:         answer,
		Success:          true,
		PromptTokens:     input.TokenSize,
		CompletionTokens: outputTokens,
		Elapsed:          elapsed,
	})

	return &dtos.GenerateAnswerResponse{
		Success:   true,
		Answer:    answer,
		InputID:   input.ID,
		SessionID: session.ID,
	}, nil
}

// GenerateCoverLetters iterates the requested jobs and isolates per-job
// failures: a job whose lookup, generation, or persistence fails is
// skipped, and the remaining jobs still produce letters. Callers detect
// partial failure by comparing result length to request length.
func (s *generationService) GenerateCoverLetters(ctx context.Context, jobRefs []dtos.CoverLetterJobRef) ([]models.CoverLetter, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}

	if err := s.coverLetterGate.Allow(ctx, rd.UserID); err != nil {
		return nil, err
	}

	profile, err := s.profiles.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: individual information", ErrNotFound)
	}
	skills, err := s.skills.GetViewByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: user information", ErrNotFound)
	}

	results := make([]models.CoverLetter, 0, len(jobRefs))
	for _, ref := range jobRefs {
		letter, err := s.generateOneCoverLetter(ctx, rd.UserID, ref.ID, profile, skills)
		if err != nil {
			s.log.Warn("Skipping job in cover letter batch",
				"job_id", ref.ID,
				"user_id", rd.UserID,
				"error", err,
			)
			continue
		}
		results = append(results, *letter)
	}
	return results, nil
}

func (s *generationService) generateOneCoverLetter(
	ctx context.Context,
	userID, jobID uuid.UUID,
	profile *models.Profile,
	skills *models.SkillsView,
) (*models.CoverLetter, error) {
	job, err := s.jobs.GetByID(ctx, nil, jobID)
	if err != nil {
		return nil, fmt.Errorf("fetch job: %w", err)
	}
	companyName := ""
	if job.Company != nil {
		companyName = job.Company.Name
	}

	prompt := BuildCoverLetterPrompt(CoverLetterPromptInput{
		Profile:     *profile,
		Skills:      *skills,
		JobTitle:    job.JobTitle,
		Category:    job.Category,
		Description: job.Description,
		CompanyName: companyName,
	})
	tokenInput := s.tokens.Count(prompt)

	start := time.Now()
	text, usage, err := s.llm.Complete(ctx, CoverLetterSystemPrompt, prompt)
	elapsed := time.Since(start)
	if err != nil {
		// Empty output is a hard failure for cover letters.
		s.usage.Record(ctx, UsageRecord{
			UserID:       userID,
			ContextID:    &jobID,
			CallType:     callTypeCoverLetter,
			Model:        s.llm.Model(),
			Prompt:       prompt,
			Success:      false,
			Err:          err,
			PromptTokens: tokenInput,
			Elapsed:      elapsed,
		})
		return nil, fmt.Errorf("generate cover letter: %w", err)
	}

	tokenOutput := usage.CompletionTokens
	if tokenOutput == 0 {
		tokenOutput = s.tokens.Count(text)
	}

	request := &models.GenerationRequest{
		ID:          uuid.New(),
		UserID:      userID,
		JobID:       jobID,
		Input:       prompt,
		TokenInput:  tokenInput,
		TokenOutput: tokenOutput,
	}
	if err := s.requests.Create(ctx, nil, request); err != nil {
		return nil, fmt.Errorf("store request log: %w", err)
	}

	s.usage.Record(ctx, UsageRecord{
		UserID:           userID,
		ContextID:        &jobID,
		CallType:         callTypeCoverLetter,
		Model:            s.llm.Model(),
		Prompt:           prompt,
		Response:         text,
		Success:          true,
		PromptTokens:     tokenInput,
		CompletionTokens: tokenOutput,
		Elapsed:          elapsed,
	})

	letter := &models.CoverLetter{
		ID:          uuid.New(),
		UserID:      userID,
		JobID:       jobID,
		CoverLetter: text,
	}
	stored, err := s.letters.Upsert(ctx, nil, letter)
	if err != nil {
		return nil, fmt.Errorf("store cover letter: %w", err)
	}
	return stored, nil
}

func (s *generationService) ListCoverLetters(ctx context.Context) ([]models.CoverLetter, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}
	return s.letters.ListByUser(ctx, nil, rd.UserID)
}
