package dtos

import "github.com/google/uuid"

type GenerateAnswerRequest struct {
	SessionID uuid.UUID `json:"session_id" binding:"required"`
	Question  string    `json:"question" binding:"required"`

	// Optional Fields
	Comment   string `json:"comment"`
	WordLimit *int   `json:"word_limit"`
}

type GenerateAnswerResponse struct {
	Success   bool      `json:"success"`
	Answer    string    `json:"answer"`
	InputID   uuid.UUID `json:"input_id"`
	SessionID uuid.UUID `json:"session_id"`
}

// CoverLetterJobRef is what the client sends per job; only the id is
// trusted, the full row is re-fetched server side.
type CoverLetterJobRef struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	JobTitle    string    `json:"job_title"`
	Description string    `json:"description"`
}

type GenerateCoverLettersRequest struct {
	Jobs []CoverLetterJobRef `json:"jobs" binding:"required"`
}
