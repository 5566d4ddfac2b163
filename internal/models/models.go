package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type User struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string    `gorm:"not null;column:password" json:"-"`
	FullName  string    `gorm:"column:full_name" json:"full_name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (User) TableName() string { return "users" }

// Profile holds the structured personal facts interpolated into cover
// letter prompts.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	FullName    string    `gorm:"column:full_name" json:"full_name"`
	University  string    `gorm:"column:university" json:"university"`
	YearOfStudy string    `gorm:"column:year_of_study" json:"year_of_study"`
	Degree      string    `gorm:"column:degree" json:"degree"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "individual_information" }

// SkillsProfile stores the free-text skills plus the two list-typed
// fields. The list columns hold JSON-encoded []ListItem text; nothing
// outside the repo layer should touch the raw strings.
type SkillsProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	TechnicalSkills  string    `gorm:"type:text;column:technical_skills" json:"technical_skills"`
	SoftSkills       string    `gorm:"type:text;column:soft_skills" json:"soft_skills"`
	ExtraCurriculars string    `gorm:"type:text;column:extra_curriculars" json:"-"`
	PersonalProjects string    `gorm:"type:text;column:personal_projects" json:"-"`
	CreatedAt        time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (SkillsProfile) TableName() string { return "user_information" }

// SkillsView is the decoded shape of a SkillsProfile handed to callers.
type SkillsView struct {
	TechnicalSkills  string     `json:"technical_skills"`
	SoftSkills       string     `json:"soft_skills"`
	ExtraCurriculars []ListItem `json:"extra_curriculars"`
	PersonalProjects []ListItem `json:"personal_projects"`
}

func (s *SkillsProfile) View() SkillsView {
	return SkillsView{
		TechnicalSkills:  s.TechnicalSkills,
		SoftSkills:       s.SoftSkills,
		ExtraCurriculars: DecodeItemList(s.ExtraCurriculars),
		PersonalProjects: DecodeItemList(s.PersonalProjects),
	}
}

type Company struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name      string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`

	Jobs []Job `json:"jobs,omitempty"`
}

func (Company) TableName() string { return "companies" }

// Job rows are written by an external ingestion process and are
// read-only to this service.
type Job struct {
	ID          uuid.UUID  `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	CompanyID   uuid.UUID  `gorm:"type:uuid;not null;index" json:"company_id"`
	Company     *Company   `gorm:"foreignKey:CompanyID;references:ID" json:"company,omitempty"`
	JobTitle    string     `gorm:"not null;column:job_title" json:"job_title"`
	Description string     `gorm:"type:text;column:description" json:"description"`
	Deadline    *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	Location    string     `gorm:"column:location" json:"location"`
	Category    string     `gorm:"column:category" json:"category"`
	Salary      string     `gorm:"column:salary" json:"salary"`
	CreatedAt   time.Time  `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:now()" json:"updated_at"`
}

func (Job) TableName() string { return "jobs" }

// ChatSession groups the question/answer exchanges for one (user, job)
// pair. Created lazily on the first question, never deleted.
type ChatSession struct {
	ID        uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_sessions_user_job" json:"user_id"`
	JobID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_chat_sessions_user_job" json:"job_id"`
	Job       *Job      `gorm:"foreignKey:JobID;references:ID" json:"job,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (ChatSession) TableName() string { return "chat_sessions" }

// ChatInput is one answer-generation request. Immutable once written.
type ChatInput struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID uuid.UUID `gorm:"type:uuid;not null;index" json:"session_id"`
	Question  string    `gorm:"type:text;not null" json:"question"`
	Comment   *string   `gorm:"type:text" json:"comment,omitempty"`
	WordLimit *int      `gorm:"column:word_limit" json:"word_limit,omitempty"`
	InputSize int       `gorm:"column:input_size" json:"input_size"`
	TokenSize int       `gorm:"column:token_size" json:"token_size"`
	CreatedAt time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ChatInput) TableName() string { return "chat_inputs" }

// ChatOutput shares its id with the ChatInput that produced it, so an
// output can never exist without its request.
type ChatOutput struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Answer       string    `gorm:"type:text;not null" json:"answer"`
	OutputTokens *int      `gorm:"column:output_tokens" json:"output_tokens,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (ChatOutput) TableName() string { return "chat_outputs" }

// GenerationRequest is the usage log for cover-letter generations.
type GenerationRequest struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	Input       string    `gorm:"type:text;column:input" json:"input"`
	TokenInput  int       `gorm:"column:token_input" json:"token_input"`
	TokenOutput int       `gorm:"column:token_output" json:"token_output"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
}

func (GenerationRequest) TableName() string { return "requests" }

// CoverLetter keeps at most one letter per (user, job); regeneration
// replaces the prior text.
type CoverLetter struct {
	ID          uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cover_letters_user_job" json:"user_id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cover_letters_user_job" json:"job_id"`
	CoverLetter string    `gorm:"type:text;not null;column:cover_letter" json:"cover_letter"`
	CreatedAt   time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (CoverLetter) TableName() string { return "cover_letters" }

// UserCredits holds the per-feature consumable allowances used by the
// balance gate policy. Replenishment happens outside this service.
type UserCredits struct {
	ID                 uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID             uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	CoverLetterCredits int       `gorm:"not null;default:0;column:cover_letter_credits" json:"cover_letter_credits"`
	ResolveAICredits   int       `gorm:"not null;default:0;column:resolve_ai_credits" json:"resolve_ai_credits"`
	CreatedAt          time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt          time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (UserCredits) TableName() string { return "user_credits" }

type Tracking struct {
	ID            uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_user_job" json:"user_id"`
	JobID         uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tracking_user_job" json:"job_id"`
	Job           *Job      `gorm:"foreignKey:JobID;references:ID" json:"job,omitempty"`
	Status        string    `gorm:"not null;default:'Not Applied'" json:"status"`
	AutoFavourite bool      `gorm:"not null;default:false;column:auto_favourite" json:"auto_favourite"`
	CreatedAt     time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Tracking) TableName() string { return "tracking" }

// AICallLog is bookkeeping around each generation call. Writes to it
// must never block returning the generated content.
type AICallLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index" json:"user_id,omitempty"`
	ContextID *uuid.UUID     `gorm:"type:uuid;index" json:"context_id,omitempty"`
	CallType  string         `gorm:"not null;column:call_type" json:"call_type"`
	Model     string         `gorm:"not null;column:model" json:"model"`
	Prompt    string         `gorm:"type:text;column:prompt" json:"prompt"`
	Response  string         `gorm:"type:text;column:response" json:"response"`
	Success   bool           `gorm:"not null;column:success" json:"success"`
	Error     string         `gorm:"column:error" json:"error"`
	Usage     datatypes.JSON `gorm:"type:jsonb;column:usage" json:"usage"`
	CreatedAt time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AICallLog) TableName() string { return "ai_call_logs" }

// TrackingStatusNotApplied is the status a tracked job carries until
// the user picks one.
const TrackingStatusNotApplied = "Not Applied"

// TrackingStatusOptions is the fixed set of statuses a tracked job may
// carry.
var TrackingStatusOptions = []string{
	"Application Submitted",
	"Online Assessment",
	"Case Study",
	"HireVue",
	"Telephone Interview",
	"Video Interview",
	"Face-to-face Interview",
	"Assessment Centre",
	"Offer Received",
	"Rejected",
	"Not Interested",
	TrackingStatusNotApplied,
}

func ValidTrackingStatus(status string) bool {
	for _, s := range TrackingStatusOptions {
		if s == status {
			return true
		}
	}
	return false
}
