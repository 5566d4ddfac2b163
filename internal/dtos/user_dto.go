package dtos

import (
	"github.com/google/uuid"

	"github.com/placementflow/placementflow-backend/internal/models"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	FullName string `json:"full_name" binding:"required"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpsertProfileRequest struct {
	FullName    string `json:"full_name" binding:"required"`
	University  string `json:"university"`
	YearOfStudy string `json:"year_of_study"`
	Degree      string `json:"degree"`
}

type UpsertSkillsRequest struct {
	TechnicalSkills  string            `json:"technical_skills"`
	SoftSkills       string            `json:"soft_skills"`
	ExtraCurriculars []models.ListItem `json:"extra_curriculars"`
	PersonalProjects []models.ListItem `json:"personal_projects"`
}

type UpsertTrackingRequest struct {
	JobID         uuid.UUID `json:"job_id" binding:"required"`
	Status        string    `json:"status"`
	AutoFavourite bool      `json:"auto_favourite"`
}

type CreateSessionRequest struct {
	JobID uuid.UUID `json:"job_id" binding:"required"`
}
