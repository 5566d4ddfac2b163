package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/placementflow/placementflow-backend/internal/dtos"
	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/repos"
	"github.com/placementflow/placementflow-backend/internal/requestdata"
)

type ProfileService interface {
	GetProfile(ctx context.Context) (*models.Profile, error)
	UpsertProfile(ctx context.Context, req *dtos.UpsertProfileRequest) (*models.Profile, error)
	GetSkills(ctx context.Context) (*models.SkillsView, error)
	UpsertSkills(ctx context.Context, req *dtos.UpsertSkillsRequest) (*models.SkillsView, error)
	GetCredits(ctx context.Context) (*models.UserCredits, error)
}

type profileService struct {
	log      *logger.Logger
	profiles repos.ProfileRepo
	skills   repos.SkillsRepo
	credits  repos.UserCreditsRepo
}

func NewProfileService(
	log *logger.Logger,
	profiles repos.ProfileRepo,
	skills repos.SkillsRepo,
	credits repos.UserCreditsRepo,
) ProfileService {
	return &profileService{
		log:      log.With("service", "ProfileService"),
		profiles: profiles,
		skills:   skills,
		credits:  credits,
	}
}

func identity(ctx context.Context) (uuid.UUID, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return uuid.Nil, ErrUnauthenticated
	}
	return rd.UserID, nil
}

func (s *profileService) GetProfile(ctx context.Context) (*models.Profile, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	profile, err := s.profiles.GetByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: profile", ErrNotFound)
		}
		return nil, err
	}
	return profile, nil
}

func (s *profileService) UpsertProfile(ctx context.Context, req *dtos.UpsertProfileRequest) (*models.Profile, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	profile := &models.Profile{
		ID:          uuid.New(),
		UserID:      userID,
		FullName:    req.FullName,
		University:  req.University,
		YearOfStudy: req.YearOfStudy,
		Degree:      req.Degree,
	}
	if err := s.profiles.Upsert(ctx, nil, profile); err != nil {
		return nil, fmt.Errorf("store profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) GetSkills(ctx context.Context) (*models.SkillsView, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	view, err := s.skills.GetViewByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: user information", ErrNotFound)
		}
		return nil, err
	}
	return view, nil
}

func (s *profileService) UpsertSkills(ctx context.Context, req *dtos.UpsertSkillsRequest) (*models.SkillsView, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	view := models.SkillsView{
		TechnicalSkills:  req.TechnicalSkills,
		SoftSkills:       req.SoftSkills,
		ExtraCurriculars: req.ExtraCurriculars,
		PersonalProjects: req.PersonalProjects,
	}
	if err := s.skills.Upsert(ctx, nil, userID, view); err != nil {
		return nil, fmt.Errorf("store user information: %w", err)
	}
	return &view, nil
}

func (s *profileService) GetCredits(ctx context.Context) (*models.UserCredits, error) {
	userID, err := identity(ctx)
	if err != nil {
		return nil, err
	}
	credits, err := s.credits.GetByUserID(ctx, nil, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoCreditRecord
		}
		return nil, err
	}
	return credits, nil
}
