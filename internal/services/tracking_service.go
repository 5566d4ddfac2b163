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

type TrackingService interface {
	List(ctx context.Context) ([]models.Tracking, error)
	Upsert(ctx context.Context, req *dtos.UpsertTrackingRequest) (*models.Tracking, error)
	Delete(ctx context.Context, jobID uuid.UUID) error
}

type trackingService struct {
	log      *logger.Logger
	tracking repos.TrackingRepo
	jobs     repos.JobRepo
}

func NewTrackingService(log *logger.Logger, tracking repos.TrackingRepo, jobs repos.JobRepo) TrackingService {
	return &trackingService{
		log:      log.With("service", "TrackingService"),
		tracking: tracking,
		jobs:     jobs,
	}
}

func (s *trackingService) List(ctx context.Context) ([]models.Tracking, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}
	return s.tracking.ListByUser(ctx, nil, rd.UserID)
}

func (s *trackingService) Upsert(ctx context.Context, req *dtos.UpsertTrackingRequest) (*models.Tracking, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return nil, ErrUnauthenticated
	}

	status := req.Status
	if status == "" {
		status = models.TrackingStatusNotApplied
	}
	if !models.ValidTrackingStatus(status) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	if _, err := s.jobs.GetByID(ctx, nil, req.JobID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: job %s", ErrNotFound, req.JobID)
		}
		return nil, fmt.Errorf("fetch job: %w", err)
	}

	entry := &models.Tracking{
		ID:            uuid.New(),
		UserID:        rd.UserID,
		JobID:         req.JobID,
		Status:        status,
		AutoFavourite: req.AutoFavourite,
	}
	if err := s.tracking.Upsert(ctx, nil, entry); err != nil {
		return nil, fmt.Errorf("store tracking entry: %w", err)
	}
	return entry, nil
}

func (s *trackingService) Delete(ctx context.Context, jobID uuid.UUID) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil {
		return ErrUnauthenticated
	}
	return s.tracking.DeleteByUserAndJob(ctx, nil, rd.UserID, jobID)
}
