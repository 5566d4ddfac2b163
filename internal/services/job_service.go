package services

import (
	"context"
	"strings"

	"github.com/placementflow/placementflow-backend/internal/logger"
	"github.com/placementflow/placementflow-backend/internal/models"
	"github.com/placementflow/placementflow-backend/internal/repos"
)

// JobPageSize is the fixed number of listings per page.
const JobPageSize = 20

// JobFilter narrows a job listing. All populated criteria must match
// for a job to be kept.
type JobFilter struct {
	// Search matches as a case-insensitive substring of the job title
	// or the company name.
	Search string
	// Company matches the company name exactly.
	Company string
	// Categories keeps jobs whose category equals any entry.
	Categories []string
	// Locations keeps jobs whose location equals any entry,
	// case-insensitively.
	Locations []string
}

type JobPage struct {
	Jobs       []models.Job `json:"jobs"`
	Total      int          `json:"total"`
	Page       int          `json:"page"`
	TotalPages int          `json:"total_pages"`
	PageSize   int          `json:"page_size"`
}

type JobService interface {
	ListJobs(ctx context.Context, filter JobFilter, page int) (*JobPage, error)
}

type jobService struct {
	log  *logger.Logger
	jobs repos.JobRepo
}

func NewJobService(log *logger.Logger, jobs repos.JobRepo) JobService {
	return &jobService{
		log:  log.With("service", "JobService"),
		jobs: jobs,
	}
}

func (s *jobService) ListJobs(ctx context.Context, filter JobFilter, page int) (*JobPage, error) {
	all, err := s.jobs.ListAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	filtered := FilterJobs(all, filter)
	return PaginateJobs(filtered, page), nil
}

// FilterJobs applies every populated criterion of filter to jobs and
// returns the survivors in their original order.
func FilterJobs(jobs []models.Job, filter JobFilter) []models.Job {
	out := make([]models.Job, 0, len(jobs))
	for _, job := range jobs {
		if matchesFilter(&job, filter) {
			out = append(out, job)
		}
	}
	return out
}

func matchesFilter(job *models.Job, filter JobFilter) bool {
	companyName := ""
	if job.Company != nil {
		companyName = job.Company.Name
	}

	if filter.Search != "" {
		needle := strings.ToLower(filter.Search)
		if !strings.Contains(strings.ToLower(job.JobTitle), needle) &&
			!strings.Contains(strings.ToLower(companyName), needle) {
			return false
		}
	}
	if filter.Company != "" && companyName != filter.Company {
		return false
	}
	// A job's category and location columns may themselves hold
	// comma-separated lists; any segment matching any filter entry
	// keeps the job.
	if len(filter.Categories) > 0 && !anySegmentMatches(job.Category, filter.Categories, false) {
		return false
	}
	if len(filter.Locations) > 0 && !anySegmentMatches(job.Location, filter.Locations, true) {
		return false
	}
	return true
}

func anySegmentMatches(raw string, wanted []string, fold bool) bool {
	for _, segment := range strings.Split(raw, ",") {
		segment = strings.TrimSpace(segment)
		for _, candidate := range wanted {
			if fold && strings.EqualFold(candidate, segment) {
				return true
			}
			if !fold && candidate == segment {
				return true
			}
		}
	}
	return false
}

// PaginateJobs slices jobs into the requested 1-based page. Pages past
// the end come back empty rather than erroring.
func PaginateJobs(jobs []models.Job, page int) *JobPage {
	if page < 1 {
		page = 1
	}
	total := len(jobs)
	totalPages := (total + JobPageSize - 1) / JobPageSize
	if totalPages == 0 {
		totalPages = 1
	}

	start := (page - 1) * JobPageSize
	if start > total {
		start = total
	}
	end := start + JobPageSize
	if end > total {
		end = total
	}

	return &JobPage{
		Jobs:       jobs[start:end],
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
		PageSize:   JobPageSize,
	}
}
