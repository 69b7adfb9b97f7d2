package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-hrms/internal/domain/entity"
	repo "github.com/oksasatya/go-hrms/internal/domain/repository"
)

// JobExperienceIndex mirrors job experiences into a search engine.
type JobExperienceIndex interface {
	Put(ctx context.Context, j entity.JobExperience) error
	Search(ctx context.Context, q string, size int) ([]entity.JobExperience, error)
}

type JobExperienceService struct {
	Users       repo.UserRepository
	Experiences repo.JobExperienceRepository
	Index       JobExperienceIndex
	Logger      *logrus.Logger
}

type JobExperienceInput struct {
	WorkplaceName string
	Position      string
	StartDate     time.Time
	EndDate       *time.Time
}

// Add attaches a job experience to an existing candidate.
func (s *JobExperienceService) Add(ctx context.Context, candidateID int64, in JobExperienceInput) (*entity.JobExperience, error) {
	if in.StartDate.IsZero() {
		return nil, ErrStartDateRequired
	}
	if in.EndDate != nil && in.EndDate.Before(in.StartDate) {
		return nil, ErrInvalidDateRange
	}
	if err := s.ensureCandidate(ctx, candidateID); err != nil {
		return nil, err
	}

	j := &entity.JobExperience{
		CandidateID:   candidateID,
		WorkplaceName: strings.TrimSpace(in.WorkplaceName),
		Position:      strings.TrimSpace(in.Position),
		StartDate:     in.StartDate,
		EndDate:       in.EndDate,
	}
	if err := s.Experiences.Create(ctx, j); err != nil {
		return nil, err
	}

	if s.Index != nil {
		if err := s.Index.Put(ctx, *j); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("job_experience_id", j.ID).Warn("es index failed")
		}
	}
	return j, nil
}

func (s *JobExperienceService) FindByID(ctx context.Context, id int64) (*entity.JobExperience, error) {
	j, err := s.Experiences.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrJobExperienceNotFound
	}
	return j, err
}

func (s *JobExperienceService) FindAll(ctx context.Context) ([]entity.JobExperience, error) {
	return s.Experiences.List(ctx)
}

func (s *JobExperienceService) FindByCandidate(ctx context.Context, candidateID int64) ([]entity.JobExperience, error) {
	if err := s.ensureCandidate(ctx, candidateID); err != nil {
		return nil, err
	}
	return s.Experiences.ListByCandidate(ctx, candidateID)
}

// Search returns matches from the search index, or nothing when no index is configured.
func (s *JobExperienceService) Search(ctx context.Context, q string, size int) ([]entity.JobExperience, error) {
	if s.Index == nil || strings.TrimSpace(q) == "" {
		return []entity.JobExperience{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.Index.Search(ctx, strings.TrimSpace(q), size)
}

func (s *JobExperienceService) ensureCandidate(ctx context.Context, id int64) error {
	_, err := s.Users.GetCandidate(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
