package service

import (
	"context"
	"strings"

	"gastronet/internal/models"
	"gastronet/internal/repository"
)

// JobService provides job-offer business logic.
type JobService struct {
	jobRepo  repository.JobRepository
	userRepo repository.UserRepository
}

// CreateJobOfferInput is the input for publishing a job offer.
type CreateJobOfferInput struct {
	OwnerID     uint
	Title       string
	Description string
	Position    string
	Location    string
	Salary      string
}

// NewJobService returns a new JobService.
func NewJobService(jobRepo repository.JobRepository, userRepo repository.UserRepository) *JobService {
	return &JobService{jobRepo: jobRepo, userRepo: userRepo}
}

// CreateJobOffer publishes a job offer. Only restaurant owners and
// restaurants may publish.
func (s *JobService) CreateJobOffer(ctx context.Context, in CreateJobOfferInput) (*models.JobOffer, error) {
	owner, err := s.userRepo.GetByID(ctx, in.OwnerID)
	if err != nil {
		return nil, err
	}
	if owner.Role != models.RoleRestaurantOwner && owner.Role != models.RoleRestaurant {
		return nil, models.NewForbiddenError("Only restaurant accounts can publish job offers")
	}

	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, models.NewValidationError("Job offer title is required")
	}
	position := strings.TrimSpace(in.Position)
	if position == "" {
		return nil, models.NewValidationError("Job offer position is required")
	}

	offer := &models.JobOffer{
		OwnerID:     in.OwnerID,
		Title:       title,
		Description: strings.TrimSpace(in.Description),
		Position:    position,
		Location:    strings.TrimSpace(in.Location),
		Salary:      strings.TrimSpace(in.Salary),
		Status:      models.JobOfferStatusActive,
	}
	if err := s.jobRepo.Create(ctx, offer); err != nil {
		return nil, err
	}
	return offer, nil
}

func (s *JobService) GetJobOffer(ctx context.Context, id uint) (*models.JobOffer, error) {
	return s.jobRepo.GetByID(ctx, id)
}

func (s *JobService) ListActiveOffers(ctx context.Context, limit, offset int) ([]*models.JobOffer, error) {
	return s.jobRepo.ListActive(ctx, limit, offset)
}

func (s *JobService) ListOwnerOffers(ctx context.Context, ownerID uint) ([]*models.JobOffer, error) {
	return s.jobRepo.ListByOwner(ctx, ownerID)
}

// CloseJobOffer marks an offer closed. Only the owner may close it.
func (s *JobService) CloseJobOffer(ctx context.Context, offerID, userID uint) error {
	offer, err := s.jobRepo.GetByID(ctx, offerID)
	if err != nil {
		return err
	}
	if offer.OwnerID != userID {
		return models.NewForbiddenError("You can only close your own job offers")
	}
	if offer.Status == models.JobOfferStatusClosed {
		return nil
	}
	return s.jobRepo.UpdateStatus(ctx, offerID, models.JobOfferStatusClosed)
}
