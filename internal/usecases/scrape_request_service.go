package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/pkg/logger"
	"scrapemyuni.backend/pkg/validation"
)

// ScrapeRequestService records requests to scrape a university site. The
// scraping itself happens elsewhere and reports back through UpdateStatus.
type ScrapeRequestService struct {
	docs documentService
}

// NewScrapeRequestService creates a new scrape request service
func NewScrapeRequestService(
	store repositories.DocumentStore,
	registry *schema.Registry,
	validator *validation.Validator,
) *ScrapeRequestService {
	return &ScrapeRequestService{
		docs: newDocumentService(store, registry, validator, repositories.CollectionScrapeRequests, "Scrape request", func() interface{} { return &entities.ScrapeRequest{} }),
	}
}

// Submit records a pending request for userID
func (s *ScrapeRequestService) Submit(ctx context.Context, userID string, input *entities.ScrapeRequestInput) (*entities.ScrapeRequest, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("missing user identity")
	}
	if input == nil {
		return nil, domainerrors.BadRequest("scrape request payload is required")
	}

	req := &entities.ScrapeRequest{
		UserID:        userID,
		UniversityURL: input.UniversityURL,
		Status:        entities.ScrapeStatusPending,
	}
	id, err := s.docs.create(ctx, req)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Scrape request submitted",
		zap.String("scrape_request_id", id),
		zap.String("university_url", req.UniversityURL),
	)
	return s.get(ctx, id)
}

// List returns scrape requests, optionally narrowed to one status
func (s *ScrapeRequestService) List(ctx context.Context, status entities.ScrapeStatus) ([]*entities.ScrapeRequest, error) {
	q := repositories.Query{}
	if status != "" {
		q = q.Where("status", status)
	}
	docs, err := s.docs.find(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[entities.ScrapeRequest](docs)
}

// UpdateStatus moves a request along pending -> processing -> completed|failed
func (s *ScrapeRequestService) UpdateStatus(ctx context.Context, id string, next entities.ScrapeStatus) (*entities.ScrapeRequest, error) {
	current, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !current.Status.CanTransitionTo(next) {
		return nil, domainerrors.Conflict(fmt.Sprintf("cannot move scrape request from %s to %s", current.Status, next))
	}
	if err := s.docs.write(ctx, id, map[string]interface{}{"status": string(next)}); err != nil {
		return nil, err
	}
	return s.get(ctx, id)
}

func (s *ScrapeRequestService) get(ctx context.Context, id string) (*entities.ScrapeRequest, error) {
	var req entities.ScrapeRequest
	if err := s.docs.get(ctx, id, &req); err != nil {
		return nil, err
	}
	return &req, nil
}
