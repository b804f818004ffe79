package usecases

import (
	"context"

	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/pkg/validation"
)

// StatsService counts documents for the operator dashboard
type StatsService struct {
	universities   documentService
	users          documentService
	applications   documentService
	scrapeJobs     documentService
	scrapeRequests documentService
}

// NewStatsService creates a new stats service
func NewStatsService(store repositories.DocumentStore) *StatsService {
	registry := schema.NewDefaultRegistry()
	validator := validation.NewValidator()
	counter := func(collection, entity string) documentService {
		return newDocumentService(store, registry, validator, collection, entity, nil)
	}
	return &StatsService{
		universities:   counter(repositories.CollectionUniversities, "University"),
		users:          counter(repositories.CollectionUsers, "User"),
		applications:   counter(repositories.CollectionApplications, "Application"),
		scrapeJobs:     counter(repositories.CollectionScrapeJobs, "ScrapeJob"),
		scrapeRequests: counter(repositories.CollectionScrapeRequests, "ScrapeRequest"),
	}
}

// Dashboard counts universities, users and applications, plus scrape jobs
// and scrape requests still pending. Counts include every stored document,
// bootstrap templates too. The first store failure aborts the whole call.
func (s *StatsService) Dashboard(ctx context.Context) (*entities.DashboardStats, error) {
	pending := repositories.Query{}.Where("status", string(entities.ScrapeStatusPending))

	stats := &entities.DashboardStats{}
	counts := []struct {
		docs documentService
		q    repositories.Query
		out  *int
	}{
		{s.universities, repositories.Query{}, &stats.TotalUniversities},
		{s.users, repositories.Query{}, &stats.TotalUsers},
		{s.applications, repositories.Query{}, &stats.TotalApplications},
		{s.scrapeJobs, pending, &stats.PendingScrapeJobs},
		{s.scrapeRequests, pending, &stats.PendingScrapeRequests},
	}
	for _, c := range counts {
		n, err := c.docs.count(ctx, c.q)
		if err != nil {
			return nil, err
		}
		*c.out = n
	}
	return stats, nil
}
