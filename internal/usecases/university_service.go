package usecases

import (
	"context"
	"maps"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/pkg/logger"
	"scrapemyuni.backend/pkg/utils"
	"scrapemyuni.backend/pkg/validation"
)

// DefaultTopRanked is the TopRanked size when the caller passes none
const DefaultTopRanked = 10

// deadlineLayouts are the applicationDeadline formats found in scraped data
var deadlineLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"2 January 2006",
}

// UniversityService handles university reads and writes
type UniversityService struct {
	docs     documentService
	programs documentService
}

// NewUniversityService creates a new university service
func NewUniversityService(
	store repositories.DocumentStore,
	registry *schema.Registry,
	validator *validation.Validator,
) *UniversityService {
	return &UniversityService{
		docs:     newDocumentService(store, registry, validator, repositories.CollectionUniversities, "University", func() interface{} { return &entities.University{} }),
		programs: newDocumentService(store, registry, validator, repositories.CollectionPrograms, "Program", func() interface{} { return &entities.Program{} }),
	}
}

// List returns universities matching the recognised filter options.
// Province and type are exact matches, Ranking sorts ascending by ranking
// and Limit caps the result. Page selects a Limit sized window.
func (s *UniversityService) List(ctx context.Context, filter entities.UniversityFilter) ([]*entities.University, error) {
	q := repositories.Query{}
	if filter.Province != "" {
		q = q.Where("location.province", filter.Province)
	}
	if filter.Type != "" {
		q = q.Where("type", filter.Type)
	}
	if filter.Ranking {
		q.OrderBy = &repositories.OrderBy{Field: "ranking"}
	}
	if filter.Limit > 0 {
		q.Limit = filter.Limit
		q.Offset = utils.GetPaginationParams(filter.Page, filter.Limit).CalculateOffset()
	}

	docs, err := s.docs.find(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[entities.University](docs)
}

// Get gets a university by ID
func (s *UniversityService) Get(ctx context.Context, id string) (*entities.University, error) {
	var u entities.University
	if err := s.docs.get(ctx, id, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// GetAll returns every university in identifier order
func (s *UniversityService) GetAll(ctx context.Context) ([]*entities.University, error) {
	docs, err := s.docs.find(ctx, repositories.Query{})
	if err != nil {
		return nil, err
	}
	return decodeDocuments[entities.University](docs)
}

// Search scans the whole collection and keeps universities whose name or
// description contains term (case-insensitive) and that pass the province
// and type filters. Ranking and Limit are not applied.
func (s *UniversityService) Search(ctx context.Context, term string, filter entities.UniversityFilter) ([]*entities.University, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	term = strings.TrimSpace(term)
	out := make([]*entities.University, 0, len(all))
	for _, u := range all {
		if u.Matches(term) && filter.Accepts(u) {
			out = append(out, u)
		}
	}
	return out, nil
}

// Locations returns the sorted distinct provinces and cities across all
// universities. Blank values are skipped.
func (s *UniversityService) Locations(ctx context.Context) (*entities.UniversityLocations, error) {
	all, err := s.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	provinces := map[string]struct{}{}
	cities := map[string]struct{}{}
	for _, u := range all {
		if u.Location == nil {
			continue
		}
		if p := strings.TrimSpace(u.Location.Province); p != "" {
			provinces[p] = struct{}{}
		}
		if c := strings.TrimSpace(u.Location.City); c != "" {
			cities[c] = struct{}{}
		}
	}
	return &entities.UniversityLocations{
		Provinces: sortedKeys(provinces),
		Cities:    sortedKeys(cities),
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := slices.Sorted(maps.Keys(set))
	if out == nil {
		return []string{}
	}
	return out
}

// GetPrograms returns the programs whose universityId equals universityID.
// The university itself is not looked up.
func (s *UniversityService) GetPrograms(ctx context.Context, universityID string) ([]*entities.Program, error) {
	docs, err := s.programs.find(ctx, repositories.Query{}.Where("universityId", universityID))
	if err != nil {
		return nil, err
	}
	return decodeDocuments[entities.Program](docs)
}

// Add creates a university and returns its new identifier
func (s *UniversityService) Add(ctx context.Context, u *entities.University) (string, error) {
	return s.docs.create(ctx, u)
}

// Update merges fields into an existing university
func (s *UniversityService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.docs.patch(ctx, id, fields)
}

// Remove deletes a university. Missing identifiers are not an error.
func (s *UniversityService) Remove(ctx context.Context, id string) error {
	return s.docs.remove(ctx, id)
}

// TopRanked returns up to n universities by ascending ranking. Universities
// without a ranking are left out.
func (s *UniversityService) TopRanked(ctx context.Context, n int) ([]*entities.University, error) {
	if n <= 0 {
		n = DefaultTopRanked
	}
	return s.List(ctx, entities.UniversityFilter{Ranking: true, Limit: n})
}

// OpenAdmissions returns universities currently accepting applications
func (s *UniversityService) OpenAdmissions(ctx context.Context, limit int) ([]*entities.University, error) {
	q := repositories.Query{}.Where("admissionOpen", true)
	if limit > 0 {
		q.Limit = limit
	}
	docs, err := s.docs.find(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[entities.University](docs)
}

// RefreshAdmissionStatus recomputes admissionOpen from applicationDeadline
// for every university. Only changed documents are written.
func (s *UniversityService) RefreshAdmissionStatus(ctx context.Context, now time.Time) (*entities.AdmissionRefreshResult, error) {
	docs, err := s.docs.find(ctx, repositories.Query{})
	if err != nil {
		return nil, err
	}

	result := &entities.AdmissionRefreshResult{}
	for _, doc := range docs {
		raw, _ := doc.Fields["applicationDeadline"].(string)
		deadline, ok := ParseDeadline(raw)
		if !ok {
			result.Skipped++
			continue
		}

		open := deadline.After(now)
		current, _ := doc.Fields["admissionOpen"].(bool)
		if current == open {
			result.Skipped++
			continue
		}

		if err := s.docs.write(ctx, doc.ID, map[string]interface{}{
			"admissionOpen": open,
			"lastUpdated":   now.UTC(),
		}); err != nil {
			logger.Warn(ctx, "Failed to refresh admission status",
				zap.String("university_id", doc.ID),
				zap.Error(err),
			)
			result.Errors++
			continue
		}
		result.Updated++
	}
	return result, nil
}

// ParseDeadline parses an applicationDeadline in any of the known layouts.
// The deadline runs to the end of that day.
func ParseDeadline(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Add(24*time.Hour - time.Nanosecond), true
		}
	}
	return time.Time{}, false
}
