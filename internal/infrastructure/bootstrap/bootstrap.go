package bootstrap

import (
	"context"
	"time"

	"go.uber.org/zap"

	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/pkg/logger"
)

// TemplateID is the fixed identifier of every template document
const TemplateID = "template"

// templateTime stamps every template so reruns write identical content
var templateTime = time.Unix(0, 0).UTC()

// Template is the placeholder document written into one collection
type Template struct {
	Collection string
	Record     interface{}
}

// Templates returns the six placeholder documents in write order. Each
// record carries every field of its kind at its zero value.
func Templates() []Template {
	return []Template{
		{Collection: repositories.CollectionUsers, Record: &entities.User{
			Role:        entities.UserRoleUser,
			Profile:     &entities.UserProfile{CurrentEducation: &entities.CurrentEducation{}},
			Preferences: &entities.UserPreferences{PreferredLocations: []string{}, PreferredPrograms: []string{}},
			Documents:   []entities.UserDocument{},
			CreatedAt:   templateTime,
			UpdatedAt:   templateTime,
		}},
		{Collection: repositories.CollectionUniversities, Record: &entities.University{
			Type:          entities.UniversityTypePublic,
			Location:      &entities.Location{Coordinates: &entities.Coordinates{}},
			ContactInfo:   &entities.ContactInfo{SocialMedia: &entities.SocialMedia{}},
			Facilities:    []string{},
			Accreditation: []string{},
			CreatedAt:     templateTime,
			UpdatedAt:     templateTime,
		}},
		{Collection: repositories.CollectionApplications, Record: &entities.Application{
			Status:    entities.ApplicationStatusPending,
			Documents: []entities.ApplicationDocument{},
			Timeline:  []entities.TimelineEvent{},
			CreatedAt: templateTime,
			UpdatedAt: templateTime,
		}},
		{Collection: repositories.CollectionAdmins, Record: &entities.Admin{
			Permissions: []string{},
			CreatedAt:   templateTime,
			UpdatedAt:   templateTime,
		}},
		{Collection: repositories.CollectionScrapeJobs, Record: &entities.ScrapeJob{
			Status:    entities.ScrapeStatusPending,
			Results:   map[string]interface{}{},
			CreatedAt: templateTime,
			UpdatedAt: templateTime,
		}},
		{Collection: repositories.CollectionScrapeRequests, Record: &entities.ScrapeRequest{
			Status:    entities.ScrapeStatusPending,
			CreatedAt: templateTime,
			UpdatedAt: templateTime,
		}},
	}
}

// Bootstrapper makes sure every collection exists by writing its template
type Bootstrapper struct {
	store repositories.DocumentStore
}

// NewBootstrapper creates a new bootstrapper
func NewBootstrapper(store repositories.DocumentStore) *Bootstrapper {
	return &Bootstrapper{store: store}
}

// Initialize writes the templates in order and stops at the first failure.
// Errors are logged and reported only as false.
func (b *Bootstrapper) Initialize(ctx context.Context) bool {
	for _, tpl := range Templates() {
		fields, err := entities.EncodeFields(tpl.Record)
		if err != nil {
			logger.Error(ctx, "Failed to encode template", zap.String("collection", tpl.Collection), zap.Error(err))
			return false
		}
		if err := b.store.Set(ctx, tpl.Collection, TemplateID, fields); err != nil {
			logger.Error(ctx, "Failed to initialize collection", zap.String("collection", tpl.Collection), zap.Error(err))
			return false
		}
		logger.Debug(ctx, "Collection initialized", zap.String("collection", tpl.Collection))
	}
	logger.Info(ctx, "All core collections initialized")
	return true
}
