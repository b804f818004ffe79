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

// ApplicationService is the store side of the Application API. Every call
// is made on behalf of a user and only touches that user's applications.
type ApplicationService struct {
	docs         documentService
	universities documentService
}

// NewApplicationService creates a new application service
func NewApplicationService(
	store repositories.DocumentStore,
	registry *schema.Registry,
	validator *validation.Validator,
) *ApplicationService {
	return &ApplicationService{
		docs:         newDocumentService(store, registry, validator, repositories.CollectionApplications, "Application", func() interface{} { return &entities.Application{} }),
		universities: newDocumentService(store, registry, validator, repositories.CollectionUniversities, "University", func() interface{} { return &entities.University{} }),
	}
}

// ListByUser returns the user's applications, optionally narrowed to one status
func (s *ApplicationService) ListByUser(ctx context.Context, userID string, status entities.ApplicationStatus) ([]*entities.Application, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("missing user identity")
	}
	q := repositories.Query{}.Where("userId", userID)
	if status != "" {
		if !status.Valid() {
			return nil, domainerrors.BadRequest(fmt.Sprintf("unknown application status %q", status))
		}
		q = q.Where("status", status)
	}

	docs, err := s.docs.find(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeDocuments[entities.Application](docs)
}

// Get returns an application owned by userID
func (s *ApplicationService) Get(ctx context.Context, userID, id string) (*entities.Application, error) {
	var app entities.Application
	if err := s.docs.get(ctx, id, &app); err != nil {
		return nil, err
	}
	if app.UserID != userID {
		logger.Warn(ctx, "Application access denied",
			zap.String("application_id", id),
			zap.String("user_id", userID),
		)
		return nil, domainerrors.Forbidden("You do not have permission to access this application")
	}
	return &app, nil
}

// Create starts a new application in status pending with its first
// timeline event. The referenced university must exist.
func (s *ApplicationService) Create(ctx context.Context, userID string, input *entities.ApplicationCreateInput) (*entities.Application, error) {
	if userID == "" {
		return nil, domainerrors.Unauthorized("missing user identity")
	}
	if input == nil {
		return nil, domainerrors.BadRequest("application payload is required")
	}
	if err := s.docs.validator.ValidateStruct(input); err != nil {
		return nil, domainerrors.ValidationFailed("Application payload failed validation", err, validation.FormatValidationErrors(err))
	}

	var university entities.University
	if err := s.universities.get(ctx, input.UniversityID, &university); err != nil {
		return nil, err
	}

	now := s.docs.now()
	app := &entities.Application{
		UserID:          userID,
		ProgramID:       input.ProgramID,
		UniversityID:    input.UniversityID,
		Status:          entities.ApplicationStatusPending,
		Documents:       input.Documents,
		ApplicationData: input.ApplicationData,
		Notes:           input.Notes,
		Timeline: []entities.TimelineEvent{{
			Status: entities.ApplicationStatusPending,
			Date:   now,
			Notes:  "Application created",
		}},
	}
	for i := range app.Documents {
		if app.Documents[i].Status == "" {
			app.Documents[i].Status = entities.DocumentStatusPending
		}
		if app.Documents[i].UploadedAt.IsZero() {
			app.Documents[i].UploadedAt = now
		}
	}

	id, err := s.docs.create(ctx, app)
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "Application created",
		zap.String("application_id", id),
		zap.String("university_id", app.UniversityID),
	)
	return s.Get(ctx, userID, id)
}

// Update merges fields into the user's application and returns the result.
// A status change is recorded on the timeline; the timeline itself cannot
// be written directly.
func (s *ApplicationService) Update(ctx context.Context, userID, id string, fields map[string]interface{}) (*entities.Application, error) {
	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	patch := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		switch k {
		case "timeline":
			return nil, domainerrors.ValidationFailed("Application payload failed validation", nil,
				map[string]string{"timeline": "timeline is append-only; change status instead"})
		case "userId":
			if v != userID {
				return nil, domainerrors.Forbidden("application owner cannot be changed")
			}
			continue
		case "status", "submittedAt":
			continue
		}
		patch[k] = v
	}

	if raw, ok := fields["status"]; ok {
		status, _ := raw.(string)
		next := entities.ApplicationStatus(status)
		if next != current.Status {
			notes, _ := fields["notes"].(string)
			if err := s.applyStatus(ctx, current, next, notes, patch); err != nil {
				return nil, err
			}
			return s.Get(ctx, userID, id)
		}
	}

	if len(patch) > 0 {
		if err := s.docs.patch(ctx, id, patch); err != nil {
			return nil, err
		}
	}
	return s.Get(ctx, userID, id)
}

// UpdateStatus moves the user's application to a new status and appends a
// timeline event.
func (s *ApplicationService) UpdateStatus(ctx context.Context, userID, id string, input *entities.ApplicationStatusInput) (*entities.Application, error) {
	if input == nil {
		return nil, domainerrors.BadRequest("status payload is required")
	}
	if err := s.docs.validator.ValidateStruct(input); err != nil {
		return nil, domainerrors.ValidationFailed("Application status failed validation", err, validation.FormatValidationErrors(err))
	}

	current, err := s.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.applyStatus(ctx, current, input.Status, input.Notes, map[string]interface{}{}); err != nil {
		return nil, err
	}
	return s.Get(ctx, userID, id)
}

// Delete removes the user's application
func (s *ApplicationService) Delete(ctx context.Context, userID, id string) error {
	if _, err := s.Get(ctx, userID, id); err != nil {
		return err
	}
	return s.docs.remove(ctx, id)
}

// applyStatus writes next together with the rest of patch and the
// extended timeline. submittedAt is stamped the first time an application
// is submitted.
func (s *ApplicationService) applyStatus(
	ctx context.Context,
	current *entities.Application,
	next entities.ApplicationStatus,
	notes string,
	patch map[string]interface{},
) error {
	if !next.Valid() {
		return domainerrors.ValidationFailed("Application payload failed validation", nil,
			map[string]string{"status": fmt.Sprintf("unknown application status %q", next)})
	}

	now := s.docs.now()
	timeline := append(append([]entities.TimelineEvent(nil), current.Timeline...), entities.TimelineEvent{
		Status: next,
		Date:   now,
		Notes:  notes,
	})
	encoded, err := entities.EncodeFields(struct {
		Timeline []entities.TimelineEvent `json:"timeline"`
	}{timeline})
	if err != nil {
		return domainerrors.InternalError(err)
	}

	patch["status"] = string(next)
	patch["timeline"] = encoded["timeline"]
	if next == entities.ApplicationStatusSubmitted && !current.SubmittedAt.Valid {
		patch["submittedAt"] = now
	}

	if err := s.docs.patch(ctx, current.ID, patch); err != nil {
		return err
	}
	logger.Info(ctx, "Application status changed",
		zap.String("application_id", current.ID),
		zap.String("from", string(current.Status)),
		zap.String("to", string(next)),
	)
	return nil
}
