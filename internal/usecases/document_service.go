package usecases

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/pkg/logger"
	"scrapemyuni.backend/pkg/validation"
)

// documentService is the store pipeline shared by the entity services:
// validate, stamp, write, and map store failures to domain errors.
type documentService struct {
	store      repositories.DocumentStore
	registry   *schema.Registry
	validator  *validation.Validator
	collection string
	entity     string
	// newRecord returns an empty typed record of the collection, e.g.
	// &entities.University{}
	newRecord func() interface{}
	now       func() time.Time
}

func newDocumentService(
	store repositories.DocumentStore,
	registry *schema.Registry,
	validator *validation.Validator,
	collection string,
	entity string,
	newRecord func() interface{},
) documentService {
	if registry == nil {
		registry = schema.NewDefaultRegistry()
	}
	if validator == nil {
		validator = validation.NewValidator()
	}
	return documentService{
		store:      store,
		registry:   registry,
		validator:  validator,
		collection: collection,
		entity:     entity,
		newRecord:  newRecord,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (s *documentService) get(ctx context.Context, id string, out interface{}) error {
	doc, err := s.store.Get(ctx, s.collection, id)
	if err != nil {
		return s.storeError(ctx, "get", err, zap.String("id", id))
	}
	if err := doc.Decode(out); err != nil {
		return domainerrors.InternalError(err)
	}
	return nil
}

func (s *documentService) find(ctx context.Context, q repositories.Query) ([]*entities.Document, error) {
	docs, err := s.store.Find(ctx, s.collection, q)
	if err != nil {
		return nil, s.storeError(ctx, "find", err)
	}
	return docs, nil
}

func (s *documentService) count(ctx context.Context, q repositories.Query) (int, error) {
	docs, err := s.find(ctx, q)
	if err != nil {
		return 0, err
	}
	return len(docs), nil
}

// create validates the typed record and stores it under a new identifier.
func (s *documentService) create(ctx context.Context, record interface{}) (string, error) {
	fields, err := s.prepare(record)
	if err != nil {
		return "", err
	}
	id, err := s.store.Add(ctx, s.collection, fields)
	if err != nil {
		return "", s.storeError(ctx, "add", err)
	}
	return id, nil
}

// set validates the typed record and stores it under a caller chosen
// identifier, replacing any previous document.
func (s *documentService) set(ctx context.Context, id string, record interface{}) error {
	fields, err := s.prepare(record)
	if err != nil {
		return err
	}
	if err := s.store.Set(ctx, s.collection, id, fields); err != nil {
		return s.storeError(ctx, "set", err, zap.String("id", id))
	}
	return nil
}

// prepare checks the record against its struct tags and the collection
// schema, and stamps createdAt/updatedAt.
func (s *documentService) prepare(record interface{}) (map[string]interface{}, error) {
	if err := s.validator.ValidateStruct(record); err != nil {
		return nil, domainerrors.ValidationFailed(s.entity+" payload failed validation", err, validation.FormatValidationErrors(err))
	}

	fields, err := entities.EncodeFields(record)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	now := s.now()
	fields["createdAt"] = now
	fields["updatedAt"] = now

	if err := s.registry.Validate(s.collection, fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// patch applies a caller supplied partial update. The patch is checked
// against the schema, then merged into the stored document in memory; the
// merged record must decode into its typed form and pass its struct tags.
// The identifier is never written as a field and createdAt is immutable.
func (s *documentService) patch(ctx context.Context, id string, fields map[string]interface{}) error {
	patch := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		switch k {
		case "id":
			continue
		case "createdAt":
			return domainerrors.ValidationFailed(s.entity+" payload failed validation", nil,
				map[string]string{"createdAt": "createdAt cannot be changed"})
		}
		patch[k] = v
	}
	if err := s.registry.ValidatePatch(s.collection, patch); err != nil {
		return err
	}
	if err := s.checkMerged(ctx, id, patch); err != nil {
		return err
	}
	return s.write(ctx, id, patch)
}

// write stores a patch built by the service itself and refreshes updatedAt.
func (s *documentService) write(ctx context.Context, id string, patch map[string]interface{}) error {
	out := make(map[string]interface{}, len(patch)+1)
	for k, v := range patch {
		out[k] = v
	}
	out["updatedAt"] = s.now()

	if err := s.store.Update(ctx, s.collection, id, out); err != nil {
		return s.storeError(ctx, "update", err, zap.String("id", id))
	}
	return nil
}

// checkMerged makes sure the document stays readable as a typed record
// once patch is applied.
func (s *documentService) checkMerged(ctx context.Context, id string, patch map[string]interface{}) error {
	if s.newRecord == nil {
		return nil
	}
	doc, err := s.store.Get(ctx, s.collection, id)
	if err != nil {
		return s.storeError(ctx, "get", err, zap.String("id", id))
	}

	merged := &entities.Document{ID: id, Fields: mergePatch(doc.Fields, patch)}
	merged.Fields["updatedAt"] = s.now()
	record := s.newRecord()
	if err := merged.Decode(record); err != nil {
		details := map[string]string{}
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field != "" {
			details[typeErr.Field] = "expected " + typeErr.Type.String()
		}
		return domainerrors.ValidationFailed(s.entity+" payload failed validation", err, details)
	}
	if err := s.validator.ValidateStruct(record); err != nil {
		return domainerrors.ValidationFailed(s.entity+" payload failed validation", err, validation.FormatValidationErrors(err))
	}
	return nil
}

// mergePatch returns a copy of fields with patch applied. Dotted keys write
// into nested objects; only the maps on the written paths are copied.
func mergePatch(fields, patch map[string]interface{}) map[string]interface{} {
	out := copyMap(fields)
	for key, value := range patch {
		segments := strings.Split(key, ".")
		target := out
		for _, seg := range segments[:len(segments)-1] {
			next, ok := target[seg].(map[string]interface{})
			if ok {
				next = copyMap(next)
			} else {
				next = map[string]interface{}{}
			}
			target[seg] = next
			target = next
		}
		target[segments[len(segments)-1]] = value
	}
	return out
}

func copyMap(m map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *documentService) remove(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, s.collection, id); err != nil {
		return s.storeError(ctx, "delete", err, zap.String("id", id))
	}
	return nil
}

// storeError maps a document store failure to NotFound or
// BackendUnavailable and logs it once.
func (s *documentService) storeError(ctx context.Context, op string, err error, fields ...zap.Field) error {
	if errors.Is(err, domainerrors.ErrNotFound) {
		return domainerrors.NotFound(s.entity + " not found")
	}
	fields = append(fields,
		zap.String("collection", s.collection),
		zap.String("op", op),
		zap.Error(err),
	)
	logger.Error(ctx, "document store call failed", fields...)
	return domainerrors.BackendUnavailable(err)
}

func decodeDocuments[T any](docs []*entities.Document) ([]*T, error) {
	records, err := entities.DecodeAll[T](docs)
	if err != nil {
		return nil, domainerrors.InternalError(err)
	}
	return records, nil
}
