package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"scrapemyuni.backend/internal/domain/entities"
	domainerrors "scrapemyuni.backend/internal/domain/errors"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/infrastructure/models"
	"scrapemyuni.backend/pkg/utils"
)

// GormDocumentStore implements the document store on a single SQL table of
// JSON bodies. Works on postgres (JSONB) and sqlite (JSON1).
type GormDocumentStore struct {
	db *gorm.DB
}

var _ repositories.DocumentStore = (*GormDocumentStore)(nil)

// NewGormDocumentStore creates a new gorm backed document store
func NewGormDocumentStore(db *gorm.DB) *GormDocumentStore {
	return &GormDocumentStore{db: db}
}

// AutoMigrate creates the documents table
func (s *GormDocumentStore) AutoMigrate() error {
	return s.db.AutoMigrate(&models.Document{})
}

// Get gets a document by collection and identifier
func (s *GormDocumentStore) Get(ctx context.Context, collection, id string) (*entities.Document, error) {
	var m models.Document
	if err := s.db.WithContext(ctx).Where("collection = ? AND id = ?", collection, id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toDocument(&m), nil
}

// Find scans a collection with equality filters, optional ordering and paging
func (s *GormDocumentStore) Find(ctx context.Context, collection string, q repositories.Query) ([]*entities.Document, error) {
	tx := s.db.WithContext(ctx).Model(&models.Document{}).Where("collection = ?", collection)

	for _, f := range q.Filters {
		keys, err := splitFieldPath(f.Field)
		if err != nil {
			return nil, err
		}
		tx = tx.Where(datatypes.JSONQuery("body").Equals(normalizeScalar(f.Value), keys...))
	}

	if q.OrderBy != nil {
		keys, err := splitFieldPath(q.OrderBy.Field)
		if err != nil {
			return nil, err
		}
		expr := s.fieldExpression(keys)
		direction := "ASC"
		if q.OrderBy.Descending {
			direction = "DESC"
		}
		tx = tx.Where(expr + " IS NOT NULL").Order(expr + " " + direction)
	}
	tx = tx.Order("id")

	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	var rows []models.Document
	if err := tx.Find(&rows).Error; err != nil {
		return nil, err
	}

	docs := make([]*entities.Document, 0, len(rows))
	for i := range rows {
		docs = append(docs, toDocument(&rows[i]))
	}
	return docs, nil
}

// Add stores a new document under a generated identifier
func (s *GormDocumentStore) Add(ctx context.Context, collection string, fields map[string]interface{}) (string, error) {
	now := time.Now().UTC()
	m := &models.Document{
		Collection: collection,
		ID:         utils.NewDocumentID(),
		Body:       datatypes.JSONMap(cloneFields(fields)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return "", err
	}
	return m.ID, nil
}

// Set creates or replaces the document with a fixed identifier
func (s *GormDocumentStore) Set(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	now := time.Now().UTC()
	m := &models.Document{
		Collection: collection,
		ID:         id,
		Body:       datatypes.JSONMap(cloneFields(fields)),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "collection"}, {Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"body", "updated_at"}),
	}).Create(m).Error
}

// Update merges fields into an existing document inside one transaction
func (s *GormDocumentStore) Update(ctx context.Context, collection, id string, fields map[string]interface{}) error {
	for key := range fields {
		if _, err := splitFieldPath(key); err != nil {
			return err
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m models.Document
		if err := tx.Where("collection = ? AND id = ?", collection, id).First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domainerrors.ErrNotFound
			}
			return err
		}

		body := map[string]interface{}(m.Body)
		if body == nil {
			body = map[string]interface{}{}
		}
		applyPatch(body, fields)

		return tx.Model(&models.Document{}).
			Where("collection = ? AND id = ?", collection, id).
			Updates(map[string]interface{}{
				"body":       datatypes.JSONMap(body),
				"updated_at": time.Now().UTC(),
			}).Error
	})
}

// Delete removes a document; deleting a missing document succeeds
func (s *GormDocumentStore) Delete(ctx context.Context, collection, id string) error {
	return s.db.WithContext(ctx).
		Where("collection = ? AND id = ?", collection, id).
		Delete(&models.Document{}).Error
}

// Ping checks the database connection
func (s *GormDocumentStore) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.PingContext(ctx)
}

// Close closes the underlying connection pool
func (s *GormDocumentStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	return sqlDB.Close()
}

// fieldExpression renders a JSON path lookup for ordering. keys are
// validated identifiers.
func (s *GormDocumentStore) fieldExpression(keys []string) string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return "(body #> '{" + strings.Join(keys, ",") + "}')"
	default:
		return "JSON_EXTRACT(body, '$." + strings.Join(keys, ".") + "')"
	}
}

func toDocument(m *models.Document) *entities.Document {
	fields := make(map[string]interface{}, len(m.Body))
	for k, v := range m.Body {
		fields[k] = v
	}
	return &entities.Document{ID: m.ID, Fields: fields}
}
