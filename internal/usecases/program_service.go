package usecases

import (
	"context"

	"scrapemyuni.backend/internal/domain/entities"
	"scrapemyuni.backend/internal/domain/repositories"
	"scrapemyuni.backend/internal/domain/schema"
	"scrapemyuni.backend/pkg/validation"
)

// ProgramService handles program reads and writes
type ProgramService struct {
	docs documentService
}

// NewProgramService creates a new program service
func NewProgramService(
	store repositories.DocumentStore,
	registry *schema.Registry,
	validator *validation.Validator,
) *ProgramService {
	return &ProgramService{
		docs: newDocumentService(store, registry, validator, repositories.CollectionPrograms, "Program", func() interface{} { return &entities.Program{} }),
	}
}

// Get gets a program by ID
func (s *ProgramService) Get(ctx context.Context, id string) (*entities.Program, error) {
	var p entities.Program
	if err := s.docs.get(ctx, id, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// ListByUniversity returns the programs offered by a university
func (s *ProgramService) ListByUniversity(ctx context.Context, universityID string) ([]*entities.Program, error) {
	docs, err := s.docs.find(ctx, repositories.Query{}.Where("universityId", universityID))
	if err != nil {
		return nil, err
	}
	return decodeDocuments[entities.Program](docs)
}

// Add creates a program. The universityId reference is not checked.
func (s *ProgramService) Add(ctx context.Context, p *entities.Program) (string, error) {
	return s.docs.create(ctx, p)
}

// Update merges fields into an existing program
func (s *ProgramService) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return s.docs.patch(ctx, id, fields)
}

// Remove deletes a program
func (s *ProgramService) Remove(ctx context.Context, id string) error {
	return s.docs.remove(ctx, id)
}
