package services

import (
	"context"

	"timetracking/internal/errors"
	"timetracking/internal/validation"
)

// projectServiceImpl implements the ProjectService interface
type projectServiceImpl struct {
	registry  ProjectRegistry
	validator *validation.ProjectValidator
}

// NewProjectService creates a new ProjectService instance
func NewProjectService(registry ProjectRegistry) ProjectService {
	return &projectServiceImpl{
		registry:  registry,
		validator: validation.NewProjectValidator(),
	}
}

// ListProjects returns the registered project names in sorted order
func (s *projectServiceImpl) ListProjects(ctx context.Context) ([]string, error) {
	return s.registry.Names(ctx)
}

// AddProject removes spaces from name, validates it and registers it.
// It returns the name as stored.
func (s *projectServiceImpl) AddProject(ctx context.Context, name string) (string, error) {
	cleaned, err := s.validator.GetValidProjectName(name)
	if err != nil {
		return "", toAppError(err)
	}

	if err := s.registry.Add(ctx, cleaned); err != nil {
		return cleaned, err
	}
	return cleaned, nil
}

// RequireProject returns an error unless name is registered
func (s *projectServiceImpl) RequireProject(ctx context.Context, name string) error {
	if name == "" {
		return errors.NewValidationError("project name cannot be empty", nil)
	}

	exists, err := s.registry.Exists(ctx, name)
	if err != nil {
		return err
	}
	if !exists {
		return errors.NewUnknownProjectError(name)
	}
	return nil
}

// toAppError converts a validation failure into an application error
func toAppError(err error) error {
	if ve, ok := err.(*validation.ValidationError); ok {
		return errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
	}
	return err
}
