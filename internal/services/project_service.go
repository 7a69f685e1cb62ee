package services

import (
	"strings"

	"github.com/pkg/errors"

	"velarias-backend/internal/models"
	"velarias-backend/internal/repository"
)

// ProjectService enforces the project record invariants on top of the
// repository: required fields, a never-empty gallery, and the cover image
// always mirroring images[0].
type ProjectService struct {
	repo repository.ProjectRepository
}

func NewProjectService(repo repository.ProjectRepository) *ProjectService {
	return &ProjectService{repo: repo}
}

// Create validates and persists a new project. projectType comes from the
// request query and defaults to industrial unless exactly "residential".
func (s *ProjectService) Create(projectType string, p *models.Project) (*models.Project, error) {
	p.Type = models.NormalizeType(projectType)
	p.Title = strings.TrimSpace(p.Title)
	p.Category = strings.ToLower(strings.TrimSpace(p.Category))
	p.Location = strings.TrimSpace(p.Location)

	if p.Title == "" {
		return nil, errors.Wrap(ErrMissingField, "title")
	}
	if p.Category == "" {
		return nil, errors.Wrap(ErrMissingField, "category")
	}
	if p.Location == "" {
		return nil, errors.Wrap(ErrMissingField, "location")
	}
	if len(p.Images) == 0 {
		return nil, ErrEmptyGallery
	}
	normalizeCover(p)

	if err := s.repo.Create(p); err != nil {
		return nil, errors.Wrap(err, "creating project")
	}
	return p, nil
}

// Update merges the patch over the stored record: blank fields keep their
// old values, a nil Images slice keeps the old gallery, and the cover
// invariant is re-asserted after the merge.
func (s *ProjectService) Update(id uint, patch *models.Project) (*models.Project, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if v := strings.ToLower(strings.TrimSpace(patch.Category)); v != "" {
		existing.Category = v
	}
	if v := strings.TrimSpace(patch.Title); v != "" {
		existing.Title = v
	}
	if v := strings.TrimSpace(patch.Location); v != "" {
		existing.Location = v
	}
	if patch.Area != "" {
		existing.Area = patch.Area
	}
	if patch.Duration != "" {
		existing.Duration = patch.Duration
	}
	if patch.Description != "" {
		existing.Description = patch.Description
	}
	if patch.Images != nil {
		if len(patch.Images) == 0 {
			return nil, ErrEmptyGallery
		}
		existing.Images = patch.Images
	}
	if patch.Coordinates != nil {
		existing.Coordinates = patch.Coordinates
	}
	normalizeCover(existing)

	if err := s.repo.Update(existing); err != nil {
		return nil, errors.Wrap(err, "updating project")
	}
	return existing, nil
}

// Delete removes a project by ID.
func (s *ProjectService) Delete(id uint) error {
	if _, err := s.repo.GetByID(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

// GetByID returns a single project.
func (s *ProjectService) GetByID(id uint) (*models.Project, error) {
	return s.repo.GetByID(id)
}

// ListGrouped returns residential and industrial projects, newest first,
// the shape the public sites consume.
func (s *ProjectService) ListGrouped() (residential, industrial []models.Project, err error) {
	residential, err = s.repo.ListByType(models.TypeResidential)
	if err != nil {
		return nil, nil, errors.Wrap(err, "listing residential projects")
	}
	industrial, err = s.repo.ListByType(models.TypeIndustrial)
	if err != nil {
		return nil, nil, errors.Wrap(err, "listing industrial projects")
	}
	return residential, industrial, nil
}

// normalizeCover keeps image == images[0]. Divergent input is auto-corrected
// rather than rejected.
func normalizeCover(p *models.Project) {
	if len(p.Images) > 0 {
		p.Image = p.Images[0]
	}
}
