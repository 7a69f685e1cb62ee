package repository

import (
	"gorm.io/gorm"

	"velarias-backend/internal/models"
)

// ProjectRepository defines the persistence operations for Project records.
type ProjectRepository interface {
	Create(project *models.Project) error
	GetByID(id uint) (*models.Project, error)
	Update(project *models.Project) error
	Delete(id uint) error
	ListByType(projectType string) ([]models.Project, error)
}

// ProjectRepositoryImpl provides methods to interact with the Project model
// in the database.
type ProjectRepositoryImpl struct {
	db *gorm.DB
}

// NewProjectRepository creates a new ProjectRepositoryImpl instance with the
// provided GORM database connection.
func NewProjectRepository(db *gorm.DB) *ProjectRepositoryImpl {
	return &ProjectRepositoryImpl{db: db}
}

// Create creates a new Project in the database.
func (r *ProjectRepositoryImpl) Create(project *models.Project) error {
	return r.db.Create(project).Error
}

// GetByID retrieves a Project by its ID from the database.
func (r *ProjectRepositoryImpl) GetByID(id uint) (*models.Project, error) {
	var project models.Project
	err := r.db.First(&project, "id = ?", id).Error
	return &project, err
}

// Update updates an existing Project in the database.
func (r *ProjectRepositoryImpl) Update(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete deletes a Project by its ID from the database.
func (r *ProjectRepositoryImpl) Delete(id uint) error {
	return r.db.Delete(&models.Project{}, "id = ?", id).Error
}

// ListByType retrieves all Projects of one type, newest first.
func (r *ProjectRepositoryImpl) ListByType(projectType string) ([]models.Project, error) {
	var projects []models.Project
	err := r.db.Where("type = ?", projectType).Order("created_at DESC").Find(&projects).Error
	return projects, err
}
