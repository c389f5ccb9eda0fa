package repository

import (
	"github.com/aniladanir/campaign-manager/internal/domain"
	"gorm.io/gorm"
)

type Repository interface {
	SaveTemplate(t *domain.Template) error
	DeleteTemplate(id string) error
	GetTemplates() ([]domain.Template, error)
}

type repo struct {
	db *gorm.DB
}

func NewTemplateRepository(db *gorm.DB) Repository {
	return &repo{db: db}
}

// SaveTemplate inserts the template or overwrites the row with the same id
func (r *repo) SaveTemplate(t *domain.Template) error {
	return r.db.Save(t).Error
}

func (r *repo) DeleteTemplate(id string) error {
	return r.db.Delete(&domain.Template{}, "id = ?", id).Error
}

// GetTemplates returns every template in creation order
func (r *repo) GetTemplates() ([]domain.Template, error) {
	var templates []domain.Template
	err := r.db.Order("position ASC").Find(&templates).Error
	return templates, err
}
