package repository

import (
	"github.com/aniladanir/campaign-manager/internal/domain"
	"gorm.io/gorm"
)

type Repository interface {
	SaveCampaign(c *domain.Campaign) error
	GetCampaigns() ([]domain.Campaign, error)
}

type repo struct {
	db *gorm.DB
}

func NewCampaignRepository(db *gorm.DB) Repository {
	return &repo{db: db}
}

// SaveCampaign writes the full campaign row, counters included
func (r *repo) SaveCampaign(c *domain.Campaign) error {
	return r.db.Save(c).Error
}

// GetCampaigns returns every campaign in creation order
func (r *repo) GetCampaigns() ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	err := r.db.Order("position ASC").Find(&campaigns).Error
	return campaigns, err
}
