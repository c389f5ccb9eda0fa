package repository

import (
	"github.com/aniladanir/campaign-manager/internal/domain"
	"gorm.io/gorm"
)

const insertBatchSize = 500

type Repository interface {
	SaveContacts(contacts []domain.Contact) error
	DeleteAllContacts() error
	GetContacts() ([]domain.Contact, error)
}

type repo struct {
	db *gorm.DB
}

func NewContactRepository(db *gorm.DB) Repository {
	return &repo{db: db}
}

// SaveContacts inserts an imported batch in a single transaction
func (r *repo) SaveContacts(contacts []domain.Contact) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return tx.CreateInBatches(&contacts, insertBatchSize).Error
	})
}

func (r *repo) DeleteAllContacts() error {
	return r.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&domain.Contact{}).Error
}

// GetContacts returns every contact in import order
func (r *repo) GetContacts() ([]domain.Contact, error) {
	var contacts []domain.Contact
	err := r.db.Order("position ASC").Find(&contacts).Error
	return contacts, err
}
