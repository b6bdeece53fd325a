package repositoryImp

import (
	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/finance/repository"
)

type txRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.TransactionRepository { return &txRepo{db} }

func (r *txRepo) Create(t *entities.Transaction) error { return r.db.Create(t).Error }

func (r *txRepo) ByFarmer(farmerID uint) ([]entities.Transaction, error) {
	var out []entities.Transaction
	err := r.db.Where("farmer_id = ?", farmerID).Order("date DESC").Find(&out).Error
	return out, err
}
