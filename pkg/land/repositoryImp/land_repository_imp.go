package repositoryImp

import (
	"time"

	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/land/repository"
)

type landRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.LandRepository { return &landRepo{db} }

func (r *landRepo) Create(l *entities.Land) error {
	l.LastUpdated = time.Now()
	return r.db.Create(l).Error
}

func (r *landRepo) Save(l *entities.Land) error {
	l.LastUpdated = time.Now()
	return r.db.Save(l).Error
}

func (r *landRepo) Delete(id uint) error {
	return r.db.Delete(&entities.Land{}, id).Error
}

func (r *landRepo) FindByID(id uint) (*entities.Land, error) {
	var l entities.Land
	if err := r.db.Preload("Farmer").First(&l, id).Error; err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *landRepo) All() ([]entities.Land, error) {
	var out []entities.Land
	err := r.db.Preload("Farmer").Order("last_updated DESC").Find(&out).Error
	return out, err
}

func (r *landRepo) ByFarmer(farmerID uint) ([]entities.Land, error) {
	var out []entities.Land
	err := r.db.Preload("Farmer").Where("farmer_id = ?", farmerID).
		Order("last_updated DESC").Find(&out).Error
	return out, err
}
