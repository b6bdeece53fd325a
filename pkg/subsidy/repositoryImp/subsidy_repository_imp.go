package repositoryImp

import (
	"gorm.io/gorm"

	"greenlands/entities"
	"greenlands/pkg/subsidy/repository"
)

type subsidyRepo struct{ db *gorm.DB }

func New(db *gorm.DB) repository.SubsidyRepository { return &subsidyRepo{db} }

func (r *subsidyRepo) All() ([]entities.Subsidy, error) {
	var out []entities.Subsidy
	err := r.db.Order("application_deadline ASC").Find(&out).Error
	return out, err
}

func (r *subsidyRepo) FindByID(id uint) (*entities.Subsidy, error) {
	var s entities.Subsidy
	if err := r.db.First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *subsidyRepo) Create(s *entities.Subsidy) error { return r.db.Create(s).Error }

func (r *subsidyRepo) CreateApplication(a *entities.SubsidyApplication) error {
	return r.db.Create(a).Error
}
